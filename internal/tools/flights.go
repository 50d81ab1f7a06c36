package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"flightdesk/internal/booking"
)

var dateSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"year":  map[string]any{"type": "integer"},
		"month": map[string]any{"type": "integer"},
		"day":   map[string]any{"type": "integer"},
		"hour":  map[string]any{"type": "integer"},
	},
	"required":             []string{"year", "month", "day", "hour"},
	"additionalProperties": false,
}

// SearchFlights looks up flights for a route on a specific date.
type SearchFlights struct {
	store *booking.Store
}

func NewSearchFlights(store *booking.Store) *SearchFlights {
	return &SearchFlights{store: store}
}

func (t *SearchFlights) Name() string { return "search_flights" }
func (t *SearchFlights) Description() string {
	return "Fetch flights from an origin to a destination airport on the given date"
}

func (t *SearchFlights) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"date": dateSchema,
			"origin": map[string]any{
				"type":        "string",
				"description": "Origin airport code, e.g. 'SFO'",
			},
			"destination": map[string]any{
				"type":        "string",
				"description": "Destination airport code, e.g. 'JFK'",
			},
		},
		"required":             []string{"date", "origin", "destination"},
		"additionalProperties": false,
	}
}

func (t *SearchFlights) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Date        booking.Date `json:"date"`
		Origin      string       `json:"origin"`
		Destination string       `json:"destination"`
	}
	if err := parseArgs(t.Name(), input, &args); err != nil {
		return "", err
	}

	flights, err := t.store.SearchFlights(ctx, args.Date, args.Origin, args.Destination)
	if err != nil {
		return "", err
	}
	return asJSON(flights)
}

// ListDestinations lists reachable destinations, optionally from one origin.
type ListDestinations struct {
	store *booking.Store
}

func NewListDestinations(store *booking.Store) *ListDestinations {
	return &ListDestinations{store: store}
}

func (t *ListDestinations) Name() string { return "list_destinations" }
func (t *ListDestinations) Description() string {
	return "List destination airports, either reachable from a given origin or across the whole network"
}

func (t *ListDestinations) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"origin": map[string]any{
				"type":        "string",
				"description": "Origin airport code; pass an empty string for all destinations",
			},
		},
		"required":             []string{"origin"},
		"additionalProperties": false,
	}
}

func (t *ListDestinations) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Origin string `json:"origin"`
	}
	if err := parseArgs(t.Name(), input, &args); err != nil {
		return "", err
	}

	destinations, err := t.store.Destinations(ctx, args.Origin)
	if err != nil {
		return "", err
	}
	if len(destinations) == 0 {
		return "No destinations found.", nil
	}
	return strings.Join(destinations, ", "), nil
}

// SearchRoutes summarizes routes from an origin with schedule and pricing.
type SearchRoutes struct {
	store *booking.Store
}

func NewSearchRoutes(store *booking.Store) *SearchRoutes {
	return &SearchRoutes{store: store}
}

func (t *SearchRoutes) Name() string { return "search_routes" }
func (t *SearchRoutes) Description() string {
	return "Search routes from an origin airport, optionally filtered by destination, with schedule and pricing"
}

func (t *SearchRoutes) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"origin": map[string]any{
				"type":        "string",
				"description": "Origin airport code",
			},
			"destination": map[string]any{
				"type":        "string",
				"description": "Destination airport code; pass an empty string for all routes from the origin",
			},
		},
		"required":             []string{"origin", "destination"},
		"additionalProperties": false,
	}
}

func (t *SearchRoutes) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		Origin      string `json:"origin"`
		Destination string `json:"destination"`
	}
	if err := parseArgs(t.Name(), input, &args); err != nil {
		return "", err
	}

	flights, err := t.store.RoutesFrom(ctx, args.Origin, args.Destination)
	if err != nil {
		return "", err
	}
	if len(flights) == 0 {
		return "No routes found.", nil
	}

	type route struct {
		FlightID   string  `json:"flight_id"`
		Route      string  `json:"route"`
		Duration   float64 `json:"duration"`
		Price      float64 `json:"price"`
		SampleTime string  `json:"sample_time"`
	}
	routes := make([]route, 0, len(flights))
	for _, f := range flights {
		routes = append(routes, route{
			FlightID:   f.FlightID,
			Route:      fmt.Sprintf("%s -> %s", f.Origin, f.Destination),
			Duration:   f.Duration,
			Price:      f.Price,
			SampleTime: fmt.Sprintf("%d:00", f.DateTime.Hour),
		})
	}
	return asJSON(routes)
}

// PickFlight chooses the best flight among candidates: shortest first,
// cheapest on ties.
type PickFlight struct {
	store *booking.Store
}

func NewPickFlight(store *booking.Store) *PickFlight {
	return &PickFlight{store: store}
}

func (t *PickFlight) Name() string { return "pick_flight" }
func (t *PickFlight) Description() string {
	return "Pick the best flight among candidate flight ids: the shortest one, and the cheaper one on ties"
}

func (t *PickFlight) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"flight_ids": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Candidate flight ids to choose between",
			},
		},
		"required":             []string{"flight_ids"},
		"additionalProperties": false,
	}
}

func (t *PickFlight) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		FlightIDs []string `json:"flight_ids"`
	}
	if err := parseArgs(t.Name(), input, &args); err != nil {
		return "", err
	}
	if len(args.FlightIDs) == 0 {
		return "", fmt.Errorf("flight_ids must not be empty: %w", booking.ErrInvalidQuery)
	}

	flights := make([]booking.Flight, 0, len(args.FlightIDs))
	for _, id := range args.FlightIDs {
		f, err := t.store.FlightByID(ctx, id)
		if err != nil {
			return "", err
		}
		flights = append(flights, f)
	}

	sort.Slice(flights, func(i, j int) bool {
		if flights[i].Duration != flights[j].Duration {
			return flights[i].Duration < flights[j].Duration
		}
		return flights[i].Price < flights[j].Price
	})

	return asJSON(flights[0])
}
