package tools

import (
	"context"
	"fmt"

	"flightdesk/internal/booking"
)

// BookFlight books a flight on behalf of a user and returns the itinerary.
type BookFlight struct {
	store *booking.Store
}

func NewBookFlight(store *booking.Store) *BookFlight {
	return &BookFlight{store: store}
}

func (t *BookFlight) Name() string { return "book_flight" }
func (t *BookFlight) Description() string {
	return "Book a flight on behalf of the user; returns the confirmation number and itinerary"
}

func (t *BookFlight) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"flight_id": map[string]any{
				"type":        "string",
				"description": "Id of the flight to book, e.g. 'DA123'",
			},
			"user_name": map[string]any{
				"type":        "string",
				"description": "Name of the user the booking is for",
			},
		},
		"required":             []string{"flight_id", "user_name"},
		"additionalProperties": false,
	}
}

func (t *BookFlight) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		FlightID string `json:"flight_id"`
		UserName string `json:"user_name"`
	}
	if err := parseArgs(t.Name(), input, &args); err != nil {
		return "", err
	}

	user, err := t.store.UserByName(ctx, args.UserName)
	if err != nil {
		return "", err
	}
	flight, err := t.store.FlightByID(ctx, args.FlightID)
	if err != nil {
		return "", err
	}

	itinerary, err := t.store.Book(ctx, flight, user)
	if err != nil {
		return "", err
	}
	return asJSON(itinerary)
}

// GetItinerary fetches a booked itinerary by confirmation number.
type GetItinerary struct {
	store *booking.Store
}

func NewGetItinerary(store *booking.Store) *GetItinerary {
	return &GetItinerary{store: store}
}

func (t *GetItinerary) Name() string { return "get_itinerary" }
func (t *GetItinerary) Description() string {
	return "Fetch a booked itinerary by its confirmation number"
}

func (t *GetItinerary) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"confirmation_number": map[string]any{
				"type": "string",
			},
		},
		"required":             []string{"confirmation_number"},
		"additionalProperties": false,
	}
}

func (t *GetItinerary) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		ConfirmationNumber string `json:"confirmation_number"`
	}
	if err := parseArgs(t.Name(), input, &args); err != nil {
		return "", err
	}

	itinerary, err := t.store.ItineraryByConfirmation(ctx, args.ConfirmationNumber)
	if err != nil {
		return "", err
	}
	return asJSON(itinerary)
}

// CancelItinerary cancels a booking by confirmation number.
type CancelItinerary struct {
	store *booking.Store
}

func NewCancelItinerary(store *booking.Store) *CancelItinerary {
	return &CancelItinerary{store: store}
}

func (t *CancelItinerary) Name() string { return "cancel_itinerary" }
func (t *CancelItinerary) Description() string {
	return "Cancel a booked itinerary on behalf of the user"
}

func (t *CancelItinerary) InputSchema() any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"confirmation_number": map[string]any{
				"type": "string",
			},
		},
		"required":             []string{"confirmation_number"},
		"additionalProperties": false,
	}
}

func (t *CancelItinerary) Execute(ctx context.Context, input string) (string, error) {
	var args struct {
		ConfirmationNumber string `json:"confirmation_number"`
	}
	if err := parseArgs(t.Name(), input, &args); err != nil {
		return "", err
	}

	if err := t.store.CancelItinerary(ctx, args.ConfirmationNumber); err != nil {
		return "", fmt.Errorf("cannot cancel: %w", err)
	}
	return fmt.Sprintf("Itinerary %s cancelled.", args.ConfirmationNumber), nil
}
