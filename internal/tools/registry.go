package tools

import (
	"flightdesk/internal/agent"
	"flightdesk/internal/booking"
)

// NewRegistry wires the airline toolset over the booking store. The web tool
// is only registered when a Brave API key is configured.
func NewRegistry(store *booking.Store, braveAPIKey string) *agent.Registry {
	registry := agent.NewRegistry()
	registry.Register(NewSearchFlights(store))
	registry.Register(NewListDestinations(store))
	registry.Register(NewSearchRoutes(store))
	registry.Register(NewPickFlight(store))
	registry.Register(NewBookFlight(store))
	registry.Register(NewGetItinerary(store))
	registry.Register(NewCancelItinerary(store))
	registry.Register(NewGetUserInfo(store))
	registry.Register(NewFileTicket(store))
	if braveAPIKey != "" {
		registry.Register(NewWeb(braveAPIKey))
	}
	return registry
}
