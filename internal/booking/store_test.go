package booking

import (
	"context"
	"testing"

	"flightdesk/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, database.Migrate())

	store := NewStore(database)
	require.NoError(t, store.Seed(context.Background()))
	return store
}

func TestSeedIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Seed(context.Background()))

	u, err := store.UserByName(context.Background(), "Adam")
	require.NoError(t, err)
	assert.Equal(t, "adam@gmail.com", u.Email)
}

func TestUserByName(t *testing.T) {
	store := newTestStore(t)

	u, err := store.UserByName(context.Background(), "Chelsie")
	require.NoError(t, err)
	assert.Equal(t, "3", u.UserID)

	_, err = store.UserByName(context.Background(), "Zelda")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchFlights(t *testing.T) {
	store := newTestStore(t)

	flights, err := store.SearchFlights(context.Background(), Date{2025, 9, 1, 0}, "SFO", "JFK")
	require.NoError(t, err)
	require.Len(t, flights, 3)
	assert.Equal(t, "DA123", flights[0].FlightID) // ordered by hour

	_, err = store.SearchFlights(context.Background(), Date{2025, 9, 2, 0}, "SFO", "JFK")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.SearchFlights(context.Background(), Date{2025, 9, 1, 0}, "", "JFK")
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestDestinations(t *testing.T) {
	store := newTestStore(t)

	from, err := store.Destinations(context.Background(), "SFO")
	require.NoError(t, err)
	assert.Equal(t, []string{"JFK", "LAX", "SNA"}, from)

	all, err := store.Destinations(context.Background(), "")
	require.NoError(t, err)
	assert.Contains(t, all, "ORD")
	assert.Greater(t, len(all), len(from))
}

func TestRoutesFrom(t *testing.T) {
	store := newTestStore(t)

	routes, err := store.RoutesFrom(context.Background(), "SFO", "")
	require.NoError(t, err)
	assert.Len(t, routes, 8)

	filtered, err := store.RoutesFrom(context.Background(), "SFO", "SNA")
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	empty, err := store.RoutesFrom(context.Background(), "XXX", "")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestBookAndCancel(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.UserByName(ctx, "Adam")
	require.NoError(t, err)
	flight, err := store.FlightByID(ctx, "DA123")
	require.NoError(t, err)

	itinerary, err := store.Book(ctx, flight, user)
	require.NoError(t, err)
	assert.Len(t, itinerary.ConfirmationNumber, 8)

	fetched, err := store.ItineraryByConfirmation(ctx, itinerary.ConfirmationNumber)
	require.NoError(t, err)
	assert.Equal(t, itinerary, fetched)

	require.NoError(t, store.CancelItinerary(ctx, itinerary.ConfirmationNumber))

	_, err = store.ItineraryByConfirmation(ctx, itinerary.ConfirmationNumber)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelUnknownItinerary(t *testing.T) {
	store := newTestStore(t)

	err := store.CancelItinerary(context.Background(), "nope1234")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIsUniqueViolation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Duplicate TEXT primary key (user_id "1" is seeded).
	_, err := store.conn.ExecContext(ctx,
		`INSERT INTO users (user_id, name, email) VALUES (?, ?, ?)`,
		"1", "Imposter", "imposter@gmail.com")
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))

	// Duplicate unique index (name "Adam" is seeded).
	_, err = store.conn.ExecContext(ctx,
		`INSERT INTO users (user_id, name, email) VALUES (?, ?, ?)`,
		"99", "Adam", "adam2@gmail.com")
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))

	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(context.Canceled))
}

func TestFileTicket(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user, err := store.UserByName(ctx, "Emma")
	require.NoError(t, err)

	ticket, err := store.FileTicket(ctx, "I want a refund for a flight I never took", user)
	require.NoError(t, err)
	assert.Len(t, ticket.TicketID, 6)
	assert.Equal(t, user, ticket.UserProfile)

	_, err = store.FileTicket(ctx, "", user)
	assert.ErrorIs(t, err, ErrInvalidQuery)
}
