package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"

	"flightdesk/internal/db"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Store persists the flight catalog, bookings and support tickets.
type Store struct {
	conn *sql.DB
}

func NewStore(database *db.DB) *Store {
	return &Store{conn: database.Conn()}
}

func (s *Store) UserByName(ctx context.Context, name string) (UserProfile, error) {
	var u UserProfile
	err := s.conn.QueryRowContext(ctx,
		`SELECT user_id, name, email FROM users WHERE name = ?`, name,
	).Scan(&u.UserID, &u.Name, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return UserProfile{}, fmt.Errorf("user %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return UserProfile{}, err
	}
	return u, nil
}

func (s *Store) FlightByID(ctx context.Context, id string) (Flight, error) {
	var f Flight
	err := s.conn.QueryRowContext(ctx,
		`SELECT flight_id, year, month, day, hour, origin, destination, duration, price
		 FROM flights WHERE flight_id = ?`, id,
	).Scan(&f.FlightID, &f.DateTime.Year, &f.DateTime.Month, &f.DateTime.Day,
		&f.DateTime.Hour, &f.Origin, &f.Destination, &f.Duration, &f.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return Flight{}, fmt.Errorf("flight %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return Flight{}, err
	}
	return f, nil
}

// SearchFlights returns flights from origin to destination on the given date.
// No match is a not-found error so the agent sees it as an observation.
func (s *Store) SearchFlights(ctx context.Context, date Date, origin, destination string) ([]Flight, error) {
	if origin == "" || destination == "" {
		return nil, fmt.Errorf("origin and destination are required: %w", ErrInvalidQuery)
	}
	flights, err := s.queryFlights(ctx,
		`SELECT flight_id, year, month, day, hour, origin, destination, duration, price
		 FROM flights
		 WHERE year = ? AND month = ? AND day = ? AND origin = ? AND destination = ?
		 ORDER BY hour`,
		date.Year, date.Month, date.Day, origin, destination)
	if err != nil {
		return nil, err
	}
	if len(flights) == 0 {
		return nil, fmt.Errorf("no flight from %s to %s on %04d-%02d-%02d: %w",
			origin, destination, date.Year, date.Month, date.Day, ErrNotFound)
	}
	return flights, nil
}

// RoutesFrom returns all flights departing origin, optionally filtered by
// destination. Unlike SearchFlights an empty result is not an error.
func (s *Store) RoutesFrom(ctx context.Context, origin, destination string) ([]Flight, error) {
	if origin == "" {
		return nil, fmt.Errorf("origin is required: %w", ErrInvalidQuery)
	}
	query := `SELECT flight_id, year, month, day, hour, origin, destination, duration, price
	          FROM flights WHERE origin = ?`
	args := []any{origin}
	if destination != "" {
		query += ` AND destination = ?`
		args = append(args, destination)
	}
	return s.queryFlights(ctx, query+` ORDER BY flight_id`, args...)
}

// Destinations returns the sorted destination airports reachable from origin,
// or every destination in the catalog when origin is empty.
func (s *Store) Destinations(ctx context.Context, origin string) ([]string, error) {
	query := `SELECT DISTINCT destination FROM flights`
	var args []any
	if origin != "" {
		query += ` WHERE origin = ?`
		args = append(args, origin)
	}
	rows, err := s.conn.QueryContext(ctx, query+` ORDER BY destination`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Book creates an itinerary for the user on the given flight and returns it
// with a fresh confirmation number.
func (s *Store) Book(ctx context.Context, flight Flight, user UserProfile) (Itinerary, error) {
	if err := flight.Validate(); err != nil {
		return Itinerary{}, err
	}
	if err := user.Validate(); err != nil {
		return Itinerary{}, err
	}

	for {
		confirmation := randomID(8)
		_, err := s.conn.ExecContext(ctx,
			`INSERT INTO itineraries (confirmation_number, user_id, flight_id) VALUES (?, ?, ?)`,
			confirmation, user.UserID, flight.FlightID)
		if isUniqueViolation(err) {
			continue // confirmation number collision, roll again
		}
		if err != nil {
			return Itinerary{}, err
		}
		return Itinerary{ConfirmationNumber: confirmation, UserProfile: user, Flight: flight}, nil
	}
}

func (s *Store) ItineraryByConfirmation(ctx context.Context, confirmation string) (Itinerary, error) {
	var (
		it Itinerary
		u  UserProfile
		f  Flight
	)
	err := s.conn.QueryRowContext(ctx,
		`SELECT i.confirmation_number,
		        u.user_id, u.name, u.email,
		        f.flight_id, f.year, f.month, f.day, f.hour, f.origin, f.destination, f.duration, f.price
		 FROM itineraries i
		 JOIN users u ON u.user_id = i.user_id
		 JOIN flights f ON f.flight_id = i.flight_id
		 WHERE i.confirmation_number = ?`, confirmation,
	).Scan(&it.ConfirmationNumber,
		&u.UserID, &u.Name, &u.Email,
		&f.FlightID, &f.DateTime.Year, &f.DateTime.Month, &f.DateTime.Day, &f.DateTime.Hour,
		&f.Origin, &f.Destination, &f.Duration, &f.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return Itinerary{}, fmt.Errorf("itinerary %q: %w", confirmation, ErrNotFound)
	}
	if err != nil {
		return Itinerary{}, err
	}
	it.UserProfile = u
	it.Flight = f
	return it, nil
}

func (s *Store) CancelItinerary(ctx context.Context, confirmation string) error {
	res, err := s.conn.ExecContext(ctx,
		`DELETE FROM itineraries WHERE confirmation_number = ?`, confirmation)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("itinerary %q: %w", confirmation, ErrNotFound)
	}
	return nil
}

// FileTicket records a support ticket for requests the agent cannot handle.
func (s *Store) FileTicket(ctx context.Context, request string, user UserProfile) (Ticket, error) {
	if request == "" {
		return Ticket{}, fmt.Errorf("user_request is required: %w", ErrInvalidQuery)
	}
	if err := user.Validate(); err != nil {
		return Ticket{}, err
	}

	for {
		id := randomID(6)
		_, err := s.conn.ExecContext(ctx,
			`INSERT INTO tickets (ticket_id, user_id, user_request) VALUES (?, ?, ?)`,
			id, user.UserID, request)
		if isUniqueViolation(err) {
			continue
		}
		if err != nil {
			return Ticket{}, err
		}
		return Ticket{TicketID: id, UserRequest: request, UserProfile: user}, nil
	}
}

func (s *Store) queryFlights(ctx context.Context, query string, args ...any) ([]Flight, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Flight
	for rows.Next() {
		var f Flight
		if err := rows.Scan(&f.FlightID, &f.DateTime.Year, &f.DateTime.Month, &f.DateTime.Day,
			&f.DateTime.Hour, &f.Origin, &f.Destination, &f.Duration, &f.Price); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// isUniqueViolation reports whether err is a sqlite uniqueness failure,
// matched by result code rather than message text. A duplicate TEXT primary
// key surfaces as SQLITE_CONSTRAINT_PRIMARYKEY, a duplicate unique index as
// SQLITE_CONSTRAINT_UNIQUE.
func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	switch serr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return false
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomID(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return string(b)
}
