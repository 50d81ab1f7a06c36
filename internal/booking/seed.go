package booking

import "context"

// Demo catalog. Mirrors the dataset the support team uses for agent
// evaluation runs.
var seedUsers = []UserProfile{
	{UserID: "1", Name: "Adam", Email: "adam@gmail.com"},
	{UserID: "2", Name: "Bob", Email: "bob@gmail.com"},
	{UserID: "3", Name: "Chelsie", Email: "chelsie@gmail.com"},
	{UserID: "4", Name: "David", Email: "david@gmail.com"},
	{UserID: "5", Name: "Emma", Email: "emma@gmail.com"},
	{UserID: "6", Name: "Frank", Email: "frank@gmail.com"},
	{UserID: "7", Name: "Grace", Email: "grace@gmail.com"},
	{UserID: "8", Name: "Henry", Email: "henry@gmail.com"},
}

var seedFlights = []Flight{
	// SFO to JFK
	{FlightID: "DA123", Origin: "SFO", Destination: "JFK", DateTime: Date{2025, 9, 1, 1}, Duration: 5.5, Price: 320},
	{FlightID: "DA125", Origin: "SFO", Destination: "JFK", DateTime: Date{2025, 9, 1, 7}, Duration: 5.5, Price: 450},
	{FlightID: "DA127", Origin: "SFO", Destination: "JFK", DateTime: Date{2025, 9, 1, 14}, Duration: 6.0, Price: 380},
	// SFO to SNA
	{FlightID: "DA456", Origin: "SFO", Destination: "SNA", DateTime: Date{2025, 10, 1, 1}, Duration: 1.5, Price: 150},
	{FlightID: "DA460", Origin: "SFO", Destination: "SNA", DateTime: Date{2025, 10, 1, 9}, Duration: 1.5, Price: 180},
	// SFO to LAX
	{FlightID: "DA200", Origin: "SFO", Destination: "LAX", DateTime: Date{2025, 9, 15, 6}, Duration: 1.5, Price: 120},
	{FlightID: "DA202", Origin: "SFO", Destination: "LAX", DateTime: Date{2025, 9, 15, 12}, Duration: 1.5, Price: 140},
	{FlightID: "DA204", Origin: "SFO", Destination: "LAX", DateTime: Date{2025, 9, 15, 18}, Duration: 1.5, Price: 160},
	// LAX to JFK
	{FlightID: "DA300", Origin: "LAX", Destination: "JFK", DateTime: Date{2025, 9, 20, 8}, Duration: 5.0, Price: 350},
	{FlightID: "DA302", Origin: "LAX", Destination: "JFK", DateTime: Date{2025, 9, 20, 13}, Duration: 5.5, Price: 420},
	// JFK to ORD
	{FlightID: "DA400", Origin: "JFK", Destination: "ORD", DateTime: Date{2025, 10, 5, 7}, Duration: 2.5, Price: 220},
	{FlightID: "DA402", Origin: "JFK", Destination: "ORD", DateTime: Date{2025, 10, 5, 15}, Duration: 2.5, Price: 250},
	// ORD to SFO
	{FlightID: "DA500", Origin: "ORD", Destination: "SFO", DateTime: Date{2025, 11, 1, 9}, Duration: 4.5, Price: 380},
	{FlightID: "DA502", Origin: "ORD", Destination: "SFO", DateTime: Date{2025, 11, 1, 16}, Duration: 4.5, Price: 410},
	// SEA to LAX
	{FlightID: "DA600", Origin: "SEA", Destination: "LAX", DateTime: Date{2025, 9, 10, 6}, Duration: 2.5, Price: 180},
	{FlightID: "DA602", Origin: "SEA", Destination: "LAX", DateTime: Date{2025, 9, 10, 14}, Duration: 2.5, Price: 200},
	// MIA to JFK
	{FlightID: "DA700", Origin: "MIA", Destination: "JFK", DateTime: Date{2025, 10, 15, 8}, Duration: 3.0, Price: 280},
	{FlightID: "DA702", Origin: "MIA", Destination: "JFK", DateTime: Date{2025, 10, 15, 17}, Duration: 3.0, Price: 310},
	// BOS to SFO
	{FlightID: "DA800", Origin: "BOS", Destination: "SFO", DateTime: Date{2025, 11, 10, 7}, Duration: 6.0, Price: 450},
	{FlightID: "DA802", Origin: "BOS", Destination: "SFO", DateTime: Date{2025, 11, 10, 13}, Duration: 6.0, Price: 480},
	// DEN to ORD
	{FlightID: "DA900", Origin: "DEN", Destination: "ORD", DateTime: Date{2025, 9, 25, 10}, Duration: 2.5, Price: 190},
	{FlightID: "DA902", Origin: "DEN", Destination: "ORD", DateTime: Date{2025, 9, 25, 16}, Duration: 2.5, Price: 210},
}

// Seed inserts the demo users and flight catalog. Existing rows are left
// untouched, so it is safe to run on every startup.
func (s *Store) Seed(ctx context.Context) error {
	for _, u := range seedUsers {
		if _, err := s.conn.ExecContext(ctx,
			`INSERT OR IGNORE INTO users (user_id, name, email) VALUES (?, ?, ?)`,
			u.UserID, u.Name, u.Email); err != nil {
			return err
		}
	}
	for _, f := range seedFlights {
		if _, err := s.conn.ExecContext(ctx,
			`INSERT OR IGNORE INTO flights
			 (flight_id, year, month, day, hour, origin, destination, duration, price)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			f.FlightID, f.DateTime.Year, f.DateTime.Month, f.DateTime.Day, f.DateTime.Hour,
			f.Origin, f.Destination, f.Duration, f.Price); err != nil {
			return err
		}
	}
	return nil
}
