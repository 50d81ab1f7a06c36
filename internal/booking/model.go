package booking

// Date is a coarse timestamp down to the hour. Models are unreliable at
// producing full RFC 3339 timestamps in tool arguments, so flights are
// scheduled on this reduced form instead.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
	Hour  int `json:"hour"`
}

func (d Date) Validate() error {
	switch {
	case d.Year < 1970:
		return validationErr("date", "year", "must be 1970 or later")
	case d.Month < 1 || d.Month > 12:
		return validationErr("date", "month", "must be between 1 and 12")
	case d.Day < 1 || d.Day > 31:
		return validationErr("date", "day", "must be between 1 and 31")
	case d.Hour < 0 || d.Hour > 23:
		return validationErr("date", "hour", "must be between 0 and 23")
	}
	return nil
}

type UserProfile struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

func (u UserProfile) Validate() error {
	switch {
	case u.UserID == "":
		return validationErr("user profile", "user_id", "is required")
	case u.Name == "":
		return validationErr("user profile", "name", "is required")
	case u.Email == "":
		return validationErr("user profile", "email", "is required")
	}
	return nil
}

type Flight struct {
	FlightID    string  `json:"flight_id"`
	DateTime    Date    `json:"date_time"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Duration    float64 `json:"duration"`
	Price       float64 `json:"price"`
}

func (f Flight) Validate() error {
	switch {
	case f.FlightID == "":
		return validationErr("flight", "flight_id", "is required")
	case f.Origin == "":
		return validationErr("flight", "origin", "is required")
	case f.Destination == "":
		return validationErr("flight", "destination", "is required")
	case f.Duration <= 0:
		return validationErr("flight", "duration", "must be positive")
	case f.Price < 0:
		return validationErr("flight", "price", "must not be negative")
	}
	return f.DateTime.Validate()
}

type Itinerary struct {
	ConfirmationNumber string      `json:"confirmation_number"`
	UserProfile        UserProfile `json:"user_profile"`
	Flight             Flight      `json:"flight"`
}

func (i Itinerary) Validate() error {
	if i.ConfirmationNumber == "" {
		return validationErr("itinerary", "confirmation_number", "is required")
	}
	if err := i.UserProfile.Validate(); err != nil {
		return err
	}
	return i.Flight.Validate()
}

type Ticket struct {
	TicketID    string      `json:"ticket_id"`
	UserRequest string      `json:"user_request"`
	UserProfile UserProfile `json:"user_profile"`
}

func (t Ticket) Validate() error {
	switch {
	case t.TicketID == "":
		return validationErr("ticket", "ticket_id", "is required")
	case t.UserRequest == "":
		return validationErr("ticket", "user_request", "is required")
	}
	return t.UserProfile.Validate()
}

func NewFlight(id string, dt Date, origin, destination string, duration, price float64) (Flight, error) {
	f := Flight{
		FlightID:    id,
		DateTime:    dt,
		Origin:      origin,
		Destination: destination,
		Duration:    duration,
		Price:       price,
	}
	if err := f.Validate(); err != nil {
		return Flight{}, err
	}
	return f, nil
}

func NewUserProfile(id, name, email string) (UserProfile, error) {
	u := UserProfile{UserID: id, Name: name, Email: email}
	if err := u.Validate(); err != nil {
		return UserProfile{}, err
	}
	return u, nil
}

func NewItinerary(confirmation string, user UserProfile, flight Flight) (Itinerary, error) {
	i := Itinerary{ConfirmationNumber: confirmation, UserProfile: user, Flight: flight}
	if err := i.Validate(); err != nil {
		return Itinerary{}, err
	}
	return i, nil
}

func NewTicket(id, request string, user UserProfile) (Ticket, error) {
	t := Ticket{TicketID: id, UserRequest: request, UserProfile: user}
	if err := t.Validate(); err != nil {
		return Ticket{}, err
	}
	return t, nil
}
