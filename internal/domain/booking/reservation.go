package booking

import (
	"fmt"
	"strings"
	"time"
)

// ReservationRequest is the event-create payload built from a complete
// session. The calendar only takes free text, so details are flattened
// into Summary and Description.
type ReservationRequest struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	TimeZone    string
}

type Confirmation struct {
	EventID  string    `json:"event_id"`
	HTMLLink string    `json:"html_link,omitempty"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

func NewReservationRequest(s *Session, loc *time.Location, d time.Duration) (ReservationRequest, error) {
	if err := s.ValidateSubmission(); err != nil {
		return ReservationRequest{}, err
	}
	if d <= 0 {
		d = DefaultSlotDuration
	}

	start, err := time.ParseInLocation(DateLayout+" "+TimeLayout, s.Date+" "+s.Time, loc)
	if err != nil {
		return ReservationRequest{}, invalid("time", "invalid_date_or_time", "The selected date or time is invalid.")
	}

	name := string(s.Service)
	if svc, ok := LookupService(s.Service); ok {
		name = svc.Name
	}

	return ReservationRequest{
		Summary:     fmt.Sprintf("%s for %s", name, s.Pet.Name),
		Description: describe(s, name),
		Start:       start,
		End:         start.Add(d),
		TimeZone:    loc.String(),
	}, nil
}

func describe(s *Session, serviceName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Service: %s\n", serviceName)

	pet := fmt.Sprintf("Pet: %s (%s", s.Pet.Name, s.Pet.Type)
	if s.Pet.Breed != "" {
		pet += ", " + s.Pet.Breed
	}
	if s.Pet.Age != "" {
		pet += ", age " + s.Pet.Age
	}
	b.WriteString(pet + ")\n")

	fmt.Fprintf(&b, "Owner: %s\n", s.Contact.Name)
	fmt.Fprintf(&b, "Email: %s\n", s.Contact.Email)
	fmt.Fprintf(&b, "Phone: %s\n", s.Contact.Phone)

	if s.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", s.Notes)
	}
	return strings.TrimRight(b.String(), "\n")
}
