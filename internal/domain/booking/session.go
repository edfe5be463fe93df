package booking

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/pet-sitting-booking/internal/validators"
)

// ===============================
// Steps
// ===============================

type Step int

const (
	StepService  Step = 1
	StepDateTime Step = 2
	StepDetails  Step = 3
)

func (s Step) String() string {
	switch s {
	case StepService:
		return "service"
	case StepDateTime:
		return "date_time"
	case StepDetails:
		return "details"
	}
	return "unknown"
}

// ===============================
// Session
// ===============================

type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Pet struct {
	Name  string  `json:"name"`
	Type  PetType `json:"type"`
	Breed string  `json:"breed,omitempty"`
	Age   string  `json:"age,omitempty"`
}

// Session is the in-progress booking of one visitor. It is owned by the
// holder of its session token and mutated only through its methods.
type Session struct {
	ID   string `json:"id"`
	Step Step   `json:"step"`

	Service ServiceKind `json:"service,omitempty"`
	Date    string      `json:"date,omitempty"`
	Time    string      `json:"time,omitempty"`

	Slots         []Slot `json:"slots"`
	SlotsFallback bool   `json:"slots_fallback"`

	Contact Contact `json:"contact"`
	Pet     Pet     `json:"pet"`
	Notes   string  `json:"notes,omitempty"`

	Submitting      bool       `json:"submitting"`
	SubmittingSince *time.Time `json:"submitting_since,omitempty"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Step:      StepService,
		Slots:     []Slot{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy so callers can restore a session after a
// failed operation.
func (s *Session) Clone() *Session {
	c := *s
	c.Slots = append([]Slot(nil), s.Slots...)
	if s.SubmittingSince != nil {
		t := *s.SubmittingSince
		c.SubmittingSince = &t
	}
	return &c
}

func (s *Session) requireStep(step Step) error {
	if s.Step != step {
		return invalid("step", "wrong_step", "This action is not available at the current booking step.")
	}
	return nil
}

func (s *Session) SelectService(kind ServiceKind) error {
	if err := s.requireStep(StepService); err != nil {
		return err
	}
	if !kind.IsValid() {
		return invalid("service", "invalid_service", "Please choose one of the offered services.")
	}
	s.Service = kind
	return nil
}

// SelectDate stores a new date. A different date drops the chosen time
// and the slots computed for the previous date.
func (s *Session) SelectDate(date string) error {
	if err := s.requireStep(StepDateTime); err != nil {
		return err
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return invalid("date", "invalid_date", "Please choose a valid date.")
	}
	if date != s.Date {
		s.Date = date
		s.Time = ""
		s.Slots = []Slot{}
		s.SlotsFallback = false
	}
	return nil
}

// ApplyAvailability installs the slots computed for av.Date. Results for
// any other date, or arriving after the session left the date step, are
// stale and rejected without touching the session.
func (s *Session) ApplyAvailability(av Availability) error {
	if s.Step != StepDateTime || av.Date != s.Date {
		return ErrStaleAvailability
	}
	s.Slots = append([]Slot{}, av.Slots...)
	s.SlotsFallback = av.Fallback
	if s.Time != "" && !av.Has(s.Time) {
		s.Time = ""
	}
	return nil
}

func (s *Session) availability() Availability {
	return Availability{Date: s.Date, Slots: s.Slots, Fallback: s.SlotsFallback}
}

func (s *Session) SelectTime(hhmm string) error {
	if err := s.requireStep(StepDateTime); err != nil {
		return err
	}
	if s.Date == "" {
		return invalid("date", "date_required", "Please choose a date first.")
	}
	if !s.availability().Has(hhmm) {
		return invalid("time", "time_unavailable", "That time is not available on the selected date.")
	}
	s.Time = hhmm
	return nil
}

func (s *Session) UpdateDetails(c Contact, p Pet, notes string) error {
	if err := s.requireStep(StepDetails); err != nil {
		return err
	}
	s.Contact = Contact{
		Name:  strings.TrimSpace(c.Name),
		Email: strings.TrimSpace(c.Email),
		Phone: strings.TrimSpace(c.Phone),
	}
	s.Pet = Pet{
		Name:  strings.TrimSpace(p.Name),
		Type:  PetType(strings.ToLower(strings.TrimSpace(string(p.Type)))),
		Breed: strings.TrimSpace(p.Breed),
		Age:   strings.TrimSpace(p.Age),
	}
	s.Notes = strings.TrimSpace(notes)
	return nil
}

// Next advances one step. Leaving the details step is done by submitting.
func (s *Session) Next() error {
	switch s.Step {
	case StepService:
		if s.Service == "" {
			return invalid("service", "service_required", "Please choose a service.")
		}
		s.Step = StepDateTime
	case StepDateTime:
		if s.Date == "" {
			return invalid("date", "date_required", "Please choose a date.")
		}
		if s.Time == "" {
			return invalid("time", "time_required", "Please choose a time.")
		}
		s.Step = StepDetails
	default:
		return invalid("step", "submit_required", "Submit the booking to continue.")
	}
	return nil
}

// Back returns to the previous step keeping every selection.
func (s *Session) Back() {
	if s.Step > StepService {
		s.Step--
	}
}

func (s *Session) ValidateSubmission() error {
	if err := s.requireStep(StepDetails); err != nil {
		return err
	}
	if s.Service == "" || s.Date == "" || s.Time == "" {
		return invalid("step", "incomplete_booking", "Please complete the service, date and time steps.")
	}

	required := []struct {
		field, value, label string
	}{
		{"contact.name", s.Contact.Name, "your name"},
		{"contact.email", s.Contact.Email, "your email"},
		{"contact.phone", s.Contact.Phone, "your phone number"},
		{"pet.name", s.Pet.Name, "your pet's name"},
		{"pet.type", string(s.Pet.Type), "your pet's type"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return invalid(r.field, "required", "Please enter "+r.label+".")
		}
	}

	if !validators.IsEmail(s.Contact.Email) {
		return invalid("contact.email", "invalid_email", "Please enter a valid email address.")
	}
	if !s.Pet.Type.IsValid() {
		return invalid("pet.type", "invalid_pet_type", "Please choose your pet's type.")
	}
	return nil
}

// Reset returns the session to a fresh first step under the same ID.
func (s *Session) Reset(now time.Time) {
	id, version, created := s.ID, s.Version, s.CreatedAt
	*s = *NewSession(id, now)
	s.Version = version
	s.CreatedAt = created
}

// BeginSubmit marks the session as submitting. A mark older than staleAfter
// is ignored so a crashed submission cannot lock the session forever.
func (s *Session) BeginSubmit(now time.Time, staleAfter time.Duration) error {
	if s.SubmitPending(now, staleAfter) {
		return ErrSubmissionInProgress
	}
	s.Submitting = true
	s.SubmittingSince = &now
	return nil
}

// SubmitPending reports whether a submission started less than staleAfter ago.
func (s *Session) SubmitPending(now time.Time, staleAfter time.Duration) bool {
	return s.Submitting && s.SubmittingSince != nil && now.Sub(*s.SubmittingSince) < staleAfter
}

func (s *Session) EndSubmit() {
	s.Submitting = false
	s.SubmittingSince = nil
}
