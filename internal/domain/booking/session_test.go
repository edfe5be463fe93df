package booking

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var now = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

func sessionAtDetails(t *testing.T) *Session {
	t.Helper()
	s := NewSession("s-1", now)
	mustOK(t, s.SelectService(ServiceDogWalking))
	mustOK(t, s.Next())
	mustOK(t, s.SelectDate("2026-11-03"))
	mustOK(t, s.ApplyAvailability(Availability{Date: "2026-11-03", Slots: DefaultSlots(day(), time.Hour)}))
	mustOK(t, s.SelectTime("10:00"))
	mustOK(t, s.Next())
	mustOK(t, s.UpdateDetails(
		Contact{Name: "Ana Silva", Email: "ana@example.com", Phone: "555-0100"},
		Pet{Name: "Rex", Type: "Dog", Breed: "Beagle", Age: "4"},
		"Leash is by the door",
	))
	return s
}

func mustOK(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func mustValidation(t *testing.T, err error, field string) {
	t.Helper()
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != field {
		t.Fatalf("field = %q, want %q", ve.Field, field)
	}
}

func TestNextWithoutServiceStaysAtStepOne(t *testing.T) {
	s := NewSession("s-1", now)
	mustValidation(t, s.Next(), "service")
	if s.Step != StepService {
		t.Fatalf("step = %d, want 1", s.Step)
	}
}

func TestSelectServiceRejectsUnknownKind(t *testing.T) {
	s := NewSession("s-1", now)
	mustValidation(t, s.SelectService("cat-juggling"), "service")
	if s.Service != "" {
		t.Fatalf("service was set to %q", s.Service)
	}
}

func TestNextFromDateTimeRequiresDateAndTime(t *testing.T) {
	s := NewSession("s-1", now)
	mustOK(t, s.SelectService(ServiceGrooming))
	mustOK(t, s.Next())

	mustValidation(t, s.Next(), "date")
	mustOK(t, s.SelectDate("2026-11-03"))
	mustValidation(t, s.Next(), "time")
	if s.Step != StepDateTime {
		t.Fatalf("step = %d, want 2", s.Step)
	}
}

func TestSelectingNewDateClearsTime(t *testing.T) {
	s := NewSession("s-1", now)
	mustOK(t, s.SelectService(ServiceHomeVisit))
	mustOK(t, s.Next())
	mustOK(t, s.SelectDate("2026-11-03"))
	mustOK(t, s.ApplyAvailability(Availability{Date: "2026-11-03", Slots: DefaultSlots(day(), time.Hour)}))
	mustOK(t, s.SelectTime("13:00"))

	mustOK(t, s.SelectDate("2026-11-04"))
	if s.Time != "" {
		t.Fatalf("time = %q, want cleared", s.Time)
	}
	if len(s.Slots) != 0 {
		t.Fatalf("slots of the previous date were kept")
	}
}

func TestReselectingSameDateKeepsTime(t *testing.T) {
	s := NewSession("s-1", now)
	mustOK(t, s.SelectService(ServiceHomeVisit))
	mustOK(t, s.Next())
	mustOK(t, s.SelectDate("2026-11-03"))
	mustOK(t, s.ApplyAvailability(Availability{Date: "2026-11-03", Slots: DefaultSlots(day(), time.Hour)}))
	mustOK(t, s.SelectTime("13:00"))

	mustOK(t, s.SelectDate("2026-11-03"))
	if s.Time != "13:00" {
		t.Fatalf("time = %q, want kept", s.Time)
	}
}

func TestApplyAvailability(t *testing.T) {
	s := NewSession("s-1", now)
	mustOK(t, s.SelectService(ServiceHomeVisit))
	mustOK(t, s.Next())
	mustOK(t, s.SelectDate("2026-11-04"))

	stale := Availability{Date: "2026-11-03", Slots: DefaultSlots(day(), time.Hour)}
	if err := s.ApplyAvailability(stale); !errors.Is(err, ErrStaleAvailability) {
		t.Fatalf("err = %v, want ErrStaleAvailability", err)
	}
	if len(s.Slots) != 0 {
		t.Fatalf("stale slots were applied")
	}

	fresh := Availability{Date: "2026-11-04", Slots: DefaultSlots(day().AddDate(0, 0, 1), time.Hour), Fallback: true}
	mustOK(t, s.ApplyAvailability(fresh))
	if len(s.Slots) != 7 || !s.SlotsFallback {
		t.Fatalf("slots = %d fallback = %v", len(s.Slots), s.SlotsFallback)
	}
}

func TestApplyAvailabilityDropsVanishedTime(t *testing.T) {
	s := NewSession("s-1", now)
	mustOK(t, s.SelectService(ServiceHomeVisit))
	mustOK(t, s.Next())
	mustOK(t, s.SelectDate("2026-11-03"))
	mustOK(t, s.ApplyAvailability(Availability{Date: "2026-11-03", Slots: DefaultSlots(day(), time.Hour)}))
	mustOK(t, s.SelectTime("09:00"))

	refreshed := GenerateSlots(day(), DefaultWorkingWindow(), []BusyInterval{{Start: at(9, 0), End: at(10, 0)}})
	mustOK(t, s.ApplyAvailability(Availability{Date: "2026-11-03", Slots: refreshed}))
	if s.Time != "" {
		t.Fatalf("time = %q, want cleared", s.Time)
	}
}

func TestApplyAvailabilityAfterDateStep(t *testing.T) {
	s := sessionAtDetails(t)

	refreshed := GenerateSlots(day(), DefaultWorkingWindow(), []BusyInterval{{Start: at(10, 0), End: at(11, 0)}})
	err := s.ApplyAvailability(Availability{Date: "2026-11-03", Slots: refreshed})
	if !errors.Is(err, ErrStaleAvailability) {
		t.Fatalf("err = %v, want ErrStaleAvailability", err)
	}
	if s.Step != StepDetails || s.Time != "10:00" {
		t.Fatalf("details session changed: step=%v time=%q", s.Step, s.Time)
	}
}

func TestSelectTimeMustBeAvailable(t *testing.T) {
	s := NewSession("s-1", now)
	mustOK(t, s.SelectService(ServiceHomeVisit))
	mustOK(t, s.Next())

	mustValidation(t, s.SelectTime("09:00"), "date")
	mustOK(t, s.SelectDate("2026-11-03"))
	mustOK(t, s.ApplyAvailability(Availability{Date: "2026-11-03", Slots: DefaultSlots(day(), time.Hour)}))
	mustValidation(t, s.SelectTime("12:00"), "time")
	mustOK(t, s.SelectTime("11:00"))
}

func TestBackKeepsSelections(t *testing.T) {
	s := sessionAtDetails(t)

	s.Back()
	if s.Step != StepDateTime || s.Time != "10:00" || s.Contact.Name != "Ana Silva" {
		t.Fatalf("unexpected state after back: %+v", s)
	}
	s.Back()
	if s.Step != StepService || s.Service != ServiceDogWalking {
		t.Fatalf("unexpected state after second back: %+v", s)
	}
	s.Back()
	if s.Step != StepService {
		t.Fatalf("back at step 1 moved to %d", s.Step)
	}

	mustOK(t, s.Next())
	mustOK(t, s.Next())
	if s.Step != StepDetails {
		t.Fatalf("could not move forward again, step = %d", s.Step)
	}
}

func TestWrongStepActions(t *testing.T) {
	s := NewSession("s-1", now)
	mustValidation(t, s.SelectDate("2026-11-03"), "step")
	mustValidation(t, s.UpdateDetails(Contact{}, Pet{}, ""), "step")

	s = sessionAtDetails(t)
	mustValidation(t, s.SelectService(ServiceGrooming), "step")
	mustValidation(t, s.Next(), "step")
}

func TestValidateSubmission(t *testing.T) {
	mustOK(t, sessionAtDetails(t).ValidateSubmission())

	cases := []struct {
		field string
		edit  func(s *Session)
	}{
		{"contact.name", func(s *Session) { s.Contact.Name = " " }},
		{"contact.email", func(s *Session) { s.Contact.Email = "" }},
		{"contact.email", func(s *Session) { s.Contact.Email = "not-an-email" }},
		{"contact.phone", func(s *Session) { s.Contact.Phone = "" }},
		{"pet.name", func(s *Session) { s.Pet.Name = "" }},
		{"pet.type", func(s *Session) { s.Pet.Type = "" }},
		{"pet.type", func(s *Session) { s.Pet.Type = "dragon" }},
	}
	for _, tc := range cases {
		s := sessionAtDetails(t)
		tc.edit(s)
		mustValidation(t, s.ValidateSubmission(), tc.field)
	}
}

func TestUpdateDetailsNormalizes(t *testing.T) {
	s := sessionAtDetails(t)
	if s.Pet.Type != PetDog {
		t.Fatalf("pet type = %q, want dog", s.Pet.Type)
	}
	if strings.TrimSpace(s.Notes) != s.Notes {
		t.Fatalf("notes not trimmed")
	}
}

func TestResetClearsEverythingButIdentity(t *testing.T) {
	s := sessionAtDetails(t)
	s.Version = 7
	later := now.Add(time.Hour)

	s.Reset(later)

	if s.ID != "s-1" || s.Version != 7 || !s.CreatedAt.Equal(now) {
		t.Fatalf("identity lost: %+v", s)
	}
	if s.Step != StepService || s.Service != "" || s.Date != "" || s.Time != "" ||
		s.Contact != (Contact{}) || s.Pet != (Pet{}) || s.Notes != "" || len(s.Slots) != 0 {
		t.Fatalf("fields not cleared: %+v", s)
	}
}

func TestBeginSubmit(t *testing.T) {
	s := sessionAtDetails(t)
	mustOK(t, s.BeginSubmit(now, time.Minute))

	if err := s.BeginSubmit(now.Add(time.Second), time.Minute); !errors.Is(err, ErrSubmissionInProgress) {
		t.Fatalf("err = %v, want ErrSubmissionInProgress", err)
	}
	mustOK(t, s.BeginSubmit(now.Add(2*time.Minute), time.Minute))

	s.EndSubmit()
	if s.Submitting || s.SubmittingSince != nil {
		t.Fatalf("submit mark not cleared")
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := sessionAtDetails(t)
	c := s.Clone()
	c.Slots[0].Time = "00:00"
	c.Contact.Name = "Other"
	if s.Slots[0].Time == "00:00" || s.Contact.Name == "Other" {
		t.Fatalf("clone shares state with original")
	}
}
