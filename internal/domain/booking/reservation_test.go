package booking

import (
	"strings"
	"testing"
	"time"
)

func TestNewReservationRequest(t *testing.T) {
	s := sessionAtDetails(t)

	req, err := NewReservationRequest(s, testLoc, time.Hour)
	mustOK(t, err)

	if !req.Start.Equal(at(10, 0)) || !req.End.Equal(at(11, 0)) {
		t.Fatalf("start/end = %v/%v", req.Start, req.End)
	}
	if req.Summary != "Dog Walking for Rex" {
		t.Fatalf("summary = %q", req.Summary)
	}
	for _, want := range []string{
		"Service: Dog Walking",
		"Pet: Rex (dog, Beagle, age 4)",
		"Owner: Ana Silva",
		"Email: ana@example.com",
		"Phone: 555-0100",
		"Notes: Leash is by the door",
	} {
		if !strings.Contains(req.Description, want) {
			t.Errorf("description missing %q:\n%s", want, req.Description)
		}
	}
	if req.TimeZone != testLoc.String() {
		t.Fatalf("time zone = %q", req.TimeZone)
	}
}

func TestNewReservationRequestRequiresCompleteSession(t *testing.T) {
	s := sessionAtDetails(t)
	s.Pet.Name = ""
	if _, err := NewReservationRequest(s, testLoc, time.Hour); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestNewReservationRequestOmitsEmptyOptionalFields(t *testing.T) {
	s := sessionAtDetails(t)
	s.Pet.Breed, s.Pet.Age, s.Notes = "", "", ""

	req, err := NewReservationRequest(s, testLoc, 0)
	mustOK(t, err)
	if !strings.Contains(req.Description, "Pet: Rex (dog)") {
		t.Fatalf("description = %q", req.Description)
	}
	if strings.Contains(req.Description, "Notes:") {
		t.Fatalf("empty notes rendered: %q", req.Description)
	}
	if req.End.Sub(req.Start) != DefaultSlotDuration {
		t.Fatalf("duration = %v", req.End.Sub(req.Start))
	}
}

func TestCatalog(t *testing.T) {
	c := Catalog()
	if len(c) != 6 {
		t.Fatalf("catalog has %d services", len(c))
	}
	c[0].Name = "changed"
	if svc, _ := LookupService(ServiceDogWalking); svc.Name == "changed" {
		t.Fatal("Catalog exposes internal state")
	}
}
