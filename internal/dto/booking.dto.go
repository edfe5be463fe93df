package dto

import (
	"time"

	domain "github.com/BruksfildServices01/pet-sitting-booking/internal/domain/booking"
)

// ======================================================
// REQUESTS
// ======================================================

type SelectServiceRequest struct {
	Service string `json:"service" binding:"required"`
}

type SelectDateRequest struct {
	Date string `json:"date" binding:"required"`
}

type SelectTimeRequest struct {
	Time string `json:"time" binding:"required"`
}

type ContactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type PetRequest struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Breed string `json:"breed"`
	Age   string `json:"age"`
}

type DetailsRequest struct {
	Contact ContactRequest `json:"contact"`
	Pet     PetRequest     `json:"pet"`
	Notes   string         `json:"notes"`
}

// ======================================================
// RESPONSES
// ======================================================

type SessionDTO struct {
	ID            string         `json:"id"`
	Step          int            `json:"step"`
	StepName      string         `json:"step_name"`
	Service       string         `json:"service,omitempty"`
	Date          string         `json:"date,omitempty"`
	Time          string         `json:"time,omitempty"`
	Slots         []domain.Slot  `json:"slots"`
	SlotsFallback bool           `json:"slots_fallback"`
	Contact       domain.Contact `json:"contact"`
	Pet           domain.Pet     `json:"pet"`
	Notes         string         `json:"notes,omitempty"`
	Submitting    bool           `json:"submitting"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func Session(s *domain.Session) SessionDTO {
	slots := s.Slots
	if slots == nil {
		slots = []domain.Slot{}
	}
	return SessionDTO{
		ID:            s.ID,
		Step:          int(s.Step),
		StepName:      s.Step.String(),
		Service:       string(s.Service),
		Date:          s.Date,
		Time:          s.Time,
		Slots:         slots,
		SlotsFallback: s.SlotsFallback,
		Contact:       s.Contact,
		Pet:           s.Pet,
		Notes:         s.Notes,
		Submitting:    s.Submitting,
		UpdatedAt:     s.UpdatedAt,
	}
}

type StartSessionResponse struct {
	Token   string     `json:"token"`
	Session SessionDTO `json:"session"`
}

type SubmitResponse struct {
	Confirmation domain.Confirmation `json:"confirmation"`
	Session      SessionDTO          `json:"session"`
}

type AvailabilityResponse struct {
	Date     string        `json:"date"`
	Slots    []domain.Slot `json:"slots"`
	Fallback bool          `json:"fallback"`
}
