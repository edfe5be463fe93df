package booking

import (
	"context"
	"time"
)

type AvailabilitySource interface {
	BusyIntervals(ctx context.Context, resourceID string, dayStart, dayEnd time.Time) ([]BusyInterval, error)
}

type ReservationSink interface {
	CreateReservation(ctx context.Context, req ReservationRequest) (Confirmation, error)
}

// SessionStore persists sessions between requests. Save is a
// compare-and-set on Version: it fails with ErrVersionConflict when the
// stored version differs from s.Version, and bumps s.Version on success.
type SessionStore interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
