package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/pet-sitting-booking/internal/audit"
	domain "github.com/BruksfildServices01/pet-sitting-booking/internal/domain/booking"
	"github.com/BruksfildServices01/pet-sitting-booking/internal/timezone"
)

const maxSaveAttempts = 3

// Flow drives booking sessions through their steps. Sessions live in the
// store between requests; every change is a read-modify-write guarded by
// the session version.
type Flow struct {
	store        domain.SessionStore
	availability *GetAvailability
	submitter    *SubmitReservation
	loc          *time.Location
	audit        *audit.Dispatcher
	log          *zap.Logger

	now   func() time.Time
	newID func() string
}

func NewFlow(
	store domain.SessionStore,
	availability *GetAvailability,
	submitter *SubmitReservation,
	loc *time.Location,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *Flow {
	return &Flow{
		store:        store,
		availability: availability,
		submitter:    submitter,
		loc:          loc,
		audit:        audit,
		log:          log,
		now:          time.Now,
		newID:        func() string { return uuid.New().String() },
	}
}

// SetClock replaces the wall clock used for past-date checks and timestamps.
func (f *Flow) SetClock(now func() time.Time) {
	f.now = now
}

// ======================================================
// SESSION LIFECYCLE
// ======================================================

func (f *Flow) Start(ctx context.Context) (*domain.Session, error) {
	s := domain.NewSession(f.newID(), f.now())
	if err := f.store.Create(ctx, s); err != nil {
		return nil, err
	}

	f.audit.Dispatch(audit.Event{
		SessionID: s.ID,
		Action:    audit.ActionSessionStarted,
		Entity:    "session",
		EntityID:  s.ID,
	})
	return s, nil
}

func (f *Flow) Get(ctx context.Context, id string) (*domain.Session, error) {
	return f.store.Get(ctx, id)
}

// Restart discards every selection and returns to the first step.
func (f *Flow) Restart(ctx context.Context, id string) (*domain.Session, error) {
	return f.edit(ctx, id, func(s *domain.Session) error {
		s.Reset(f.now())
		return nil
	})
}

// ======================================================
// STEP TRANSITIONS
// ======================================================

func (f *Flow) SelectService(ctx context.Context, id string, kind domain.ServiceKind) (*domain.Session, error) {
	return f.edit(ctx, id, func(s *domain.Session) error {
		return s.SelectService(kind)
	})
}

func (f *Flow) Next(ctx context.Context, id string) (*domain.Session, error) {
	return f.edit(ctx, id, func(s *domain.Session) error {
		return s.Next()
	})
}

func (f *Flow) Back(ctx context.Context, id string) (*domain.Session, error) {
	return f.edit(ctx, id, func(s *domain.Session) error {
		s.Back()
		return nil
	})
}

func (f *Flow) SelectTime(ctx context.Context, id, hhmm string) (*domain.Session, error) {
	return f.edit(ctx, id, func(s *domain.Session) error {
		return s.SelectTime(hhmm)
	})
}

func (f *Flow) UpdateDetails(ctx context.Context, id string, c domain.Contact, p domain.Pet, notes string) (*domain.Session, error) {
	return f.edit(ctx, id, func(s *domain.Session) error {
		return s.UpdateDetails(c, p, notes)
	})
}

// SelectDate stores the date, then fetches its slots. The calendar is
// queried outside any session write; when the result comes back the
// session may already hold a newer date, have moved past the date step or
// be submitting. The result is then dropped and the current session is
// returned untouched.
func (f *Flow) SelectDate(ctx context.Context, id, date string) (*domain.Session, error) {
	day, err := f.bookableDay(date)
	if err != nil {
		return nil, err
	}

	if _, err := f.edit(ctx, id, func(s *domain.Session) error {
		return s.SelectDate(date)
	}); err != nil {
		return nil, err
	}

	av := f.availability.Execute(ctx, day)

	s, err := f.edit(ctx, id, func(s *domain.Session) error {
		return s.ApplyAvailability(av)
	})
	if errors.Is(err, domain.ErrStaleAvailability) || errors.Is(err, domain.ErrSubmissionInProgress) {
		f.log.Debug("discarding availability for superseded date",
			zap.String("session_id", id),
			zap.String("date", date),
		)
		return f.store.Get(ctx, id)
	}
	return s, err
}

// Availability is the stateless slot lookup behind the public calendar.
func (f *Flow) Availability(ctx context.Context, date string) (domain.Availability, error) {
	day, err := f.bookableDay(date)
	if err != nil {
		return domain.Availability{}, err
	}
	return f.availability.Execute(ctx, day), nil
}

func (f *Flow) bookableDay(date string) (time.Time, error) {
	day, err := timezone.ParseDate(date, f.loc)
	if err != nil {
		return time.Time{}, domain.Invalid("date", "invalid_date", "Please choose a valid date.")
	}
	if timezone.IsPastDay(day, f.now()) {
		return time.Time{}, domain.Invalid("date", "past_date", "Please choose today or a future date.")
	}
	return day, nil
}

// ======================================================
// SUBMISSION
// ======================================================

// Submit sends the reservation once. On success the session is reset to
// the first step; on failure it is left exactly as it was before the call.
func (f *Flow) Submit(ctx context.Context, id string) (*domain.Session, domain.Confirmation, error) {
	staleAfter := f.submitter.Timeout() * 2

	pending, err := f.update(ctx, id, func(s *domain.Session) error {
		if err := s.ValidateSubmission(); err != nil {
			return err
		}
		return s.BeginSubmit(f.now(), staleAfter)
	})
	if err != nil {
		return nil, domain.Confirmation{}, err
	}

	conf, submitErr := f.submitter.Execute(ctx, pending.Clone())

	// The outcome must be recorded even if the caller went away.
	ctx = context.WithoutCancel(ctx)

	if submitErr != nil {
		s, err := f.update(ctx, id, func(s *domain.Session) error {
			s.EndSubmit()
			return nil
		})
		if err != nil {
			f.log.Error("could not clear submit mark", zap.String("session_id", id), zap.Error(err))
			s = pending.Clone()
			s.EndSubmit()
		}
		return s, domain.Confirmation{}, submitErr
	}

	s, err := f.update(ctx, id, func(s *domain.Session) error {
		s.Reset(f.now())
		return nil
	})
	if err != nil {
		f.log.Error("could not reset submitted session", zap.String("session_id", id), zap.Error(err))
		s = pending.Clone()
		s.Reset(f.now())
	}
	return s, conf, nil
}

// ======================================================
// STORE HELPERS
// ======================================================

// edit applies fn unless a submission is in flight.
func (f *Flow) edit(ctx context.Context, id string, fn func(s *domain.Session) error) (*domain.Session, error) {
	staleAfter := f.submitter.Timeout() * 2
	return f.update(ctx, id, func(s *domain.Session) error {
		if s.SubmitPending(f.now(), staleAfter) {
			return domain.ErrSubmissionInProgress
		}
		return fn(s)
	})
}

// update loads the session, applies fn and saves it, reloading on version
// conflicts. When fn fails nothing is written.
func (f *Flow) update(ctx context.Context, id string, fn func(s *domain.Session) error) (*domain.Session, error) {
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		s, err := f.store.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := fn(s); err != nil {
			return nil, err
		}

		s.UpdatedAt = f.now()
		err = f.store.Save(ctx, s)
		if errors.Is(err, domain.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, domain.ErrVersionConflict
}
