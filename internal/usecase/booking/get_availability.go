package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/pet-sitting-booking/internal/audit"
	domain "github.com/BruksfildServices01/pet-sitting-booking/internal/domain/booking"
)

const DefaultAvailabilityTimeout = 10 * time.Second

type GetAvailability struct {
	source     domain.AvailabilitySource
	calendarID string
	window     domain.WorkingWindow
	timeout    time.Duration
	audit      *audit.Dispatcher
	log        *zap.Logger
}

// NewGetAvailability builds the slot lookup. A nil source always yields
// the default slot set.
func NewGetAvailability(
	source domain.AvailabilitySource,
	calendarID string,
	window domain.WorkingWindow,
	timeout time.Duration,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *GetAvailability {
	if timeout <= 0 {
		timeout = DefaultAvailabilityTimeout
	}
	return &GetAvailability{
		source:     source,
		calendarID: calendarID,
		window:     window,
		timeout:    timeout,
		audit:      audit,
		log:        log,
	}
}

// Execute never fails: when the calendar cannot be queried in time the
// fixed default slots are returned with Fallback set.
func (uc *GetAvailability) Execute(ctx context.Context, date time.Time) domain.Availability {
	av := domain.Availability{Date: date.Format(domain.DateLayout)}

	busy, err := uc.busy(ctx, date)
	if err != nil {
		uc.log.Warn("availability source failed, using default slots",
			zap.String("date", av.Date),
			zap.Error(err),
		)
		uc.audit.Dispatch(audit.Event{
			Action:   audit.ActionAvailabilityDefault,
			Entity:   "availability",
			EntityID: av.Date,
			Metadata: map[string]string{"error": err.Error()},
		})
		av.Slots = domain.DefaultSlots(date, uc.window.SlotDuration)
		av.Fallback = true
		return av
	}

	av.Slots = domain.GenerateSlots(date, uc.window, busy)
	return av
}

func (uc *GetAvailability) busy(ctx context.Context, date time.Time) ([]domain.BusyInterval, error) {
	if uc.source == nil {
		return nil, domain.ErrAvailabilityUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	dayStart, dayEnd := domain.DayBounds(date)
	return uc.source.BusyIntervals(ctx, uc.calendarID, dayStart, dayEnd)
}
