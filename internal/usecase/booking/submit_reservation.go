package booking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/pet-sitting-booking/internal/audit"
	domain "github.com/BruksfildServices01/pet-sitting-booking/internal/domain/booking"
)

const DefaultReservationTimeout = 15 * time.Second

type SubmitReservation struct {
	sink     domain.ReservationSink
	loc      *time.Location
	duration time.Duration
	timeout  time.Duration
	audit    *audit.Dispatcher
	log      *zap.Logger
}

func NewSubmitReservation(
	sink domain.ReservationSink,
	loc *time.Location,
	duration time.Duration,
	timeout time.Duration,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *SubmitReservation {
	if timeout <= 0 {
		timeout = DefaultReservationTimeout
	}
	return &SubmitReservation{
		sink:     sink,
		loc:      loc,
		duration: duration,
		timeout:  timeout,
		audit:    audit,
		log:      log,
	}
}

func (uc *SubmitReservation) Timeout() time.Duration {
	return uc.timeout
}

// Execute sends one event-create request for s. It does not retry; every
// sink failure is reported as domain.ErrReservationFailed.
func (uc *SubmitReservation) Execute(ctx context.Context, s *domain.Session) (domain.Confirmation, error) {

	// --------------------------------------------------
	// Request snapshot
	// --------------------------------------------------
	req, err := domain.NewReservationRequest(s, uc.loc, uc.duration)
	if err != nil {
		return domain.Confirmation{}, err
	}

	// --------------------------------------------------
	// Calendar insert
	// --------------------------------------------------
	conf, err := uc.create(ctx, req)
	if err != nil {
		uc.log.Error("reservation failed",
			zap.String("session_id", s.ID),
			zap.Time("start", req.Start),
			zap.Error(err),
		)
		uc.audit.Dispatch(audit.Event{
			SessionID: s.ID,
			Action:    audit.ActionReservationFailed,
			Entity:    "reservation",
			Metadata: map[string]string{
				"service": string(s.Service),
				"start":   req.Start.Format(time.RFC3339),
				"error":   err.Error(),
			},
		})
		return domain.Confirmation{}, fmt.Errorf("%w: %v", domain.ErrReservationFailed, err)
	}

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	uc.log.Info("reservation created",
		zap.String("session_id", s.ID),
		zap.String("event_id", conf.EventID),
		zap.Time("start", conf.Start),
	)
	uc.audit.Dispatch(audit.Event{
		SessionID: s.ID,
		Action:    audit.ActionReservationCreated,
		Entity:    "reservation",
		EntityID:  conf.EventID,
		Metadata: map[string]string{
			"service": string(s.Service),
			"start":   conf.Start.Format(time.RFC3339),
		},
	})

	return conf, nil
}

func (uc *SubmitReservation) create(ctx context.Context, req domain.ReservationRequest) (domain.Confirmation, error) {
	if uc.sink == nil {
		return domain.Confirmation{}, fmt.Errorf("calendar is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	conf, err := uc.sink.CreateReservation(ctx, req)
	if err != nil {
		return domain.Confirmation{}, err
	}
	if conf.Start.IsZero() {
		conf.Start, conf.End = req.Start, req.End
	}
	return conf, nil
}
