package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/pet-sitting-booking/internal/domain/booking"
	"github.com/BruksfildServices01/pet-sitting-booking/internal/infra/sessionstore"
)

var testLoc = time.FixedZone("EST", -5*3600)

// fakeCalendar serves busy intervals per date and records reservations.
type fakeCalendar struct {
	mu sync.Mutex

	busy      map[string][]domain.BusyInterval
	busyErr   error
	onBusy    func(date string)
	createErr error
	block     chan struct{}
	started   chan struct{}

	busyCalls int
	requests  []domain.ReservationRequest
}

func (c *fakeCalendar) BusyIntervals(_ context.Context, _ string, dayStart, _ time.Time) ([]domain.BusyInterval, error) {
	c.mu.Lock()
	c.busyCalls++
	hook := c.onBusy
	c.onBusy = nil
	c.mu.Unlock()

	date := dayStart.Format(domain.DateLayout)
	if hook != nil {
		hook(date)
	}
	if c.busyErr != nil {
		return nil, c.busyErr
	}
	return c.busy[date], nil
}

func (c *fakeCalendar) CreateReservation(ctx context.Context, req domain.ReservationRequest) (domain.Confirmation, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()

	if c.started != nil {
		close(c.started)
	}
	if c.block != nil {
		select {
		case <-c.block:
		case <-ctx.Done():
			return domain.Confirmation{}, ctx.Err()
		}
	}
	if c.createErr != nil {
		return domain.Confirmation{}, c.createErr
	}
	return domain.Confirmation{EventID: "evt-1", HTMLLink: "https://calendar.example/evt-1"}, nil
}

func (c *fakeCalendar) reservations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

var errCalendarDown = errors.New("calendar down")

var testNow = time.Date(2026, 10, 18, 10, 0, 0, 0, testLoc)

func newTestFlow(cal *fakeCalendar) (*Flow, *sessionstore.Memory) {
	log := zap.NewNop()
	store := sessionstore.NewMemory(time.Hour)

	var source domain.AvailabilitySource
	var sink domain.ReservationSink
	if cal != nil {
		source, sink = cal, cal
	}

	av := NewGetAvailability(source, "primary", domain.DefaultWorkingWindow(), time.Second, nil, log)
	sub := NewSubmitReservation(sink, testLoc, domain.DefaultSlotDuration, time.Second, nil, log)

	f := NewFlow(store, av, sub, testLoc, nil, log)
	f.SetClock(func() time.Time { return testNow })
	return f, store
}

func at(date string, h int) time.Time {
	d, _ := time.ParseInLocation(domain.DateLayout, date, testLoc)
	return d.Add(time.Duration(h) * time.Hour)
}
