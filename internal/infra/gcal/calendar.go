package gcal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	domain "github.com/BruksfildServices01/pet-sitting-booking/internal/domain/booking"
)

// Calendar answers free/busy queries and inserts booking events on one
// Google calendar.
type Calendar struct {
	svc        *calendar.Service
	calendarID string
	loc        *time.Location
}

// New builds the client from a service account key file. The account must
// have write access to calendarID.
func New(ctx context.Context, credentialsFile, calendarID string, loc *time.Location) (*Calendar, error) {
	if credentialsFile == "" || calendarID == "" {
		return nil, errors.New("google calendar credentials and calendar id are required")
	}

	svc, err := calendar.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(calendar.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}

	return &Calendar{svc: svc, calendarID: calendarID, loc: loc}, nil
}

func (c *Calendar) BusyIntervals(ctx context.Context, resourceID string, dayStart, dayEnd time.Time) ([]domain.BusyInterval, error) {
	if resourceID == "" {
		resourceID = c.calendarID
	}

	req := &calendar.FreeBusyRequest{
		TimeMin:  dayStart.Format(time.RFC3339),
		TimeMax:  dayEnd.Format(time.RFC3339),
		TimeZone: c.loc.String(),
		Items:    []*calendar.FreeBusyRequestItem{{Id: resourceID}},
	}

	resp, err := c.svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAvailabilityUnavailable, err)
	}

	cal, ok := resp.Calendars[resourceID]
	if !ok {
		return nil, fmt.Errorf("%w: calendar %s missing from response", domain.ErrAvailabilityUnavailable, resourceID)
	}
	if len(cal.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrAvailabilityUnavailable, cal.Errors[0].Reason)
	}

	return parseBusy(cal.Busy)
}

func parseBusy(periods []*calendar.TimePeriod) ([]domain.BusyInterval, error) {
	out := make([]domain.BusyInterval, 0, len(periods))
	for _, p := range periods {
		start, err := time.Parse(time.RFC3339, p.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: bad busy start %q", domain.ErrAvailabilityUnavailable, p.Start)
		}
		end, err := time.Parse(time.RFC3339, p.End)
		if err != nil {
			return nil, fmt.Errorf("%w: bad busy end %q", domain.ErrAvailabilityUnavailable, p.End)
		}
		out = append(out, domain.BusyInterval{Start: start, End: end})
	}
	return out, nil
}

func (c *Calendar) CreateReservation(ctx context.Context, req domain.ReservationRequest) (domain.Confirmation, error) {
	ev := &calendar.Event{
		Summary:     req.Summary,
		Description: req.Description,
		Start: &calendar.EventDateTime{
			DateTime: req.Start.Format(time.RFC3339),
			TimeZone: req.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: req.End.Format(time.RFC3339),
			TimeZone: req.TimeZone,
		},
	}

	created, err := c.svc.Events.Insert(c.calendarID, ev).Context(ctx).Do()
	if err != nil {
		return domain.Confirmation{}, fmt.Errorf("insert event: %w", err)
	}

	return domain.Confirmation{
		EventID:  created.Id,
		HTMLLink: created.HtmlLink,
		Start:    req.Start,
		End:      req.End,
	}, nil
}

var (
	_ domain.AvailabilitySource = (*Calendar)(nil)
	_ domain.ReservationSink    = (*Calendar)(nil)
)
