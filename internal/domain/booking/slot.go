package booking

import "time"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	DefaultSlotDuration = time.Hour
)

// BusyInterval is a period reported unavailable by the calendar owner.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// WorkingWindow bounds the slot start times of a day. Both hours are
// inclusive start hours: 9..17 offers a 17:00 slot.
type WorkingWindow struct {
	StartHour    int
	EndHour      int
	SlotDuration time.Duration
}

func DefaultWorkingWindow() WorkingWindow {
	return WorkingWindow{StartHour: 9, EndHour: 17, SlotDuration: DefaultSlotDuration}
}

func (w WorkingWindow) valid() bool {
	return w.SlotDuration > 0 &&
		w.StartHour >= 0 && w.EndHour <= 23 &&
		w.StartHour <= w.EndHour
}

type Slot struct {
	Time  string    `json:"time"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func newSlot(start time.Time, d time.Duration) Slot {
	return Slot{
		Time:  start.Format(TimeLayout),
		Start: start,
		End:   start.Add(d),
	}
}

// Availability is the slot set computed for one date. Fallback marks the
// fixed default set used when the calendar could not be queried.
type Availability struct {
	Date     string `json:"date"`
	Slots    []Slot `json:"slots"`
	Fallback bool   `json:"fallback"`
}

func (a Availability) Has(hhmm string) bool {
	for _, s := range a.Slots {
		if s.Time == hhmm {
			return true
		}
	}
	return false
}

func overlaps(start, end time.Time, b BusyInterval) bool {
	return start.Before(b.End) && end.After(b.Start)
}

// GenerateSlots returns the candidate slots of date inside the window that
// do not intersect any busy interval, ascending by start time. The date's
// location is used for the wall clock hours; its time of day is ignored.
func GenerateSlots(date time.Time, w WorkingWindow, busy []BusyInterval) []Slot {
	slots := []Slot{}
	if !w.valid() {
		return slots
	}

	loc := date.Location()
	at := func(hour int) time.Time {
		return time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, loc)
	}

	last := at(w.EndHour)
	for cur := at(w.StartHour); !cur.After(last); cur = cur.Add(w.SlotDuration) {
		end := cur.Add(w.SlotDuration)

		free := true
		for _, b := range busy {
			if overlaps(cur, end, b) {
				free = false
				break
			}
		}
		if free {
			slots = append(slots, newSlot(cur, w.SlotDuration))
		}
	}

	return slots
}

var defaultSlotHours = []int{9, 10, 11, 13, 14, 15, 16}

// DefaultSlots is the fixed set offered when real availability is unknown.
// Bookings are confirmed manually, so this is a policy, not a guarantee.
func DefaultSlots(date time.Time, d time.Duration) []Slot {
	if d <= 0 {
		d = DefaultSlotDuration
	}
	loc := date.Location()
	slots := make([]Slot, 0, len(defaultSlotHours))
	for _, h := range defaultSlotHours {
		start := time.Date(date.Year(), date.Month(), date.Day(), h, 0, 0, 0, loc)
		slots = append(slots, newSlot(start, d))
	}
	return slots
}

// DayBounds returns local midnight and the last instant of date.
func DayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1).Add(-time.Second)
}
