package render

import (
	"context"
	"sort"
	"time"
)

// Event is one calendar entry shown on the week screen.
type Event struct {
	ID       string
	Title    string
	Start    time.Time
	End      time.Time
	AllDay   bool
	Location string
}

// EventSource supplies the events for a Monday-to-Sunday window. The real
// calendar backend is an external collaborator; a deterministic sample
// implementation is wired by default so the week screen renders end to end
// without credentials.
type EventSource interface {
	WeekEvents(ctx context.Context, start, end time.Time) ([]Event, error)
}

// SampleEvents is an EventSource emitting a fixed weekly agenda relative to
// the window start. Stable output keeps rendering reproducible in tests and
// on a freshly installed server.
type SampleEvents struct{}

// WeekEvents returns the sample agenda for the given window.
func (SampleEvents) WeekEvents(_ context.Context, start, end time.Time) ([]Event, error) {
	day := func(offset, hour, min int) time.Time {
		return start.AddDate(0, 0, offset).Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
	}

	events := []Event{
		{
			ID:       "1",
			Title:    "Team sync",
			Start:    day(1, 9, 0),
			End:      day(1, 10, 0),
			Location: "Zoom",
		},
		{
			ID:       "2",
			Title:    "Client lunch",
			Start:    day(2, 12, 30),
			End:      day(2, 13, 30),
			Location: "CBD",
		},
		{
			ID:     "3",
			Title:  "All-day offsite",
			Start:  start,
			End:    end,
			AllDay: true,
		},
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })
	return events, nil
}

// WeekBounds returns the Monday 00:00 start and the exclusive following
// Monday for the week containing ref in the given location.
func WeekBounds(ref time.Time, loc *time.Location) (start, end time.Time) {
	local := ref.In(loc)
	// time.Weekday is Sunday=0; shift so Monday=0.
	sinceMonday := (int(local.Weekday()) + 6) % 7
	start = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -sinceMonday)
	end = start.AddDate(0, 0, 7)
	return start, end
}
