package render

import (
	"fmt"
	"sort"
	"time"
)

// Week screen metrics.
const (
	weekPad       = 20
	weekHeader    = 36
	dayGap        = 6
	eventTextSize = 14
	eventRowH     = 36 // time line + title line
)

func buildCalendarWeek(opts Options) *Document {
	loc := opts.location()
	start, end := WeekBounds(opts.Now, loc)

	d := NewDocument()

	title := fmt.Sprintf("%s - %s",
		start.Format("Mon 2 Jan"),
		end.AddDate(0, 0, -1).Format("Mon 2 Jan"))
	d.Add(
		Text{X: weekPad, Y: weekPad + 24, Content: title, Size: 24, Fill: Black},
		Line{X1: weekPad, Y1: weekPad + weekHeader, X2: CanvasWidth - weekPad, Y2: weekPad + weekHeader, Stroke: Muted, StrokeWidth: 1},
	)

	bodyY := weekPad + weekHeader + 10
	colW := (CanvasWidth - 2*weekPad - 6*dayGap) / 7
	colH := CanvasHeight - bodyY - weekPad

	// Rows available below the day label, two text lines per event.
	maxRows := (colH - 30) / eventRowH
	maxChars := colW / (glyphAdvance * glyphScale(eventTextSize))

	for i := 0; i < 7; i++ {
		dayStart := start.AddDate(0, 0, i)
		dayEnd := dayStart.AddDate(0, 0, 1)
		x := weekPad + i*(colW+dayGap)

		d.Add(
			Text{X: x, Y: bodyY + 14, Content: dayStart.Format("Mon 2"), Size: 16, Fill: Black},
			Line{X1: x, Y1: bodyY + 22, X2: x + colW, Y2: bodyY + 22, Stroke: Muted, StrokeWidth: 1},
		)

		events := eventsInWindow(opts.Events, dayStart, dayEnd)
		if len(events) == 0 {
			d.Add(Text{X: x, Y: bodyY + 50, Content: "No events", Size: eventTextSize, Fill: Muted})
			continue
		}

		// Earliest start first; anything past the row budget is dropped
		// silently.
		if len(events) > maxRows {
			events = events[:maxRows]
		}
		y := bodyY + 46
		for _, e := range events {
			when := "All-day"
			if !e.AllDay {
				when = formatHM(e.Start.In(opts.location())) + "-" + formatHM(e.End.In(opts.location()))
			}
			d.Add(
				Text{X: x, Y: y, Content: clip(when, maxChars), Size: eventTextSize, Fill: Dark},
				Text{X: x, Y: y + 16, Content: clip(e.Title, maxChars), Size: eventTextSize, Fill: Black},
			)
			y += eventRowH
		}
	}

	return d
}

// eventsInWindow returns the events overlapping [start, end), sorted by
// start time.
func eventsInWindow(events []Event, start, end time.Time) []Event {
	var out []Event
	for _, e := range events {
		if e.Start.Before(end) && e.End.After(start) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// clip truncates s to at most n runes.
func clip(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
