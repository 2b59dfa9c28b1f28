package render

import (
	"fmt"
	"time"
)

// Year screen metrics.
const (
	yearMargin     = 40
	yearFooterArea = 60
	gridColsMin    = 10
	gridColsMax    = 20
	gridSlotsMin   = 366 // a grid must hold a leap year
)

// DaysInYear returns 365 or 366 per the Gregorian rule: leap when divisible
// by 4 and (not divisible by 100 or divisible by 400).
func DaysInYear(year int) int {
	if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		return 366
	}
	return 365
}

// YearProgress is the computed state behind the year screen.
type YearProgress struct {
	Year      int
	DayIndex  int // 1-based, includes today
	TotalDays int
	Percent   float64
}

// ComputeYearProgress derives the elapsed-day state for now in loc.
func ComputeYearProgress(now time.Time, loc *time.Location) YearProgress {
	local := now.In(loc)
	total := DaysInYear(local.Year())
	day := local.YearDay()
	if day > total {
		day = total
	}
	return YearProgress{
		Year:      local.Year(),
		DayIndex:  day,
		TotalDays: total,
		Percent:   float64(day) / float64(total) * 100,
	}
}

// chooseGrid searches column counts in [gridColsMin, gridColsMax] for the
// layout whose aspect ratio is closest to the drawing area's, while keeping
// room for all 366 possible slots. Exhaustive and deterministic.
func chooseGrid(availW, availH int) (cols, rows int) {
	target := float64(availW) / float64(availH)
	best := -1.0

	for c := gridColsMin; c <= gridColsMax; c++ {
		r := (gridSlotsMin + c - 1) / c
		aspect := float64(c) / float64(r)
		score := aspect - target
		if score < 0 {
			score = -score
		}
		if best < 0 || score < best {
			best = score
			cols, rows = c, r
		}
	}
	return cols, rows
}

func buildYearProgress(opts Options) *Document {
	p := ComputeYearProgress(opts.Now, opts.location())

	availW := CanvasWidth - 2*yearMargin
	availH := CanvasHeight - 2*yearMargin - yearFooterArea
	cols, rows := chooseGrid(availW, availH)

	cellW := availW / cols
	cellH := availH / rows
	dotSize := cellW
	if cellH < dotSize {
		dotSize = cellH
	}
	dotSize -= 2

	gridW := cols * cellW
	gridH := rows * cellH
	startX := yearMargin + (availW-gridW)/2
	startY := yearMargin + (availH-gridH)/2

	d := NewDocument()
	for i := 0; i < p.TotalDays; i++ {
		row := i / cols
		col := i % cols
		fill := White
		if i < p.DayIndex {
			fill = Black
		}
		d.Add(Circle{
			CX:          startX + col*cellW + cellW/2,
			CY:          startY + row*cellH + cellH/2,
			R:           dotSize / 2,
			Fill:        fill,
			Stroke:      Black,
			StrokeWidth: 2,
		})
	}

	d.Add(
		Line{X1: yearMargin, Y1: footerRule, X2: CanvasWidth - yearMargin, Y2: footerRule, Stroke: Black, StrokeWidth: 2},
		Text{X: 60, Y: footerY, Content: fmt.Sprintf("%d / %d", p.DayIndex, p.TotalDays), Size: 21, Fill: Black},
		Text{X: centerX, Y: footerY, Content: opts.Now.In(opts.location()).Format("02/01/2006"), Size: 21, Anchor: AnchorMiddle, Fill: Black},
		Text{X: CanvasWidth - 60, Y: footerY, Content: fmt.Sprintf("%.1f%%", p.Percent), Size: 21, Anchor: AnchorEnd, Fill: Black},
	)
	return d
}
