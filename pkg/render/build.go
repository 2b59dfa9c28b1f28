package render

import (
	"fmt"
	"time"

	"github.com/inkhaus/inkhaus/pkg/screen"
)

// Options carries the ambient inputs a builder may need beyond its config.
// Builders do no I/O: week events are fetched by the caller and passed in.
type Options struct {
	Now        time.Time
	Location   *time.Location // reference timezone; nil means UTC
	DeviceName string
	FriendlyID string
	Events     []Event // calendar-week input
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

// Build produces the vector document for a screen kind and its config.
// Unknown kinds fail with ErrRenderFailure.
func Build(kind screen.Kind, config map[string]any, opts Options) (*Document, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	switch kind {
	case screen.KindClock:
		return buildClock(config, opts), nil
	case screen.KindWeather:
		return buildWeather(config, opts), nil
	case screen.KindQuote:
		return buildQuote(config, opts), nil
	case screen.KindCustom:
		return buildCustom(config, opts), nil
	case screen.KindCalendarWeek:
		return buildCalendarWeek(opts), nil
	case screen.KindYearProgress:
		return buildYearProgress(opts), nil
	case screen.KindDefault:
		return buildDefault(opts), nil
	default:
		return nil, fmt.Errorf("%w: unknown screen type %q", ErrRenderFailure, kind)
	}
}

// configString reads an optional string setting with a default.
func configString(config map[string]any, key, fallback string) string {
	if config == nil {
		return fallback
	}
	if v, ok := config[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
