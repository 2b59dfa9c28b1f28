// Package screen defines the content templates a device can display and
// validates their per-kind configuration.
package screen

import "time"

// Kind enumerates the supported screen templates.
type Kind string

const (
	KindClock        Kind = "clock"
	KindWeather      Kind = "weather"
	KindQuote        Kind = "quote"
	KindCustom       Kind = "custom"
	KindCalendarWeek Kind = "calendar-week"
	KindYearProgress Kind = "year-progress"
	KindDefault      Kind = "default"
)

// Kinds lists every supported template.
var Kinds = []Kind{
	KindClock,
	KindWeather,
	KindQuote,
	KindCustom,
	KindCalendarWeek,
	KindYearProgress,
	KindDefault,
}

// Valid reports whether k names a supported template.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Screen is a named, typed content template assignable to a device. At most
// one active screen is current per device; when several are marked active
// the most recently created one wins.
type Screen struct {
	ID        string         `json:"id"`
	DeviceID  string         `json:"device_id"`
	Name      string         `json:"name"`
	Type      Kind           `json:"type"`
	Config    map[string]any `json:"config"`
	IsActive  bool           `json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
