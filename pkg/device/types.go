package device

import "time"

// Device represents one physical e-ink unit known to the server.
type Device struct {
	ID              string     `json:"id"`
	MACAddress      string     `json:"mac_address"` // canonical XX:XX:XX:XX:XX:XX
	FriendlyID      string     `json:"friendly_id"` // stable TRMNL_XXXXXX label
	APIKey          string     `json:"-"`           // opaque bearer credential, never serialized
	Name            string     `json:"name"`
	Screen          string     `json:"screen"` // panel model (epd_2_9, epd_4_2, epd_7_5)
	Timezone        string     `json:"timezone"`
	RefreshRate     int        `json:"refresh_rate"` // base polling interval, seconds
	FirmwareVersion string     `json:"firmware_version,omitempty"`
	BatteryVoltage  *float64   `json:"battery_voltage,omitempty"` // volts
	RSSI            *int       `json:"rssi,omitempty"`            // dBm
	LastSeenAt      *time.Time `json:"last_seen_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// StatusReport carries the optional telemetry a device sends with each
// request. Nil/empty fields were not supplied and must not overwrite
// stored values.
type StatusReport struct {
	BatteryVoltage  *float64
	FirmwareVersion string
	RSSI            *int
}

// Empty reports whether the device supplied no telemetry at all.
func (r StatusReport) Empty() bool {
	return r.BatteryVoltage == nil && r.FirmwareVersion == "" && r.RSSI == nil
}

// Panel model constants.
const (
	ScreenEPD29 = "epd_2_9"
	ScreenEPD42 = "epd_4_2"
	ScreenEPD75 = "epd_7_5"
)

// Defaults applied when a device is created without explicit settings.
const (
	DefaultScreen      = ScreenEPD29
	DefaultTimezone    = "UTC"
	DefaultRefreshRate = 300
)

// AuthMethod records how a device request was matched to a device record.
type AuthMethod string

const (
	AuthMACAndKey      AuthMethod = "mac_and_key"
	AuthMACOnly        AuthMethod = "mac_only"
	AuthKeyOnly        AuthMethod = "key_only"
	AuthAutoRegistered AuthMethod = "auto_registered"
)
