package types

import (
	"time"

	"github.com/inkhaus/inkhaus/pkg/device"
	"github.com/inkhaus/inkhaus/pkg/screen"
)

// --- Request DTOs ---

// SetupRequest is the optional request body for POST /api/setup.
type SetupRequest struct {
	FirmwareVersion string `json:"firmware_version"`
	Screen          string `json:"screen"`
	Timezone        string `json:"timezone"`
	DeviceName      string `json:"device_name"`
}

// LogRequest is the request body for POST /api/log.
type LogRequest struct {
	Level   string         `json:"level"`
	Message string         `json:"message"`
	LogData map[string]any `json:"log_data"`
}

// CreateScreenRequest is the request body for POST /api/devices/:id/screens.
type CreateScreenRequest struct {
	Name     string         `json:"name" binding:"required"`
	Type     screen.Kind    `json:"type" binding:"required"`
	Config   map[string]any `json:"config"`
	IsActive bool           `json:"is_active"`
}

// UpdateScreenRequest is the request body for PATCH /api/screens/:id.
// Pointer fields distinguish "absent" from zero values.
type UpdateScreenRequest struct {
	Name     *string        `json:"name"`
	Type     *screen.Kind   `json:"type"`
	Config   map[string]any `json:"config"`
	IsActive *bool          `json:"is_active"`
}

// UpdateDeviceRequest is the request body for PATCH /api/devices/:id.
type UpdateDeviceRequest struct {
	Name        *string `json:"name"`
	Screen      *string `json:"screen"`
	Timezone    *string `json:"timezone"`
	RefreshRate *int    `json:"refresh_rate"`
}

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// DisplayResponse is the device-facing reply for GET /api/display.
// Devices always receive HTTP 200; failures are signalled in Status.
type DisplayResponse struct {
	Status      string `json:"status"`
	ImageURL    string `json:"image_url,omitempty"`
	Filename    string `json:"filename,omitempty"`
	RefreshRate int    `json:"refresh_rate,omitempty"`
	Message     string `json:"message,omitempty"`
}

// SetupResponse is returned from GET/POST /api/setup. APIKey is present
// only in the "created" reply; it is never shown again.
type SetupResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Device  *device.Device `json:"device,omitempty"`
	APIKey  string         `json:"api_key,omitempty"`
}

// LogResponse is returned from POST /api/log.
type LogResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ListDevicesResponse is returned from GET /api/devices
type ListDevicesResponse struct {
	Devices []*device.Device `json:"devices"`
	Count   int              `json:"count"`
}

// DeviceResponse is returned from GET /api/devices/:id
type DeviceResponse struct {
	Device *device.Device `json:"device"`
}

// ListScreensResponse is returned from GET /api/devices/:id/screens
type ListScreensResponse struct {
	Screens []*screen.Screen `json:"screens"`
	Count   int              `json:"count"`
}

// ScreenResponse is returned from screen create/update endpoints
type ScreenResponse struct {
	Screen *screen.Screen `json:"screen"`
}
