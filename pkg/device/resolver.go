package device

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/inkhaus/inkhaus/pkg/identity"
)

// Directory is the device record store the resolver authenticates against.
// Implemented by pkg/db; treated as a remote, latency-bearing collaborator.
type Directory interface {
	GetByMACAndKey(ctx context.Context, mac, apiKey string) (*Device, error)
	GetByMAC(ctx context.Context, mac string) (*Device, error)
	GetByKey(ctx context.Context, apiKey string) (*Device, error)
	UpdateAPIKey(ctx context.Context, id, apiKey string) error
	UpdateMAC(ctx context.Context, id, mac string) error
	Create(ctx context.Context, d *Device) error
	UpdateStatus(ctx context.Context, id string, report StatusReport, seenAt time.Time) error
}

// Resolver authenticates or auto-provisions a device from the identity
// material presented in request headers. Both the display and log endpoints
// share this one implementation.
type Resolver struct {
	dir Directory
	now func() time.Time
}

// NewResolver creates a Resolver over the given device directory.
func NewResolver(dir Directory) *Resolver {
	return &Resolver{dir: dir, now: time.Now}
}

// request is the identity material extracted from one device request.
type request struct {
	mac    string // canonical form, empty when absent or malformed
	apiKey string
	report StatusReport
}

// strategy attempts one way of matching a request to a device record.
// A nil device with nil error means "no match, try the next strategy".
type strategy func(ctx context.Context, r *Resolver, req request) (*Device, AuthMethod, error)

// Resolution order. First match wins; each step is a single directory
// lookup. See Resolve for the semantics of each step.
var strategies = []strategy{
	matchMACAndKey,
	matchMACOnly,
	matchKeyOnly,
	autoRegister,
}

// Resolve runs the strategy chain: exact MAC+key match, MAC only (rotating
// the stored key when a different one was presented), key only (adopting a
// presented MAC when it differs, e.g. after a factory reset), then
// auto-registration from a credential-derived pseudo MAC. Returns
// ErrNotRegistered when nothing matched.
//
// On success any supplied telemetry is merged into the record and
// last_seen_at is stamped. That write is best-effort: a failure is logged
// and never delays or fails the device-facing response.
func (r *Resolver) Resolve(ctx context.Context, rawMAC, apiKey string, report StatusReport) (*Device, AuthMethod, error) {
	req := request{apiKey: apiKey, report: report}
	if rawMAC != "" && identity.IsValid(rawMAC) {
		if mac, err := identity.Normalize(rawMAC); err == nil {
			req.mac = mac
		}
	}

	for _, try := range strategies {
		dev, method, err := try(ctx, r, req)
		if err != nil {
			return nil, "", err
		}
		if dev == nil {
			continue
		}

		r.touch(ctx, dev, req.report)
		return dev, method, nil
	}

	return nil, "", ErrNotRegistered
}

// touch merges telemetry and the contact timestamp into the record.
// Concurrent polls for the same device may race here; last writer wins,
// which is self-correcting on the next poll cycle.
func (r *Resolver) touch(ctx context.Context, dev *Device, report StatusReport) {
	seenAt := r.now().UTC()
	if err := r.dir.UpdateStatus(ctx, dev.ID, report, seenAt); err != nil {
		log.Error().Err(err).Str("friendly_id", dev.FriendlyID).Msg("Failed to update device status")
		return
	}

	dev.LastSeenAt = &seenAt
	if report.BatteryVoltage != nil {
		dev.BatteryVoltage = report.BatteryVoltage
	}
	if report.FirmwareVersion != "" {
		dev.FirmwareVersion = report.FirmwareVersion
	}
	if report.RSSI != nil {
		dev.RSSI = report.RSSI
	}
}

func matchMACAndKey(ctx context.Context, r *Resolver, req request) (*Device, AuthMethod, error) {
	if req.mac == "" || req.apiKey == "" {
		return nil, "", nil
	}
	dev, err := r.dir.GetByMACAndKey(ctx, req.mac, req.apiKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("mac+key lookup: %w", err)
	}
	return dev, AuthMACAndKey, nil
}

func matchMACOnly(ctx context.Context, r *Resolver, req request) (*Device, AuthMethod, error) {
	if req.mac == "" {
		return nil, "", nil
	}
	dev, err := r.dir.GetByMAC(ctx, req.mac)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("mac lookup: %w", err)
	}

	// Credential rotation on re-pairing: the device presented a new key.
	if req.apiKey != "" && req.apiKey != dev.APIKey {
		if err := r.dir.UpdateAPIKey(ctx, dev.ID, req.apiKey); err != nil {
			log.Error().Err(err).Str("friendly_id", dev.FriendlyID).Msg("Failed to rotate API key")
		} else {
			dev.APIKey = req.apiKey
			log.Info().Str("friendly_id", dev.FriendlyID).Msg("Rotated API key for device")
		}
	}
	return dev, AuthMACOnly, nil
}

func matchKeyOnly(ctx context.Context, r *Resolver, req request) (*Device, AuthMethod, error) {
	if req.apiKey == "" {
		return nil, "", nil
	}
	dev, err := r.dir.GetByKey(ctx, req.apiKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("key lookup: %w", err)
	}

	// Hardware changed but kept its provisioned credential (factory reset,
	// board swap): adopt the presented MAC.
	if req.mac != "" && req.mac != dev.MACAddress {
		if err := r.dir.UpdateMAC(ctx, dev.ID, req.mac); err != nil {
			log.Error().Err(err).Str("friendly_id", dev.FriendlyID).Msg("Failed to update MAC address")
		} else {
			dev.MACAddress = req.mac
			log.Info().Str("friendly_id", dev.FriendlyID).Str("mac", req.mac).Msg("Updated MAC address for device")
		}
	}
	return dev, AuthKeyOnly, nil
}

func autoRegister(ctx context.Context, r *Resolver, req request) (*Device, AuthMethod, error) {
	if req.apiKey == "" {
		return nil, "", nil
	}

	mac := identity.PseudoMAC(req.apiKey)
	friendlyID := identity.FriendlyID(mac)

	dev := &Device{
		MACAddress:      mac,
		FriendlyID:      friendlyID,
		APIKey:          req.apiKey,
		Name:            "Device " + friendlyID[len(friendlyID)-6:],
		Screen:          DefaultScreen,
		Timezone:        DefaultTimezone,
		RefreshRate:     DefaultRefreshRate,
		FirmwareVersion: req.report.FirmwareVersion,
	}
	if err := r.dir.Create(ctx, dev); err != nil {
		return nil, "", fmt.Errorf("auto-register device: %w", err)
	}

	log.Info().Str("friendly_id", friendlyID).Str("mac", mac).Msg("Auto-registered device from credential")
	return dev, AuthAutoRegistered, nil
}
