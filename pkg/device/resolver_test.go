package device

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/inkhaus/inkhaus/pkg/identity"
)

// fakeDirectory is an in-memory Directory for resolver tests.
type fakeDirectory struct {
	devices      map[string]*Device // keyed by ID
	nextID       int
	statusErr    error
	statusCalls  int
	lastSeenAt   time.Time
	lastReport   StatusReport
	rotatedKeys  []string
	adoptedMACs  []string
	createdCount int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{devices: map[string]*Device{}}
}

func (f *fakeDirectory) add(d *Device) *Device {
	f.nextID++
	d.ID = string(rune('a' + f.nextID - 1))
	f.devices[d.ID] = d
	return d
}

func (f *fakeDirectory) GetByMACAndKey(_ context.Context, mac, apiKey string) (*Device, error) {
	for _, d := range f.devices {
		if d.MACAddress == mac && d.APIKey == apiKey {
			cp := *d
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeDirectory) GetByMAC(_ context.Context, mac string) (*Device, error) {
	for _, d := range f.devices {
		if d.MACAddress == mac {
			cp := *d
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeDirectory) GetByKey(_ context.Context, apiKey string) (*Device, error) {
	for _, d := range f.devices {
		if d.APIKey == apiKey {
			cp := *d
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeDirectory) UpdateAPIKey(_ context.Context, id, apiKey string) error {
	f.devices[id].APIKey = apiKey
	f.rotatedKeys = append(f.rotatedKeys, apiKey)
	return nil
}

func (f *fakeDirectory) UpdateMAC(_ context.Context, id, mac string) error {
	f.devices[id].MACAddress = mac
	f.adoptedMACs = append(f.adoptedMACs, mac)
	return nil
}

func (f *fakeDirectory) Create(_ context.Context, d *Device) error {
	f.createdCount++
	f.add(d)
	return nil
}

func (f *fakeDirectory) UpdateStatus(_ context.Context, id string, report StatusReport, seenAt time.Time) error {
	f.statusCalls++
	if f.statusErr != nil {
		return f.statusErr
	}
	f.lastReport = report
	f.lastSeenAt = seenAt
	return nil
}

const (
	testMAC = "AA:BB:CC:DD:EE:FF"
	testKey = "test-api-key-0123456789abcdef"
)

func seeded(f *fakeDirectory) *Device {
	return f.add(&Device{
		MACAddress:  testMAC,
		FriendlyID:  "TRMNL_ABC123",
		APIKey:      testKey,
		Name:        "Kitchen",
		Screen:      DefaultScreen,
		Timezone:    "UTC",
		RefreshRate: 300,
	})
}

func TestResolve_MACAndKey(t *testing.T) {
	dir := newFakeDirectory()
	seeded(dir)

	dev, method, err := NewResolver(dir).Resolve(context.Background(), testMAC, testKey, StatusReport{})
	if err != nil {
		t.Fatal(err)
	}
	if method != AuthMACAndKey {
		t.Errorf("method = %q, want %q", method, AuthMACAndKey)
	}
	if dev.FriendlyID != "TRMNL_ABC123" {
		t.Errorf("resolved wrong device: %q", dev.FriendlyID)
	}
	if dir.statusCalls != 1 {
		t.Errorf("status update calls = %d, want 1", dir.statusCalls)
	}
}

func TestResolve_MACOnly_NormalizesInput(t *testing.T) {
	dir := newFakeDirectory()
	seeded(dir)

	dev, method, err := NewResolver(dir).Resolve(context.Background(), "aa-bb-cc-dd-ee-ff", "", StatusReport{})
	if err != nil {
		t.Fatal(err)
	}
	if method != AuthMACOnly {
		t.Errorf("method = %q, want %q", method, AuthMACOnly)
	}
	if dev.LastSeenAt == nil {
		t.Error("LastSeenAt not stamped after resolution")
	}
}

func TestResolve_MACOnly_RotatesPresentedKey(t *testing.T) {
	dir := newFakeDirectory()
	d := seeded(dir)

	dev, method, err := NewResolver(dir).Resolve(context.Background(), testMAC, "a-brand-new-key", StatusReport{})
	if err != nil {
		t.Fatal(err)
	}
	// mac+key missed (key differs), mac-only hit and rotated the credential.
	if method != AuthMACOnly {
		t.Errorf("method = %q, want %q", method, AuthMACOnly)
	}
	if dev.APIKey != "a-brand-new-key" {
		t.Errorf("returned device key = %q, want rotated key", dev.APIKey)
	}
	if dir.devices[d.ID].APIKey != "a-brand-new-key" {
		t.Error("stored key not rotated")
	}
}

func TestResolve_KeyOnly_AdoptsNewMAC(t *testing.T) {
	dir := newFakeDirectory()
	d := seeded(dir)

	dev, method, err := NewResolver(dir).Resolve(context.Background(), "11:22:33:44:55:66", testKey, StatusReport{})
	if err != nil {
		t.Fatal(err)
	}
	if method != AuthKeyOnly {
		t.Errorf("method = %q, want %q", method, AuthKeyOnly)
	}
	if dev.MACAddress != "11:22:33:44:55:66" {
		t.Errorf("device MAC = %q, want adopted MAC", dev.MACAddress)
	}
	if dir.devices[d.ID].MACAddress != "11:22:33:44:55:66" {
		t.Error("stored MAC not updated")
	}
}

func TestResolve_KeyOnly_IgnoresMalformedMAC(t *testing.T) {
	dir := newFakeDirectory()
	seeded(dir)

	dev, method, err := NewResolver(dir).Resolve(context.Background(), "not-a-mac", testKey, StatusReport{})
	if err != nil {
		t.Fatal(err)
	}
	if method != AuthKeyOnly {
		t.Errorf("method = %q, want %q", method, AuthKeyOnly)
	}
	if dev.MACAddress != testMAC {
		t.Errorf("malformed MAC should not be adopted, got %q", dev.MACAddress)
	}
}

func TestResolve_AutoRegister(t *testing.T) {
	dir := newFakeDirectory()

	dev, method, err := NewResolver(dir).Resolve(context.Background(), "", "fresh-credential", StatusReport{FirmwareVersion: "1.4.2"})
	if err != nil {
		t.Fatal(err)
	}
	if method != AuthAutoRegistered {
		t.Errorf("method = %q, want %q", method, AuthAutoRegistered)
	}
	if dev.MACAddress != identity.PseudoMAC("fresh-credential") {
		t.Errorf("pseudo MAC = %q, want deterministic derivation", dev.MACAddress)
	}
	if dev.FriendlyID != identity.FriendlyID(dev.MACAddress) {
		t.Error("friendly id not derived from pseudo MAC")
	}
	if dev.RefreshRate != DefaultRefreshRate || dev.Timezone != DefaultTimezone {
		t.Error("auto-registered device missing defaults")
	}
	if dev.FirmwareVersion != "1.4.2" {
		t.Errorf("firmware = %q, want telemetry value", dev.FirmwareVersion)
	}

	// Same credential again resolves to the same identity without a second row.
	dev2, method2, err := NewResolver(dir).Resolve(context.Background(), "", "fresh-credential", StatusReport{})
	if err != nil {
		t.Fatal(err)
	}
	if method2 != AuthKeyOnly {
		t.Errorf("second resolve method = %q, want %q", method2, AuthKeyOnly)
	}
	if dev2.FriendlyID != dev.FriendlyID {
		t.Error("friendly id not stable across repeated auto-provisioning")
	}
	if dir.createdCount != 1 {
		t.Errorf("created %d devices, want 1", dir.createdCount)
	}
}

func TestResolve_NotRegistered(t *testing.T) {
	dir := newFakeDirectory()

	_, _, err := NewResolver(dir).Resolve(context.Background(), testMAC, "", StatusReport{})
	if !errors.Is(err, ErrNotRegistered) {
		t.Errorf("err = %v, want ErrNotRegistered", err)
	}
	if dir.statusCalls != 0 {
		t.Error("status should not be touched on failed resolution")
	}
}

func TestResolve_StatusWriteFailureIsSwallowed(t *testing.T) {
	dir := newFakeDirectory()
	seeded(dir)
	dir.statusErr = errors.New("connection reset")

	dev, _, err := NewResolver(dir).Resolve(context.Background(), testMAC, testKey, StatusReport{})
	if err != nil {
		t.Fatalf("resolution should survive a status write failure, got %v", err)
	}
	if dev.LastSeenAt != nil {
		t.Error("LastSeenAt should not be stamped when the write failed")
	}
}

func TestResolve_PartialTelemetryMerge(t *testing.T) {
	dir := newFakeDirectory()
	volts := 3.91
	stored := seeded(dir)
	rssi := -67
	stored.RSSI = &rssi

	dev, _, err := NewResolver(dir).Resolve(context.Background(), testMAC, "", StatusReport{BatteryVoltage: &volts})
	if err != nil {
		t.Fatal(err)
	}
	if dev.BatteryVoltage == nil || *dev.BatteryVoltage != volts {
		t.Error("supplied battery voltage not merged")
	}
	if dev.RSSI == nil || *dev.RSSI != -67 {
		t.Error("absent RSSI must leave stored value untouched")
	}
	if dir.lastReport.BatteryVoltage == nil {
		t.Error("report not forwarded to directory")
	}
}
