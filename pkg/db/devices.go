package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkhaus/inkhaus/pkg/device"
)

// DeviceStore provides the device directory. It implements
// device.Directory for the resolver plus the lookups the dashboard needs.
type DeviceStore interface {
	device.Directory
	Get(ctx context.Context, id string) (*device.Device, error)
	GetByFriendlyID(ctx context.Context, friendlyID string) (*device.Device, error)
	List(ctx context.Context) ([]*device.Device, error)
	UpdateSettings(ctx context.Context, d *device.Device) error
	Delete(ctx context.Context, id string) error
}

// Devices returns the DeviceStore for this database.
func (db *DB) Devices() DeviceStore {
	return &deviceStore{db: db}
}

type deviceStore struct {
	db *DB
}

const deviceColumns = `id, mac_address, friendly_id, api_key, name, screen, timezone,
	refresh_rate, firmware_version, battery_voltage, rssi, last_seen_at, created_at, updated_at`

func scanDevice(row interface{ Scan(...any) error }) (*device.Device, error) {
	var (
		d        device.Device
		battery  sql.NullFloat64
		rssi     sql.NullInt64
		lastSeen sql.NullString
		created  string
		updated  string
	)
	err := row.Scan(&d.ID, &d.MACAddress, &d.FriendlyID, &d.APIKey, &d.Name, &d.Screen,
		&d.Timezone, &d.RefreshRate, &d.FirmwareVersion, &battery, &rssi, &lastSeen,
		&created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, device.ErrNotFound
		}
		return nil, err
	}

	if battery.Valid {
		v := battery.Float64
		d.BatteryVoltage = &v
	}
	if rssi.Valid {
		v := int(rssi.Int64)
		d.RSSI = &v
	}
	if lastSeen.Valid {
		t := parseTime(lastSeen.String)
		d.LastSeenAt = &t
	}
	d.CreatedAt = parseTime(created)
	d.UpdatedAt = parseTime(updated)
	return &d, nil
}

func (s *deviceStore) getWhere(ctx context.Context, where string, args ...any) (*device.Device, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+deviceColumns+` FROM devices WHERE `+where, args...)
	return scanDevice(row)
}

func (s *deviceStore) Get(ctx context.Context, id string) (*device.Device, error) {
	return s.getWhere(ctx, `id = ?`, id)
}

func (s *deviceStore) GetByFriendlyID(ctx context.Context, friendlyID string) (*device.Device, error) {
	return s.getWhere(ctx, `friendly_id = ?`, friendlyID)
}

func (s *deviceStore) GetByMAC(ctx context.Context, mac string) (*device.Device, error) {
	return s.getWhere(ctx, `mac_address = ?`, mac)
}

func (s *deviceStore) GetByKey(ctx context.Context, apiKey string) (*device.Device, error) {
	return s.getWhere(ctx, `api_key = ?`, apiKey)
}

func (s *deviceStore) GetByMACAndKey(ctx context.Context, mac, apiKey string) (*device.Device, error) {
	return s.getWhere(ctx, `mac_address = ? AND api_key = ?`, mac, apiKey)
}

func (s *deviceStore) List(ctx context.Context) ([]*device.Device, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+deviceColumns+` FROM devices ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	defer rows.Close()

	var devices []*device.Device
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

func (s *deviceStore) Create(ctx context.Context, d *device.Device) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now

	var battery any
	if d.BatteryVoltage != nil {
		battery = *d.BatteryVoltage
	}
	var rssi any
	if d.RSSI != nil {
		rssi = *d.RSSI
	}
	var lastSeen any
	if d.LastSeenAt != nil {
		lastSeen = formatTime(*d.LastSeenAt)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO devices (id, mac_address, friendly_id, api_key, name, screen, timezone,
			refresh_rate, firmware_version, battery_voltage, rssi, last_seen_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, d.ID, d.MACAddress, d.FriendlyID, d.APIKey, d.Name, d.Screen, d.Timezone,
		d.RefreshRate, d.FirmwareVersion, battery, rssi, lastSeen,
		formatTime(now), formatTime(now))
	if err != nil {
		return fmt.Errorf("failed to create device: %w", err)
	}
	return nil
}

func (s *deviceStore) UpdateAPIKey(ctx context.Context, id, apiKey string) error {
	return s.exec(ctx, `UPDATE devices SET api_key = ?, updated_at = ? WHERE id = ?`,
		apiKey, formatTime(time.Now()), id)
}

func (s *deviceStore) UpdateMAC(ctx context.Context, id, mac string) error {
	return s.exec(ctx, `UPDATE devices SET mac_address = ?, updated_at = ? WHERE id = ?`,
		mac, formatTime(time.Now()), id)
}

// UpdateStatus merges supplied telemetry into the record and stamps
// last_seen_at. Absent report fields leave stored values untouched.
func (s *deviceStore) UpdateStatus(ctx context.Context, id string, report device.StatusReport, seenAt time.Time) error {
	query := `UPDATE devices SET last_seen_at = ?, updated_at = ?`
	args := []any{formatTime(seenAt), formatTime(seenAt)}

	if report.BatteryVoltage != nil {
		query += `, battery_voltage = ?`
		args = append(args, *report.BatteryVoltage)
	}
	if report.FirmwareVersion != "" {
		query += `, firmware_version = ?`
		args = append(args, report.FirmwareVersion)
	}
	if report.RSSI != nil {
		query += `, rssi = ?`
		args = append(args, *report.RSSI)
	}

	query += ` WHERE id = ?`
	args = append(args, id)
	return s.exec(ctx, query, args...)
}

// UpdateSettings persists the user-editable device fields.
func (s *deviceStore) UpdateSettings(ctx context.Context, d *device.Device) error {
	now := time.Now().UTC()
	err := s.exec(ctx, `
		UPDATE devices SET name = ?, screen = ?, timezone = ?, refresh_rate = ?,
			firmware_version = ?, updated_at = ?
		WHERE id = ?
	`, d.Name, d.Screen, d.Timezone, d.RefreshRate, d.FirmwareVersion, formatTime(now), d.ID)
	if err != nil {
		return err
	}
	d.UpdatedAt = now
	return nil
}

func (s *deviceStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM devices WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete device: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return device.ErrNotFound
	}
	return nil
}

func (s *deviceStore) exec(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("device update failed: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return device.ErrNotFound
	}
	return nil
}
