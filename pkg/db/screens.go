package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkhaus/inkhaus/pkg/screen"
)

// ErrScreenNotFound indicates a screen lookup matched nothing.
var ErrScreenNotFound = errors.New("screen not found")

// ScreenStore provides screen template CRUD.
type ScreenStore interface {
	Get(ctx context.Context, id string) (*screen.Screen, error)
	ListForDevice(ctx context.Context, deviceID string) ([]*screen.Screen, error)
	// ActiveForDevice returns the current active screen for a device:
	// the most recently created one among those marked active, or
	// ErrScreenNotFound when none is active.
	ActiveForDevice(ctx context.Context, deviceID string) (*screen.Screen, error)
	Create(ctx context.Context, s *screen.Screen) error
	Update(ctx context.Context, s *screen.Screen) error
	Delete(ctx context.Context, id string) error
}

// Screens returns the ScreenStore for this database.
func (db *DB) Screens() ScreenStore {
	return &screenStore{db: db}
}

type screenStore struct {
	db *DB
}

const screenColumns = `id, device_id, name, type, config, is_active, created_at, updated_at`

func scanScreen(row interface{ Scan(...any) error }) (*screen.Screen, error) {
	var (
		s         screen.Screen
		configRaw string
		active    int
		created   string
		updated   string
	)
	err := row.Scan(&s.ID, &s.DeviceID, &s.Name, &s.Type, &configRaw, &active, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScreenNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal([]byte(configRaw), &s.Config); err != nil {
		return nil, fmt.Errorf("corrupt screen config for %s: %w", s.ID, err)
	}
	s.IsActive = active != 0
	s.CreatedAt = parseTime(created)
	s.UpdatedAt = parseTime(updated)
	return &s, nil
}

func (st *screenStore) Get(ctx context.Context, id string) (*screen.Screen, error) {
	row := st.db.QueryRowContext(ctx, `SELECT `+screenColumns+` FROM screens WHERE id = ?`, id)
	return scanScreen(row)
}

func (st *screenStore) ListForDevice(ctx context.Context, deviceID string) ([]*screen.Screen, error) {
	rows, err := st.db.QueryContext(ctx,
		`SELECT `+screenColumns+` FROM screens WHERE device_id = ? ORDER BY created_at DESC`, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list screens: %w", err)
	}
	defer rows.Close()

	var screens []*screen.Screen
	for rows.Next() {
		s, err := scanScreen(rows)
		if err != nil {
			return nil, err
		}
		screens = append(screens, s)
	}
	return screens, rows.Err()
}

func (st *screenStore) ActiveForDevice(ctx context.Context, deviceID string) (*screen.Screen, error) {
	row := st.db.QueryRowContext(ctx, `
		SELECT `+screenColumns+` FROM screens
		WHERE device_id = ? AND is_active = 1
		ORDER BY created_at DESC
		LIMIT 1
	`, deviceID)
	return scanScreen(row)
}

func (st *screenStore) Create(ctx context.Context, s *screen.Screen) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	config, err := marshalConfig(s.Config)
	if err != nil {
		return err
	}

	_, err = st.db.ExecContext(ctx, `
		INSERT INTO screens (id, device_id, name, type, config, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.DeviceID, s.Name, string(s.Type), config, boolInt(s.IsActive),
		formatTime(now), formatTime(now))
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	return nil
}

func (st *screenStore) Update(ctx context.Context, s *screen.Screen) error {
	config, err := marshalConfig(s.Config)
	if err != nil {
		return err
	}
	s.UpdatedAt = time.Now().UTC()

	res, err := st.db.ExecContext(ctx, `
		UPDATE screens SET name = ?, type = ?, config = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`, s.Name, string(s.Type), config, boolInt(s.IsActive), formatTime(s.UpdatedAt), s.ID)
	if err != nil {
		return fmt.Errorf("failed to update screen: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrScreenNotFound
	}
	return nil
}

func (st *screenStore) Delete(ctx context.Context, id string) error {
	res, err := st.db.ExecContext(ctx, `DELETE FROM screens WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete screen: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrScreenNotFound
	}
	return nil
}

func marshalConfig(config map[string]any) (string, error) {
	if config == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("failed to marshal screen config: %w", err)
	}
	return string(raw), nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
