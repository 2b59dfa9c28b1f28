package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LogEntry is one ingested device log line.
type LogEntry struct {
	ID         string         `json:"id"`
	DeviceID   string         `json:"device_id"`
	FriendlyID string         `json:"friendly_id"`
	Level      string         `json:"level"`
	Message    string         `json:"message"`
	LogData    map[string]any `json:"log_data"`
	CreatedAt  time.Time      `json:"created_at"`
}

// LogStore records and queries device log entries.
type LogStore interface {
	Insert(ctx context.Context, e *LogEntry) error
	ListForDevice(ctx context.Context, deviceID string, limit int) ([]*LogEntry, error)
}

// Logs returns the LogStore for this database.
func (db *DB) Logs() LogStore {
	return &logStore{db: db}
}

type logStore struct {
	db *DB
}

func (s *logStore) Insert(ctx context.Context, e *LogEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Level == "" {
		e.Level = "info"
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	data := "{}"
	if e.LogData != nil {
		raw, err := json.Marshal(e.LogData)
		if err != nil {
			return fmt.Errorf("failed to marshal log data: %w", err)
		}
		data = string(raw)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO logs (id, device_id, friendly_id, level, message, log_data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.DeviceID, e.FriendlyID, e.Level, e.Message, data, formatTime(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert log entry: %w", err)
	}
	return nil
}

func (s *logStore) ListForDevice(ctx context.Context, deviceID string, limit int) ([]*LogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, device_id, friendly_id, level, message, log_data, created_at
		FROM logs WHERE device_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, deviceID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	defer rows.Close()

	var entries []*LogEntry
	for rows.Next() {
		var (
			e       LogEntry
			data    string
			created string
		)
		if err := rows.Scan(&e.ID, &e.DeviceID, &e.FriendlyID, &e.Level, &e.Message, &data, &created); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(data), &e.LogData); err != nil {
			return nil, fmt.Errorf("corrupt log data for %s: %w", e.ID, err)
		}
		e.CreatedAt = parseTime(created)
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
