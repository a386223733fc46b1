package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrSlotNotFound is returned by GetSlot when nothing was ever written under the key.
var ErrSlotNotFound = errors.New("slot not found")

// Slot is one named value mirrored to disk. Values are opaque to the store;
// callers decide the encoding.
type Slot struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

func (s *Store) GetSlot(key string) ([]byte, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get slot %q: %w", key, ErrSlotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get slot %q: %w", key, err)
	}
	return []byte(value), nil
}

// PutSlot replaces the value stored under key.
func (s *Store) PutSlot(key string, value []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), now,
	)
	if err != nil {
		return fmt.Errorf("put slot %q: %w", key, err)
	}
	return nil
}

func (s *Store) ListSlots() ([]Slot, error) {
	rows, err := s.db.Query(`SELECT key, value, updated_at FROM slots ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var slots []Slot
	for rows.Next() {
		var sl Slot
		var value, updatedAt string
		if err := rows.Scan(&sl.Key, &value, &updatedAt); err != nil {
			return nil, err
		}
		sl.Value = []byte(value)
		sl.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		slots = append(slots, sl)
	}
	return slots, rows.Err()
}
