package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/transconnection/internal/client/storage"
)

var _ storage.KeyValueStore = (*Storage)(nil)

// Get decodes the JSON value stored under key into dst
func (s *Storage) Get(ctx context.Context, key string, dst any) error {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrKeyNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: read %q: %w", storage.ErrStorageFailure, key, err)
	}

	if err := json.Unmarshal([]byte(value), dst); err != nil {
		return fmt.Errorf("%w: decode %q: %w", storage.ErrStorageFailure, key, err)
	}

	return nil
}

// Set upserts value under key
func (s *Storage) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for %q: %w", key, err)
	}

	query := `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, key, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("%w: write %q: %w", storage.ErrStorageFailure, key, err)
	}

	return nil
}

// Remove deletes key; missing keys are ignored
func (s *Storage) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("%w: remove %q: %w", storage.ErrStorageFailure, key, err)
	}
	return nil
}
