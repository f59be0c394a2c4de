package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/medusa-ai/forge/internal/errors"
)

// GetValue returns the value stored under key.
// The boolean is false when the key is absent.
func GetValue(ctx context.Context, db *sql.DB, key string) (string, bool, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.NewInternal(err)
	}
	return value, true, nil
}

// SetValue replaces the value stored under key.
func SetValue(ctx context.Context, db *sql.DB, key, value string) error {
	query := `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := db.ExecContext(ctx, query, key, value, time.Now().UnixMilli()); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// DeleteValue removes key. Removing an absent key is not an error.
func DeleteValue(ctx context.Context, db *sql.DB, key string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// KV adapts a database handle to the history.Backend interface.
type KV struct {
	DB *sql.DB
}

// Get implements history.Backend.
func (k KV) Get(ctx context.Context, key string) (string, bool, error) {
	return GetValue(ctx, k.DB, key)
}

// Set implements history.Backend.
func (k KV) Set(ctx context.Context, key, value string) error {
	return SetValue(ctx, k.DB, key, value)
}

// Remove implements history.Backend.
func (k KV) Remove(ctx context.Context, key string) error {
	return DeleteValue(ctx, k.DB, key)
}
