// Package localstore keeps small client-side state (the auth token pair)
// in a sqlite database so a session survives CLI restarts.
package localstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dkovalev7/scentshop/internal/client/models"
	"github.com/dkovalev7/scentshop/internal/dbx"

	_ "modernc.org/sqlite"
)

const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
)

// Store is a key/value table with typed helpers for the token pair.
type Store struct {
	db dbx.DBTX
}

// InitDatabase opens (creating if needed) the client database at dsn and
// ensures the schema exists.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS metadata (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		);
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("schema init error: %w", err)
	}

	return db, nil
}

func New(db dbx.DBTX) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}

// SaveTokens persists the token pair.
func (s *Store) SaveTokens(ctx context.Context, pair models.TokenPair) error {
	if err := s.Set(ctx, keyAccessToken, []byte(pair.AccessToken)); err != nil {
		return err
	}
	return s.Set(ctx, keyRefreshToken, []byte(pair.RefreshToken))
}

// LoadTokens returns the persisted token pair; both fields are empty when
// nothing was saved.
func (s *Store) LoadTokens(ctx context.Context) (models.TokenPair, error) {
	access, err := s.Get(ctx, keyAccessToken)
	if err != nil {
		return models.TokenPair{}, err
	}
	refresh, err := s.Get(ctx, keyRefreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}
	return models.TokenPair{AccessToken: string(access), RefreshToken: string(refresh)}, nil
}

// ClearTokens removes the persisted pair.
func (s *Store) ClearTokens(ctx context.Context) error {
	if err := s.Delete(ctx, keyAccessToken); err != nil {
		return err
	}
	return s.Delete(ctx, keyRefreshToken)
}
