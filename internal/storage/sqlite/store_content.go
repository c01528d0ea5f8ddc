package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/verdantworks/growline/internal/storage"
)

// ContentStore methods

// PutContentPack stores a raw content pack document under its name.
func (s *Store) PutContentPack(ctx context.Context, name string, raw []byte, updatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if name == "" {
		return fmt.Errorf("content pack name is required")
	}
	if len(raw) == 0 {
		return fmt.Errorf("content pack document is required")
	}

	const query = `
INSERT INTO content_packs (name, raw, updated_at_ms)
VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
    raw = excluded.raw,
    updated_at_ms = excluded.updated_at_ms`

	_, err := s.sqlDB.ExecContext(ctx, query, name, raw, toMillis(updatedAt))
	if err != nil {
		return fmt.Errorf("put content pack: %w", err)
	}
	return nil
}

// GetContentPack loads a raw content pack document by name.
func (s *Store) GetContentPack(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	var raw []byte
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT raw FROM content_packs WHERE name = ?`, name,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get content pack: %w", err)
	}
	return raw, nil
}

var _ storage.ContentStore = (*Store)(nil)
