package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"translationgate/internal/ports/output"
)

var _ output.OptionStore = (*SQLiteOptionRepository)(nil)

const (
	getSQLiteOptionSQL = `SELECT value FROM options WHERE name = ?`
	setSQLiteOptionSQL = `
INSERT INTO options (name, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

// SQLiteOptionRepository implements output.OptionStore on SQLite.
type SQLiteOptionRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteOptionRepository(db *sql.DB) *SQLiteOptionRepository {
	return &SQLiteOptionRepository{db: db, now: time.Now}
}

func (r *SQLiteOptionRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, getSQLiteOptionSQL, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get option %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (r *SQLiteOptionRepository) Set(ctx context.Context, key string, value []byte) error {
	if _, err := r.db.ExecContext(ctx, setSQLiteOptionSQL, key, string(value), r.now().UnixMilli()); err != nil {
		return fmt.Errorf("set option %s: %w", key, err)
	}
	return nil
}
