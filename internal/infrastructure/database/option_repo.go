package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"translationgate/internal/ports/output"
)

var _ output.OptionStore = (*OptionRepository)(nil)

const (
	getOptionSQL = `SELECT value FROM options WHERE name = $1`
	setOptionSQL = `
INSERT INTO options (name, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
)

// OptionRepository implements output.OptionStore on PostgreSQL.
type OptionRepository struct {
	pool *pgxpool.Pool
}

func NewOptionRepository(pool *pgxpool.Pool) *OptionRepository {
	return &OptionRepository{pool: pool}
}

func (r *OptionRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := r.pool.QueryRow(ctx, getOptionSQL, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get option %s: %w", key, err)
	}
	return value, true, nil
}

func (r *OptionRepository) Set(ctx context.Context, key string, value []byte) error {
	if _, err := r.pool.Exec(ctx, setOptionSQL, key, string(value)); err != nil {
		return fmt.Errorf("set option %s: %w", key, err)
	}
	return nil
}
