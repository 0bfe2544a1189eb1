package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/gnawa-tickets/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const kvSchema = `CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PGStorage keeps key-value pairs in a single Postgres table.
type PGStorage struct {
	db *pgxpool.Pool
}

func NewPGStorage(db *pgxpool.Pool) *PGStorage {
	return &PGStorage{db: db}
}

func (r *PGStorage) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, kvSchema)
	return err
}

func (r *PGStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	if err := r.db.QueryRow(ctx, `SELECT value FROM kv_store WHERE key=$1`, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *PGStorage) Set(ctx context.Context, key, value string) error {
	_, err := r.db.Exec(ctx, `INSERT INTO kv_store (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`, key, value)
	return err
}

func (r *PGStorage) Delete(ctx context.Context, key string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM kv_store WHERE key=$1`, key)
	return err
}

var _ storage.Storage = (*PGStorage)(nil)
