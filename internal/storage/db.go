package storage

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

const getSlot = `SELECT value FROM slots WHERE key = ?`

func (q *Queries) GetSlot(ctx context.Context, key string) (string, error) {
	row := q.db.QueryRowContext(ctx, getSlot, key)
	var value string
	err := row.Scan(&value)
	return value, err
}

const upsertSlot = `INSERT INTO slots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

func (q *Queries) UpsertSlot(ctx context.Context, key, value string) error {
	_, err := q.db.ExecContext(ctx, upsertSlot, key, value)
	return err
}

const deleteSlot = `DELETE FROM slots WHERE key = ?`

func (q *Queries) DeleteSlot(ctx context.Context, key string) error {
	_, err := q.db.ExecContext(ctx, deleteSlot, key)
	return err
}
