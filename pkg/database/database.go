package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ Tx = (*Database)(nil)

// Database is the handle repositories receive. Every call borrows a pooled
// connection for exactly one statement and returns it before the call ends.
type Database struct {
	p *pgxpool.Pool
}

func (db *Database) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return db.p.Exec(ctx, sql, arguments...)
}

func (db *Database) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return db.p.Query(ctx, sql, args...)
}

func (db *Database) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return db.p.QueryRow(ctx, sql, args...)
}

func (db *Database) Ping(ctx context.Context) error {
	return db.p.Ping(ctx)
}

// Pool returns the underlying pool, e.g. for database/sql adapters.
func (db *Database) Pool() *pgxpool.Pool {
	return db.p
}

func (db *Database) Close() {
	db.p.Close()
}

func NewDatabase(pool *pgxpool.Pool) *Database {
	return &Database{p: pool}
}
