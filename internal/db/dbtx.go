package db

import (
	"context"
	"database/sql"
)

// Querier is the read half of DBTX.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DBTX is satisfied by both *sql.DB and *sql.Tx. Repositories take a DBTX
// so the same repository code runs standalone or inside a unit of work.
type DBTX interface {
	Querier
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
