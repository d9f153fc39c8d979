package database

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Querier is the read-only slice of the pool the query executor depends on.
// *pgxpool.Pool satisfies it; tests substitute a fake. The pipeline never
// issues DDL or writes, so Query is the whole contract.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

var _ Querier = (*DB)(nil)
