package repositories

import (
	"context"
	"database/sql"
)

// Querier is the subset of sql.DB and sql.Tx the insert paths need, so
// the same statement can run standalone or inside the mission-creation
// transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
