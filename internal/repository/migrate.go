package repository

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

// Migrate creates the task and task_user tables if they don't exist.
func Migrate(ctx context.Context, pgPool *pgxpool.Pool) error {
	// Without arguments pgx uses the simple protocol,
	// which accepts several statements at once.
	_, err := pgPool.Exec(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
