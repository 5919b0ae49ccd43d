package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// SchemaSQL renders the DDL for the given table prefix
func SchemaSQL(prefix string) string {
	return strings.ReplaceAll(schemaSQL, "{prefix}", prefix)
}

// EnsureSchema creates any missing tables and indexes. Statements are
// idempotent so it is safe to run on every start.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, prefix string) error {
	if _, err := pool.Exec(ctx, SchemaSQL(prefix)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
