package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the folder and file tables and their indexes if missing.
//
// There is deliberately no ON DELETE CASCADE: subtree deletion is computed by
// the folder service, and a stray delete of a parent must fail on the FK
// instead of silently taking files with it.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				name TEXT NOT NULL,
				parent_id BIGINT REFERENCES %s(id),
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`, tables.Folders, tables.Folders),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				name TEXT NOT NULL,
				folder_id BIGINT NOT NULL REFERENCES %s(id),
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`, tables.Files, tables.Folders),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%sfolders_parent ON %s(parent_id)`, tables.Prefix, tables.Folders),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%sfolders_lower_name ON %s(lower(name) text_pattern_ops)`, tables.Prefix, tables.Folders),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%sfiles_folder ON %s(folder_id)`, tables.Prefix, tables.Files),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%sfiles_lower_name ON %s(lower(name) text_pattern_ops)`, tables.Prefix, tables.Files),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// DropTables drops files then folders (FK order)
func DropTables(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range []string{tables.Files, tables.Folders} {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}

// ClearData removes every row but keeps the schema
func ClearData(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	_, err := pool.Exec(ctx, fmt.Sprintf("TRUNCATE %s, %s RESTART IDENTITY", tables.Files, tables.Folders))
	if err != nil {
		return fmt.Errorf("clear data: %w", err)
	}
	return nil
}
