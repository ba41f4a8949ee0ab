package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"explorer/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxPoolConns = 25
	minPoolConns = 5
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Prefix  string
	Folders string
	Files   string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Prefix:  prefix,
		Folders: fmt.Sprintf("%sfolders", prefix),
		Files:   fmt.Sprintf("%sfiles", prefix),
	}
}

// CreateConnectionPool creates a pgx pool and pings it.
//
// Port 6543 is the usual PgBouncer transaction pooler port, which cannot hold
// prepared statements across transactions. For it the pool switches to
// QueryExecModeCacheDescribe unless the connection string already picked a
// mode via default_query_exec_mode.
//
// Table names are interpolated with fmt.Sprintf before the statement is
// prepared, so each prefix gets its own cached statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = maxPoolConns
	config.MinConns = minPoolConns

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// PoolStats reports the configured pool bounds for startup logging
func PoolStats(pool *pgxpool.Pool) (maxConns, minConns int32) {
	cfg := pool.Config()
	return cfg.MaxConns, cfg.MinConns
}

// GetExecutor returns the transaction stored in ctx, or the pool when there is none.
// Repositories call this so they join a transaction opened by TransactionManager.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
