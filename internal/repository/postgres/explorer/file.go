package explorer

import (
	"context"
	"fmt"
	"log/slog"

	"explorer/internal/domain"
	models "explorer/internal/domain/models/explorer"
	explorerRepo "explorer/internal/domain/repositories/explorer"
	"explorer/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const fileColumns = "id, name, folder_id, created_at, updated_at"

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *postgres.RepositoryConfig) explorerRepo.FileRepository {
	return &PostgresFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new file record
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, folder_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		file.Name,
		file.FolderID,
		file.CreatedAt,
		file.UpdatedAt,
	).Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt)

	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return domain.NotFound("Folder not found.")
		}
		return fmt.Errorf("create file: %w", err)
	}

	return nil
}

// GetByID retrieves a file by ID
func (r *PostgresFileRepository) GetByID(ctx context.Context, id int64) (*models.File, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, fileColumns, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	file, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.File])
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("file %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	return file, nil
}

// Update updates a file's name and folder
func (r *PostgresFileRepository) Update(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, folder_id = $2, updated_at = $3
		WHERE id = $4
	`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, file.Name, file.FolderID, file.UpdatedAt, file.ID)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return domain.NotFound("Folder not found.")
		}
		return fmt.Errorf("update file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %d: %w", file.ID, domain.ErrNotFound)
	}

	return nil
}

// DeleteByIDs deletes the listed files
func (r *PostgresFileRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ANY($1)`, r.tables.Files)
	return r.exec(ctx, "delete files", query, ids)
}

// DeleteByFolderIDs deletes every file owned by the listed folders
func (r *PostgresFileRepository) DeleteByFolderIDs(ctx context.Context, folderIDs []int64) (int64, error) {
	if len(folderIDs) == 0 {
		return 0, nil
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE folder_id = ANY($1)`, r.tables.Files)
	return r.exec(ctx, "delete files by folder", query, folderIDs)
}

// ListAll lists every file
func (r *PostgresFileRepository) ListAll(ctx context.Context, page *models.Pagination) ([]models.File, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY name ASC, id ASC`, fileColumns, r.tables.Files)
	query, args := withPagination(query, nil, page)
	return r.queryFiles(ctx, "list files", query, args...)
}

// ListByFolder lists files in a folder
func (r *PostgresFileRepository) ListByFolder(ctx context.Context, folderID int64, page *models.Pagination) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE folder_id = $1
		ORDER BY name ASC, id ASC
	`, fileColumns, r.tables.Files)
	query, args := withPagination(query, []any{folderID}, page)
	return r.queryFiles(ctx, "list folder files", query, args...)
}

// SearchByName finds files whose name matches the query, case-insensitively
func (r *PostgresFileRepository) SearchByName(ctx context.Context, q string, match models.MatchMode, page *models.Pagination) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY name ASC, id ASC
	`, fileColumns, r.tables.Files, nameFilter)
	query, args := withPagination(query, []any{namePattern(q, match)}, page)
	return r.queryFiles(ctx, "search files", query, args...)
}

// CountByName counts files matching the query
func (r *PostgresFileRepository) CountByName(ctx context.Context, q string, match models.MatchMode) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, r.tables.Files, nameFilter)
	return r.count(ctx, "count files by name", query, namePattern(q, match))
}

func (r *PostgresFileRepository) queryFiles(ctx context.Context, op, query string, args ...any) ([]models.File, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	files, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.File])
	if err != nil {
		return nil, fmt.Errorf("%s: scan: %w", op, err)
	}

	return files, nil
}

func (r *PostgresFileRepository) exec(ctx context.Context, op, query string, args ...any) (int64, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return result.RowsAffected(), nil
}

func (r *PostgresFileRepository) count(ctx context.Context, op, query string, args ...any) (int, error) {
	var n int
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
