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

const folderColumns = "id, name, parent_id, created_at, updated_at"

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *postgres.RepositoryConfig) explorerRepo.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		folder.Name,
		folder.ParentID,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return domain.NotFound("Parent folder not found.")
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id int64) (*models.Folder, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, folderColumns, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("get folder: %w", err)
	}

	folder, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Folder])
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return folder, nil
}

// GetParentID returns only the parent link, for ancestor walks
func (r *PostgresFolderRepository) GetParentID(ctx context.Context, id int64) (*int64, error) {
	query := fmt.Sprintf(`SELECT parent_id FROM %s WHERE id = $1`, r.tables.Folders)

	var parentID *int64
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, id).Scan(&parentID); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder parent: %w", err)
	}

	return parentID, nil
}

// Update updates a folder's name and parent
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, parent_id = $2, updated_at = $3
		WHERE id = $4
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		folder.Name,
		folder.ParentID,
		folder.UpdatedAt,
		folder.ID,
	)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return domain.NotFound("Parent folder not found.")
		}
		return fmt.Errorf("update folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %d: %w", folder.ID, domain.ErrNotFound)
	}

	return nil
}

// DeleteByIDs deletes all listed folders in a single statement. Parent and
// child rows may both be in ids; the FK is checked at the end of the statement.
func (r *PostgresFolderRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ANY($1)`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, ids)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return 0, &domain.ConflictError{Message: "folder still has children outside the deleted set"}
		}
		return 0, fmt.Errorf("delete folders: %w", err)
	}

	return result.RowsAffected(), nil
}

// ListAll lists every folder
func (r *PostgresFolderRepository) ListAll(ctx context.Context, page *models.Pagination) ([]models.Folder, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY name ASC, id ASC`, folderColumns, r.tables.Folders)
	query, args := withPagination(query, nil, page)
	return r.queryFolders(ctx, "list folders", query, args...)
}

// ListRoots lists folders with no parent
func (r *PostgresFolderRepository) ListRoots(ctx context.Context, page *models.Pagination) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE parent_id IS NULL
		ORDER BY name ASC, id ASC
	`, folderColumns, r.tables.Folders)
	query, args := withPagination(query, nil, page)
	return r.queryFolders(ctx, "list root folders", query, args...)
}

// CountRoots counts folders with no parent
func (r *PostgresFolderRepository) CountRoots(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE parent_id IS NULL`, r.tables.Folders)
	return r.count(ctx, "count root folders", query)
}

// ListChildren lists immediate child folders
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, parentID int64, page *models.Pagination) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE parent_id = $1
		ORDER BY name ASC, id ASC
	`, folderColumns, r.tables.Folders)
	query, args := withPagination(query, []any{parentID}, page)
	return r.queryFolders(ctx, "list folder children", query, args...)
}

// ListNodes returns the id/parent relation of the whole hierarchy
func (r *PostgresFolderRepository) ListNodes(ctx context.Context) ([]models.FolderNode, error) {
	query := fmt.Sprintf(`SELECT id, parent_id FROM %s`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list folder nodes: %w", err)
	}

	nodes, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.FolderNode])
	if err != nil {
		return nil, fmt.Errorf("scan folder nodes: %w", err)
	}

	return nodes, nil
}

// SearchByName finds folders whose name matches the query, case-insensitively
func (r *PostgresFolderRepository) SearchByName(ctx context.Context, q string, match models.MatchMode, page *models.Pagination) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY name ASC, id ASC
	`, folderColumns, r.tables.Folders, nameFilter)
	query, args := withPagination(query, []any{namePattern(q, match)}, page)
	return r.queryFolders(ctx, "search folders", query, args...)
}

// CountByName counts folders matching the query
func (r *PostgresFolderRepository) CountByName(ctx context.Context, q string, match models.MatchMode) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, r.tables.Folders, nameFilter)
	return r.count(ctx, "count folders by name", query, namePattern(q, match))
}

func (r *PostgresFolderRepository) queryFolders(ctx context.Context, op, query string, args ...any) ([]models.Folder, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	folders, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Folder])
	if err != nil {
		return nil, fmt.Errorf("%s: scan: %w", op, err)
	}

	return folders, nil
}

func (r *PostgresFolderRepository) count(ctx context.Context, op, query string, args ...any) (int, error) {
	var n int
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
