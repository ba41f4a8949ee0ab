package explorer

import (
	"context"

	models "explorer/internal/domain/models/explorer"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create inserts a folder and fills in ID and timestamps
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID; wraps domain.ErrNotFound when missing
	GetByID(ctx context.Context, id int64) (*models.Folder, error)

	// GetParentID returns the parent of a folder (nil for a root)
	GetParentID(ctx context.Context, id int64) (*int64, error)

	// Update writes name and parent_id
	Update(ctx context.Context, folder *models.Folder) error

	// DeleteByIDs removes all listed folders in one statement
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)

	// ListAll lists every folder ordered by name
	ListAll(ctx context.Context, page *models.Pagination) ([]models.Folder, error)

	// ListRoots lists parent-less folders ordered by name
	ListRoots(ctx context.Context, page *models.Pagination) ([]models.Folder, error)

	// CountRoots counts parent-less folders
	CountRoots(ctx context.Context) (int, error)

	// ListChildren lists immediate child folders ordered by name
	ListChildren(ctx context.Context, parentID int64, page *models.Pagination) ([]models.Folder, error)

	// ListNodes returns the {id, parentId} relation for the whole hierarchy
	ListNodes(ctx context.Context) ([]models.FolderNode, error)

	// SearchByName finds folders whose name matches query (case-insensitive)
	SearchByName(ctx context.Context, query string, match models.MatchMode, page *models.Pagination) ([]models.Folder, error)

	// CountByName counts all folders matching query
	CountByName(ctx context.Context, query string, match models.MatchMode) (int, error)
}
