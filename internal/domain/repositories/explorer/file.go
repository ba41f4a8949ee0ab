package explorer

import (
	"context"

	models "explorer/internal/domain/models/explorer"
)

// FileRepository defines data access operations for files
type FileRepository interface {
	Create(ctx context.Context, file *models.File) error
	GetByID(ctx context.Context, id int64) (*models.File, error)
	Update(ctx context.Context, file *models.File) error

	// DeleteByIDs removes the listed files
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)

	// DeleteByFolderIDs removes every file owned by any of the listed folders
	DeleteByFolderIDs(ctx context.Context, folderIDs []int64) (int64, error)

	ListAll(ctx context.Context, page *models.Pagination) ([]models.File, error)
	ListByFolder(ctx context.Context, folderID int64, page *models.Pagination) ([]models.File, error)

	SearchByName(ctx context.Context, query string, match models.MatchMode, page *models.Pagination) ([]models.File, error)
	CountByName(ctx context.Context, query string, match models.MatchMode) (int, error)
}
