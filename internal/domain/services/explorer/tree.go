package explorer

import (
	"context"

	models "explorer/internal/domain/models/explorer"
)

// TreeService builds nested views of the hierarchy
type TreeService interface {
	// GetTree returns the whole hierarchy with files attached to their folders
	GetTree(ctx context.Context) (*models.Tree, error)

	// GetPath returns the ancestor chain of a folder, root first, ending at the folder
	GetPath(ctx context.Context, id int64) ([]models.Folder, error)
}
