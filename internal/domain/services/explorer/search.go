package explorer

import (
	"context"

	models "explorer/internal/domain/models/explorer"
)

// SearchService searches folders and files by name
type SearchService interface {
	Search(ctx context.Context, params *models.SearchParams) (*models.SearchResults, error)
}
