package explorer

import (
	"context"
	"log/slog"

	"explorer/internal/cache"
	models "explorer/internal/domain/models/explorer"
	explorerRepo "explorer/internal/domain/repositories/explorer"
	svc "explorer/internal/domain/services/explorer"

	"golang.org/x/sync/errgroup"
)

type searchService struct {
	folderRepo explorerRepo.FolderRepository
	fileRepo   explorerRepo.FileRepository
	cache      *cache.Cache
	logger     *slog.Logger
}

// NewSearchService creates a new search service
func NewSearchService(
	folderRepo explorerRepo.FolderRepository,
	fileRepo explorerRepo.FileRepository,
	readCache *cache.Cache,
	logger *slog.Logger,
) svc.SearchService {
	return &searchService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		cache:      readCache,
		logger:     logger,
	}
}

// Search finds folders and/or files by name. The page of matches and the
// unpaginated total are loaded concurrently for each type in scope; types
// outside the scope come back as an empty list with a zero total.
func (s *searchService) Search(ctx context.Context, params *models.SearchParams) (*models.SearchResults, error) {
	params.ApplyDefaults()
	if err := params.Validate(); err != nil {
		return nil, invalid(err)
	}

	return cache.GetOrSet(ctx, s.cache, keySearch(params), func(ctx context.Context) (*models.SearchResults, error) {
		results := &models.SearchResults{
			Folders: []models.Folder{},
			Files:   []models.File{},
		}

		g, gctx := errgroup.WithContext(ctx)
		if params.Scope.IncludesFolders() {
			g.Go(func() error {
				folders, err := s.folderRepo.SearchByName(gctx, params.Query, params.Match, params.Pagination)
				if err == nil {
					results.Folders = folders
				}
				return err
			})
			g.Go(func() error {
				n, err := s.folderRepo.CountByName(gctx, params.Query, params.Match)
				results.Totals.Folders = n
				return err
			})
		}
		if params.Scope.IncludesFiles() {
			g.Go(func() error {
				files, err := s.fileRepo.SearchByName(gctx, params.Query, params.Match, params.Pagination)
				if err == nil {
					results.Files = files
				}
				return err
			})
			g.Go(func() error {
				n, err := s.fileRepo.CountByName(gctx, params.Query, params.Match)
				results.Totals.Files = n
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		s.logger.Debug("search executed",
			"query", params.Query,
			"scope", params.Scope,
			"match", params.Match,
			"folders", results.Totals.Folders,
			"files", results.Totals.Files,
		)

		return results, nil
	})
}
