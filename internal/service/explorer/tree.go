package explorer

import (
	"context"
	"errors"
	"log/slog"

	"explorer/internal/cache"
	"explorer/internal/config"
	"explorer/internal/domain"
	models "explorer/internal/domain/models/explorer"
	explorerRepo "explorer/internal/domain/repositories/explorer"
	svc "explorer/internal/domain/services/explorer"

	"golang.org/x/sync/errgroup"
)

// treeService implements the TreeService interface
type treeService struct {
	folderRepo explorerRepo.FolderRepository
	fileRepo   explorerRepo.FileRepository
	cache      *cache.Cache
	logger     *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	folderRepo explorerRepo.FolderRepository,
	fileRepo explorerRepo.FileRepository,
	readCache *cache.Cache,
	logger *slog.Logger,
) svc.TreeService {
	return &treeService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		cache:      readCache,
		logger:     logger,
	}
}

// GetTree builds the nested folder/file tree for the whole hierarchy
func (s *treeService) GetTree(ctx context.Context) (*models.Tree, error) {
	return cache.GetOrSet(ctx, s.cache, keyFullTree, func(ctx context.Context) (*models.Tree, error) {
		var (
			folders []models.Folder
			files   []models.File
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			folders, err = s.folderRepo.ListAll(gctx, nil)
			return err
		})
		g.Go(func() error {
			var err error
			files, err = s.fileRepo.ListAll(gctx, nil)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		tree := models.BuildTree(folders, files)

		s.logger.Info("tree built",
			"folder_count", len(folders),
			"file_count", len(files),
		)

		return tree, nil
	})
}

// GetPath returns the folder and its ancestors, root first. A repeated
// ancestor or a dangling parent link ends the walk.
func (s *treeService) GetPath(ctx context.Context, id int64) ([]models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Folder not found.")
	}

	chain := []models.Folder{*folder}
	visited := map[int64]struct{}{folder.ID: {}}
	for current := folder.ParentID; current != nil && len(chain) < config.MaxHierarchyDepth; {
		if _, seen := visited[*current]; seen {
			s.logger.Warn("cycle in folder ancestry", "folder_id", id, "repeated_id", *current)
			break
		}
		visited[*current] = struct{}{}

		parent, err := s.folderRepo.GetByID(ctx, *current)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.logger.Warn("dangling parent reference", "folder_id", id, "missing_id", *current)
				break
			}
			return nil, err
		}
		chain = append(chain, *parent)
		current = parent.ParentID
	}

	// Reverse so the root comes first
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	return chain, nil
}
