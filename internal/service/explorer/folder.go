package explorer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"explorer/internal/cache"
	"explorer/internal/domain"
	models "explorer/internal/domain/models/explorer"
	"explorer/internal/domain/repositories"
	explorerRepo "explorer/internal/domain/repositories/explorer"
	svc "explorer/internal/domain/services/explorer"

	"golang.org/x/sync/errgroup"
)

type folderService struct {
	folderRepo explorerRepo.FolderRepository
	fileRepo   explorerRepo.FileRepository
	txManager  repositories.TransactionManager
	cache      *cache.Cache
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo explorerRepo.FolderRepository,
	fileRepo explorerRepo.FileRepository,
	txManager repositories.TransactionManager,
	readCache *cache.Cache,
	logger *slog.Logger,
) svc.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		txManager:  txManager,
		cache:      readCache,
		logger:     logger,
	}
}

// CreateFolder creates a new folder
func (s *folderService) CreateFolder(ctx context.Context, req *svc.CreateFolderRequest) (*models.Folder, error) {
	if err := validateCreateFolderRequest(req); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if _, err := s.getFolder(ctx, *req.ParentID, "Parent folder not found."); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	folder := &models.Folder{
		Name:      req.Name,
		ParentID:  req.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}
	s.cache.Clear()

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// GetFolder retrieves a folder by ID
func (s *folderService) GetFolder(ctx context.Context, id int64) (*models.Folder, error) {
	return s.getFolder(ctx, id, "Folder not found.")
}

// UpdateFolder renames and/or moves a folder.
// Moving under a non-null parent runs the re-parent checks in order:
// self-parent, parent existence, then cycle detection.
func (s *folderService) UpdateFolder(ctx context.Context, id int64, req *svc.UpdateFolderRequest) (*models.Folder, error) {
	if err := validateUpdateFolderRequest(req); err != nil {
		return nil, err
	}

	folder, err := s.getFolder(ctx, id, "Folder not found.")
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		folder.Name = *req.Name
	}

	// Tri-state: only move if the field was present
	if req.ParentID.Present {
		if req.ParentID.Value == nil {
			folder.ParentID = nil
			s.logger.Debug("moving folder to root", "folder_id", id)
		} else {
			newParentID := *req.ParentID.Value
			if err := s.validateReparent(ctx, id, newParentID); err != nil {
				return nil, err
			}
			folder.ParentID = &newParentID
			s.logger.Debug("moving folder to new parent",
				"folder_id", id,
				"new_parent_id", newParentID,
			)
		}
	}

	folder.UpdatedAt = time.Now()

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, notFound(err, "Folder not found.")
		}
		return nil, err
	}
	s.cache.Clear()

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// validateReparent rejects self-parenting, missing parents and cycles
func (s *folderService) validateReparent(ctx context.Context, folderID, newParentID int64) error {
	if folderID == newParentID {
		return domain.Invalid("Folder cannot be its own parent.")
	}

	if _, err := s.getFolder(ctx, newParentID, "Parent folder not found."); err != nil {
		return err
	}

	cycle, err := DetectsCycle(ctx, folderID, newParentID, s.folderRepo)
	if err != nil {
		return fmt.Errorf("check circular reference: %w", err)
	}
	if cycle {
		return domain.Invalid("This would create a circular reference.")
	}

	return nil
}

// DeleteFolder deletes a folder, every descendant folder and all of their
// files in one transaction
func (s *folderService) DeleteFolder(ctx context.Context, id int64) error {
	folder, err := s.getFolder(ctx, id, "Folder not found.")
	if err != nil {
		return err
	}

	nodes, err := s.folderRepo.ListNodes(ctx)
	if err != nil {
		return err
	}
	ids := CollectDescendants(id, nodes)

	var filesDeleted, foldersDeleted int64
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		n, err := s.fileRepo.DeleteByFolderIDs(txCtx, ids)
		if err != nil {
			return err
		}
		filesDeleted = n

		n, err = s.folderRepo.DeleteByIDs(txCtx, ids)
		if err != nil {
			return err
		}
		foldersDeleted = n
		return nil
	})
	if err != nil {
		return err
	}
	s.cache.Clear()

	s.logger.Info("folder deleted",
		"id", id,
		"name", folder.Name,
		"folders_deleted", foldersDeleted,
		"files_deleted", filesDeleted,
	)

	return nil
}

// ListAll lists every folder
func (s *folderService) ListAll(ctx context.Context, page *models.Pagination) ([]models.Folder, error) {
	return cache.GetOrSet(ctx, s.cache, keyAllFolders(page), func(ctx context.Context) ([]models.Folder, error) {
		return s.folderRepo.ListAll(ctx, page)
	})
}

// ListRoots lists folders without a parent
func (s *folderService) ListRoots(ctx context.Context, page *models.Pagination) ([]models.Folder, error) {
	return cache.GetOrSet(ctx, s.cache, keyRootFolders(page), func(ctx context.Context) ([]models.Folder, error) {
		return s.folderRepo.ListRoots(ctx, page)
	})
}

// CountRoots counts folders without a parent
func (s *folderService) CountRoots(ctx context.Context) (int, error) {
	return cache.GetOrSet(ctx, s.cache, keyRootCount, s.folderRepo.CountRoots)
}

// ListChildren lists the immediate child folders of an existing folder
func (s *folderService) ListChildren(ctx context.Context, parentID int64, page *models.Pagination) ([]models.Folder, error) {
	if _, err := s.getFolder(ctx, parentID, "Folder not found."); err != nil {
		return nil, err
	}
	return s.listChildren(ctx, parentID, page)
}

func (s *folderService) listChildren(ctx context.Context, parentID int64, page *models.Pagination) ([]models.Folder, error) {
	return cache.GetOrSet(ctx, s.cache, keyChildFolders(parentID, page), func(ctx context.Context) ([]models.Folder, error) {
		return s.folderRepo.ListChildren(ctx, parentID, page)
	})
}

func (s *folderService) listFiles(ctx context.Context, folderID int64, page *models.Pagination) ([]models.File, error) {
	return cache.GetOrSet(ctx, s.cache, keyFolderFiles(folderID, page), func(ctx context.Context) ([]models.File, error) {
		return s.fileRepo.ListByFolder(ctx, folderID, page)
	})
}

// ListWithFiles loads all folders and all files concurrently
func (s *folderService) ListWithFiles(ctx context.Context, page *models.Pagination) (*svc.FolderListing, error) {
	listing := &svc.FolderListing{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		folders, err := s.ListAll(gctx, page)
		listing.Folders = folders
		return err
	})
	g.Go(func() error {
		files, err := cache.GetOrSet(gctx, s.cache, keyAllFiles(page), func(ctx context.Context) ([]models.File, error) {
			return s.fileRepo.ListAll(ctx, page)
		})
		listing.Files = files
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return listing, nil
}

// GetContents lists child folders and/or files of a folder
func (s *folderService) GetContents(ctx context.Context, id int64, contentType svc.ContentType, page *models.Pagination) (*svc.FolderListing, error) {
	if _, err := s.getFolder(ctx, id, "Folder not found."); err != nil {
		return nil, err
	}

	listing := &svc.FolderListing{
		Folders: []models.Folder{},
		Files:   []models.File{},
	}

	g, gctx := errgroup.WithContext(ctx)
	if contentType != svc.ContentFiles {
		g.Go(func() error {
			folders, err := s.listChildren(gctx, id, page)
			if err == nil {
				listing.Folders = folders
			}
			return err
		})
	}
	if contentType != svc.ContentFolders {
		g.Go(func() error {
			files, err := s.listFiles(gctx, id, page)
			if err == nil {
				listing.Files = files
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return listing, nil
}

// getFolder loads a folder and turns a missing row into a NotFoundError with message
func (s *folderService) getFolder(ctx context.Context, id int64, message string) (*models.Folder, error) {
	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, message)
	}
	return folder, nil
}

// notFound replaces a wrapped ErrNotFound with a user-facing NotFoundError
func notFound(err error, message string) error {
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return err
	}
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound(message)
	}
	return err
}
