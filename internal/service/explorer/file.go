package explorer

import (
	"context"
	"log/slog"
	"time"

	"explorer/internal/cache"
	models "explorer/internal/domain/models/explorer"
	explorerRepo "explorer/internal/domain/repositories/explorer"
	svc "explorer/internal/domain/services/explorer"
)

type fileService struct {
	fileRepo   explorerRepo.FileRepository
	folderRepo explorerRepo.FolderRepository
	cache      *cache.Cache
	logger     *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	fileRepo explorerRepo.FileRepository,
	folderRepo explorerRepo.FolderRepository,
	readCache *cache.Cache,
	logger *slog.Logger,
) svc.FileService {
	return &fileService{
		fileRepo:   fileRepo,
		folderRepo: folderRepo,
		cache:      readCache,
		logger:     logger,
	}
}

// CreateFile creates a file record in an existing folder
func (s *fileService) CreateFile(ctx context.Context, req *svc.CreateFileRequest) (*models.File, error) {
	if err := validateCreateFileRequest(req); err != nil {
		return nil, err
	}

	if err := s.requireFolder(ctx, req.FolderID); err != nil {
		return nil, err
	}

	now := time.Now()
	file := &models.File{
		Name:      req.Name,
		FolderID:  req.FolderID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		return nil, err
	}
	s.cache.Clear()

	s.logger.Info("file created",
		"id", file.ID,
		"name", file.Name,
		"folder_id", file.FolderID,
	)

	return file, nil
}

// GetFile retrieves a file by ID
func (s *fileService) GetFile(ctx context.Context, id int64) (*models.File, error) {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "File not found.")
	}
	return file, nil
}

// UpdateFile renames and/or moves a file
func (s *fileService) UpdateFile(ctx context.Context, id int64, req *svc.UpdateFileRequest) (*models.File, error) {
	if err := validateUpdateFileRequest(req); err != nil {
		return nil, err
	}

	file, err := s.GetFile(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		file.Name = *req.Name
	}
	if req.FolderID != nil {
		if err := s.requireFolder(ctx, *req.FolderID); err != nil {
			return nil, err
		}
		file.FolderID = *req.FolderID
	}
	file.UpdatedAt = time.Now()

	if err := s.fileRepo.Update(ctx, file); err != nil {
		return nil, notFound(err, "File not found.")
	}
	s.cache.Clear()

	s.logger.Info("file updated",
		"id", file.ID,
		"name", file.Name,
		"folder_id", file.FolderID,
	)

	return file, nil
}

// DeleteFile deletes a single file
func (s *fileService) DeleteFile(ctx context.Context, id int64) error {
	file, err := s.GetFile(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.fileRepo.DeleteByIDs(ctx, []int64{id}); err != nil {
		return err
	}
	s.cache.Clear()

	s.logger.Info("file deleted",
		"id", id,
		"name", file.Name,
		"folder_id", file.FolderID,
	)

	return nil
}

// ListAll lists every file
func (s *fileService) ListAll(ctx context.Context, page *models.Pagination) ([]models.File, error) {
	return cache.GetOrSet(ctx, s.cache, keyAllFiles(page), func(ctx context.Context) ([]models.File, error) {
		return s.fileRepo.ListAll(ctx, page)
	})
}

// ListByFolder lists files in a folder
func (s *fileService) ListByFolder(ctx context.Context, folderID int64, page *models.Pagination) ([]models.File, error) {
	return cache.GetOrSet(ctx, s.cache, keyFolderFiles(folderID, page), func(ctx context.Context) ([]models.File, error) {
		return s.fileRepo.ListByFolder(ctx, folderID, page)
	})
}

func (s *fileService) requireFolder(ctx context.Context, folderID int64) error {
	if _, err := s.folderRepo.GetByID(ctx, folderID); err != nil {
		return notFound(err, "Folder not found.")
	}
	return nil
}
