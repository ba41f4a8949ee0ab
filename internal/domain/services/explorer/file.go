package explorer

import (
	"context"

	models "explorer/internal/domain/models/explorer"
)

// FileService handles file metadata business logic
type FileService interface {
	// CreateFile creates a file record inside an existing folder
	CreateFile(ctx context.Context, req *CreateFileRequest) (*models.File, error)

	GetFile(ctx context.Context, id int64) (*models.File, error)

	// UpdateFile renames and/or moves a file to another existing folder
	UpdateFile(ctx context.Context, id int64, req *UpdateFileRequest) (*models.File, error)

	DeleteFile(ctx context.Context, id int64) error

	ListAll(ctx context.Context, page *models.Pagination) ([]models.File, error)
	ListByFolder(ctx context.Context, folderID int64, page *models.Pagination) ([]models.File, error)
}

// CreateFileRequest represents a file creation request
type CreateFileRequest struct {
	Name     string `json:"name"`
	FolderID int64  `json:"folderId"`
}

// UpdateFileRequest represents a rename and/or move; nil fields are left unchanged
type UpdateFileRequest struct {
	Name     *string `json:"name,omitempty"`
	FolderID *int64  `json:"folderId,omitempty"`
}

// IsEmpty reports whether the request changes nothing
func (r *UpdateFileRequest) IsEmpty() bool {
	return (r.Name == nil || *r.Name == "") && r.FolderID == nil
}
