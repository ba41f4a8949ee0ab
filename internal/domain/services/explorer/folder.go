package explorer

import (
	"context"

	models "explorer/internal/domain/models/explorer"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder creates a folder under an existing parent, or at root
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// GetFolder retrieves a single folder
	GetFolder(ctx context.Context, id int64) (*models.Folder, error)

	// UpdateFolder renames and/or re-parents a folder, refusing cycles
	UpdateFolder(ctx context.Context, id int64, req *UpdateFolderRequest) (*models.Folder, error)

	// DeleteFolder removes a folder, all of its descendants and their files
	DeleteFolder(ctx context.Context, id int64) error

	ListAll(ctx context.Context, page *models.Pagination) ([]models.Folder, error)
	ListRoots(ctx context.Context, page *models.Pagination) ([]models.Folder, error)
	CountRoots(ctx context.Context) (int, error)

	// ListChildren lists immediate child folders; missing parent is a NotFoundError
	ListChildren(ctx context.Context, parentID int64, page *models.Pagination) ([]models.Folder, error)

	// ListWithFiles returns every folder and every file, each list paginated independently
	ListWithFiles(ctx context.Context, page *models.Pagination) (*FolderListing, error)

	// GetContents returns child folders and files of a folder, filtered by type
	GetContents(ctx context.Context, id int64, contentType ContentType, page *models.Pagination) (*FolderListing, error)
}

// ContentType filters folder contents listings
type ContentType string

const (
	ContentAll     ContentType = "all"
	ContentFolders ContentType = "folders"
	ContentFiles   ContentType = "files"
)

// ParseContentType maps a query value to a ContentType; unknown values mean all
func ParseContentType(value string) ContentType {
	switch ContentType(value) {
	case ContentFolders, ContentFiles:
		return ContentType(value)
	default:
		return ContentAll
	}
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parentId"` // nil creates a root folder
}

// OptionalParentID tracks tri-state semantics for parent updates.
// Transport-agnostic; the handler maps from httputil.OptionalInt64.
//   - Present=false: field absent (don't move)
//   - Present=true, Value=nil: move to root
//   - Present=true, Value=&id: move under id
type OptionalParentID struct {
	Present bool
	Value   *int64
}

// UpdateFolderRequest represents a rename and/or move
type UpdateFolderRequest struct {
	Name     *string
	ParentID OptionalParentID
}

// IsEmpty reports whether the request changes nothing
func (r *UpdateFolderRequest) IsEmpty() bool {
	return (r.Name == nil || *r.Name == "") && !r.ParentID.Present
}

// FolderListing is a page of folders and files
type FolderListing struct {
	Folders []models.Folder `json:"folders"`
	Files   []models.File   `json:"files"`
}
