package explorer

import "time"

// File is a metadata record only; no content is stored
type File struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	FolderID  int64     `json:"folderId" db:"folder_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
