package explorer

import "time"

type Folder struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	ParentID  *int64    `json:"parentId" db:"parent_id"` // NULL = root
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// IsRoot reports whether the folder has no parent
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}

// FolderNode is the {id, parentId} projection the hierarchy engine works on
type FolderNode struct {
	ID       int64  `json:"id" db:"id"`
	ParentID *int64 `json:"parentId" db:"parent_id"`
}
