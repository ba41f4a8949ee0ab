// Package treeview keeps the client-side state of a lazily loaded folder tree.
package treeview

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"explorer/internal/client"
	"explorer/internal/config"
	models "explorer/internal/domain/models/explorer"
)

// Source is the subset of the API the tree view reads from
type Source interface {
	ListRoots(ctx context.Context, page *models.Pagination) (*client.RootsPage, error)
	GetTree(ctx context.Context) (*models.Tree, error)
	GetFolder(ctx context.Context, id int64) (*models.Folder, error)
	ListChildren(ctx context.Context, id int64, contentType string, page *models.Pagination) (*client.Listing, error)
}

// Store holds the folders and files fetched so far
type Store struct {
	source Source

	mu         sync.Mutex
	folders    map[int64]models.Folder
	files      map[int64][]models.File // by folder id
	loaded     map[int64]bool          // children fetched
	loading    map[int64]bool          // children fetch in flight
	rootsTotal int
}

// New creates an empty store reading from source
func New(source Source) *Store {
	return &Store{
		source:  source,
		folders: make(map[int64]models.Folder),
		files:   make(map[int64][]models.File),
		loaded:  make(map[int64]bool),
		loading: make(map[int64]bool),
	}
}

// LoadRoots fetches a page of root folders and returns the total root count
func (s *Store) LoadRoots(ctx context.Context, page *models.Pagination) (int, error) {
	roots, err := s.source.ListRoots(ctx, page)
	if err != nil {
		return 0, fmt.Errorf("load roots: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, folder := range roots.Folders {
		s.folders[folder.ID] = folder
	}
	s.rootsTotal = roots.Meta.Total
	return s.rootsTotal, nil
}

// LoadAll replaces the store with the full hierarchy and marks every folder loaded
func (s *Store) LoadAll(ctx context.Context) error {
	tree, err := s.source.GetTree(ctx)
	if err != nil {
		return fmt.Errorf("load tree: %w", err)
	}

	folders := make(map[int64]models.Folder)
	files := make(map[int64][]models.File)
	loaded := make(map[int64]bool)
	roots := 0

	stack := append([]*models.FolderTreeNode{}, tree.Folders...)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := folders[node.ID]; seen {
			continue
		}

		folders[node.ID] = models.Folder{ID: node.ID, Name: node.Name, ParentID: node.ParentID}
		files[node.ID] = append([]models.File{}, node.Files...)
		loaded[node.ID] = true
		if node.ParentID == nil {
			roots++
		}
		stack = append(stack, node.Children...)
	}
	for _, file := range tree.Files {
		files[file.FolderID] = append(files[file.FolderID], file)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.folders, s.files, s.loaded = folders, files, loaded
	s.loading = make(map[int64]bool)
	s.rootsTotal = roots
	return nil
}

// LoadChildren fetches the contents of a folder once. Calls for a folder that
// is already loaded or being loaded return immediately.
func (s *Store) LoadChildren(ctx context.Context, id int64) error {
	s.mu.Lock()
	if s.loaded[id] || s.loading[id] {
		s.mu.Unlock()
		return nil
	}
	s.loading[id] = true
	s.mu.Unlock()

	listing, err := s.source.ListChildren(ctx, id, "all", nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.loading, id)
	if err != nil {
		return fmt.Errorf("load children of %d: %w", id, err)
	}

	for _, folder := range listing.Folders {
		s.folders[folder.ID] = folder
	}
	s.files[id] = append([]models.File{}, listing.Files...)
	s.loaded[id] = true
	return nil
}

// LoadPath fetches a folder and its ancestors, following parentId until a
// root. Already known folders are not fetched again. Returns the chain root first.
func (s *Store) LoadPath(ctx context.Context, id int64) ([]models.Folder, error) {
	var chain []models.Folder
	visited := make(map[int64]bool)

	current := &id
	for current != nil && len(chain) < config.MaxHierarchyDepth {
		if visited[*current] {
			break
		}
		visited[*current] = true

		folder, ok := s.Folder(*current)
		if !ok {
			fetched, err := s.source.GetFolder(ctx, *current)
			if err != nil {
				return nil, fmt.Errorf("load folder %d: %w", *current, err)
			}
			folder = *fetched
			s.mu.Lock()
			s.folders[folder.ID] = folder
			s.mu.Unlock()
		}

		chain = append(chain, folder)
		current = folder.ParentID
	}

	reverse(chain)
	return chain, nil
}

// Folder returns a known folder
func (s *Store) Folder(id int64) (models.Folder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	folder, ok := s.folders[id]
	return folder, ok
}

// IsLoaded reports whether the children of a folder have been fetched
func (s *Store) IsLoaded(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded[id]
}

// RootsTotal is the root count reported by the last LoadRoots or LoadAll
func (s *Store) RootsTotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rootsTotal
}

// Tree nests everything known so far
func (s *Store) Tree() *models.Tree {
	s.mu.Lock()
	folders := make([]models.Folder, 0, len(s.folders))
	for _, folder := range s.folders {
		folders = append(folders, folder)
	}
	var files []models.File
	for _, list := range s.files {
		files = append(files, list...)
	}
	s.mu.Unlock()

	// Stable input order keeps BuildTree's cycle handling deterministic
	sort.Slice(folders, func(i, j int) bool { return folders[i].ID < folders[j].ID })
	sort.Slice(files, func(i, j int) bool { return files[i].ID < files[j].ID })
	return models.BuildTree(folders, files)
}

// Breadcrumbs returns the known ancestor chain of a folder, root first.
// The chain stops early at an ancestor that has not been loaded.
func (s *Store) Breadcrumbs(id int64) []models.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()

	var chain []models.Folder
	visited := make(map[int64]bool)
	current := &id
	for current != nil && !visited[*current] {
		visited[*current] = true
		folder, ok := s.folders[*current]
		if !ok {
			break
		}
		chain = append(chain, folder)
		current = folder.ParentID
	}

	reverse(chain)
	return chain
}

// ChildCount returns the number of child folders and files of a folder.
// The count is only complete once the folder is loaded, which the bool reports.
func (s *Store) ChildCount(id int64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.files[id])
	for _, folder := range s.folders {
		if folder.ParentID != nil && *folder.ParentID == id {
			count++
		}
	}
	return count, s.loaded[id]
}

func reverse(folders []models.Folder) {
	for i, j := 0, len(folders)-1; i < j; i, j = i+1, j-1 {
		folders[i], folders[j] = folders[j], folders[i]
	}
}
