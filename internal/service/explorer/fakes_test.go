package explorer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"explorer/internal/cache"
	"explorer/internal/domain"
	models "explorer/internal/domain/models/explorer"
	"explorer/internal/domain/repositories"
	explorerRepo "explorer/internal/domain/repositories/explorer"
)

// memStore is an in-memory stand-in for the two tables, with the same
// foreign key behavior as the Postgres schema.
type memStore struct {
	mu      sync.Mutex
	folders map[int64]models.Folder
	files   map[int64]models.File
	nextID  int64

	// failFolderDelete makes DeleteByIDs fail, for rollback tests
	failFolderDelete error
	// parentLookups counts GetParentID calls
	parentLookups int
}

func newMemStore() *memStore {
	return &memStore{
		folders: make(map[int64]models.Folder),
		files:   make(map[int64]models.File),
	}
}

func (m *memStore) snapshot() (map[int64]models.Folder, map[int64]models.File) {
	folders := make(map[int64]models.Folder, len(m.folders))
	for k, v := range m.folders {
		folders[k] = v
	}
	files := make(map[int64]models.File, len(m.files))
	for k, v := range m.files {
		files[k] = v
	}
	return folders, files
}

// addFolder seeds a folder without validation
func (m *memStore) addFolder(name string, parentID *int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.folders[m.nextID] = models.Folder{ID: m.nextID, Name: name, ParentID: parentID}
	return m.nextID
}

func (m *memStore) addFile(name string, folderID int64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.files[m.nextID] = models.File{ID: m.nextID, Name: name, FolderID: folderID}
	return m.nextID
}

func (m *memStore) folder(id int64) (models.Folder, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.folders[id]
	return f, ok
}

func sortFolders(folders []models.Folder) {
	sort.Slice(folders, func(i, j int) bool {
		if folders[i].Name != folders[j].Name {
			return folders[i].Name < folders[j].Name
		}
		return folders[i].ID < folders[j].ID
	})
}

func sortFiles(files []models.File) {
	sort.Slice(files, func(i, j int) bool {
		if files[i].Name != files[j].Name {
			return files[i].Name < files[j].Name
		}
		return files[i].ID < files[j].ID
	})
}

func pageFolders(folders []models.Folder, page *models.Pagination) []models.Folder {
	sortFolders(folders)
	start, end := page.Window(len(folders))
	return append([]models.Folder{}, folders[start:end]...)
}

func pageFiles(files []models.File, page *models.Pagination) []models.File {
	sortFiles(files)
	start, end := page.Window(len(files))
	return append([]models.File{}, files[start:end]...)
}

func matches(name, query string, match models.MatchMode) bool {
	name, query = strings.ToLower(name), strings.ToLower(query)
	if match == models.MatchContains {
		return strings.Contains(name, query)
	}
	return strings.HasPrefix(name, query)
}

type memFolderRepo struct{ m *memStore }

var _ explorerRepo.FolderRepository = (*memFolderRepo)(nil)

func (r *memFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if folder.ParentID != nil {
		if _, ok := r.m.folders[*folder.ParentID]; !ok {
			return domain.NotFound("Parent folder not found.")
		}
	}
	r.m.nextID++
	folder.ID = r.m.nextID
	r.m.folders[folder.ID] = *folder
	return nil
}

func (r *memFolderRepo) GetByID(ctx context.Context, id int64) (*models.Folder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	f, ok := r.m.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}
	return &f, nil
}

func (r *memFolderRepo) GetParentID(ctx context.Context, id int64) (*int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.parentLookups++
	f, ok := r.m.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}
	return f.ParentID, nil
}

func (r *memFolderRepo) Update(ctx context.Context, folder *models.Folder) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.folders[folder.ID]; !ok {
		return fmt.Errorf("folder %d: %w", folder.ID, domain.ErrNotFound)
	}
	if folder.ParentID != nil {
		if _, ok := r.m.folders[*folder.ParentID]; !ok {
			return domain.NotFound("Parent folder not found.")
		}
	}
	r.m.folders[folder.ID] = *folder
	return nil
}

func (r *memFolderRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failFolderDelete != nil {
		return 0, r.m.failFolderDelete
	}

	doomed := make(map[int64]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
	}
	// FK checked at statement end
	for _, f := range r.m.folders {
		if !doomed[f.ID] && f.ParentID != nil && doomed[*f.ParentID] {
			return 0, &domain.ConflictError{Message: "folder still has children outside the deleted set"}
		}
	}
	for _, f := range r.m.files {
		if doomed[f.FolderID] {
			return 0, &domain.ConflictError{Message: "folder still has files"}
		}
	}

	var n int64
	for id := range doomed {
		if _, ok := r.m.folders[id]; ok {
			delete(r.m.folders, id)
			n++
		}
	}
	return n, nil
}

func (r *memFolderRepo) filter(keep func(models.Folder) bool) []models.Folder {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []models.Folder{}
	for _, f := range r.m.folders {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

func (r *memFolderRepo) ListAll(ctx context.Context, page *models.Pagination) ([]models.Folder, error) {
	return pageFolders(r.filter(func(models.Folder) bool { return true }), page), nil
}

func (r *memFolderRepo) ListRoots(ctx context.Context, page *models.Pagination) ([]models.Folder, error) {
	return pageFolders(r.filter(func(f models.Folder) bool { return f.ParentID == nil }), page), nil
}

func (r *memFolderRepo) CountRoots(ctx context.Context) (int, error) {
	return len(r.filter(func(f models.Folder) bool { return f.ParentID == nil })), nil
}

func (r *memFolderRepo) ListChildren(ctx context.Context, parentID int64, page *models.Pagination) ([]models.Folder, error) {
	return pageFolders(r.filter(func(f models.Folder) bool {
		return f.ParentID != nil && *f.ParentID == parentID
	}), page), nil
}

func (r *memFolderRepo) ListNodes(ctx context.Context) ([]models.FolderNode, error) {
	folders := r.filter(func(models.Folder) bool { return true })
	nodes := make([]models.FolderNode, 0, len(folders))
	for _, f := range folders {
		nodes = append(nodes, models.FolderNode{ID: f.ID, ParentID: f.ParentID})
	}
	return nodes, nil
}

func (r *memFolderRepo) SearchByName(ctx context.Context, query string, match models.MatchMode, page *models.Pagination) ([]models.Folder, error) {
	return pageFolders(r.filter(func(f models.Folder) bool { return matches(f.Name, query, match) }), page), nil
}

func (r *memFolderRepo) CountByName(ctx context.Context, query string, match models.MatchMode) (int, error) {
	return len(r.filter(func(f models.Folder) bool { return matches(f.Name, query, match) })), nil
}

type memFileRepo struct{ m *memStore }

var _ explorerRepo.FileRepository = (*memFileRepo)(nil)

func (r *memFileRepo) Create(ctx context.Context, file *models.File) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.folders[file.FolderID]; !ok {
		return domain.NotFound("Folder not found.")
	}
	r.m.nextID++
	file.ID = r.m.nextID
	r.m.files[file.ID] = *file
	return nil
}

func (r *memFileRepo) GetByID(ctx context.Context, id int64) (*models.File, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	f, ok := r.m.files[id]
	if !ok {
		return nil, fmt.Errorf("file %d: %w", id, domain.ErrNotFound)
	}
	return &f, nil
}

func (r *memFileRepo) Update(ctx context.Context, file *models.File) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.files[file.ID]; !ok {
		return fmt.Errorf("file %d: %w", file.ID, domain.ErrNotFound)
	}
	if _, ok := r.m.folders[file.FolderID]; !ok {
		return domain.NotFound("Folder not found.")
	}
	r.m.files[file.ID] = *file
	return nil
}

func (r *memFileRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := r.m.files[id]; ok {
			delete(r.m.files, id)
			n++
		}
	}
	return n, nil
}

func (r *memFileRepo) DeleteByFolderIDs(ctx context.Context, folderIDs []int64) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	doomed := make(map[int64]bool, len(folderIDs))
	for _, id := range folderIDs {
		doomed[id] = true
	}
	var n int64
	for id, f := range r.m.files {
		if doomed[f.FolderID] {
			delete(r.m.files, id)
			n++
		}
	}
	return n, nil
}

func (r *memFileRepo) filter(keep func(models.File) bool) []models.File {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []models.File{}
	for _, f := range r.m.files {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

func (r *memFileRepo) ListAll(ctx context.Context, page *models.Pagination) ([]models.File, error) {
	return pageFiles(r.filter(func(models.File) bool { return true }), page), nil
}

func (r *memFileRepo) ListByFolder(ctx context.Context, folderID int64, page *models.Pagination) ([]models.File, error) {
	return pageFiles(r.filter(func(f models.File) bool { return f.FolderID == folderID }), page), nil
}

func (r *memFileRepo) SearchByName(ctx context.Context, query string, match models.MatchMode, page *models.Pagination) ([]models.File, error) {
	return pageFiles(r.filter(func(f models.File) bool { return matches(f.Name, query, match) }), page), nil
}

func (r *memFileRepo) CountByName(ctx context.Context, query string, match models.MatchMode) (int, error) {
	return len(r.filter(func(f models.File) bool { return matches(f.Name, query, match) })), nil
}

// memTxManager restores a snapshot of the store when fn fails
type memTxManager struct{ m *memStore }

var _ repositories.TransactionManager = (*memTxManager)(nil)

func (t *memTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	t.m.mu.Lock()
	folders, files := t.m.snapshot()
	t.m.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.m.mu.Lock()
		t.m.folders, t.m.files = folders, files
		t.m.mu.Unlock()
		return err
	}
	return nil
}

// fixture wires every service over one memStore
type fixture struct {
	store   *memStore
	cache   *cache.Cache
	folders *folderService
	files   *fileService
	search  *searchService
	tree    *treeService
}

func newFixture() *fixture {
	store := newMemStore()
	folderRepo := &memFolderRepo{m: store}
	fileRepo := &memFileRepo{m: store}
	c := cache.New(30*time.Second, 200)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &fixture{
		store:   store,
		cache:   c,
		folders: NewFolderService(folderRepo, fileRepo, &memTxManager{m: store}, c, logger).(*folderService),
		files:   NewFileService(fileRepo, folderRepo, c, logger).(*fileService),
		search:  NewSearchService(folderRepo, fileRepo, c, logger).(*searchService),
		tree:    NewTreeService(folderRepo, fileRepo, c, logger).(*treeService),
	}
}

func ptr[T any](v T) *T { return &v }

var errBoom = errors.New("boom")
