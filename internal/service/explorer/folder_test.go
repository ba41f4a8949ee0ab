package explorer

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"explorer/internal/domain"
	models "explorer/internal/domain/models/explorer"
	svc "explorer/internal/domain/services/explorer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertValidation(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "want ValidationError, got %T: %v", err, err)
	assert.Equal(t, message, ve.Message)
}

func assertNotFound(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf), "want NotFoundError, got %T: %v", err, err)
	assert.Equal(t, message, nf.Message)
}

func move(parentID *int64) svc.OptionalParentID {
	return svc.OptionalParentID{Present: true, Value: parentID}
}

func TestCreateFolder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	root, err := f.folders.CreateFolder(ctx, &svc.CreateFolderRequest{Name: "  Projects  "})
	require.NoError(t, err)
	assert.Equal(t, "Projects", root.Name)
	assert.Nil(t, root.ParentID)
	assert.NotZero(t, root.ID)

	child, err := f.folders.CreateFolder(ctx, &svc.CreateFolderRequest{Name: "api", ParentID: &root.ID})
	require.NoError(t, err)
	assert.Equal(t, root.ID, *child.ParentID)
}

func TestCreateFolder_Errors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.folders.CreateFolder(ctx, &svc.CreateFolderRequest{Name: "   "})
	assertValidation(t, err, "Folder name is required.")

	_, err = f.folders.CreateFolder(ctx, &svc.CreateFolderRequest{Name: "x", ParentID: ptr[int64](404)})
	assertNotFound(t, err, "Parent folder not found.")
	assert.Empty(t, f.store.folders)
}

func TestUpdateFolder_ReparentProtocol(t *testing.T) {
	// a <- b <- c ; d is another root
	setup := func() (*fixture, int64, int64, int64, int64) {
		f := newFixture()
		a := f.store.addFolder("a", nil)
		b := f.store.addFolder("b", &a)
		c := f.store.addFolder("c", &b)
		d := f.store.addFolder("d", nil)
		return f, a, b, c, d
	}

	t.Run("self parent", func(t *testing.T) {
		f, _, b, _, _ := setup()
		_, err := f.folders.UpdateFolder(context.Background(), b, &svc.UpdateFolderRequest{ParentID: move(&b)})
		assertValidation(t, err, "Folder cannot be its own parent.")
	})

	t.Run("missing parent", func(t *testing.T) {
		f, _, b, _, _ := setup()
		_, err := f.folders.UpdateFolder(context.Background(), b, &svc.UpdateFolderRequest{ParentID: move(ptr[int64](999))})
		assertNotFound(t, err, "Parent folder not found.")
	})

	t.Run("descendant parent", func(t *testing.T) {
		f, a, _, c, _ := setup()
		_, err := f.folders.UpdateFolder(context.Background(), a, &svc.UpdateFolderRequest{ParentID: move(&c)})
		assertValidation(t, err, "This would create a circular reference.")

		folder, _ := f.store.folder(a)
		assert.Nil(t, folder.ParentID, "parent unchanged after rejection")
	})

	t.Run("missing folder", func(t *testing.T) {
		f, a, _, _, _ := setup()
		_, err := f.folders.UpdateFolder(context.Background(), 999, &svc.UpdateFolderRequest{ParentID: move(&a)})
		assertNotFound(t, err, "Folder not found.")
	})

	t.Run("valid move", func(t *testing.T) {
		f, _, b, _, d := setup()
		folder, err := f.folders.UpdateFolder(context.Background(), b, &svc.UpdateFolderRequest{ParentID: move(&d)})
		require.NoError(t, err)
		assert.Equal(t, d, *folder.ParentID)
	})

	t.Run("move to root skips cycle check", func(t *testing.T) {
		f, _, _, c, _ := setup()
		folder, err := f.folders.UpdateFolder(context.Background(), c, &svc.UpdateFolderRequest{ParentID: move(nil)})
		require.NoError(t, err)
		assert.Nil(t, folder.ParentID)
		assert.Zero(t, f.store.parentLookups)
	})

	t.Run("rename only", func(t *testing.T) {
		f, a, b, _, _ := setup()
		folder, err := f.folders.UpdateFolder(context.Background(), b, &svc.UpdateFolderRequest{Name: ptr(" renamed ")})
		require.NoError(t, err)
		assert.Equal(t, "renamed", folder.Name)
		assert.Equal(t, a, *folder.ParentID)
	})

	t.Run("no updates", func(t *testing.T) {
		f, _, b, _, _ := setup()
		_, err := f.folders.UpdateFolder(context.Background(), b, &svc.UpdateFolderRequest{})
		assertValidation(t, err, "No updates provided.")
	})
}

// Every folder must reach a root in a bounded number of steps
func assertAcyclic(t *testing.T, s *memStore) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.folders {
		current := s.folders[id].ParentID
		for steps := 0; current != nil; steps++ {
			require.LessOrEqual(t, steps, len(s.folders), "folder %d is on a cycle", id)
			current = s.folders[*current].ParentID
		}
	}
}

func TestUpdateFolder_RandomReparentsStayAcyclic(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	var ids []int64
	for i := 0; i < 40; i++ {
		var parent *int64
		if len(ids) > 0 && rng.Intn(4) > 0 {
			p := ids[rng.Intn(len(ids))]
			parent = &p
		}
		ids = append(ids, f.store.addFolder("f", parent))
	}
	assertAcyclic(t, f.store)

	rejected := 0
	for i := 0; i < 1000; i++ {
		target := ids[rng.Intn(len(ids))]
		var parent *int64
		if rng.Intn(10) > 0 {
			p := ids[rng.Intn(len(ids))]
			parent = &p
		}

		before, _ := f.store.folder(target)
		_, err := f.folders.UpdateFolder(ctx, target, &svc.UpdateFolderRequest{ParentID: move(parent)})
		if err != nil {
			rejected++
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "unexpected error %v", err)
			after, _ := f.store.folder(target)
			assert.Equal(t, before.ParentID, after.ParentID)
		}
		assertAcyclic(t, f.store)
	}
	assert.Positive(t, rejected, "the walk should have hit some cycles")
}

func TestDeleteFolder_RemovesExactlySubtree(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a := f.store.addFolder("a", nil)
	b := f.store.addFolder("b", &a)
	c := f.store.addFolder("c", &b)
	d := f.store.addFolder("d", &a)
	other := f.store.addFolder("other", nil)
	otherChild := f.store.addFolder("other child", &other)

	f.store.addFile("b.txt", b)
	f.store.addFile("c.txt", c)
	keptInA := f.store.addFile("a.txt", a)
	keptInOther := f.store.addFile("o.txt", otherChild)

	require.NoError(t, f.folders.DeleteFolder(ctx, b))

	assert.ElementsMatch(t, []int64{a, d, other, otherChild}, keys(f.store.folders))
	assert.ElementsMatch(t, []int64{keptInA, keptInOther}, keys(f.store.files))
}

func TestDeleteFolder_NotFoundHasNoSideEffects(t *testing.T) {
	f := newFixture()
	a := f.store.addFolder("a", nil)
	f.store.addFile("a.txt", a)

	err := f.folders.DeleteFolder(context.Background(), 77)
	assertNotFound(t, err, "Folder not found.")
	assert.Len(t, f.store.folders, 1)
	assert.Len(t, f.store.files, 1)
}

func TestDeleteFolder_RollsBackOnFailure(t *testing.T) {
	f := newFixture()
	a := f.store.addFolder("a", nil)
	b := f.store.addFolder("b", &a)
	f.store.addFile("a.txt", a)
	f.store.addFile("b.txt", b)
	f.store.failFolderDelete = errBoom

	err := f.folders.DeleteFolder(context.Background(), a)
	assert.ErrorIs(t, err, errBoom)
	assert.Len(t, f.store.folders, 2)
	assert.Len(t, f.store.files, 2, "file deletes rolled back")
}

// A re-parent that races with a delete of the destination subtree can leave
// a dangling parent link; nothing in the service serializes the two. This
// replays that interleaving step by step.
func TestDeleteFolder_ConcurrentReparentRace(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doomed := f.store.addFolder("doomed", nil)
	mover := f.store.addFolder("mover", nil)

	// Re-parent validated against the old state...
	require.NoError(t, f.folders.validateReparent(ctx, mover, doomed))

	// ...the delete commits in between...
	require.NoError(t, f.folders.DeleteFolder(ctx, doomed))

	// ...and the stale write lands. Written directly, as a store without the
	// parent foreign key would accept it; Postgres answers 404 here instead.
	f.store.mu.Lock()
	moved := f.store.folders[mover]
	moved.ParentID = &doomed
	f.store.folders[mover] = moved
	f.store.mu.Unlock()

	_, ok := f.store.folder(doomed)
	assert.False(t, ok)
	folder, _ := f.store.folder(mover)
	assert.Equal(t, doomed, *folder.ParentID, "dangling reference left behind")
}

func TestListChildrenAndContents(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a := f.store.addFolder("a", nil)
	f.store.addFolder("z", &a)
	f.store.addFolder("m", &a)
	f.store.addFile("readme", a)

	children, err := f.folders.ListChildren(ctx, a, nil)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "m", children[0].Name)

	_, err = f.folders.ListChildren(ctx, 500, nil)
	assertNotFound(t, err, "Folder not found.")

	all, err := f.folders.GetContents(ctx, a, svc.ContentAll, nil)
	require.NoError(t, err)
	assert.Len(t, all.Folders, 2)
	assert.Len(t, all.Files, 1)

	onlyFiles, err := f.folders.GetContents(ctx, a, svc.ContentFiles, nil)
	require.NoError(t, err)
	assert.Empty(t, onlyFiles.Folders)
	assert.NotNil(t, onlyFiles.Folders)
	assert.Len(t, onlyFiles.Files, 1)

	paged, err := f.folders.GetContents(ctx, a, svc.ContentFolders, models.NewPagination(1, 1))
	require.NoError(t, err)
	require.Len(t, paged.Folders, 1)
	assert.Equal(t, "z", paged.Folders[0].Name)
}

func TestListRoots_CacheClearedOnMutation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.addFolder("first", nil)

	roots, err := f.folders.ListRoots(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, roots, 1)

	// Written behind the service's back: the cached page is served
	f.store.addFolder("sneaky", nil)
	roots, err = f.folders.ListRoots(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, roots, 1)

	count, err := f.folders.CountRoots(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = f.folders.CreateFolder(ctx, &svc.CreateFolderRequest{Name: "third"})
	require.NoError(t, err)

	roots, err = f.folders.ListRoots(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, roots, 3)
	count, err = f.folders.CountRoots(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestListWithFiles(t *testing.T) {
	f := newFixture()
	a := f.store.addFolder("a", nil)
	f.store.addFolder("b", &a)
	f.store.addFile("x", a)

	listing, err := f.folders.ListWithFiles(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, listing.Folders, 2)
	assert.Len(t, listing.Files, 1)
}

func keys[V any](m map[int64]V) []int64 {
	out := make([]int64, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
