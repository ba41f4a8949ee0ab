package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr64(v int64) *int64 { return &v }

func names(nodes []*FolderTreeNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func countNodes(nodes []*FolderTreeNode) int {
	total := 0
	stack := append([]*FolderTreeNode{}, nodes...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		total++
		stack = append(stack, n.Children...)
	}
	return total
}

func TestBuildTree_NestsAndSorts(t *testing.T) {
	folders := []Folder{
		{ID: 1, Name: "root"},
		{ID: 2, Name: "beta", ParentID: ptr64(1)},
		{ID: 3, Name: "Alpha", ParentID: ptr64(1)},
		{ID: 4, Name: "deep", ParentID: ptr64(3)},
		{ID: 5, Name: "another root"},
	}
	files := []File{
		{ID: 10, Name: "z.txt", FolderID: 4},
		{ID: 11, Name: "a.txt", FolderID: 4},
		{ID: 12, Name: "top.txt", FolderID: 1},
	}

	tree := BuildTree(folders, files)

	require.Len(t, tree.Folders, 2)
	assert.Equal(t, []string{"another root", "root"}, names(tree.Folders))

	root := tree.Folders[1]
	assert.Equal(t, []string{"Alpha", "beta"}, names(root.Children))
	require.Len(t, root.Files, 1)

	deep := root.Children[0].Children[0]
	assert.Equal(t, int64(4), deep.ID)
	require.Len(t, deep.Files, 2)
	assert.Equal(t, "a.txt", deep.Files[0].Name)
	assert.Empty(t, tree.Files)
}

func TestBuildTree_OrphansBecomeRoots(t *testing.T) {
	folders := []Folder{
		{ID: 1, Name: "a"},
		{ID: 2, Name: "orphan", ParentID: ptr64(99)},
	}
	files := []File{{ID: 7, Name: "lost.txt", FolderID: 42}}

	tree := BuildTree(folders, files)

	assert.Equal(t, []string{"a", "orphan"}, names(tree.Folders))
	require.Len(t, tree.Files, 1)
	assert.Equal(t, int64(7), tree.Files[0].ID)
}

func TestBuildTree_CycleTerminates(t *testing.T) {
	folders := []Folder{
		{ID: 1, Name: "x", ParentID: ptr64(2)},
		{ID: 2, Name: "y", ParentID: ptr64(3)},
		{ID: 3, Name: "z", ParentID: ptr64(1)},
		{ID: 4, Name: "under z", ParentID: ptr64(3)},
	}

	tree := BuildTree(folders, nil)

	require.Len(t, tree.Folders, 1)
	assert.Equal(t, "x", tree.Folders[0].Name)
	assert.Equal(t, 4, countNodes(tree.Folders), "every folder emitted exactly once")
}

func TestBuildTree_CyclePromotesMemberNotDescendant(t *testing.T) {
	tests := []struct {
		name     string
		folders  []Folder
		wantRoot int64
	}{
		{
			name: "descendant sorts first",
			folders: []Folder{
				{ID: 1, Name: "x", ParentID: ptr64(2)},
				{ID: 2, Name: "y", ParentID: ptr64(3)},
				{ID: 3, Name: "z", ParentID: ptr64(1)},
				{ID: 4, Name: "a under z", ParentID: ptr64(3)},
				{ID: 5, Name: "a deeper", ParentID: ptr64(4)},
			},
			wantRoot: 1,
		},
		{
			name: "self loop",
			folders: []Folder{
				{ID: 7, Name: "loop", ParentID: ptr64(7)},
				{ID: 8, Name: "inside", ParentID: ptr64(7)},
			},
			wantRoot: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := BuildTree(tt.folders, nil)

			require.Len(t, tree.Folders, 1)
			assert.Equal(t, tt.wantRoot, tree.Folders[0].ID)
			assert.Equal(t, len(tt.folders), countNodes(tree.Folders))
		})
	}
}

func TestBuildTree_CycleKeepsDescendantUnderParent(t *testing.T) {
	folders := []Folder{
		{ID: 1, Name: "x", ParentID: ptr64(2)},
		{ID: 2, Name: "y", ParentID: ptr64(3)},
		{ID: 3, Name: "z", ParentID: ptr64(1)},
		{ID: 4, Name: "under z", ParentID: ptr64(3)},
	}

	tree := BuildTree(folders, nil)

	require.Len(t, tree.Folders, 1)
	x := tree.Folders[0]
	require.Len(t, x.Children, 1)
	z := x.Children[0]
	assert.Equal(t, int64(3), z.ID)
	require.Len(t, z.Children, 2)
	assert.Equal(t, int64(4), z.Children[0].ID)
	assert.Equal(t, int64(2), z.Children[1].ID)
	assert.Empty(t, z.Children[1].Children)
}

func TestBuildTree_SameNameOrderedByID(t *testing.T) {
	folders := []Folder{
		{ID: 9, Name: "docs"},
		{ID: 3, Name: "Docs"},
	}

	tree := BuildTree(folders, nil)

	require.Len(t, tree.Folders, 2)
	assert.Equal(t, int64(3), tree.Folders[0].ID)
	assert.Equal(t, int64(9), tree.Folders[1].ID)
}

func TestBuildTree_Empty(t *testing.T) {
	tree := BuildTree(nil, nil)
	assert.NotNil(t, tree.Folders)
	assert.NotNil(t, tree.Files)
}
