package explorer

import (
	"sort"
	"strings"
)

// FolderTreeNode represents a folder in the tree with nested children
type FolderTreeNode struct {
	ID       int64             `json:"id"`
	Name     string            `json:"name"`
	ParentID *int64            `json:"parentId"`
	Children []*FolderTreeNode `json:"children"` // Pointers for proper nesting
	Files    []File            `json:"files"`
}

// Tree is the full hierarchy: root folders plus files whose folder is unknown
type Tree struct {
	Folders []*FolderTreeNode `json:"folders"`
	Files   []File            `json:"files"`
}

// BuildTree nests a flat folder list by parent and attaches files to their
// folders. Siblings are ordered by name (case-insensitive), then id.
//
// Folders whose parent is missing become roots. Folders caught on a parent
// cycle are emitted once, with the first of them (in sibling order) promoted
// to a root, so the result is always a finite forest.
func BuildTree(folders []Folder, files []File) *Tree {
	nodes := make(map[int64]*FolderTreeNode, len(folders))
	ordered := make([]*FolderTreeNode, 0, len(folders))

	// First pass: create nodes
	for _, folder := range folders {
		if _, dup := nodes[folder.ID]; dup {
			continue
		}
		node := &FolderTreeNode{
			ID:       folder.ID,
			Name:     folder.Name,
			ParentID: folder.ParentID,
			Children: []*FolderTreeNode{},
			Files:    []File{},
		}
		nodes[folder.ID] = node
		ordered = append(ordered, node)
	}
	sortNodes(ordered)

	// Second pass: group children under existing parents, collect roots
	children := make(map[int64][]*FolderTreeNode)
	var roots []*FolderTreeNode
	for _, node := range ordered {
		if node.ParentID != nil {
			if _, ok := nodes[*node.ParentID]; ok {
				children[*node.ParentID] = append(children[*node.ParentID], node)
				continue
			}
		}
		roots = append(roots, node)
	}

	// Third pass: link iteratively from each root; anything left unvisited
	// hangs off a cycle and is promoted to a root
	visited := make(map[int64]bool, len(nodes))
	link := func(root *FolderTreeNode) {
		visited[root.ID] = true
		stack := []*FolderTreeNode{root}
		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, child := range children[node.ID] {
				if visited[child.ID] {
					continue
				}
				visited[child.ID] = true
				node.Children = append(node.Children, child)
				stack = append(stack, child)
			}
		}
	}
	for _, root := range roots {
		link(root)
	}
	for _, node := range ordered {
		if !visited[node.ID] {
			root := cycleHead(node, nodes)
			roots = append(roots, root)
			link(root)
		}
	}

	// Fourth pass: attach files
	sortedFiles := make([]File, len(files))
	copy(sortedFiles, files)
	sort.SliceStable(sortedFiles, func(i, j int) bool {
		return lessByName(sortedFiles[i].Name, sortedFiles[i].ID, sortedFiles[j].Name, sortedFiles[j].ID)
	})

	looseFiles := make([]File, 0)
	for _, file := range sortedFiles {
		if node, ok := nodes[file.FolderID]; ok {
			node.Files = append(node.Files, file)
		} else {
			looseFiles = append(looseFiles, file)
		}
	}

	if roots == nil {
		roots = []*FolderTreeNode{}
	}
	return &Tree{Folders: roots, Files: looseFiles}
}

// cycleHead follows parents from an unreachable node until an id repeats and
// returns the member of that cycle that sorts first. Every ancestor of an
// unreachable node is present in nodes, so the walk always closes.
func cycleHead(start *FolderTreeNode, nodes map[int64]*FolderTreeNode) *FolderTreeNode {
	seen := make(map[int64]bool)
	node := start
	for !seen[node.ID] {
		seen[node.ID] = true
		parent, ok := nodes[derefID(node.ParentID)]
		if node.ParentID == nil || !ok {
			return node
		}
		node = parent
	}

	head := node
	for member := nodes[*node.ParentID]; member.ID != node.ID; member = nodes[*member.ParentID] {
		if lessByName(member.Name, member.ID, head.Name, head.ID) {
			head = member
		}
	}
	return head
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

func sortNodes(nodes []*FolderTreeNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return lessByName(nodes[i].Name, nodes[i].ID, nodes[j].Name, nodes[j].ID)
	})
}

func lessByName(nameA string, idA int64, nameB string, idB int64) bool {
	a, b := strings.ToLower(nameA), strings.ToLower(nameB)
	if a != b {
		return a < b
	}
	return idA < idB
}
