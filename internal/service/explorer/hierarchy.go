package explorer

import (
	"context"
	"errors"

	"explorer/internal/config"
	"explorer/internal/domain"
	models "explorer/internal/domain/models/explorer"
)

// ParentLookup resolves a folder's parent link. FolderRepository satisfies it.
type ParentLookup interface {
	GetParentID(ctx context.Context, id int64) (*int64, error)
}

// DetectsCycle reports whether making candidateParentID the parent of
// folderID would make folderID its own ancestor. It walks up from the
// candidate until it reaches a root or folderID.
//
// The walk is bounded by config.MaxHierarchyDepth and stops on a repeated
// node, so it terminates on data that already holds a cycle. Both cases
// count as a cycle. A dangling parent link ends the chain.
func DetectsCycle(ctx context.Context, folderID, candidateParentID int64, lookup ParentLookup) (bool, error) {
	visited := make(map[int64]struct{})
	current := &candidateParentID

	for steps := 0; current != nil; steps++ {
		if *current == folderID {
			return true, nil
		}
		if steps >= config.MaxHierarchyDepth {
			return true, nil
		}
		if _, seen := visited[*current]; seen {
			return true, nil
		}
		visited[*current] = struct{}{}

		parentID, err := lookup.GetParentID(ctx, *current)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return false, nil
			}
			return false, err
		}
		current = parentID
	}

	return false, nil
}

// CollectDescendants returns rootID and every folder below it, in no
// particular order. The traversal is iterative and visits each id once.
func CollectDescendants(rootID int64, nodes []models.FolderNode) []int64 {
	childMap := make(map[int64][]int64)
	for _, node := range nodes {
		if node.ParentID != nil {
			childMap[*node.ParentID] = append(childMap[*node.ParentID], node.ID)
		}
	}

	visited := map[int64]struct{}{rootID: {}}
	result := make([]int64, 0, 1)
	stack := []int64{rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		result = append(result, id)

		for _, child := range childMap[id] {
			if _, seen := visited[child]; seen {
				continue
			}
			visited[child] = struct{}{}
			stack = append(stack, child)
		}
	}

	return result
}
