package treeview

import (
	"fmt"
	"io"
	"strings"

	models "explorer/internal/domain/models/explorer"
)

// Render writes tree as an indented listing. maxDepth <= 0 means no limit;
// deeper folders are summarized as "...".
func Render(w io.Writer, tree *models.Tree, maxDepth int) error {
	type frame struct {
		node  *models.FolderTreeNode
		depth int
	}

	stack := make([]frame, 0, len(tree.Folders))
	for i := len(tree.Folders) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: tree.Folders[i]})
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		indent := strings.Repeat("  ", top.depth)

		if _, err := fmt.Fprintf(w, "%s%s/ [%d]\n", indent, top.node.Name, top.node.ID); err != nil {
			return err
		}

		if maxDepth > 0 && top.depth+1 >= maxDepth {
			if len(top.node.Children) > 0 || len(top.node.Files) > 0 {
				if _, err := fmt.Fprintf(w, "%s  ...\n", indent); err != nil {
					return err
				}
			}
			continue
		}

		for _, file := range top.node.Files {
			if _, err := fmt.Fprintf(w, "%s  %s [%d]\n", indent, file.Name, file.ID); err != nil {
				return err
			}
		}
		for i := len(top.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: top.node.Children[i], depth: top.depth + 1})
		}
	}

	for _, file := range tree.Files {
		if _, err := fmt.Fprintf(w, "? %s [%d] (folder %d missing)\n", file.Name, file.ID, file.FolderID); err != nil {
			return err
		}
	}
	return nil
}
