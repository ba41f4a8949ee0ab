package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"explorer/internal/client"
	models "explorer/internal/domain/models/explorer"
	"explorer/internal/treeview"
)

type cli struct {
	api *client.Client
	out io.Writer
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseIDArg(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	return id, nil
}

func argCount(fs *flag.FlagSet, n int) error {
	if fs.NArg() != n {
		return fmt.Errorf("%s: expected %d argument(s), got %d", fs.Name(), n, fs.NArg())
	}
	return nil
}

func (c *cli) tree(ctx context.Context, args []string) error {
	fs := newFlags("tree")
	all := fs.Bool("all", false, "load the whole tree in one request")
	depth := fs.Int("depth", 2, "levels to show (0 = unlimited)")
	limit := fs.Int("limit", 50, "root folders to load")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store := treeview.New(c.api)
	if *all {
		if err := store.LoadAll(ctx); err != nil {
			return err
		}
		return treeview.Render(c.out, store.Tree(), *depth)
	}

	total, err := store.LoadRoots(ctx, models.NewPagination(*limit, 0))
	if err != nil {
		return err
	}
	if err := expand(ctx, store, *depth); err != nil {
		return err
	}
	if err := treeview.Render(c.out, store.Tree(), *depth); err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.out, "(%d root folders)\n", total)
	return err
}

// expand lazily loads children level by level until depth
func expand(ctx context.Context, store *treeview.Store, depth int) error {
	level := store.Tree().Folders
	for d := 1; len(level) > 0 && (depth <= 0 || d < depth); d++ {
		for _, node := range level {
			if err := store.LoadChildren(ctx, node.ID); err != nil {
				return err
			}
		}

		ids := make(map[int64]bool, len(level))
		for _, node := range level {
			ids[node.ID] = true
		}
		var next []*models.FolderTreeNode
		stack := store.Tree().Folders
		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if node.ParentID != nil && ids[*node.ParentID] {
				next = append(next, node)
			}
			stack = append(stack, node.Children...)
		}
		level = next
	}
	return nil
}

func (c *cli) ls(ctx context.Context, args []string) error {
	fs := newFlags("ls")
	contentType := fs.String("type", "all", "all, folders or files")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := argCount(fs, 1); err != nil {
		return err
	}
	id, err := parseIDArg(fs.Arg(0))
	if err != nil {
		return err
	}

	listing, err := c.api.ListChildren(ctx, id, *contentType, nil)
	if err != nil {
		return err
	}
	for _, folder := range listing.Folders {
		fmt.Fprintf(c.out, "%s/ [%d]\n", folder.Name, folder.ID)
	}
	for _, file := range listing.Files {
		fmt.Fprintf(c.out, "%s [%d]\n", file.Name, file.ID)
	}
	return nil
}

func (c *cli) path(ctx context.Context, args []string) error {
	fs := newFlags("path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := argCount(fs, 1); err != nil {
		return err
	}
	id, err := parseIDArg(fs.Arg(0))
	if err != nil {
		return err
	}

	chain, err := treeview.New(c.api).LoadPath(ctx, id)
	if err != nil {
		return err
	}
	names := make([]string, len(chain))
	for i, folder := range chain {
		names[i] = folder.Name
	}
	fmt.Fprintln(c.out, "/"+strings.Join(names, "/"))
	return nil
}

func (c *cli) search(ctx context.Context, args []string) error {
	fs := newFlags("search")
	scope := fs.String("scope", "all", "all, folders or files")
	match := fs.String("match", "prefix", "prefix or contains")
	limit := fs.Int("limit", 20, "results per type")
	offset := fs.Int("offset", 0, "results to skip")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("search: query required")
	}

	params := models.SearchParams{
		Query:      strings.Join(fs.Args(), " "),
		Scope:      models.ParseSearchScope(*scope),
		Match:      models.ParseMatchMode(*match),
		Pagination: models.NewPagination(*limit, *offset),
	}
	page, err := c.api.Search(ctx, params)
	if err != nil {
		return err
	}

	for _, folder := range page.Folders {
		fmt.Fprintf(c.out, "folder %s [%d]\n", folder.Name, folder.ID)
	}
	for _, file := range page.Files {
		fmt.Fprintf(c.out, "file   %s [%d] in %d\n", file.Name, file.ID, file.FolderID)
	}

	results := page.Results()
	fmt.Fprintf(c.out, "%d folders, %d files match\n", results.Totals.Folders, results.Totals.Files)
	if next := *offset + *limit; results.HasMore(params.Scope, next) {
		fmt.Fprintf(c.out, "more results: -offset %d\n", next)
	}
	return nil
}

func (c *cli) mkdir(ctx context.Context, args []string) error {
	fs := newFlags("mkdir")
	parent := fs.Int64("parent", 0, "parent folder id (0 = root)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := argCount(fs, 1); err != nil {
		return err
	}

	var parentID *int64
	if *parent != 0 {
		parentID = parent
	}
	folder, err := c.api.CreateFolder(ctx, fs.Arg(0), parentID)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "created folder %s [%d]\n", folder.Name, folder.ID)
	return nil
}

func (c *cli) touch(ctx context.Context, args []string) error {
	fs := newFlags("touch")
	folderID := fs.Int64("folder", 0, "folder id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := argCount(fs, 1); err != nil {
		return err
	}
	if *folderID <= 0 {
		return errors.New("touch: -folder is required")
	}

	file, err := c.api.CreateFile(ctx, fs.Arg(0), *folderID)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "created file %s [%d]\n", file.Name, file.ID)
	return nil
}

func (c *cli) mv(ctx context.Context, args []string) error {
	fs := newFlags("mv")
	isFile := fs.Bool("file", false, "move a file instead of a folder")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := argCount(fs, 2); err != nil {
		return err
	}
	id, err := parseIDArg(fs.Arg(0))
	if err != nil {
		return err
	}

	if *isFile {
		target, err := parseIDArg(fs.Arg(1))
		if err != nil {
			return err
		}
		file, err := c.api.UpdateFile(ctx, id, client.FileUpdate{FolderID: &target})
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "moved file %s into %d\n", file.Name, file.FolderID)
		return nil
	}

	update := client.FolderUpdate{Move: true}
	if fs.Arg(1) != "root" {
		target, err := parseIDArg(fs.Arg(1))
		if err != nil {
			return err
		}
		update.MoveTo = &target
	}
	folder, err := c.api.UpdateFolder(ctx, id, update)
	if err != nil {
		return err
	}
	if folder.IsRoot() {
		fmt.Fprintf(c.out, "moved folder %s to root\n", folder.Name)
	} else {
		fmt.Fprintf(c.out, "moved folder %s into %d\n", folder.Name, *folder.ParentID)
	}
	return nil
}

func (c *cli) rename(ctx context.Context, args []string) error {
	fs := newFlags("rename")
	isFile := fs.Bool("file", false, "rename a file instead of a folder")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := argCount(fs, 2); err != nil {
		return err
	}
	id, err := parseIDArg(fs.Arg(0))
	if err != nil {
		return err
	}
	name := fs.Arg(1)

	if *isFile {
		file, err := c.api.UpdateFile(ctx, id, client.FileUpdate{Name: &name})
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "renamed file [%d] to %s\n", file.ID, file.Name)
		return nil
	}

	folder, err := c.api.UpdateFolder(ctx, id, client.FolderUpdate{Name: &name})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "renamed folder [%d] to %s\n", folder.ID, folder.Name)
	return nil
}

func (c *cli) rm(ctx context.Context, args []string) error {
	fs := newFlags("rm")
	isFile := fs.Bool("file", false, "delete a file instead of a folder")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := argCount(fs, 1); err != nil {
		return err
	}
	id, err := parseIDArg(fs.Arg(0))
	if err != nil {
		return err
	}

	if *isFile {
		if err := c.api.DeleteFile(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(c.out, "deleted file %d\n", id)
		return nil
	}

	if err := c.api.DeleteFolder(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "deleted folder %d and everything under it\n", id)
	return nil
}
