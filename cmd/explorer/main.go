package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"explorer/internal/client"

	"github.com/joho/godotenv"
)

const usage = `usage: explorer <command> [flags] [args]

commands:
  tree   [-all] [-depth N] [-limit N]   show the folder tree
  ls     [-type all|folders|files] <id> list folder contents
  path   <id>                           show the path to a folder
  search [-scope S] [-match M] [-limit N] [-offset N] <query>
  mkdir  [-parent id] <name>            create a folder
  touch  -folder id <name>              create a file record
  mv     [-file] <id> <target|root>     move a folder (or file) under target
  rename [-file] <id> <name>            rename a folder (or file)
  rm     [-file] <id>                   delete a folder subtree (or file)

The API address is read from EXPLORER_URL (default http://localhost:8080).
`

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	baseURL := os.Getenv("EXPLORER_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	if err := run(ctx, client.New(baseURL), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run dispatches one CLI command
func run(ctx context.Context, api *client.Client, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return nil
	}

	cli := &cli{api: api, out: out}
	name, rest := args[0], args[1:]

	switch name {
	case "tree":
		return cli.tree(ctx, rest)
	case "ls":
		return cli.ls(ctx, rest)
	case "path":
		return cli.path(ctx, rest)
	case "search":
		return cli.search(ctx, rest)
	case "mkdir":
		return cli.mkdir(ctx, rest)
	case "touch":
		return cli.touch(ctx, rest)
	case "mv":
		return cli.mv(ctx, rest)
	case "rename":
		return cli.rename(ctx, rest)
	case "rm":
		return cli.rm(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q", name)
	}
}
