package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"explorer/internal/config"
	"explorer/internal/repository/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	defaults := DefaultPlan()

	// Parse command-line flags
	folders := flag.Int("folders", defaults.Folders, "Number of folders to create")
	files := flag.Int("files", defaults.Files, "Number of files to create")
	maxDepth := flag.Int("max-depth", defaults.MaxDepth, "Maximum folder nesting depth")
	batch := flag.Int("batch", defaults.Batch, "Rows per COPY batch")
	roots := flag.Int("roots", defaults.Roots, "Number of leading folders forced to the root")
	seed := flag.Uint64("seed", 0, "Random seed (0 picks one)")
	planFile := flag.String("plan", "", "YAML plan file; flags given explicitly override it")
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed data")
	clearData := flag.Bool("clear-data", false, "Clear all folders and files (keep schema)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: Cannot run destructive operations (-drop-tables or -clear-data) in production environment")
	}

	plan := defaults
	if *planFile != "" {
		var err error
		if plan, err = loadPlan(*planFile, plan); err != nil {
			log.Fatalf("Failed to load plan: %v", err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "folders":
			plan.Folders = *folders
		case "files":
			plan.Files = *files
		case "max-depth":
			plan.MaxDepth = *maxDepth
		case "batch":
			plan.Batch = *batch
		case "roots":
			plan.Roots = *roots
		case "seed":
			plan.Seed = *seed
		}
	})
	if err := plan.Validate(); err != nil {
		log.Fatalf("Invalid plan: %v", err)
	}

	logger := config.NewLogger(cfg, os.Stdout)
	runID := uuid.NewString()
	logger = logger.With("run_id", runID)

	switch {
	case *clearData:
		log.Printf("🧹 Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	case *schemaOnly:
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	default:
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := postgres.DropTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	// Run schema to ensure tables exist
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		return
	}

	log.Println("🧹 Clearing existing folders and files...")
	if err := postgres.ClearData(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to clear data: %v", err)
	}
	if *clearData {
		log.Println("✅ Data cleared successfully")
		return
	}

	logger.Info("seed plan",
		"folders", plan.Folders,
		"files", plan.Files,
		"max_depth", plan.MaxDepth,
		"batch", plan.Batch,
		"roots", plan.Roots,
	)

	start := time.Now()
	gen := newGenerator(plan)
	s := &seeder{pool: pool, tables: tables, plan: plan, gen: gen, logger: logger}

	folderIDs, err := s.seedFolders(ctx)
	if err != nil {
		log.Fatalf("Failed to seed folders: %v", err)
	}
	if err := s.seedFiles(ctx, folderIDs); err != nil {
		log.Fatalf("Failed to seed files: %v", err)
	}
	if err := s.showStats(ctx); err != nil {
		log.Printf("Warning: could not read stats: %v", err)
	}

	log.Printf("🎉 Seed completed in %s", time.Since(start).Round(time.Millisecond))
}

type seeder struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	plan   Plan
	gen    *generator
	logger *slog.Logger
}

// reserveIDs takes n values from the folder id sequence so parents can be
// referenced inside the same COPY batch
func (s *seeder) reserveIDs(ctx context.Context, n int) ([]int64, error) {
	rows, err := s.pool.Query(ctx,
		fmt.Sprintf(`SELECT nextval(pg_get_serial_sequence('%s', 'id')) FROM generate_series(1, $1)`, s.tables.Folders),
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("reserve ids: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

func (s *seeder) seedFolders(ctx context.Context) ([]int64, error) {
	ids := make([]int64, 0, s.plan.Folders)
	now := time.Now()

	for batchStart := 0; batchStart < s.plan.Folders; batchStart += s.plan.Batch {
		batchEnd := min(batchStart+s.plan.Batch, s.plan.Folders)

		reserved, err := s.reserveIDs(ctx, batchEnd-batchStart)
		if err != nil {
			return nil, err
		}

		rows := make([][]any, 0, len(reserved))
		for i := batchStart; i < batchEnd; i++ {
			id := reserved[i-batchStart]
			ids = append(ids, id)

			var parentID *int64
			if parent := s.gen.nextParent(i, i); parent >= 0 {
				pid := ids[parent]
				parentID = &pid
			}
			rows = append(rows, []any{id, s.gen.folderName(i), parentID, now, now})
		}

		if _, err := s.pool.CopyFrom(ctx,
			pgx.Identifier{s.tables.Folders},
			[]string{"id", "name", "parent_id", "created_at", "updated_at"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return nil, fmt.Errorf("copy folders: %w", err)
		}

		s.logger.Info("folders progress", "created", batchEnd, "total", s.plan.Folders)
	}

	return ids, nil
}

func (s *seeder) seedFiles(ctx context.Context, folderIDs []int64) error {
	now := time.Now()

	for batchStart := 0; batchStart < s.plan.Files; batchStart += s.plan.Batch {
		batchEnd := min(batchStart+s.plan.Batch, s.plan.Files)

		rows := make([][]any, 0, batchEnd-batchStart)
		for i := batchStart; i < batchEnd; i++ {
			folderID := folderIDs[s.gen.rng.IntN(len(folderIDs))]
			rows = append(rows, []any{s.gen.fileName(i), folderID, now, now})
		}

		if _, err := s.pool.CopyFrom(ctx,
			pgx.Identifier{s.tables.Files},
			[]string{"name", "folder_id", "created_at", "updated_at"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return fmt.Errorf("copy files: %w", err)
		}

		s.logger.Info("files progress", "created", batchEnd, "total", s.plan.Files)
	}

	return nil
}

// showStats reads the three counts in one round trip
func (s *seeder) showStats(ctx context.Context) error {
	batch := &pgx.Batch{}
	var folders, roots, files int
	batch.Queue(fmt.Sprintf("SELECT COUNT(*) FROM %s", s.tables.Folders)).QueryRow(func(row pgx.Row) error {
		return row.Scan(&folders)
	})
	batch.Queue(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE parent_id IS NULL", s.tables.Folders)).QueryRow(func(row pgx.Row) error {
		return row.Scan(&roots)
	})
	batch.Queue(fmt.Sprintf("SELECT COUNT(*) FROM %s", s.tables.Files)).QueryRow(func(row pgx.Row) error {
		return row.Scan(&files)
	})

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}

	avg := 0.0
	if folders > 0 {
		avg = float64(files) / float64(folders)
	}
	s.logger.Info("database statistics",
		"folders", folders,
		"root_folders", roots,
		"files", files,
		"avg_files_per_folder", fmt.Sprintf("%.1f", avg),
	)
	return nil
}
