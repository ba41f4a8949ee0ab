package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"explorer/internal/cache"
	"explorer/internal/config"
	"explorer/internal/handler"
	"explorer/internal/repository/postgres"
	postgresExplorer "explorer/internal/repository/postgres/explorer"
	serviceExplorer "explorer/internal/service/explorer"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup structured logging
	logOut, closeLog, err := config.LogWriter(cfg)
	if err != nil {
		log.Fatalf("Failed to set up log file: %v", err)
	}
	defer func() { _ = closeLog() }()

	logger := config.NewLogger(cfg, logOut)
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	maxConns, minConns := postgres.PoolStats(pool)
	logger.Info("database connected",
		"max_conns", maxConns,
		"min_conns", minConns,
	)

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	if cfg.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to apply schema: %v", err)
		}
		logger.Info("schema ready", "folders", tables.Folders, "files", tables.Files)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgresExplorer.NewFolderRepository(repoConfig)
	fileRepo := postgresExplorer.NewFileRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// One read cache shared by every service; any mutation clears it
	readCache := cache.New(cfg.CacheTTL, cfg.CacheMaxEntries)

	// Create services
	folderService := serviceExplorer.NewFolderService(folderRepo, fileRepo, txManager, readCache, logger)
	fileService := serviceExplorer.NewFileService(fileRepo, folderRepo, readCache, logger)
	searchService := serviceExplorer.NewSearchService(folderRepo, fileRepo, readCache, logger)
	treeService := serviceExplorer.NewTreeService(folderRepo, fileRepo, readCache, logger)

	logger.Info("services initialized",
		"cache_ttl", cfg.CacheTTL.String(),
		"cache_max_entries", cfg.CacheMaxEntries,
	)

	// Create handlers and router
	router := handler.NewRouter(handler.Handlers{
		Folders: handler.NewFolderHandler(folderService, logger),
		Files:   handler.NewFileHandler(fileService, logger),
		Search:  handler.NewSearchHandler(searchService, logger),
		Tree:    handler.NewTreeHandler(treeService, logger),
		Health:  handler.NewHealthHandler(pool, logger),
	}, handler.RouterConfig{
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatalf("Failed to start server: %v", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
