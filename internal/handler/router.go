package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"explorer/internal/httputil"
	"explorer/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Handlers groups the HTTP handlers mounted by NewRouter
type Handlers struct {
	Folders *FolderHandler
	Files   *FileHandler
	Search  *SearchHandler
	Tree    *TreeHandler
	Health  *HealthHandler
}

// RouterConfig configures cross-cutting HTTP behaviour
type RouterConfig struct {
	// CORSOrigins is a comma-separated list of allowed origins
	CORSOrigins string
	Logger      *slog.Logger
}

// NewRouter builds the API router with middleware applied
func NewRouter(h Handlers, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondError(w, http.StatusNotFound, "Route not found.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed.")
	})

	r.Get("/api/health", h.Health.HealthCheck)

	// Static folder routes come before {id}
	r.Get("/api/folders", h.Folders.ListFolders)
	r.Post("/api/folders", h.Folders.CreateFolder)
	r.Get("/api/folders/roots", h.Folders.ListRoots)
	r.Get("/api/folders/tree", h.Tree.GetTree)
	r.Get("/api/folders/{id}", h.Folders.GetFolder)
	r.Put("/api/folders/{id}", h.Folders.UpdateFolder)
	r.Delete("/api/folders/{id}", h.Folders.DeleteFolder)
	r.Get("/api/folders/{id}/children", h.Folders.ListChildren)
	r.Get("/api/folders/{id}/path", h.Tree.GetPath)

	r.Get("/api/files", h.Files.ListFiles)
	r.Post("/api/files", h.Files.CreateFile)
	r.Get("/api/files/{id}", h.Files.GetFile)
	r.Put("/api/files/{id}", h.Files.UpdateFile)
	r.Delete("/api/files/{id}", h.Files.DeleteFile)

	r.Get("/api/search", h.Search.Search)
	r.Get("/api/v1/search", h.Search.Search)

	c := cors.New(cors.Options{
		AllowedOrigins:   splitOrigins(cfg.CORSOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", httputil.RequestIDHeader},
		ExposedHeaders:   []string{httputil.RequestIDHeader},
		AllowCredentials: true,
	})

	return c.Handler(r)
}

func splitOrigins(origins string) []string {
	var out []string
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}
