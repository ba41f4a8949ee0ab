package handler

import (
	"log/slog"
	"net/http"

	models "explorer/internal/domain/models/explorer"
	svc "explorer/internal/domain/services/explorer"
	"explorer/internal/httputil"
)

// TreeHandler handles HTTP requests for tree operations
type TreeHandler struct {
	treeService svc.TreeService
	logger      *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService svc.TreeService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService: treeService,
		logger:      logger,
	}
}

type pathResponse struct {
	Folders []models.Folder `json:"folders"`
}

// GetTree returns the whole nested hierarchy
// GET /api/folders/tree
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.treeService.GetTree(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}

// GetPath returns the ancestor chain of a folder, root first
// GET /api/folders/{id}/path
func (h *TreeHandler) GetPath(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "Invalid folder id.")
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	path, err := h.treeService.GetPath(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, pathResponse{Folders: path})
}
