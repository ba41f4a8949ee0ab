package handler

import (
	"errors"
	"log/slog"
	"net/http"

	models "explorer/internal/domain/models/explorer"
	svc "explorer/internal/domain/services/explorer"
	"explorer/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folderService svc.FolderService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService svc.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

type folderResponse struct {
	Folder *models.Folder `json:"folder"`
}

type rootsMeta struct {
	Total  int  `json:"total"`
	Limit  *int `json:"limit"`
	Offset int  `json:"offset"`
}

type rootsResponse struct {
	Folders []models.Folder `json:"folders"`
	Meta    rootsMeta       `json:"meta"`
}

type listingResponse struct {
	Folders []models.Folder `json:"folders"`
	Files   []models.File   `json:"files"`
	Meta    *pageMeta       `json:"meta,omitempty"`
}

// createFolderBody is the POST /api/folders payload
type createFolderBody struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parentId"`
}

// updateFolderBody is the PUT /api/folders/{id} payload
type updateFolderBody struct {
	Name     *string               `json:"name"`
	ParentID httputil.OptionalInt64 `json:"parentId"`
}

// ListRoots lists root folders with the total root count
// GET /api/folders/roots
func (h *FolderHandler) ListRoots(w http.ResponseWriter, r *http.Request) {
	page, err := parsePagination(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	folders, err := h.folderService.ListRoots(r.Context(), page)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	total, err := h.folderService.CountRoots(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, rootsResponse{
		Folders: folders,
		Meta:    rootsMeta{Total: total, Limit: page.LimitOrNil(), Offset: page.OffsetOrZero()},
	})
}

// ListFolders lists all folders and all files
// GET /api/folders
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	page, err := parsePagination(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	listing, err := h.folderService.ListWithFiles(r.Context(), page)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, listingResponse{
		Folders: listing.Folders,
		Files:   listing.Files,
		Meta:    metaFor(page),
	})
}

// GetFolder retrieves a folder by ID
// GET /api/folders/{id}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "Invalid folder id.")
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	folder, err := h.folderService.GetFolder(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folderResponse{Folder: folder})
}

// ListChildren lists child folders and/or files
// GET /api/folders/{id}/children?type=all|folders|files
func (h *FolderHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "Invalid folder id.")
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	page, err := parsePagination(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	contentType := svc.ParseContentType(r.URL.Query().Get("type"))
	listing, err := h.folderService.GetContents(r.Context(), id, contentType, page)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, listingResponse{
		Folders: listing.Folders,
		Files:   listing.Files,
		Meta:    metaFor(page),
	})
}

// CreateFolder creates a new folder
// POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var body createFolderBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	folder, err := h.folderService.CreateFolder(r.Context(), &svc.CreateFolderRequest{
		Name:     body.Name,
		ParentID: body.ParentID,
	})
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folderResponse{Folder: folder})
}

// UpdateFolder renames and/or moves a folder
// PUT /api/folders/{id}
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "Invalid folder id.")
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	var body updateFolderBody
	if err := httputil.ParseJSON(w, r, &body); err != nil && !errors.Is(err, httputil.ErrEmptyBody) {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	// Map DTO to the transport-agnostic request
	folder, err := h.folderService.UpdateFolder(r.Context(), id, &svc.UpdateFolderRequest{
		Name: body.Name,
		ParentID: svc.OptionalParentID{
			Present: body.ParentID.Present,
			Value:   body.ParentID.Value,
		},
	})
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folderResponse{Folder: folder})
}

// DeleteFolder deletes a folder and everything under it
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "Invalid folder id.")
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if err := h.folderService.DeleteFolder(r.Context(), id); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondNoContent(w)
}
