package handler

import (
	"errors"
	"log/slog"
	"net/http"

	models "explorer/internal/domain/models/explorer"
	svc "explorer/internal/domain/services/explorer"
	"explorer/internal/httputil"
)

// FileHandler handles file HTTP requests
type FileHandler struct {
	fileService svc.FileService
	logger      *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService svc.FileService, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		logger:      logger,
	}
}

type fileResponse struct {
	File *models.File `json:"file"`
}

type filesResponse struct {
	Files []models.File `json:"files"`
	Meta  *pageMeta     `json:"meta,omitempty"`
}

// ListFiles lists all files
// GET /api/files
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	page, err := parsePagination(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	files, err := h.fileService.ListAll(r.Context(), page)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, filesResponse{Files: files, Meta: metaFor(page)})
}

// GetFile retrieves a file by ID
// GET /api/files/{id}
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "Invalid file id.")
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	file, err := h.fileService.GetFile(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, fileResponse{File: file})
}

// CreateFile creates a file record
// POST /api/files
func (h *FileHandler) CreateFile(w http.ResponseWriter, r *http.Request) {
	var req svc.CreateFileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	file, err := h.fileService.CreateFile(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, fileResponse{File: file})
}

// UpdateFile renames and/or moves a file
// PUT /api/files/{id}
func (h *FileHandler) UpdateFile(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "Invalid file id.")
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	var req svc.UpdateFileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil && !errors.Is(err, httputil.ErrEmptyBody) {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	file, err := h.fileService.UpdateFile(r.Context(), id, &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, fileResponse{File: file})
}

// DeleteFile deletes a file
// DELETE /api/files/{id}
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "Invalid file id.")
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if err := h.fileService.DeleteFile(r.Context(), id); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondNoContent(w)
}
