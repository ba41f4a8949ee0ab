package handler

import (
	"log/slog"
	"net/http"

	models "explorer/internal/domain/models/explorer"
	svc "explorer/internal/domain/services/explorer"
	"explorer/internal/httputil"
)

// SearchHandler handles name search requests
type SearchHandler struct {
	searchService svc.SearchService
	logger        *slog.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService svc.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

type searchMeta struct {
	Query  string              `json:"query"`
	Scope  models.SearchScope  `json:"scope"`
	Match  models.MatchMode    `json:"match"`
	Limit  *int                `json:"limit"`
	Offset int                 `json:"offset"`
	Total  models.SearchTotals `json:"total"`
}

type searchResponse struct {
	Folders []models.Folder `json:"folders"`
	Files   []models.File   `json:"files"`
	Meta    searchMeta      `json:"meta"`
}

// Search finds folders and files by name
// GET /api/search?q=&scope=&match=&limit=&offset=
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := parsePagination(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	params := &models.SearchParams{
		Query:      query.Get("q"),
		Scope:      models.ParseSearchScope(query.Get("scope")),
		Match:      models.ParseMatchMode(query.Get("match")),
		Pagination: page,
	}

	results, err := h.searchService.Search(r.Context(), params)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, searchResponse{
		Folders: results.Folders,
		Files:   results.Files,
		Meta: searchMeta{
			Query:  params.Query,
			Scope:  params.Scope,
			Match:  params.Match,
			Limit:  page.LimitOrNil(),
			Offset: page.OffsetOrZero(),
			Total:  results.Totals,
		},
	})
}
