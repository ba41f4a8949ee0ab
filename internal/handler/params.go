package handler

import (
	"net/http"
	"strconv"

	"explorer/internal/domain"
	models "explorer/internal/domain/models/explorer"
)

// parseID reads a positive integer path parameter
func parseID(r *http.Request, message string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid(message)
	}
	return id, nil
}

// parsePagination reads limit and offset from the query string.
// Neither present means no pagination; offset alone is allowed.
func parsePagination(r *http.Request) (*models.Pagination, error) {
	query := r.URL.Query()
	rawLimit, rawOffset := query.Get("limit"), query.Get("offset")
	if rawLimit == "" && rawOffset == "" {
		return nil, nil
	}

	page := &models.Pagination{}
	if rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil {
			return nil, domain.Invalid("limit must be a number.")
		}
		page.Limit = &limit
	}
	if rawOffset != "" {
		offset, err := strconv.Atoi(rawOffset)
		if err != nil {
			return nil, domain.Invalid("offset must be a number.")
		}
		page.Offset = offset
	}

	if err := page.Validate(); err != nil {
		return nil, domain.Invalid(err.Error())
	}
	return page, nil
}

// pageMeta is the {limit, offset} block of paginated list responses
type pageMeta struct {
	Limit  *int `json:"limit"`
	Offset int  `json:"offset"`
}

// metaFor returns nil when the request was not paginated so "meta" is omitted
func metaFor(page *models.Pagination) *pageMeta {
	if page == nil {
		return nil
	}
	return &pageMeta{Limit: page.LimitOrNil(), Offset: page.OffsetOrZero()}
}
