package explorer

import (
	"fmt"

	"explorer/internal/config"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Pagination is an optional {limit, offset} window. A nil *Pagination means
// "everything"; a nil Limit with an offset means "skip offset, no cap".
type Pagination struct {
	Limit  *int `json:"limit"`
	Offset int  `json:"offset"`
}

// NewPagination builds a pagination window with a limit
func NewPagination(limit, offset int) *Pagination {
	return &Pagination{Limit: &limit, Offset: offset}
}

// Validate checks limit is within 1..MaxPageLimit and offset is not negative
func (p *Pagination) Validate() error {
	if p == nil {
		return nil
	}
	if err := validation.Validate(p.Limit,
		validation.When(p.Limit != nil,
			validation.Required.Error("limit must be a positive number."),
			validation.Min(1).Error("limit must be a positive number."),
			validation.Max(config.MaxPageLimit).Error(fmt.Sprintf("limit must be <= %d.", config.MaxPageLimit)),
		),
	); err != nil {
		return err
	}
	return validation.Validate(p.Offset,
		validation.Min(0).Error("offset must be 0 or greater."),
	)
}

// CacheKey renders the window for use in cache keys ("all" when unpaginated)
func (p *Pagination) CacheKey() string {
	if p == nil {
		return "all"
	}
	if p.Limit == nil {
		return fmt.Sprintf("-:%d", p.Offset)
	}
	return fmt.Sprintf("%d:%d", *p.Limit, p.Offset)
}

// LimitOrNil returns the limit for JSON meta output (null when unbounded)
func (p *Pagination) LimitOrNil() *int {
	if p == nil {
		return nil
	}
	return p.Limit
}

// OffsetOrZero returns the offset, 0 when unpaginated
func (p *Pagination) OffsetOrZero() int {
	if p == nil {
		return 0
	}
	return p.Offset
}

// Window returns slice bounds [start, end) for a list of n items.
// Used by in-memory stores; SQL stores translate to LIMIT/OFFSET.
func (p *Pagination) Window(n int) (int, int) {
	if p == nil {
		return 0, n
	}
	start := p.Offset
	if start > n {
		start = n
	}
	end := n
	if p.Limit != nil && start+*p.Limit < n {
		end = start + *p.Limit
	}
	return start, end
}
