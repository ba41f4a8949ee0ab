package explorer

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SearchScope selects which entity types a search targets
type SearchScope string

const (
	SearchScopeAll     SearchScope = "all"
	SearchScopeFolders SearchScope = "folders"
	SearchScopeFiles   SearchScope = "files"
)

// MatchMode selects prefix or substring matching on names
type MatchMode string

const (
	MatchPrefix   MatchMode = "prefix"
	MatchContains MatchMode = "contains"
)

// ParseSearchScope maps a query value to a scope; unknown values search everything
func ParseSearchScope(value string) SearchScope {
	switch SearchScope(value) {
	case SearchScopeFolders, SearchScopeFiles:
		return SearchScope(value)
	default:
		return SearchScopeAll
	}
}

// ParseMatchMode maps a query value to a match mode; unknown values match by prefix
func ParseMatchMode(value string) MatchMode {
	if MatchMode(value) == MatchContains {
		return MatchContains
	}
	return MatchPrefix
}

func (s SearchScope) IncludesFolders() bool { return s != SearchScopeFiles }
func (s SearchScope) IncludesFiles() bool   { return s != SearchScopeFolders }

// SearchParams configures a name search
type SearchParams struct {
	Query      string
	Scope      SearchScope
	Match      MatchMode
	Pagination *Pagination
}

// ApplyDefaults fills in unset scope and match mode
func (p *SearchParams) ApplyDefaults() {
	if p.Scope == "" {
		p.Scope = SearchScopeAll
	}
	if p.Match == "" {
		p.Match = MatchPrefix
	}
}

// Validate checks the query is present and the window is in range
func (p *SearchParams) Validate() error {
	p.Query = strings.TrimSpace(p.Query)
	if err := validation.Validate(p.Query,
		validation.Required.Error("Search query is required."),
	); err != nil {
		return err
	}
	if err := validation.Validate(string(p.Scope),
		validation.In(string(SearchScopeAll), string(SearchScopeFolders), string(SearchScopeFiles)).Error("invalid search scope."),
	); err != nil {
		return err
	}
	if err := validation.Validate(string(p.Match),
		validation.In(string(MatchPrefix), string(MatchContains)).Error("invalid match mode."),
	); err != nil {
		return err
	}
	return p.Pagination.Validate()
}

// SearchTotals holds unpaginated match counts per entity type
type SearchTotals struct {
	Folders int `json:"folders"`
	Files   int `json:"files"`
}

// SearchResults is one page of matches per entity type plus the totals.
// Types outside the scope are empty lists with a zero total, never omitted.
type SearchResults struct {
	Folders []Folder     `json:"folders"`
	Files   []File       `json:"files"`
	Totals  SearchTotals `json:"totals"`
}

// HasMore reports whether a page starting at nextOffset would return anything
func (r *SearchResults) HasMore(scope SearchScope, nextOffset int) bool {
	switch scope {
	case SearchScopeFolders:
		return nextOffset < r.Totals.Folders
	case SearchScopeFiles:
		return nextOffset < r.Totals.Files
	default:
		return nextOffset < r.Totals.Folders || nextOffset < r.Totals.Files
	}
}

// Total is the combined match count for the scope
func (r *SearchResults) Total(scope SearchScope) int {
	switch scope {
	case SearchScopeFolders:
		return r.Totals.Folders
	case SearchScopeFiles:
		return r.Totals.Files
	default:
		return r.Totals.Folders + r.Totals.Files
	}
}
