package explorer

import (
	"fmt"
	"strings"

	models "explorer/internal/domain/models/explorer"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// nameFilter matches the lower(name) text_pattern_ops indexes, so prefix
// searches can use them. The pattern must come from namePattern.
const nameFilter = `lower(name) LIKE $1 ESCAPE '\'`

// namePattern builds a lower-cased LIKE pattern with the user's wildcards escaped
func namePattern(query string, match models.MatchMode) string {
	escaped := likeEscaper.Replace(strings.ToLower(query))
	if match == models.MatchContains {
		return "%" + escaped + "%"
	}
	return escaped + "%"
}

// withPagination appends LIMIT/OFFSET placeholders numbered after args
func withPagination(query string, args []any, page *models.Pagination) (string, []any) {
	if page == nil {
		return query, args
	}
	if page.Limit != nil {
		args = append(args, *page.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if page.Offset > 0 {
		args = append(args, page.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}
