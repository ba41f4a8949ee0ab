package explorer

import (
	"fmt"

	models "explorer/internal/domain/models/explorer"
)

// Cache keys. Every mutation clears the whole cache, so keys only need to be
// unique per read, not grouped for targeted invalidation.
const (
	keyRootCount = "folders:roots:count"
	keyFullTree  = "tree:full"
)

func keyAllFolders(page *models.Pagination) string {
	return "folders:all:" + page.CacheKey()
}

func keyRootFolders(page *models.Pagination) string {
	return "folders:roots:" + page.CacheKey()
}

func keyChildFolders(parentID int64, page *models.Pagination) string {
	return fmt.Sprintf("folders:children:%d:%s", parentID, page.CacheKey())
}

func keyAllFiles(page *models.Pagination) string {
	return "files:all:" + page.CacheKey()
}

func keyFolderFiles(folderID int64, page *models.Pagination) string {
	return fmt.Sprintf("files:folder:%d:%s", folderID, page.CacheKey())
}

func keySearch(params *models.SearchParams) string {
	return fmt.Sprintf("search:%s:%s:%s:%s", params.Scope, params.Match, params.Query, params.Pagination.CacheKey())
}
