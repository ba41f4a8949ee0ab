package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	models "explorer/internal/domain/models/explorer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewWithHTTPClient(srv.URL+"/", srv.Client())
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestGetFolder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/folders/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "7" {
			writeJSON(w, http.StatusNotFound, `{"error":"Folder not found."}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"folder":{"id":7,"name":"docs","parentId":1}}`)
	})
	c := newServer(t, mux)

	folder, err := c.GetFolder(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "docs", folder.Name)
	require.NotNil(t, folder.ParentID)
	assert.Equal(t, int64(1), *folder.ParentID)

	_, err = c.GetFolder(context.Background(), 8)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Folder not found.", apiErr.Message)
}

func TestAPIError_NonJSONBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})
	c := newServer(t, mux)

	err := c.Health(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
	assert.False(t, IsNotFound(err))
}

func TestUpdateFolder_ParentEncoding(t *testing.T) {
	var got map[string]json.RawMessage
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/folders/{id}", func(w http.ResponseWriter, r *http.Request) {
		got = nil
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, `{"folder":{"id":2,"name":"b","parentId":null}}`)
	})
	c := newServer(t, mux)
	ctx := context.Background()
	name := "b"

	_, err := c.UpdateFolder(ctx, 2, FolderUpdate{Move: true})
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage("null"), got["parentId"])
	assert.NotContains(t, got, "name")

	_, err = c.UpdateFolder(ctx, 2, FolderUpdate{Name: &name})
	require.NoError(t, err)
	assert.NotContains(t, got, "parentId")
	assert.Equal(t, json.RawMessage(`"b"`), got["name"])

	target := int64(5)
	_, err = c.UpdateFolder(ctx, 2, FolderUpdate{Move: true, MoveTo: &target})
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage("5"), got["parentId"])
}

func TestDeleteFolder_NoContent(t *testing.T) {
	var deleted string
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/folders/{id}", func(w http.ResponseWriter, r *http.Request) {
		deleted = r.PathValue("id")
		w.WriteHeader(http.StatusNoContent)
	})
	c := newServer(t, mux)

	require.NoError(t, c.DeleteFolder(context.Background(), 12))
	assert.Equal(t, "12", deleted)
}

func TestSearch_QueryParameters(t *testing.T) {
	var query map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/search", func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		writeJSON(w, http.StatusOK, `{
			"folders":[{"id":1,"name":"Reports","parentId":null}],
			"files":[],
			"meta":{"query":"Rep","scope":"folders","match":"prefix","limit":1,"offset":0,"total":{"folders":2,"files":0}}
		}`)
	})
	c := newServer(t, mux)

	page, err := c.Search(context.Background(), models.SearchParams{
		Query:      "Rep & co",
		Scope:      models.SearchScopeFolders,
		Pagination: models.NewPagination(1, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"q": "Rep & co", "scope": "folders", "limit": "1", "offset": "0"}, query)
	assert.Equal(t, 2, page.Meta.Total.Folders)
	assert.True(t, page.Results().HasMore(models.SearchScopeFolders, 1))
	assert.False(t, page.Results().HasMore(models.SearchScopeFolders, 2))
}

func TestListChildren(t *testing.T) {
	var rawQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/folders/{id}/children", func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, `{"folders":[{"id":3,"name":"c","parentId":1}],"files":[{"id":9,"name":"f","folderId":1}]}`)
	})
	c := newServer(t, mux)

	listing, err := c.ListChildren(context.Background(), 1, "all", nil)
	require.NoError(t, err)
	assert.Equal(t, "type=all", rawQuery)
	assert.Len(t, listing.Folders, 1)
	assert.Len(t, listing.Files, 1)
	assert.Nil(t, listing.Meta)
}

func TestCreateFile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/files", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name     string `json:"name"`
			FolderID int64  `json:"folderId"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.FolderID == 404 {
			writeJSON(w, http.StatusNotFound, `{"error":"Folder not found."}`)
			return
		}
		writeJSON(w, http.StatusCreated, `{"file":{"id":1,"name":"`+body.Name+`","folderId":2}}`)
	})
	c := newServer(t, mux)

	file, err := c.CreateFile(context.Background(), "a.txt", 2)
	require.NoError(t, err)
	assert.Equal(t, "a.txt", file.Name)

	_, err = c.CreateFile(context.Background(), "a.txt", 404)
	assert.True(t, IsNotFound(err))
}
