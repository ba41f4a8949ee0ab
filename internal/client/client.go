package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	models "explorer/internal/domain/models/explorer"
)

// DefaultTimeout is the default HTTP timeout for API requests
const DefaultTimeout = 15 * time.Second

// APIError is a non-2xx response decoded from the API's {"error": ...} body
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client is a typed client for the explorer HTTP API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API served at baseURL (e.g. http://localhost:8080)
func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: DefaultTimeout})
}

// NewWithHTTPClient creates a client with a custom HTTP client
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// PageMeta is the {limit, offset} block of paginated listings
type PageMeta struct {
	Limit  *int `json:"limit"`
	Offset int  `json:"offset"`
}

// RootsPage is the response of ListRoots
type RootsPage struct {
	Folders []models.Folder `json:"folders"`
	Meta    struct {
		Total  int  `json:"total"`
		Limit  *int `json:"limit"`
		Offset int  `json:"offset"`
	} `json:"meta"`
}

// Listing is a set of folders and files, with meta when paginated
type Listing struct {
	Folders []models.Folder `json:"folders"`
	Files   []models.File   `json:"files"`
	Meta    *PageMeta       `json:"meta,omitempty"`
}

// SearchMeta echoes the effective search parameters and totals
type SearchMeta struct {
	Query  string              `json:"query"`
	Scope  models.SearchScope  `json:"scope"`
	Match  models.MatchMode    `json:"match"`
	Limit  *int                `json:"limit"`
	Offset int                 `json:"offset"`
	Total  models.SearchTotals `json:"total"`
}

// SearchPage is one page of search results
type SearchPage struct {
	Folders []models.Folder `json:"folders"`
	Files   []models.File   `json:"files"`
	Meta    SearchMeta      `json:"meta"`
}

// Results converts the page into the domain result type
func (p *SearchPage) Results() *models.SearchResults {
	return &models.SearchResults{Folders: p.Folders, Files: p.Files, Totals: p.Meta.Total}
}

// FolderUpdate is a rename and/or move. MoveTo is only sent when Move is set;
// Move with a nil MoveTo moves the folder to the root.
type FolderUpdate struct {
	Name   *string
	Move   bool
	MoveTo *int64
}

func (u FolderUpdate) body() map[string]interface{} {
	payload := map[string]interface{}{}
	if u.Name != nil {
		payload["name"] = *u.Name
	}
	if u.Move {
		payload["parentId"] = u.MoveTo // nil marshals as null
	}
	return payload
}

// FileUpdate is a rename and/or move of a file; nil fields are left unchanged
type FileUpdate struct {
	Name     *string `json:"name,omitempty"`
	FolderID *int64  `json:"folderId,omitempty"`
}

// Health checks the API is up
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil, nil)
}

// ListRoots lists root folders
func (c *Client) ListRoots(ctx context.Context, page *models.Pagination) (*RootsPage, error) {
	var out RootsPage
	if err := c.do(ctx, http.MethodGet, "/api/folders/roots", pageQuery(page), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFolders lists every folder and every file
func (c *Client) ListFolders(ctx context.Context, page *models.Pagination) (*Listing, error) {
	var out Listing
	if err := c.do(ctx, http.MethodGet, "/api/folders", pageQuery(page), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTree fetches the whole nested hierarchy
func (c *Client) GetTree(ctx context.Context) (*models.Tree, error) {
	var out models.Tree
	if err := c.do(ctx, http.MethodGet, "/api/folders/tree", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFolder fetches one folder
func (c *Client) GetFolder(ctx context.Context, id int64) (*models.Folder, error) {
	var out struct {
		Folder *models.Folder `json:"folder"`
	}
	if err := c.do(ctx, http.MethodGet, folderPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Folder, nil
}

// ListChildren lists the contents of a folder; contentType is all, folders or files
func (c *Client) ListChildren(ctx context.Context, id int64, contentType string, page *models.Pagination) (*Listing, error) {
	query := pageQuery(page)
	if contentType != "" {
		query.Set("type", contentType)
	}
	var out Listing
	if err := c.do(ctx, http.MethodGet, folderPath(id)+"/children", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPath fetches the ancestor chain of a folder, root first
func (c *Client) GetPath(ctx context.Context, id int64) ([]models.Folder, error) {
	var out struct {
		Folders []models.Folder `json:"folders"`
	}
	if err := c.do(ctx, http.MethodGet, folderPath(id)+"/path", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Folders, nil
}

// CreateFolder creates a folder; a nil parentID creates a root
func (c *Client) CreateFolder(ctx context.Context, name string, parentID *int64) (*models.Folder, error) {
	payload := map[string]interface{}{"name": name, "parentId": parentID}
	var out struct {
		Folder *models.Folder `json:"folder"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/folders", nil, payload, &out); err != nil {
		return nil, err
	}
	return out.Folder, nil
}

// UpdateFolder renames and/or moves a folder
func (c *Client) UpdateFolder(ctx context.Context, id int64, update FolderUpdate) (*models.Folder, error) {
	var out struct {
		Folder *models.Folder `json:"folder"`
	}
	if err := c.do(ctx, http.MethodPut, folderPath(id), nil, update.body(), &out); err != nil {
		return nil, err
	}
	return out.Folder, nil
}

// DeleteFolder deletes a folder and its subtree
func (c *Client) DeleteFolder(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, folderPath(id), nil, nil, nil)
}

// ListFiles lists every file
func (c *Client) ListFiles(ctx context.Context, page *models.Pagination) ([]models.File, error) {
	var out struct {
		Files []models.File `json:"files"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/files", pageQuery(page), nil, &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

// GetFile fetches one file
func (c *Client) GetFile(ctx context.Context, id int64) (*models.File, error) {
	var out struct {
		File *models.File `json:"file"`
	}
	if err := c.do(ctx, http.MethodGet, filePath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out.File, nil
}

// CreateFile creates a file record in a folder
func (c *Client) CreateFile(ctx context.Context, name string, folderID int64) (*models.File, error) {
	payload := map[string]interface{}{"name": name, "folderId": folderID}
	var out struct {
		File *models.File `json:"file"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/files", nil, payload, &out); err != nil {
		return nil, err
	}
	return out.File, nil
}

// UpdateFile renames and/or moves a file
func (c *Client) UpdateFile(ctx context.Context, id int64, update FileUpdate) (*models.File, error) {
	var out struct {
		File *models.File `json:"file"`
	}
	if err := c.do(ctx, http.MethodPut, filePath(id), nil, update, &out); err != nil {
		return nil, err
	}
	return out.File, nil
}

// DeleteFile deletes a file
func (c *Client) DeleteFile(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, filePath(id), nil, nil, nil)
}

// Search finds folders and files by name
func (c *Client) Search(ctx context.Context, params models.SearchParams) (*SearchPage, error) {
	query := pageQuery(params.Pagination)
	query.Set("q", params.Query)
	if params.Scope != "" {
		query.Set("scope", string(params.Scope))
	}
	if params.Match != "" {
		query.Set("match", string(params.Match))
	}

	var out SearchPage
	if err := c.do(ctx, http.MethodGet, "/api/search", query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func folderPath(id int64) string { return "/api/folders/" + strconv.FormatInt(id, 10) }
func filePath(id int64) string   { return "/api/files/" + strconv.FormatInt(id, 10) }

func pageQuery(page *models.Pagination) url.Values {
	query := url.Values{}
	if page == nil {
		return query
	}
	if page.Limit != nil {
		query.Set("limit", strconv.Itoa(*page.Limit))
	}
	query.Set("offset", strconv.Itoa(page.Offset))
	return query
}

// do sends a request and decodes a JSON response into out (when non-nil)
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payloadBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
