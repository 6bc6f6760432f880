// Package api is the HTTP client for the kodo item server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/thenoetrevino/kodo/internal/models"
)

const (
	// DefaultBaseURL is where a local kodo server listens
	DefaultBaseURL = "http://localhost:8080"

	// DefaultTimeout bounds every request
	DefaultTimeout = 10 * time.Second

	// maxErrorBody caps how much of an error response is kept as the message
	maxErrorBody = 512
)

// Options configures a Client
type Options struct {
	BaseURL string
	Token   string        // Sent as a bearer token when set
	Timeout time.Duration // Zero means DefaultTimeout

	// HTTPClient overrides the transport (used by tests)
	HTTPClient *http.Client
}

// Client talks to the kodo JSON API
type Client struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
}

// NewClient creates a client for the server at opts.BaseURL
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	raw := opts.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if opts.Token != "" {
		// oauth2 wraps the given client's transport with the token source
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(ctx, ts)
	}

	return &Client{base: base, http: httpClient, timeout: timeout}, nil
}

// BaseURL returns the server URL the client talks to
func (c *Client) BaseURL() string {
	return c.base.String()
}

// ListItems returns every item the server knows about
func (c *Client) ListItems(ctx context.Context) ([]*models.Item, error) {
	var items []*models.Item
	if err := c.do(ctx, "list items", http.MethodGet, "/api/items", nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*models.Item{}
	}
	return items, nil
}

// GetItem returns a single item
func (c *Client) GetItem(ctx context.Context, id int) (*models.Item, error) {
	var item models.Item
	op := "get item " + strconv.Itoa(id)
	if err := c.do(ctx, op, http.MethodGet, "/api/items/"+strconv.Itoa(id), nil, &item); err != nil {
		return nil, err
	}
	if item.ID == 0 {
		return nil, &RemoteError{Op: op, Err: ErrEmptyResponse}
	}
	return &item, nil
}

type updateStatusRequest struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
}

type updateStatusResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message,omitempty"`
	Item    *models.Item `json:"item"`
}

// UpdateItemStatus sets an item's status and returns the server's copy of the item
func (c *Client) UpdateItemStatus(ctx context.Context, id int, status string) (*models.Item, error) {
	const op = "update item status"

	var resp updateStatusResponse
	req := updateStatusRequest{ID: id, Status: status}
	if err := c.do(ctx, op, http.MethodPut, "/api/items/update", req, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "success" {
		return nil, &RemoteError{Op: op, StatusCode: http.StatusOK, Message: resp.Message, Err: ErrRejected}
	}
	if resp.Item == nil {
		return nil, &RemoteError{Op: op, StatusCode: http.StatusOK, Err: ErrEmptyResponse}
	}
	return resp.Item, nil
}

type settingsResponse struct {
	KanbanColumns []*models.Column `json:"kanban_columns"`
}

// GetColumns returns the board columns from the server settings.
// The server lists columns in display order; positions are filled in from that order
// when the server does not send them.
func (c *Client) GetColumns(ctx context.Context) ([]*models.Column, error) {
	var resp settingsResponse
	if err := c.do(ctx, "get settings", http.MethodGet, "/api/settings", nil, &resp); err != nil {
		return nil, err
	}

	positioned := false
	for _, col := range resp.KanbanColumns {
		if col.Position != 0 {
			positioned = true
			break
		}
	}
	if !positioned {
		for i, col := range resp.KanbanColumns {
			col.Position = i
		}
	}
	return resp.KanbanColumns, nil
}

type foldersResponse struct {
	Folders []*models.Folder `json:"folders"`
	Count   int              `json:"count"`
}

// ListFolders returns the flat folder list
func (c *Client) ListFolders(ctx context.Context) ([]*models.Folder, error) {
	var resp foldersResponse
	if err := c.do(ctx, "list folders", http.MethodGet, "/api/folders", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Folders, nil
}

type notesResponse struct {
	Notes []*models.Note `json:"notes"`
	Count int            `json:"count"`
}

// ListNotes returns every note, used for folder note counts
func (c *Client) ListNotes(ctx context.Context) ([]*models.Note, error) {
	var resp notesResponse
	if err := c.do(ctx, "list notes", http.MethodGet, "/api/notes", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Notes, nil
}

// do sends one JSON request and decodes a JSON response into out.
// Every failure is returned as a *RemoteError.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &RemoteError{Op: op, Err: fmt.Errorf("failed to encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, reader)
	if err != nil {
		return &RemoteError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("api request failed", "op", op, "error", err)
		return &RemoteError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	slog.Debug("api request", "op", op, "method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &RemoteError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data, resp.Status),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RemoteError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// errorMessage extracts a readable message from an error body.
// JSON bodies with a "message" or "error" field are unwrapped; plain text is trimmed.
func errorMessage(data []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if msg := strings.TrimSpace(string(data)); msg != "" {
		return msg
	}
	return fallback
}
