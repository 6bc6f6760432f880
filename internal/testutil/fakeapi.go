package testutil

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thenoetrevino/kodo/internal/models"
)

// Route names used by FakeAPI.Calls
const (
	RouteListItems   = "GET /api/items"
	RouteGetItem     = "GET /api/items/:id"
	RouteUpdateItem  = "PUT /api/items/update"
	RouteSettings    = "GET /api/settings"
	RouteListFolders = "GET /api/folders"
	RouteListNotes   = "GET /api/notes"
)

// FakeAPI is an in-process kodo server for tests.
// It keeps items in memory and applies status updates like the real server.
type FakeAPI struct {
	mu      sync.Mutex
	items   []*models.Item
	columns []*models.Column
	folders []*models.Folder
	notes   []*models.Note

	failStatus  int           // non-zero: status updates fail with this HTTP code
	rejectMsg   string        // non-empty: status updates answer 200 with status "error"
	hold        chan struct{} // non-nil: status updates block until closed
	token       string        // non-empty: requests must carry this bearer token
	calls       map[string]int
	lastAuthHdr string

	server *httptest.Server
}

// NewFakeAPI starts a fake server seeded with items and columns.
// The server is closed when the test ends.
func NewFakeAPI(t *testing.T, items []*models.Item, columns []*models.Column) *FakeAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &FakeAPI{
		items:   models.CloneItems(items),
		columns: columns,
		calls:   make(map[string]int),
	}

	router := gin.New()
	router.Use(f.track)

	api := router.Group("/api")
	{
		api.GET("/items", f.handleListItems)
		api.GET("/items/:id", f.handleGetItem)
		api.PUT("/items/update", f.handleUpdateItem)
		api.GET("/settings", f.handleSettings)
		api.GET("/folders", f.handleListFolders)
		api.GET("/notes", f.handleListNotes)
	}

	f.server = httptest.NewServer(router)
	t.Cleanup(f.Close)
	return f
}

// URL returns the base URL of the server
func (f *FakeAPI) URL() string {
	return f.server.URL
}

// Close stops the server and releases any held update
func (f *FakeAPI) Close() {
	f.Release()
	f.server.Close()
}

// Calls returns how often a route was hit
func (f *FakeAPI) Calls(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[route]
}

// Items returns a copy of the server-side items
func (f *FakeAPI) Items() []*models.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	return models.CloneItems(f.items)
}

// SetItems replaces the server-side items
func (f *FakeAPI) SetItems(items []*models.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = models.CloneItems(items)
}

// SetFolders sets the folders and notes served by the folder endpoints
func (f *FakeAPI) SetFolders(folders []*models.Folder, notes []*models.Note) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.folders = folders
	f.notes = notes
}

// FailUpdates makes status updates fail with the given HTTP status. Zero restores success.
func (f *FakeAPI) FailUpdates(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failStatus = status
}

// RejectUpdates makes status updates answer 200 with a non-success body
func (f *FakeAPI) RejectUpdates(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejectMsg = message
}

// HoldUpdates makes status updates block until Release is called
func (f *FakeAPI) HoldUpdates() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hold = make(chan struct{})
}

// Release unblocks held status updates
func (f *FakeAPI) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hold != nil {
		close(f.hold)
		f.hold = nil
	}
}

// RequireToken makes every request without "Bearer <token>" fail with 401
func (f *FakeAPI) RequireToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

// LastAuthorization returns the Authorization header of the last request
func (f *FakeAPI) LastAuthorization() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuthHdr
}

func (f *FakeAPI) track(c *gin.Context) {
	auth := c.GetHeader("Authorization")

	f.mu.Lock()
	f.calls[c.Request.Method+" "+c.FullPath()]++
	f.lastAuthHdr = auth
	token := f.token
	f.mu.Unlock()

	if token != "" && auth != "Bearer "+token {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.Next()
}

func (f *FakeAPI) handleListItems(c *gin.Context) {
	c.JSON(http.StatusOK, f.Items())
}

func (f *FakeAPI) handleGetItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid item ID")
		return
	}

	f.mu.Lock()
	item, _ := models.FindItem(f.items, id)
	item = item.Clone()
	f.mu.Unlock()

	if item == nil {
		c.String(http.StatusNotFound, "Item not found")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (f *FakeAPI) handleUpdateItem(c *gin.Context) {
	var req struct {
		ID     int    `json:"id"`
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid JSON")
		return
	}

	f.mu.Lock()
	hold := f.hold
	f.mu.Unlock()
	if hold != nil {
		<-hold
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failStatus != 0 {
		c.String(f.failStatus, "Failed to update status: simulated failure")
		return
	}
	if f.rejectMsg != "" {
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": f.rejectMsg})
		return
	}

	item, _ := models.FindItem(f.items, req.ID)
	if item == nil {
		c.String(http.StatusNotFound, "Item not found")
		return
	}

	now := time.Now().UTC()
	item.Status = models.ItemStatus(req.Status)
	item.IsDone = strings.EqualFold(req.Status, models.StatusDone)
	item.UpdatedAt = now
	item.History = append(item.History, models.StatusChange{Status: item.Status, Timestamp: now, User: "tester"})

	c.JSON(http.StatusOK, gin.H{"status": "success", "item": item.Clone()})
}

func (f *FakeAPI) handleSettings(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"kanban_columns": f.columns})
}

func (f *FakeAPI) handleListFolders(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"folders": f.folders, "count": len(f.folders)})
}

func (f *FakeAPI) handleListNotes(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"notes": f.notes, "count": len(f.notes)})
}
