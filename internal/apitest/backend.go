// Package apitest serves an in-memory stand-in for the search backend so
// client, workflow and TUI tests can exercise real HTTP round trips.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/altinukshini/dnafinder/internal/model"
)

// Request is what the backend saw for one call.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Fields        map[string]string
	FileField     string
	FileName      string
	JSON          map[string]interface{}
}

type Backend struct {
	Server *httptest.Server

	mu         sync.Mutex
	users      map[string]string
	token      string
	tokenField string
	expired    bool
	result     model.SearchResult
	history    []model.HistoryEntry
	bareList   bool
	uploads    map[string]string
	nextUpload int
	requests   []Request
}

// New starts a backend that is torn down with the test.
func New(t *testing.T) *Backend {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := &Backend{
		users:      make(map[string]string),
		token:      "test-token",
		tokenField: "access_token",
		uploads:    make(map[string]string),
	}
	b.Server = httptest.NewServer(b.router())
	t.Cleanup(b.Server.Close)
	return b
}

func (b *Backend) URL() string { return b.Server.URL }

func (b *Backend) AddUser(email, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[email] = password
}

// IssueToken sets the token handed out by /login and the JSON field it is
// returned under (access_token, accessToken or token).
func (b *Backend) IssueToken(field, token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokenField = field
	b.token = token
}

// Expire makes every authenticated route answer 401.
func (b *Backend) Expire() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.expired = true
}

func (b *Backend) SetResult(r model.SearchResult) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.result = r
}

// SetHistory sets the entries /history returns; bare selects the plain
// array encoding instead of {"searches": [...]}.
func (b *Backend) SetHistory(entries []model.HistoryEntry, bare bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history = entries
	b.bareList = bare
}

func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Request, len(b.requests))
	copy(out, b.requests)
	return out
}

// Paths lists "METHOD /path" for every request in arrival order.
func (b *Backend) Paths() []string {
	var out []string
	for _, r := range b.Requests() {
		out = append(out, r.Method+" "+r.Path)
	}
	return out
}

func (b *Backend) record(r Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, r)
}

func (b *Backend) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/register", b.handleRegister)
	r.POST("/login", b.handleLogin)

	authed := r.Group("/", b.requireToken)
	authed.POST("/upload-csv", b.handleUpload)
	authed.POST("/search", b.handleSearch)
	authed.GET("/history", b.handleHistory)
	return r
}

func baseRequest(c *gin.Context) Request {
	return Request{
		Method:        c.Request.Method,
		Path:          c.Request.URL.Path,
		Query:         c.Request.URL.RawQuery,
		Authorization: c.GetHeader("Authorization"),
		Fields:        make(map[string]string),
	}
}

func (b *Backend) requireToken(c *gin.Context) {
	b.mu.Lock()
	ok := !b.expired && c.GetHeader("Authorization") == "Bearer "+b.token
	b.mu.Unlock()
	if !ok {
		b.record(baseRequest(c))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
		return
	}
	c.Next()
}

func (b *Backend) bindCredentials(c *gin.Context) (model.Credentials, Request, bool) {
	req := baseRequest(c)
	var creds model.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		b.record(req)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{"msg": "field required"}}})
		return creds, req, false
	}
	req.JSON = map[string]interface{}{"email": creds.Email, "password": creds.Password}
	b.record(req)
	return creds, req, true
}

func (b *Backend) handleRegister(c *gin.Context) {
	creds, _, ok := b.bindCredentials(c)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.users[creds.Email]; exists {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Email already registered"})
		return
	}
	b.users[creds.Email] = creds.Password
	c.JSON(http.StatusCreated, gin.H{"email": creds.Email})
}

func (b *Backend) handleLogin(c *gin.Context) {
	creds, _, ok := b.bindCredentials(c)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if pw, exists := b.users[creds.Email]; !exists || pw != creds.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid email or password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{b.tokenField: b.token, "token_type": "bearer"})
}

func (b *Backend) handleUpload(c *gin.Context) {
	req := baseRequest(c)
	fh, err := c.FormFile("file")
	if err != nil {
		b.record(req)
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file is required"})
		return
	}
	req.FileField = "file"
	req.FileName = fh.Filename
	req.Fields["pattern"] = c.PostForm("pattern")
	req.Fields["algorithm"] = c.PostForm("algorithm")
	b.record(req)

	b.mu.Lock()
	b.nextUpload++
	id := fmt.Sprintf("f-%d", b.nextUpload)
	b.uploads[id] = fh.Filename
	b.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"file_id": id})
}

func (b *Backend) handleSearch(c *gin.Context) {
	req := baseRequest(c)
	var algorithm string

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("csv_file")
		if err != nil {
			b.record(req)
			c.JSON(http.StatusBadRequest, gin.H{"detail": "csv_file is required"})
			return
		}
		req.FileField = "csv_file"
		req.FileName = fh.Filename
		req.Fields["pattern"] = c.PostForm("pattern")
		req.Fields["algorithm"] = c.PostForm("algorithm")
		algorithm = req.Fields["algorithm"]
	} else {
		var body struct {
			FileID    json.RawMessage `json:"file_id"`
			Pattern   string          `json:"pattern"`
			Algorithm string          `json:"algorithm"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			b.record(req)
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid body"})
			return
		}
		var fileID string
		_ = json.Unmarshal(body.FileID, &fileID)
		req.JSON = map[string]interface{}{"file_id": fileID, "pattern": body.Pattern, "algorithm": body.Algorithm}
		algorithm = body.Algorithm

		b.mu.Lock()
		_, known := b.uploads[fileID]
		b.mu.Unlock()
		if !known {
			b.record(req)
			c.JSON(http.StatusNotFound, gin.H{"detail": "File not found"})
			return
		}
	}
	b.record(req)

	b.mu.Lock()
	result := b.result
	b.mu.Unlock()
	if result.Algorithm == "" {
		result.Algorithm = algorithm
	}
	c.JSON(http.StatusOK, result)
}

func (b *Backend) handleHistory(c *gin.Context) {
	b.record(baseRequest(c))

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	b.mu.Lock()
	entries := b.history
	bare := b.bareList
	b.mu.Unlock()

	if offset > len(entries) {
		offset = len(entries)
	}
	entries = entries[offset:]
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}

	if bare {
		c.JSON(http.StatusOK, entries)
		return
	}
	c.JSON(http.StatusOK, gin.H{"searches": entries})
}
