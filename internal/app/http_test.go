package app

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"legalitex/api/internal/artifact"
	"legalitex/api/internal/authpw"
	"legalitex/api/internal/config"
	"legalitex/api/internal/drafts"
	"legalitex/api/internal/export"
	"legalitex/api/internal/share"
	"legalitex/api/internal/store"
)

type fakeDataStore struct {
	mu      sync.Mutex
	docs    map[string]store.Document
	users   map[string]store.User
	pingErr error
}

func newFakeDataStore() *fakeDataStore {
	return &fakeDataStore{
		docs:  make(map[string]store.Document),
		users: make(map[string]store.User),
	}
}

func (f *fakeDataStore) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeDataStore) SaveDocument(ctx context.Context, doc store.Document) (store.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := f.docs[doc.ID]; ok {
		doc.CreatedAt = existing.CreatedAt
	} else {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	doc.LastSaved = &now
	f.docs[doc.ID] = doc
	return doc, nil
}

func (f *fakeDataStore) GetDocument(ctx context.Context, id string) (store.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return store.Document{}, sql.ErrNoRows
	}
	return doc, nil
}

func (f *fakeDataStore) ListDocumentsByOwner(ctx context.Context, ownerID string) ([]store.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var docs []store.Document
	for _, doc := range f.docs {
		if doc.OwnerID == ownerID {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (f *fakeDataStore) GetUserByID(ctx context.Context, id string) (store.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return store.User{}, sql.ErrNoRows
}

func (f *fakeDataStore) GetUserByEmail(ctx context.Context, email string) (store.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[strings.ToLower(email)]
	if !ok {
		return store.User{}, sql.ErrNoRows
	}
	return user, nil
}

func (f *fakeDataStore) CreateUser(ctx context.Context, user store.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[strings.ToLower(user.Email)] = user
	return nil
}

func testConfig() config.Config {
	return config.Config{
		JWTSecret:     "test-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
		AutosaveDelay: 40 * time.Millisecond,
		ShareBaseURL:  "https://legalitex.com",
	}
}

func fakePDFRenderer(html string) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

func newTestServer(t *testing.T, fs *fakeDataStore) *HTTPServer {
	t.Helper()
	mem := artifact.NewMemoryStore("http://localhost:8790")
	svc := NewService(testConfig(), fs, Options{
		AuthPW:    authpw.NewService(fs),
		Drafts:    drafts.New(t.TempDir()),
		Export:    export.NewServiceWithRenderer(fakePDFRenderer),
		Artifacts: mem,
		MemArt:    mem,
		Share:     share.NewService("https://legalitex.com", nil, nil),
	})
	return NewHTTPServer(svc, "*")
}

func doJSON(t *testing.T, server *HTTPServer, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	return rr
}

func parseBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var response map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response %q: %v", rr.Body.String(), err)
	}
	return response
}

func signInToken(t *testing.T, server *HTTPServer) string {
	t.Helper()
	rr := doJSON(t, server, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email":    "sam.taylor@example.com",
		"password": "hunter2",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("signin failed: %d %s", rr.Code, rr.Body.String())
	}
	token, _ := parseBody(t, rr)["token"].(string)
	if token == "" {
		t.Fatal("signin returned no token")
	}
	return token
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t, newFakeDataStore())

	rr := doJSON(t, server, http.MethodGet, "/api/health", "", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
	if ok := parseBody(t, rr)["ok"]; ok != true {
		t.Errorf("expected ok=true, got %v", ok)
	}
}

func TestReadyEndpoint(t *testing.T) {
	fs := newFakeDataStore()
	server := newTestServer(t, fs)

	rr := doJSON(t, server, http.MethodGet, "/api/ready", "", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}

	fs.pingErr = errors.New("connection refused")
	rr = doJSON(t, server, http.MethodGet, "/api/ready", "", nil)
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rr.Code)
	}
	if got := parseBody(t, rr)["status"]; got != "not_ready" {
		t.Errorf("status = %v", got)
	}
}

func TestSignInProvisionsAndAuthenticates(t *testing.T) {
	server := newTestServer(t, newFakeDataStore())

	rr := doJSON(t, server, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email":    "sam.taylor@example.com",
		"password": "hunter2",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rr.Code, rr.Body.String())
	}
	response := parseBody(t, rr)
	if response["success"] != true {
		t.Errorf("success = %v", response["success"])
	}
	if response["message"] != "Signed in successfully" {
		t.Errorf("message = %v", response["message"])
	}
	if response["userName"] != "sam taylor" {
		t.Errorf("userName = %v", response["userName"])
	}

	// Same email, wrong password.
	rr = doJSON(t, server, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email":    "sam.taylor@example.com",
		"password": "wrong",
	})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	response = parseBody(t, rr)
	if response["success"] != false || response["message"] != "Invalid credentials" {
		t.Errorf("response = %v", response)
	}
}

func TestSignInRejectsEmptyFields(t *testing.T) {
	server := newTestServer(t, newFakeDataStore())

	for _, body := range []map[string]string{
		{"email": "", "password": "x"},
		{"email": "a@b.com", "password": ""},
	} {
		rr := doJSON(t, server, http.MethodPost, "/api/auth/signin", "", body)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("body %v: expected 401, got %d", body, rr.Code)
		}
	}
}

func TestSaveDocumentRequiresAuth(t *testing.T) {
	server := newTestServer(t, newFakeDataStore())

	rr := doJSON(t, server, http.MethodPost, "/api/documents", "", map[string]string{
		"title": "T", "content": "<p>x</p>", "type": "contract",
	})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}

func TestSaveDocumentGeneratesID(t *testing.T) {
	fs := newFakeDataStore()
	server := newTestServer(t, fs)
	token := signInToken(t, server)

	rr := doJSON(t, server, http.MethodPost, "/api/documents", token, map[string]string{
		"title":   "Service Agreement",
		"content": "<p>terms</p>",
		"type":    "contract",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rr.Code, rr.Body.String())
	}
	response := parseBody(t, rr)
	if response["success"] != true {
		t.Errorf("success = %v", response["success"])
	}
	id, _ := response["documentId"].(string)
	if !strings.HasPrefix(id, "doc_") {
		t.Errorf("documentId = %q", id)
	}
	if response["message"] != "Document saved successfully" {
		t.Errorf("message = %v", response["message"])
	}
	ts, _ := response["timestamp"].(string)
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("timestamp %q not RFC3339: %v", ts, err)
	}

	// A supplied id is kept.
	rr = doJSON(t, server, http.MethodPost, "/api/documents", token, map[string]string{
		"id": id, "title": "Service Agreement v2", "content": "<p>terms</p>", "type": "contract",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := parseBody(t, rr)["documentId"]; got != id {
		t.Errorf("documentId = %v, want %v", got, id)
	}
}

func TestSaveDocumentRejectsForeignID(t *testing.T) {
	fs := newFakeDataStore()
	server := newTestServer(t, fs)
	token := signInToken(t, server)

	rr := doJSON(t, server, http.MethodPost, "/api/documents", token, map[string]string{
		"title": "Mine", "content": "<p>secret</p>", "type": "contract",
	})
	id := parseBody(t, rr)["documentId"].(string)

	rr = doJSON(t, server, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email": "intruder@example.com", "password": "pw",
	})
	otherToken := parseBody(t, rr)["token"].(string)

	rr = doJSON(t, server, http.MethodPost, "/api/documents", otherToken, map[string]string{
		"id": id, "title": "Mine", "content": "<p>replaced</p>", "type": "contract",
	})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign id, got %d %s", rr.Code, rr.Body.String())
	}

	fs.mu.Lock()
	content := fs.docs[id].Content
	fs.mu.Unlock()
	if content != "<p>secret</p>" {
		t.Errorf("stored content = %q, want original preserved", content)
	}
}

func TestSaveDocumentRejectsUnknownType(t *testing.T) {
	server := newTestServer(t, newFakeDataStore())
	token := signInToken(t, server)

	rr := doJSON(t, server, http.MethodPost, "/api/documents", token, map[string]string{
		"title": "T", "content": "x", "type": "memo",
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rr.Code)
	}
}

func TestGetDocumentScopedToOwner(t *testing.T) {
	fs := newFakeDataStore()
	server := newTestServer(t, fs)
	token := signInToken(t, server)

	rr := doJSON(t, server, http.MethodPost, "/api/documents", token, map[string]string{
		"title": "Mine", "content": "<p>x</p>", "type": "will",
	})
	id := parseBody(t, rr)["documentId"].(string)

	rr = doJSON(t, server, http.MethodGet, "/api/documents/"+id, token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got := parseBody(t, rr)["title"]; got != "Mine" {
		t.Errorf("title = %v", got)
	}

	// Another user cannot read it.
	rr = doJSON(t, server, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email": "other@example.com", "password": "pw",
	})
	otherToken := parseBody(t, rr)["token"].(string)
	rr = doJSON(t, server, http.MethodGet, "/api/documents/"+id, otherToken, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for non-owner, got %d", rr.Code)
	}
}

func TestExportEndpointFormats(t *testing.T) {
	server := newTestServer(t, newFakeDataStore())

	for _, format := range []string{"pdf", "docx", "doc"} {
		rr := doJSON(t, server, http.MethodPost, "/api/documents/export", "", map[string]string{
			"content": "<p>x</p>",
			"title":   "T",
			"format":  format,
		})
		if rr.Code != http.StatusOK {
			t.Fatalf("format %s: expected 200, got %d %s", format, rr.Code, rr.Body.String())
		}
		response := parseBody(t, rr)
		if response["success"] != true {
			t.Errorf("format %s: success = %v", format, response["success"])
		}
		filename, _ := response["filename"].(string)
		if !strings.HasSuffix(filename, "."+format) {
			t.Errorf("format %s: filename = %q", format, filename)
		}
		if url, _ := response["downloadUrl"].(string); url == "" {
			t.Errorf("format %s: missing downloadUrl", format)
		}
	}
}

func TestExportEndpointUnsupportedFormat(t *testing.T) {
	server := newTestServer(t, newFakeDataStore())

	rr := doJSON(t, server, http.MethodPost, "/api/documents/export", "", map[string]string{
		"content": "<p>x</p>", "title": "T", "format": "xml",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	response := parseBody(t, rr)
	if response["success"] != false || response["message"] != "Unsupported format" {
		t.Errorf("response = %v", response)
	}
}

func TestExportDownloadRoundTrip(t *testing.T) {
	server := newTestServer(t, newFakeDataStore())

	rr := doJSON(t, server, http.MethodPost, "/api/documents/export", "", map[string]string{
		"content": "<p>x</p>", "title": "Deed", "format": "pdf",
	})
	url, _ := parseBody(t, rr)["downloadUrl"].(string)
	idx := strings.Index(url, "/api/documents/download/")
	if idx < 0 {
		t.Fatalf("unexpected downloadUrl %q", url)
	}

	rr = doJSON(t, server, http.MethodGet, url[idx:], "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("download: expected 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content-type = %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "Deed.pdf") {
		t.Errorf("content-disposition = %q", cd)
	}
}

func TestSearchEndpoint(t *testing.T) {
	server := newTestServer(t, newFakeDataStore())

	rr := doJSON(t, server, http.MethodGet, "/api/documents/search?q=payment", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	response := parseBody(t, rr)
	if response["count"] != float64(1) {
		t.Errorf("count = %v", response["count"])
	}
	if response["query"] != "payment" {
		t.Errorf("query = %v", response["query"])
	}

	rr = doJSON(t, server, http.MethodGet, "/api/documents/search?q=", "", nil)
	response = parseBody(t, rr)
	results, ok := response["results"].([]any)
	if !ok || len(results) != 0 {
		t.Errorf("empty query results = %v", response["results"])
	}
}

func TestGenerateEndpoint(t *testing.T) {
	server := newTestServer(t, newFakeDataStore())

	rr := doJSON(t, server, http.MethodPost, "/api/ai/generate", "", map[string]string{
		"prompt":       "Please add a confidentiality clause",
		"documentType": "contract",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	response := parseBody(t, rr)
	content, _ := response["content"].(string)
	if !strings.Contains(content, "CONFIDENTIALITY") {
		t.Errorf("content missing heading: %q", content)
	}

	rr = doJSON(t, server, http.MethodPost, "/api/ai/generate", "", map[string]string{
		"prompt":       "something unrelated",
		"documentType": "contract",
	})
	response = parseBody(t, rr)
	content, _ = response["content"].(string)
	if !strings.Contains(content, "AI GENERATED CONTENT") {
		t.Errorf("fallback content missing heading: %q", content)
	}
	if !strings.Contains(content, "something unrelated") {
		t.Errorf("fallback content does not echo prompt: %q", content)
	}
}

func TestShareEndpoint(t *testing.T) {
	server := newTestServer(t, newFakeDataStore())
	token := signInToken(t, server)

	rr := doJSON(t, server, http.MethodPost, "/api/documents/doc_123/share", token, map[string]string{
		"email": "a@b.com",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rr.Code, rr.Body.String())
	}
	response := parseBody(t, rr)
	link, _ := response["shareLink"].(string)
	if !strings.Contains(link, "doc_123") {
		t.Errorf("shareLink = %q", link)
	}
	if response["message"] != "Document shared with a@b.com" {
		t.Errorf("message = %v", response["message"])
	}
}

func TestHistoryEndpoint(t *testing.T) {
	server := newTestServer(t, newFakeDataStore())
	token := signInToken(t, server)

	rr := doJSON(t, server, http.MethodPost, "/api/documents", token, map[string]string{
		"title": "T", "content": "<p>v1</p>", "type": "contract",
	})
	id := parseBody(t, rr)["documentId"].(string)

	doJSON(t, server, http.MethodPost, "/api/documents", token, map[string]string{
		"id": id, "title": "T", "content": "<p>v2</p>", "type": "contract",
	})

	rr = doJSON(t, server, http.MethodGet, "/api/documents/"+id+"/history", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rr.Code, rr.Body.String())
	}
	revisions, _ := parseBody(t, rr)["revisions"].([]any)
	if len(revisions) != 2 {
		t.Fatalf("expected 2 revisions, got %d", len(revisions))
	}

	// A negative limit is treated as "no limit".
	rr = doJSON(t, server, http.MethodGet, "/api/documents/"+id+"/history?limit=-1", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("negative limit: expected 200, got %d %s", rr.Code, rr.Body.String())
	}
	if items, _ := parseBody(t, rr)["revisions"].([]any); len(items) != 2 {
		t.Fatalf("negative limit: expected 2 revisions, got %d", len(items))
	}

	newest, _ := revisions[0].(map[string]any)
	hash, _ := newest["hash"].(string)
	rr = doJSON(t, server, http.MethodGet, "/api/documents/"+id+"/history/"+hash, token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("revision read: expected 200, got %d", rr.Code)
	}
	if got := parseBody(t, rr)["content"]; got != "<p>v2</p>" {
		t.Errorf("revision content = %v", got)
	}
}
