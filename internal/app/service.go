package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"legalitex/api/internal/ai"
	"legalitex/api/internal/artifact"
	"legalitex/api/internal/auth"
	"legalitex/api/internal/authpw"
	"legalitex/api/internal/config"
	"legalitex/api/internal/document"
	"legalitex/api/internal/drafts"
	"legalitex/api/internal/export"
	"legalitex/api/internal/search"
	"legalitex/api/internal/share"
	"legalitex/api/internal/store"
	"legalitex/api/internal/util"
)

const timestampLayout = time.RFC3339

func parseTimestamp(value string) (time.Time, error) {
	return time.Parse(timestampLayout, value)
}

type Session struct {
	Token     string
	UserID    string
	UserName  string
	Email     string
	JTI       string
	ExpiresAt time.Time
}

type dataStore interface {
	Ping(context.Context) error
	SaveDocument(context.Context, store.Document) (store.Document, error)
	GetDocument(context.Context, string) (store.Document, error)
	ListDocumentsByOwner(context.Context, string) ([]store.Document, error)
	GetUserByID(context.Context, string) (store.User, error)
}

type refreshStore interface {
	SaveRefreshSession(ctx context.Context, tokenHash string, user store.User, expiresAt time.Time) error
	LookupRefreshSession(ctx context.Context, tokenHash string) (store.User, error)
	RevokeRefreshSession(ctx context.Context, tokenHash string) error
}

// Service wires the domain services together behind the HTTP surface.
type Service struct {
	cfg      config.Config
	store    dataStore
	refresh  refreshStore
	authpw   *authpw.Service
	drafts   *drafts.Service
	export   *export.Service
	artifact artifact.Store
	memArt   *artifact.MemoryStore
	ai       *ai.Service
	search   *search.Service
	share    *share.Service

	mu         sync.Mutex
	workspaces map[string]*workspace
}

// Options carries the optional subsystems. Nil fields disable the
// corresponding feature or select its fallback.
type Options struct {
	Refresh   refreshStore
	AuthPW    *authpw.Service
	Drafts    *drafts.Service
	Export    *export.Service
	Artifacts artifact.Store
	MemArt    *artifact.MemoryStore
	AI        *ai.Service
	Search    *search.Service
	Share     *share.Service
}

func NewService(cfg config.Config, data dataStore, opts Options) *Service {
	s := &Service{
		cfg:        cfg,
		store:      data,
		refresh:    opts.Refresh,
		authpw:     opts.AuthPW,
		drafts:     opts.Drafts,
		export:     opts.Export,
		artifact:   opts.Artifacts,
		memArt:     opts.MemArt,
		ai:         opts.AI,
		search:     opts.Search,
		share:      opts.Share,
		workspaces: make(map[string]*workspace),
	}
	if s.export == nil {
		s.export = export.NewService()
	}
	if s.ai == nil {
		s.ai = ai.NewService(nil)
	}
	if s.search == nil {
		s.search = search.NewService(nil)
	}
	if s.artifact == nil {
		mem := artifact.NewMemoryStore("")
		s.artifact = mem
		s.memArt = mem
	}
	return s
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) AuthPasswordService() *authpw.Service {
	return s.authpw
}

// SignIn authenticates (or provisions) the user and issues an access
// token. A refresh session is recorded when Redis is wired.
type SignInResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Token        string `json:"token,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	UserID       string `json:"userId,omitempty"`
	UserName     string `json:"userName,omitempty"`
	ExpiresAt    int64  `json:"expiresAt,omitempty"`
}

func (s *Service) SignIn(ctx context.Context, email, password string) (SignInResult, error) {
	if s.authpw == nil {
		return SignInResult{}, domainError(http.StatusServiceUnavailable, "AUTH_UNAVAILABLE", "Authentication service not configured", nil)
	}

	resp, err := s.authpw.SignIn(ctx, authpw.SignInRequest{Email: email, Password: password})
	if err != nil {
		if errors.Is(err, authpw.ErrInvalidCredentials) {
			return SignInResult{Success: false, Message: "Invalid credentials"}, nil
		}
		return SignInResult{}, err
	}

	expiresAt := time.Now().Add(s.cfg.AccessTTL)
	token, err := auth.IssueToken([]byte(s.cfg.JWTSecret), auth.Claims{
		Sub:   resp.User.ID,
		Email: resp.User.Email,
		Name:  resp.User.DisplayName,
		JTI:   util.NewID("jti"),
		Exp:   expiresAt.Unix(),
	})
	if err != nil {
		return SignInResult{}, fmt.Errorf("issue token: %w", err)
	}

	result := SignInResult{
		Success:   true,
		Message:   "Signed in successfully",
		Token:     token,
		UserID:    resp.User.ID,
		UserName:  resp.User.DisplayName,
		ExpiresAt: expiresAt.Unix(),
	}

	if s.refresh != nil {
		refreshToken := util.NewID("rt")
		refreshExpiry := time.Now().Add(s.cfg.RefreshTTL)
		if err := s.refresh.SaveRefreshSession(ctx, auth.HashToken(refreshToken), resp.User, refreshExpiry); err != nil {
			log.Printf("app: save refresh session: %v", err)
		} else {
			result.RefreshToken = refreshToken
		}
	}
	return result, nil
}

// RefreshSession exchanges a refresh token for a fresh access token.
func (s *Service) RefreshSession(ctx context.Context, refreshToken string) (SignInResult, error) {
	if s.refresh == nil {
		return SignInResult{}, domainError(http.StatusServiceUnavailable, "SESSIONS_UNAVAILABLE", "Session store not configured", nil)
	}
	user, err := s.refresh.LookupRefreshSession(ctx, auth.HashToken(refreshToken))
	if err != nil {
		return SignInResult{}, domainError(http.StatusUnauthorized, "UNAUTHORIZED", "Refresh token invalid", nil)
	}

	expiresAt := time.Now().Add(s.cfg.AccessTTL)
	token, err := auth.IssueToken([]byte(s.cfg.JWTSecret), auth.Claims{
		Sub:   user.ID,
		Email: user.Email,
		Name:  user.DisplayName,
		JTI:   util.NewID("jti"),
		Exp:   expiresAt.Unix(),
	})
	if err != nil {
		return SignInResult{}, fmt.Errorf("issue token: %w", err)
	}
	return SignInResult{
		Success:   true,
		Message:   "Session refreshed",
		Token:     token,
		UserID:    user.ID,
		UserName:  user.DisplayName,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

// SignOut revokes the refresh session, if any.
func (s *Service) SignOut(ctx context.Context, refreshToken string) {
	if s.refresh == nil || refreshToken == "" {
		return
	}
	if err := s.refresh.RevokeRefreshSession(ctx, auth.HashToken(refreshToken)); err != nil {
		log.Printf("app: revoke refresh session: %v", err)
	}
}

// SessionFromToken validates an access token.
func (s *Service) SessionFromToken(ctx context.Context, token string) (Session, error) {
	claims, err := auth.ParseToken([]byte(s.cfg.JWTSecret), token)
	if err != nil {
		return Session{}, err
	}
	return Session{
		Token:     token,
		UserID:    claims.Sub,
		UserName:  claims.Name,
		Email:     claims.Email,
		JTI:       claims.JTI,
		ExpiresAt: time.Unix(claims.Exp, 0),
	}, nil
}

// SaveDocument persists the document, records a draft revision, and
// refreshes the clause index. A missing id gets a time-derived one.
type SaveDocumentInput struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

type SaveDocumentResult struct {
	Success    bool   `json:"success"`
	DocumentID string `json:"documentId"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
}

func (s *Service) SaveDocument(ctx context.Context, session Session, input SaveDocumentInput) (SaveDocumentResult, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = document.DefaultTitle
	}
	docType := input.Type
	if docType == "" {
		docType = document.DefaultType
	}
	if !store.ValidDocumentType(docType) {
		return SaveDocumentResult{}, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", fmt.Sprintf("unknown document type %q", docType), nil)
	}

	id := input.ID
	if id == "" {
		id = util.NewDocumentID()
	} else {
		// A supplied id may only overwrite the caller's own document.
		existing, err := s.store.GetDocument(ctx, id)
		if err != nil && !store.IsNotFound(err) {
			return SaveDocumentResult{}, fmt.Errorf("check document owner: %w", err)
		}
		if err == nil && existing.OwnerID != session.UserID {
			return SaveDocumentResult{}, domainError(http.StatusNotFound, "NOT_FOUND", "Document not found", nil)
		}
	}

	saved, err := s.store.SaveDocument(ctx, store.Document{
		ID:      id,
		OwnerID: session.UserID,
		Title:   title,
		Content: input.Content,
		Type:    docType,
	})
	if err != nil {
		return SaveDocumentResult{}, fmt.Errorf("save document: %w", err)
	}

	if s.drafts != nil {
		snap := drafts.Snapshot{Title: title, Type: docType, Content: input.Content}
		author := session.UserName
		if author == "" {
			author = "legalitex"
		}
		created, err := s.drafts.EnsureDocumentRepo(id, snap, author)
		if err != nil {
			log.Printf("app: ensure draft repo for %s: %v", id, err)
		} else if !created {
			if _, err := s.drafts.CommitSnapshot(id, snap, author, "Save document"); err != nil {
				log.Printf("app: commit draft snapshot for %s: %v", id, err)
			}
		}
	}

	s.search.IndexDocument(id, docType, input.Content)

	ts := time.Now().UTC()
	if saved.LastSaved != nil {
		ts = saved.LastSaved.UTC()
	}
	return SaveDocumentResult{
		Success:    true,
		DocumentID: id,
		Message:    "Document saved successfully",
		Timestamp:  ts.Format(time.RFC3339),
	}, nil
}

// GetDocument loads one of the caller's documents.
func (s *Service) GetDocument(ctx context.Context, session Session, id string) (store.Document, error) {
	doc, err := s.store.GetDocument(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return store.Document{}, domainError(http.StatusNotFound, "NOT_FOUND", "Document not found", nil)
		}
		return store.Document{}, err
	}
	if doc.OwnerID != session.UserID {
		return store.Document{}, domainError(http.StatusNotFound, "NOT_FOUND", "Document not found", nil)
	}
	return doc, nil
}

func (s *Service) ListDocuments(ctx context.Context, session Session) ([]store.Document, error) {
	return s.store.ListDocumentsByOwner(ctx, session.UserID)
}

// ExportDocument renders the artifact and stores it for download.
type ExportResult struct {
	Success     bool   `json:"success"`
	DownloadURL string `json:"downloadUrl,omitempty"`
	Filename    string `json:"filename,omitempty"`
	Message     string `json:"message"`
}

func (s *Service) ExportDocument(ctx context.Context, req export.Request) (ExportResult, error) {
	result, err := s.export.Export(req)
	if err != nil {
		if errors.Is(err, export.ErrUnsupportedFormat) {
			return ExportResult{}, domainError(http.StatusBadRequest, "UNSUPPORTED_FORMAT", "Unsupported format", nil)
		}
		return ExportResult{}, fmt.Errorf("export: %w", err)
	}

	url, err := s.artifact.Put(ctx, result.Filename, result.MimeType, result.Data)
	if err != nil {
		return ExportResult{}, fmt.Errorf("store artifact: %w", err)
	}

	return ExportResult{
		Success:     true,
		DownloadURL: url,
		Filename:    result.Filename,
		Message:     "Document exported successfully",
	}, nil
}

// DownloadArtifact serves artifacts held by the in-process store.
func (s *Service) DownloadArtifact(token string) (artifact.Entry, error) {
	if s.memArt == nil {
		return artifact.Entry{}, domainError(http.StatusNotFound, "NOT_FOUND", "Download not found", nil)
	}
	entry, err := s.memArt.Get(token)
	if err != nil {
		return artifact.Entry{}, domainError(http.StatusNotFound, "NOT_FOUND", "Download not found", nil)
	}
	return entry, nil
}

// GenerateContent proxies the prompt to the content resolver.
func (s *Service) GenerateContent(ctx context.Context, prompt, docType string) ai.Response {
	return s.ai.Generate(ctx, prompt, docType)
}

// Search runs a clause search.
func (s *Service) Search(q, docType string) search.Response {
	return s.search.Search(search.Query{Text: q, DocType: docType})
}

// ShareDocument builds the share link for one of the caller's documents.
func (s *Service) ShareDocument(ctx context.Context, session Session, documentID, email string) (share.Response, error) {
	if s.share == nil {
		return share.Response{}, domainError(http.StatusServiceUnavailable, "SHARE_UNAVAILABLE", "Sharing not configured", nil)
	}
	if strings.TrimSpace(documentID) == "" {
		return share.Response{}, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "documentId is required", nil)
	}
	if strings.TrimSpace(email) == "" {
		return share.Response{}, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "email is required", nil)
	}

	title := ""
	if doc, err := s.store.GetDocument(ctx, documentID); err == nil {
		title = doc.Title
	}
	return s.share.Share(ctx, documentID, email, title, session.UserName), nil
}

// History lists a document's saved revisions.
func (s *Service) History(ctx context.Context, session Session, documentID string, limit int) ([]drafts.CommitInfo, error) {
	if s.drafts == nil {
		return nil, domainError(http.StatusServiceUnavailable, "HISTORY_UNAVAILABLE", "Revision history not configured", nil)
	}
	if _, err := s.GetDocument(ctx, session, documentID); err != nil {
		return nil, err
	}
	items, err := s.drafts.History(documentID, limit)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return items, nil
}

// Revision reads the document state at one revision.
func (s *Service) Revision(ctx context.Context, session Session, documentID, hash string) (drafts.Snapshot, error) {
	if s.drafts == nil {
		return drafts.Snapshot{}, domainError(http.StatusServiceUnavailable, "HISTORY_UNAVAILABLE", "Revision history not configured", nil)
	}
	if _, err := s.GetDocument(ctx, session, documentID); err != nil {
		return drafts.Snapshot{}, err
	}
	snap, err := s.drafts.GetSnapshot(documentID, hash)
	if err != nil {
		return drafts.Snapshot{}, domainError(http.StatusNotFound, "NOT_FOUND", "Revision not found", nil)
	}
	return snap, nil
}
