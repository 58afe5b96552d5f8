// Package document holds the editing-session state for a single document:
// the in-memory document, shallow-merge updates, and debounced autosave.
package document

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"
)

// Document is the in-memory representation of the document being edited.
type Document struct {
	ID        string     `json:"id,omitempty"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Type      string     `json:"type"`
	LastSaved *time.Time `json:"lastSaved,omitempty"`
}

// Patch carries partial updates; nil fields leave the document unchanged.
type Patch struct {
	ID      *string
	Title   *string
	Content *string
	Type    *string
}

// SaveReceipt is returned by a successful save.
type SaveReceipt struct {
	DocumentID string
	Timestamp  time.Time
}

// Saver persists a document snapshot. The session does not retry; a failed
// save is logged and the operation is abandoned until the next trigger.
type Saver interface {
	Save(ctx context.Context, doc Document) (SaveReceipt, error)
}

const (
	DefaultTitle         = "Untitled Document"
	DefaultType          = "contract"
	defaultAutosaveDelay = 30 * time.Second
	saveTimeout          = 15 * time.Second
)

// Session owns exactly one active document. There is one logical writer per
// session; the mutex only guards against the autosave timer goroutine.
type Session struct {
	mu     sync.Mutex
	doc    Document
	saver  Saver
	delay  time.Duration
	timer  *time.Timer
	closed bool
}

type Option func(*Session)

// WithAutosaveDelay overrides the debounce delay between the last content
// change and the automatic save.
func WithAutosaveDelay(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithDocument seeds the session with an existing document.
func WithDocument(doc Document) Option {
	return func(s *Session) {
		s.doc = doc
	}
}

func NewSession(saver Saver, opts ...Option) *Session {
	s := &Session{
		doc: Document{
			Title: DefaultTitle,
			Type:  DefaultType,
		},
		saver: saver,
		delay: defaultAutosaveDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.doc.Title == "" {
		s.doc.Title = DefaultTitle
	}
	if s.doc.Type == "" {
		s.doc.Type = DefaultType
	}
	return s
}

// Get returns a copy of the current document.
func (s *Session) Get() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Update shallow-merges the patch into the document. Unspecified fields are
// preserved. A content change re-arms the autosave timer; other fields do
// not touch it.
func (s *Session) Update(patch Patch) Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.ID != nil {
		s.doc.ID = *patch.ID
	}
	if patch.Title != nil {
		s.doc.Title = *patch.Title
	}
	if patch.Type != nil {
		s.doc.Type = *patch.Type
	}
	if patch.Content != nil {
		s.doc.Content = *patch.Content
		s.armAutosaveLocked()
	}
	return s.doc
}

// Save persists the current document immediately, independent of the
// autosave timer. Overlapping saves are not coordinated; the last response
// to arrive wins on id and lastSaved.
func (s *Session) Save(ctx context.Context) (SaveReceipt, error) {
	s.mu.Lock()
	doc := s.doc
	s.mu.Unlock()

	receipt, err := s.saver.Save(ctx, doc)
	if err != nil {
		return SaveReceipt{}, err
	}

	s.mu.Lock()
	s.doc.ID = receipt.DocumentID
	ts := receipt.Timestamp
	s.doc.LastSaved = &ts
	s.mu.Unlock()
	return receipt, nil
}

// Close stops the autosave timer. Further updates no longer re-arm it.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) armAutosaveLocked() {
	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.autosave)
}

func (s *Session) autosave() {
	s.mu.Lock()
	if s.closed || strings.TrimSpace(s.doc.Content) == "" {
		// Whitespace-only content is never autosaved.
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if _, err := s.Save(ctx); err != nil {
		log.Printf("document: autosave failed: %v", err)
	}
}
