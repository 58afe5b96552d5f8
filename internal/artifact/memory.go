package artifact

import (
	"context"
	"errors"
	"sync"
	"time"

	"legalitex/api/internal/util"
)

var ErrNotFound = errors.New("artifact not found")

const memoryTTL = 15 * time.Minute

// Entry is a stored artifact held for download.
type Entry struct {
	Filename string
	MimeType string
	Data     []byte
	expires  time.Time
}

// MemoryStore holds artifacts in process memory. Used when no object
// storage is configured; downloads go through the API's own download
// route instead of a presigned URL.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
	baseURL string
	now     func() time.Time
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]Entry),
		baseURL: baseURL,
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(ctx context.Context, filename, mimeType string, data []byte) (string, error) {
	token := util.NewID("dl")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.entries[token] = Entry{
		Filename: filename,
		MimeType: mimeType,
		Data:     data,
		expires:  s.now().Add(memoryTTL),
	}
	return s.baseURL + "/api/documents/download/" + token, nil
}

// Get looks up a stored artifact by its download token.
func (s *MemoryStore) Get(token string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[token]
	if !ok || s.now().After(entry.expires) {
		delete(s.entries, token)
		return Entry{}, ErrNotFound
	}
	return entry, nil
}

func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for token, entry := range s.entries {
		if now.After(entry.expires) {
			delete(s.entries, token)
		}
	}
}
