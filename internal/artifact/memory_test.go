package artifact

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestMemoryStorePutAndGet(t *testing.T) {
	store := NewMemoryStore("http://localhost:8790")

	url, err := store.Put(context.Background(), "Contract.pdf", "application/pdf", []byte("pdf-bytes"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:8790/api/documents/download/") {
		t.Fatalf("unexpected url %q", url)
	}

	token := url[strings.LastIndex(url, "/")+1:]
	entry, err := store.Get(token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if entry.Filename != "Contract.pdf" || entry.MimeType != "application/pdf" {
		t.Errorf("entry = %+v", entry)
	}
	if string(entry.Data) != "pdf-bytes" {
		t.Errorf("data = %q", entry.Data)
	}
}

func TestMemoryStoreUnknownToken(t *testing.T) {
	store := NewMemoryStore("http://localhost:8790")
	if _, err := store.Get("dl_missing"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore("http://localhost:8790")
	now := time.Now()
	store.now = func() time.Time { return now }

	url, err := store.Put(context.Background(), "a.pdf", "application/pdf", []byte("x"))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	token := url[strings.LastIndex(url, "/")+1:]

	now = now.Add(memoryTTL + time.Second)
	if _, err := store.Get(token); err != ErrNotFound {
		t.Errorf("expired entry: err = %v, want ErrNotFound", err)
	}
}
