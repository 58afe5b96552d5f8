package document

import (
	"context"
	"sync"
	"testing"
	"time"
)

type recordingSaver struct {
	mu    sync.Mutex
	saves []Document
}

func (r *recordingSaver) Save(_ context.Context, doc Document) (SaveReceipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, doc)
	id := doc.ID
	if id == "" {
		id = "doc_1"
	}
	return SaveReceipt{DocumentID: id, Timestamp: time.Now()}, nil
}

func (r *recordingSaver) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saves)
}

func strptr(s string) *string { return &s }

func TestUpdateMergesWithoutReplacing(t *testing.T) {
	session := NewSession(&recordingSaver{})
	defer session.Close()

	session.Update(Patch{Content: strptr("<p>existing content</p>")})
	doc := session.Update(Patch{Title: strptr("New")})

	if doc.Title != "New" {
		t.Fatalf("title = %q, want %q", doc.Title, "New")
	}
	if doc.Content != "<p>existing content</p>" {
		t.Fatalf("content was replaced: %q", doc.Content)
	}
	if doc.Type != DefaultType {
		t.Fatalf("type = %q, want %q", doc.Type, DefaultType)
	}
}

func TestNewSessionDefaults(t *testing.T) {
	session := NewSession(&recordingSaver{})
	defer session.Close()

	doc := session.Get()
	if doc.Title != DefaultTitle {
		t.Fatalf("title = %q, want %q", doc.Title, DefaultTitle)
	}
	if doc.Type != DefaultType {
		t.Fatalf("type = %q, want %q", doc.Type, DefaultType)
	}
}

func TestAutosaveFiresOnceAfterDelay(t *testing.T) {
	saver := &recordingSaver{}
	session := NewSession(saver, WithAutosaveDelay(50*time.Millisecond))
	defer session.Close()

	session.Update(Patch{Content: strptr("<p>x</p>")})

	time.Sleep(150 * time.Millisecond)
	if got := saver.count(); got != 1 {
		t.Fatalf("autosave count = %d, want 1", got)
	}
}

func TestAutosaveTimerResetsOnContentChange(t *testing.T) {
	saver := &recordingSaver{}
	session := NewSession(saver, WithAutosaveDelay(100*time.Millisecond))
	defer session.Close()

	session.Update(Patch{Content: strptr("<p>first</p>")})
	time.Sleep(60 * time.Millisecond)
	// Second change before the timer fires pushes the save out.
	session.Update(Patch{Content: strptr("<p>second</p>")})
	time.Sleep(60 * time.Millisecond)

	if got := saver.count(); got != 0 {
		t.Fatalf("save fired before the re-armed delay elapsed (count = %d)", got)
	}

	time.Sleep(80 * time.Millisecond)
	if got := saver.count(); got != 1 {
		t.Fatalf("autosave count = %d, want 1", got)
	}
	saver.mu.Lock()
	content := saver.saves[0].Content
	saver.mu.Unlock()
	if content != "<p>second</p>" {
		t.Fatalf("autosaved content = %q, want latest", content)
	}
}

func TestAutosaveSkipsWhitespaceOnlyContent(t *testing.T) {
	saver := &recordingSaver{}
	session := NewSession(saver, WithAutosaveDelay(30*time.Millisecond))
	defer session.Close()

	session.Update(Patch{Content: strptr("   \n\t ")})
	time.Sleep(100 * time.Millisecond)

	if got := saver.count(); got != 0 {
		t.Fatalf("autosave count = %d, want 0 for whitespace-only content", got)
	}
}

func TestTitleUpdateDoesNotArmAutosave(t *testing.T) {
	saver := &recordingSaver{}
	session := NewSession(saver, WithAutosaveDelay(30*time.Millisecond))
	defer session.Close()

	session.Update(Patch{Title: strptr("Retainer Agreement")})
	time.Sleep(100 * time.Millisecond)

	if got := saver.count(); got != 0 {
		t.Fatalf("autosave count = %d, want 0 when only the title changed", got)
	}
}

func TestManualSaveAssignsIDAndTimestamp(t *testing.T) {
	saver := &recordingSaver{}
	session := NewSession(saver)
	defer session.Close()

	session.Update(Patch{Content: strptr("<p>x</p>")})
	receipt, err := session.Save(context.Background())
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if receipt.DocumentID == "" {
		t.Fatal("expected a document id")
	}

	doc := session.Get()
	if doc.ID != receipt.DocumentID {
		t.Fatalf("doc.ID = %q, want %q", doc.ID, receipt.DocumentID)
	}
	if doc.LastSaved == nil {
		t.Fatal("lastSaved not set after save")
	}
}

func TestCloseStopsAutosave(t *testing.T) {
	saver := &recordingSaver{}
	session := NewSession(saver, WithAutosaveDelay(30*time.Millisecond))

	session.Update(Patch{Content: strptr("<p>x</p>")})
	session.Close()
	time.Sleep(100 * time.Millisecond)

	if got := saver.count(); got != 0 {
		t.Fatalf("autosave count = %d, want 0 after Close", got)
	}
}
