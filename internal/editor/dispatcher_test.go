package editor

import (
	"strings"
	"testing"
)

func staticPrompter(answers map[string]string) Prompter {
	return PromptFunc(func(label string) string {
		return answers[label]
	})
}

func TestFontSizeOrdinal(t *testing.T) {
	tests := []struct {
		points  string
		want    int
		wantErr bool
	}{
		{"12", 3, false},
		{"8", 2, false},
		{"9", 2, false},
		{"4", 1, false},
		{"2", 1, false},
		{"28", 7, false},
		{"72", 7, false},
		{" 16 ", 4, false},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := FontSizeOrdinal(tt.points)
		if (err != nil) != tt.wantErr {
			t.Errorf("FontSizeOrdinal(%q) error = %v, wantErr %v", tt.points, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("FontSizeOrdinal(%q) = %d, want %d", tt.points, got, tt.want)
		}
	}
}

func TestFontSizeForwardsOrdinalRetainsPoints(t *testing.T) {
	host := NewFragmentHost("plain text")
	if err := host.SetSelection(0, 5); err != nil {
		t.Fatal(err)
	}
	d := NewDispatcher(host, nil)

	d.Apply(Command{Kind: KindFontSize, Value: "12"})

	if !strings.Contains(host.Content(), `<font size="3">`) {
		t.Fatalf("host did not receive the remapped ordinal: %q", host.Content())
	}
	if d.FontSizePoints() != "12" {
		t.Fatalf("point size not retained, got %q", d.FontSizePoints())
	}
}

func TestBoldWrapsSelection(t *testing.T) {
	host := NewFragmentHost("hello world")
	if err := host.SetSelection(0, 5); err != nil {
		t.Fatal(err)
	}
	var reported string
	d := NewDispatcher(host, nil)
	d.OnContent = func(html string) { reported = html }

	d.Apply(Command{Kind: KindBold})

	if host.Content() != "<b>hello</b> world" {
		t.Fatalf("content = %q", host.Content())
	}
	if reported != host.Content() {
		t.Fatalf("dispatcher did not re-read content: %q", reported)
	}
}

func TestCommandFailureIsSilentNoOp(t *testing.T) {
	host := NewFragmentHost("hello world")
	// No selection: the inline command fails in the host.
	d := NewDispatcher(host, nil)
	called := false
	d.OnContent = func(string) { called = true }

	d.Apply(Command{Kind: KindBold})

	if host.Content() != "hello world" {
		t.Fatalf("content changed on failed command: %q", host.Content())
	}
	if called {
		t.Fatal("OnContent fired for a failed command")
	}
}

func TestInsertTableDefaultsToThreeByThree(t *testing.T) {
	host := NewFragmentHost("")
	d := NewDispatcher(host, staticPrompter(nil)) // prompter answers nothing

	d.Apply(Command{Kind: KindInsertTable})

	content := host.Content()
	if got := strings.Count(content, "<tr>"); got != 3 {
		t.Fatalf("rows = %d, want 3", got)
	}
	if got := strings.Count(content, "<td"); got != 9 {
		t.Fatalf("cells = %d, want 9", got)
	}
	if !strings.Contains(content, `border: 1px solid #ccc`) {
		t.Fatal("cells are not bordered")
	}
}

func TestInsertTableUsesPromptedDimensions(t *testing.T) {
	host := NewFragmentHost("")
	d := NewDispatcher(host, staticPrompter(map[string]string{
		"Number of rows:":    "2",
		"Number of columns:": "4",
	}))

	d.Apply(Command{Kind: KindInsertTable})

	content := host.Content()
	if got := strings.Count(content, "<tr>"); got != 2 {
		t.Fatalf("rows = %d, want 2", got)
	}
	if got := strings.Count(content, "<td"); got != 8 {
		t.Fatalf("cells = %d, want 8", got)
	}
}

func TestInsertTableValueDimensions(t *testing.T) {
	host := NewFragmentHost("abcdef")
	// Collapsed selection is a cursor, not a range: the table appends.
	if err := host.SetSelection(3, 3); err != nil {
		t.Fatal(err)
	}
	d := NewDispatcher(host, nil)

	d.Apply(Command{Kind: KindInsertTable, Value: "1x2"})

	content := host.Content()
	if !strings.HasPrefix(content, "abcdef<table") {
		t.Fatalf("table not appended without an active selection: %q", content)
	}
	if got := strings.Count(content, "<td"); got != 2 {
		t.Fatalf("cells = %d, want 2", got)
	}
}

func TestInsertTableAtSelection(t *testing.T) {
	host := NewFragmentHost("before|after")
	if err := host.SetSelection(6, 7); err != nil {
		t.Fatal(err)
	}
	d := NewDispatcher(host, nil)

	d.Apply(Command{Kind: KindInsertTable, Value: "1x1"})

	content := host.Content()
	if !strings.HasPrefix(content, "before<table") || !strings.HasSuffix(content, "after") {
		t.Fatalf("table not inserted at selection: %q", content)
	}
}

func TestLineHeightWrapsSelectionOnly(t *testing.T) {
	host := NewFragmentHost("one two three")
	if err := host.SetSelection(4, 7); err != nil {
		t.Fatal(err)
	}
	d := NewDispatcher(host, nil)

	d.Apply(Command{Kind: KindLineHeight, Value: "2.0"})

	if host.Content() != `one <div style="line-height: 2.0;">two</div> three` {
		t.Fatalf("content = %q", host.Content())
	}
	if d.LineHeight() != "2.0" {
		t.Fatalf("line height not retained, got %q", d.LineHeight())
	}
}

func TestLineHeightAppliesToDocumentWithoutSelection(t *testing.T) {
	host := NewFragmentHost("one two three")
	d := NewDispatcher(host, nil)

	d.Apply(Command{Kind: KindLineHeight, Value: "1.15"})

	if host.Content() != "one two three" {
		t.Fatalf("content changed: %q", host.Content())
	}
	if host.DocumentStyle("line-height") != "1.15" {
		t.Fatal("document container style not applied")
	}
}

func TestCreateLinkNoOpsWithoutURL(t *testing.T) {
	host := NewFragmentHost("click here")
	if err := host.SetSelection(0, 5); err != nil {
		t.Fatal(err)
	}
	d := NewDispatcher(host, staticPrompter(nil))

	d.Apply(Command{Kind: KindCreateLink})

	if host.Content() != "click here" {
		t.Fatalf("content changed without a URL: %q", host.Content())
	}
}

func TestCreateLinkWithPromptedURL(t *testing.T) {
	host := NewFragmentHost("click here")
	if err := host.SetSelection(0, 5); err != nil {
		t.Fatal(err)
	}
	d := NewDispatcher(host, staticPrompter(map[string]string{
		"Enter URL:": "https://example.com",
	}))

	d.Apply(Command{Kind: KindCreateLink})

	if host.Content() != `<a href="https://example.com">click</a> here` {
		t.Fatalf("content = %q", host.Content())
	}
}

func TestUndoDelegatesToHostHistory(t *testing.T) {
	host := NewFragmentHost("hello")
	if err := host.SetSelection(0, 5); err != nil {
		t.Fatal(err)
	}
	d := NewDispatcher(host, nil)

	d.Apply(Command{Kind: KindBold})
	if host.Content() != "<b>hello</b>" {
		t.Fatalf("content = %q", host.Content())
	}

	d.Apply(Command{Kind: KindUndo})
	if host.Content() != "hello" {
		t.Fatalf("undo did not restore content: %q", host.Content())
	}

	d.Apply(Command{Kind: KindRedo})
	if host.Content() != "<b>hello</b>" {
		t.Fatalf("redo did not restore content: %q", host.Content())
	}
}

func TestRequiresValue(t *testing.T) {
	if !KindFontSize.RequiresValue() {
		t.Error("font-size should require a value")
	}
	if KindBold.RequiresValue() {
		t.Error("bold should not require a value")
	}
}
