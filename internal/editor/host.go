package editor

// Host is the platform content-editing primitive. It owns cursor and
// selection state and the native undo stack; the dispatcher only forwards
// commands and re-reads the serialized content afterwards.
type Host interface {
	// ExecCommand applies a formatting command at the current selection.
	ExecCommand(name, value string) error
	// HasSelection reports whether a text range is currently selected.
	HasSelection() bool
	// InsertHTML inserts a fragment at the current selection.
	InsertHTML(fragment string) error
	// AppendHTML appends a fragment at the end of the document.
	AppendHTML(fragment string) error
	// WrapSelection wraps the selected range in a container with the given
	// inline style.
	WrapSelection(style string) error
	// SetDocumentStyle applies an inline style to the whole document
	// container.
	SetDocumentStyle(property, value string) error
	// Content returns the serialized document content.
	Content() string
}

// Prompter supplies values the user is asked for mid-command (link and
// image URLs, table dimensions).
type Prompter interface {
	Prompt(label string) string
}

// PromptFunc adapts a function to the Prompter interface.
type PromptFunc func(label string) string

func (f PromptFunc) Prompt(label string) string { return f(label) }

// NoPrompt is a Prompter that always answers with an empty string.
var NoPrompt = PromptFunc(func(string) string { return "" })
