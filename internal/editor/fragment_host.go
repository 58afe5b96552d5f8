package editor

import (
	"fmt"
	"strings"
)

// FragmentHost is a minimal in-memory implementation of Host for tests and
// non-browser embedders. It models selection as an explicit byte range over
// the serialized content and keeps its own undo/redo snapshots, standing in
// for the native history a real primitive provides. It is not a rich-text
// engine; block-level commands apply to the selection or the whole
// fragment.
type FragmentHost struct {
	content string
	// -1 means no active selection.
	selStart, selEnd int

	docStyles map[string]string
	undoStack []string
	redoStack []string
}

func NewFragmentHost(content string) *FragmentHost {
	return &FragmentHost{
		content:   content,
		selStart:  -1,
		selEnd:    -1,
		docStyles: map[string]string{},
	}
}

// SetSelection selects the byte range [start, end) of the current content.
func (h *FragmentHost) SetSelection(start, end int) error {
	if start < 0 || end > len(h.content) || start > end {
		return fmt.Errorf("selection [%d, %d) out of range", start, end)
	}
	h.selStart, h.selEnd = start, end
	return nil
}

// ClearSelection drops the active selection.
func (h *FragmentHost) ClearSelection() {
	h.selStart, h.selEnd = -1, -1
}

func (h *FragmentHost) HasSelection() bool {
	return h.selStart >= 0 && h.selEnd > h.selStart
}

func (h *FragmentHost) Content() string {
	return h.content
}

// ResetContent replaces the fragment wholesale, clearing the selection.
// Used when the embedder supplies new content from outside the host.
func (h *FragmentHost) ResetContent(content string) {
	h.snapshot()
	h.content = content
	h.selStart, h.selEnd = -1, -1
}

// inlineTags maps exec command names to the wrapper tag for the selection.
var inlineTags = map[string]string{
	"bold":          "b",
	"italic":        "i",
	"underline":     "u",
	"strikeThrough": "s",
	"subscript":     "sub",
	"superscript":   "sup",
}

var alignments = map[string]string{
	"justifyLeft":   "left",
	"justifyCenter": "center",
	"justifyRight":  "right",
	"justifyFull":   "justify",
}

func (h *FragmentHost) ExecCommand(name, value string) error {
	switch name {
	case "undo":
		return h.undo()
	case "redo":
		return h.redo()
	}

	if tag, ok := inlineTags[name]; ok {
		return h.wrapSelectionTag("<"+tag+">", "</"+tag+">")
	}
	if align, ok := alignments[name]; ok {
		return h.wrapBlock(`<div style="text-align: ` + align + `;">`, "</div>")
	}

	switch name {
	case "fontName":
		return h.wrapSelectionTag(`<span style="font-family: `+value+`;">`, "</span>")
	case "fontSize":
		return h.wrapSelectionTag(`<font size="`+value+`">`, "</font>")
	case "foreColor":
		return h.wrapSelectionTag(`<span style="color: `+value+`;">`, "</span>")
	case "hiliteColor":
		return h.wrapSelectionTag(`<span style="background-color: `+value+`;">`, "</span>")
	case "createLink":
		return h.wrapSelectionTag(`<a href="`+value+`">`, "</a>")
	case "insertImage":
		return h.InsertHTML(`<img src="` + value + `">`)
	case "insertOrderedList":
		return h.wrapBlock("<ol><li>", "</li></ol>")
	case "insertUnorderedList":
		return h.wrapBlock("<ul><li>", "</li></ul>")
	case "indent":
		return h.wrapBlock("<blockquote>", "</blockquote>")
	case "outdent":
		return h.unwrapBlockquote()
	default:
		return fmt.Errorf("unsupported host command %q", name)
	}
}

func (h *FragmentHost) InsertHTML(fragment string) error {
	h.snapshot()
	if h.HasSelection() {
		h.content = h.content[:h.selStart] + fragment + h.content[h.selEnd:]
		h.selStart, h.selEnd = -1, -1
		return nil
	}
	h.content += fragment
	return nil
}

func (h *FragmentHost) AppendHTML(fragment string) error {
	h.snapshot()
	h.content += fragment
	return nil
}

func (h *FragmentHost) WrapSelection(style string) error {
	if !h.HasSelection() {
		return fmt.Errorf("no active selection")
	}
	h.snapshot()
	selected := h.content[h.selStart:h.selEnd]
	wrapped := `<div style="` + style + `;">` + selected + "</div>"
	h.content = h.content[:h.selStart] + wrapped + h.content[h.selEnd:]
	h.selStart, h.selEnd = -1, -1
	return nil
}

func (h *FragmentHost) SetDocumentStyle(property, value string) error {
	h.docStyles[property] = value
	return nil
}

// DocumentStyle returns the inline style applied to the whole container.
func (h *FragmentHost) DocumentStyle(property string) string {
	return h.docStyles[property]
}

func (h *FragmentHost) wrapSelectionTag(open, close string) error {
	if !h.HasSelection() {
		return fmt.Errorf("no active selection")
	}
	h.snapshot()
	selected := h.content[h.selStart:h.selEnd]
	h.content = h.content[:h.selStart] + open + selected + close + h.content[h.selEnd:]
	h.selStart, h.selEnd = -1, -1
	return nil
}

// wrapBlock wraps the selection when there is one, the whole fragment
// otherwise.
func (h *FragmentHost) wrapBlock(open, close string) error {
	if h.HasSelection() {
		return h.wrapSelectionTag(open, close)
	}
	h.snapshot()
	h.content = open + h.content + close
	return nil
}

func (h *FragmentHost) unwrapBlockquote() error {
	trimmed := strings.TrimSpace(h.content)
	if !strings.HasPrefix(trimmed, "<blockquote>") || !strings.HasSuffix(trimmed, "</blockquote>") {
		return nil
	}
	h.snapshot()
	trimmed = strings.TrimPrefix(trimmed, "<blockquote>")
	trimmed = strings.TrimSuffix(trimmed, "</blockquote>")
	h.content = trimmed
	return nil
}

func (h *FragmentHost) snapshot() {
	h.undoStack = append(h.undoStack, h.content)
	h.redoStack = nil
}

func (h *FragmentHost) undo() error {
	if len(h.undoStack) == 0 {
		return fmt.Errorf("nothing to undo")
	}
	h.redoStack = append(h.redoStack, h.content)
	h.content = h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.selStart, h.selEnd = -1, -1
	return nil
}

func (h *FragmentHost) redo() error {
	if len(h.redoStack) == 0 {
		return fmt.Errorf("nothing to redo")
	}
	h.undoStack = append(h.undoStack, h.content)
	h.content = h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.selStart, h.selEnd = -1, -1
	return nil
}
