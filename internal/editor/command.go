// Package editor translates user-facing formatting actions into edits
// against the current document content. The dispatcher never keeps its own
// text-offset model; cursor and selection state belong to the host
// content-editing primitive.
package editor

// Kind identifies a formatting action.
type Kind string

const (
	KindBold           Kind = "bold"
	KindItalic         Kind = "italic"
	KindUnderline      Kind = "underline"
	KindStrike         Kind = "strike"
	KindSubscript      Kind = "subscript"
	KindSuperscript    Kind = "superscript"
	KindAlignLeft      Kind = "align-left"
	KindAlignCenter    Kind = "align-center"
	KindAlignRight     Kind = "align-right"
	KindAlignJustify   Kind = "align-justify"
	KindListOrdered    Kind = "list-ordered"
	KindListUnordered  Kind = "list-unordered"
	KindIndent         Kind = "indent"
	KindOutdent        Kind = "outdent"
	KindFontName       Kind = "font-name"
	KindFontSize       Kind = "font-size"
	KindForeColor      Kind = "fore-color"
	KindHighlightColor Kind = "highlight-color"
	KindCreateLink     Kind = "create-link"
	KindInsertImage    Kind = "insert-image"
	KindInsertTable    Kind = "insert-table"
	KindLineHeight     Kind = "line-height"
	KindUndo           Kind = "undo"
	KindRedo           Kind = "redo"
)

// Command pairs a kind with its optional parameter (font name, point size,
// color, URL, table dimensions, line height).
type Command struct {
	Kind  Kind   `json:"kind"`
	Value string `json:"value,omitempty"`
}

// RequiresValue reports whether the kind is parameterized.
func (k Kind) RequiresValue() bool {
	switch k {
	case KindFontName, KindFontSize, KindForeColor, KindHighlightColor, KindLineHeight:
		return true
	}
	return false
}

// execNames maps kinds to the host primitive's command vocabulary.
var execNames = map[Kind]string{
	KindBold:           "bold",
	KindItalic:         "italic",
	KindUnderline:      "underline",
	KindStrike:         "strikeThrough",
	KindSubscript:      "subscript",
	KindSuperscript:    "superscript",
	KindAlignLeft:      "justifyLeft",
	KindAlignCenter:    "justifyCenter",
	KindAlignRight:     "justifyRight",
	KindAlignJustify:   "justifyFull",
	KindListOrdered:    "insertOrderedList",
	KindListUnordered:  "insertUnorderedList",
	KindIndent:         "indent",
	KindOutdent:        "outdent",
	KindFontName:       "fontName",
	KindFontSize:       "fontSize",
	KindForeColor:      "foreColor",
	KindHighlightColor: "hiliteColor",
	KindCreateLink:     "createLink",
	KindInsertImage:    "insertImage",
	KindUndo:           "undo",
	KindRedo:           "redo",
}
