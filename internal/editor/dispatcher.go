package editor

import (
	"fmt"
	"log"
	"strconv"
	"strings"
)

const (
	minFontOrdinal  = 1
	maxFontOrdinal  = 7
	defaultTableDim = 3
)

// Dispatcher applies format commands to a host and reports the resulting
// content back through OnContent. Any failure is caught and logged; from
// the caller's perspective a failed command is a silent no-op.
type Dispatcher struct {
	host     Host
	prompter Prompter

	// Current display values. The point size is retained here because the
	// host primitive only accepts the bounded 1-7 ordinal scale.
	font       string
	fontSize   string
	lineHeight string

	// OnContent, when set, receives the serialized content after every
	// successful command.
	OnContent func(html string)
}

func NewDispatcher(host Host, prompter Prompter) *Dispatcher {
	if prompter == nil {
		prompter = NoPrompt
	}
	return &Dispatcher{
		host:       host,
		prompter:   prompter,
		font:       "Times New Roman",
		fontSize:   "12",
		lineHeight: "1.5",
	}
}

// Font returns the current font family for display purposes.
func (d *Dispatcher) Font() string { return d.font }

// FontSizePoints returns the current point size for display purposes.
func (d *Dispatcher) FontSizePoints() string { return d.fontSize }

// LineHeight returns the current line height for display purposes.
func (d *Dispatcher) LineHeight() string { return d.lineHeight }

// Apply executes one format command at the current selection.
func (d *Dispatcher) Apply(cmd Command) {
	if err := d.apply(cmd); err != nil {
		log.Printf("editor: command %s failed: %v", cmd.Kind, err)
		return
	}
	if d.OnContent != nil {
		d.OnContent(d.host.Content())
	}
}

func (d *Dispatcher) apply(cmd Command) error {
	switch cmd.Kind {
	case KindFontName:
		if cmd.Value == "" {
			return nil
		}
		if err := d.host.ExecCommand("fontName", cmd.Value); err != nil {
			return err
		}
		d.font = cmd.Value
		return nil

	case KindFontSize:
		if cmd.Value == "" {
			return nil
		}
		ordinal, err := FontSizeOrdinal(cmd.Value)
		if err != nil {
			return err
		}
		if err := d.host.ExecCommand("fontSize", strconv.Itoa(ordinal)); err != nil {
			return err
		}
		d.fontSize = cmd.Value
		return nil

	case KindForeColor, KindHighlightColor:
		if cmd.Value == "" {
			return nil
		}
		return d.host.ExecCommand(execNames[cmd.Kind], cmd.Value)

	case KindCreateLink:
		url := cmd.Value
		if url == "" {
			url = d.prompter.Prompt("Enter URL:")
		}
		if url == "" {
			return nil
		}
		return d.host.ExecCommand("createLink", url)

	case KindInsertImage:
		url := cmd.Value
		if url == "" {
			url = d.prompter.Prompt("Enter image URL:")
		}
		if url == "" {
			return nil
		}
		return d.host.ExecCommand("insertImage", url)

	case KindInsertTable:
		return d.insertTable(cmd.Value)

	case KindLineHeight:
		if cmd.Value == "" {
			return nil
		}
		return d.applyLineHeight(cmd.Value)

	case KindUndo, KindRedo:
		// The host's native history is authoritative; no independent
		// history is kept here.
		return d.host.ExecCommand(execNames[cmd.Kind], "")

	default:
		name, ok := execNames[cmd.Kind]
		if !ok {
			return fmt.Errorf("unsupported command kind %q", cmd.Kind)
		}
		return d.host.ExecCommand(name, cmd.Value)
	}
}

// FontSizeOrdinal remaps a point size onto the bounded 1-7 scale the host
// primitive accepts: clamp(floor(points/4), 1, 7).
func FontSizeOrdinal(points string) (int, error) {
	pts, err := strconv.Atoi(strings.TrimSpace(points))
	if err != nil {
		return 0, fmt.Errorf("invalid point size %q", points)
	}
	ordinal := pts / 4
	if ordinal < minFontOrdinal {
		ordinal = minFontOrdinal
	}
	if ordinal > maxFontOrdinal {
		ordinal = maxFontOrdinal
	}
	return ordinal, nil
}

// insertTable builds a grid of empty bordered cells and inserts it at the
// current selection, or appends it when nothing is selected. Dimensions
// come from value ("RxC"), then the prompter; missing or invalid counts
// default to 3.
func (d *Dispatcher) insertTable(value string) error {
	rows, cols := parseTableDims(value)
	if rows == 0 {
		rows = promptDim(d.prompter, "Number of rows:")
	}
	if cols == 0 {
		cols = promptDim(d.prompter, "Number of columns:")
	}

	table := BuildTableHTML(rows, cols)
	if d.host.HasSelection() {
		return d.host.InsertHTML(table)
	}
	return d.host.AppendHTML(table)
}

// BuildTableHTML renders a rows x cols grid of empty bordered cells.
func BuildTableHTML(rows, cols int) string {
	if rows < 1 {
		rows = defaultTableDim
	}
	if cols < 1 {
		cols = defaultTableDim
	}

	var b strings.Builder
	b.WriteString(`<table border="1" style="border-collapse: collapse; width: 100%; margin: 10px 0;">`)
	for i := 0; i < rows; i++ {
		b.WriteString("<tr>")
		for j := 0; j < cols; j++ {
			b.WriteString(`<td style="padding: 8px; border: 1px solid #ccc; min-width: 100px; min-height: 20px;">&nbsp;</td>`)
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table><p>&nbsp;</p>")
	return b.String()
}

// applyLineHeight wraps only the selected range when there is one, and
// styles the whole document container otherwise.
func (d *Dispatcher) applyLineHeight(height string) error {
	var err error
	if d.host.HasSelection() {
		err = d.host.WrapSelection("line-height: " + height)
	} else {
		err = d.host.SetDocumentStyle("line-height", height)
	}
	if err != nil {
		return err
	}
	d.lineHeight = height
	return nil
}

func parseTableDims(value string) (rows, cols int) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return 0, 0
	}
	parts := strings.SplitN(value, "x", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	rows, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	cols, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	return rows, cols
}

func promptDim(p Prompter, label string) int {
	answer := strings.TrimSpace(p.Prompt(label))
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 {
		return defaultTableDim
	}
	return n
}
