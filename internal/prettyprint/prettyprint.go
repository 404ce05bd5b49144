// Package prettyprint renders internal/errors diagnostics as human-facing
// text: a header, the offending source line, and a caret underline,
// optionally in color. This is driver-only — internal/errors and every
// pipeline stage stay free of this formatting so embedders that don't
// want a terminal-shaped error message never pay for one.
package prettyprint

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	coreerrors "github.com/glitterlang/glitter/internal/errors"
)

// Formatter renders Errors against the source text they came from. A zero
// Formatter is usable; color defaults to enabled (callers wanting plain
// text should use color.NoColor or construct with Colorless()).
type Formatter struct {
	bold *color.Color
	dim  *color.Color
	red  *color.Color
}

// New creates a Formatter with color enabled.
func New() *Formatter {
	return &Formatter{
		bold: color.New(color.Bold),
		dim:  color.New(color.Faint),
		red:  color.New(color.FgRed, color.Bold),
	}
}

// Colorless creates a Formatter that emits plain text — for output
// destinations that aren't a terminal, per the driver's own isatty check.
func Colorless() *Formatter {
	plain := func() *color.Color {
		c := color.New()
		c.DisableColor()
		return c
	}
	return &Formatter{
		bold: plain(),
		dim:  plain(),
		red:  plain(),
	}
}

// One formats a single error against source, its original text.
func (f *Formatter) One(e *coreerrors.Error, source string) string {
	if f.bold == nil {
		f = New()
	}
	var sb strings.Builder

	if e.Path != "" {
		fmt.Fprintf(&sb, "%s: %s:%d\n", e.Kind, e.Path, e.Line)
	} else {
		fmt.Fprintf(&sb, "%s: line %d\n", e.Kind, e.Line)
	}

	if line, ok := sourceLine(source, e.Line); ok {
		column := columnOf(source, e.Offset, e.Line)
		prefix := fmt.Sprintf("%4d | ", e.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+column-1))
		sb.WriteString(f.red.Sprint(strings.Repeat("^", caretWidth(e.Length))))
		sb.WriteString("\n")
	}

	sb.WriteString(f.bold.Sprint(e.Message))
	return sb.String()
}

// All formats every error in errs, separated by blank lines.
func (f *Formatter) All(errs coreerrors.List, source string) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = f.One(e, source)
	}
	return strings.Join(parts, "\n\n")
}

func caretWidth(length int) int {
	if length <= 0 {
		return 1
	}
	return length
}

// sourceLine returns the 1-indexed line of source, or ok=false if line is
// out of range (e.g. an error with no backing source text at all).
func sourceLine(source string, line int) (string, bool) {
	if source == "" || line < 1 {
		return "", false
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return "", false
	}
	return lines[line-1], true
}

// columnOf computes the 1-based column of offset within its line, by
// finding that line's starting byte offset and subtracting.
func columnOf(source string, offset, line int) int {
	lines := strings.Split(source, "\n")
	lineStart := 0
	for i := 0; i < line-1 && i < len(lines); i++ {
		lineStart += len(lines[i]) + 1 // +1 for the newline consumed by Split
	}
	col := offset - lineStart + 1
	if col < 1 {
		return 1
	}
	return col
}
