package render

import (
	"fmt"
	"io"
	"strings"
)

// htmlWriter remembers the first write error; later writes are skipped
// and the error is reported once by err.
type htmlWriter struct {
	w      io.Writer
	indent string
	pretty bool
	failed error
}

func (hw *htmlWriter) str(s string) {
	if hw.failed != nil {
		return
	}
	_, hw.failed = io.WriteString(hw.w, s)
}

func (hw *htmlWriter) printf(format string, args ...any) {
	if hw.failed != nil {
		return
	}
	_, hw.failed = fmt.Fprintf(hw.w, format, args...)
}

// newline writes a line break in pretty mode.
func (hw *htmlWriter) newline() {
	if hw.pretty {
		hw.str("\n")
	}
}

// pad writes depth levels of indentation in pretty mode.
func (hw *htmlWriter) pad(depth int) {
	if hw.pretty && depth > 0 {
		hw.str(strings.Repeat(hw.indent, depth))
	}
}

func (hw *htmlWriter) err() error {
	return hw.failed
}
