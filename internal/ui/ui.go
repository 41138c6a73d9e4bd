// Package ui renders the short status lines printed between engine steps.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/zpdzap/muslambda/internal/logging"
)

// Printer writes styled status lines. Styling is dropped when the writer is
// not a terminal.
type Printer struct {
	w     io.Writer
	plain bool
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, plain: !logging.IsTerminal(w)}
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if p.plain {
		return s
	}
	return style.Render(s)
}

// Step announces an engine step about to run.
func (p *Printer) Step(name, detail string) {
	line := p.render(stepStyle, "==> "+name)
	if detail != "" {
		line += " " + p.render(detailStyle, detail)
	}
	fmt.Fprintln(p.w, line)
}

// Success reports a completed pipeline.
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.w, p.render(successStyle, "✓ "+msg))
}

// Notice reports something the user should see but that is not an error.
func (p *Printer) Notice(msg string) {
	fmt.Fprintln(p.w, p.render(noticeStyle, "! "+msg))
}
