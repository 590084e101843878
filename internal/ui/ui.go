// Package ui holds terminal-aware formatting helpers for command output.
package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// Printer colors text only when its writer is a terminal.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter returns a Printer for w. Color is enabled when w is a terminal
// and NO_COLOR is unset.
func NewPrinter(w io.Writer) *Printer {
	_, noColor := os.LookupEnv("NO_COLOR")
	return &Printer{w: w, color: IsTerminal(w) && !noColor}
}

// IsTerminal returns true if w is a terminal.
func IsTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// SetColor overrides terminal detection.
func (p *Printer) SetColor(enabled bool) {
	p.color = enabled
}

func (p *Printer) wrap(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + colorReset
}

// Green returns s wrapped in green ANSI codes if colors are enabled.
func (p *Printer) Green(s string) string { return p.wrap(colorGreen, s) }

// Red returns s wrapped in red ANSI codes if colors are enabled.
func (p *Printer) Red(s string) string { return p.wrap(colorRed, s) }

// Yellow returns s wrapped in yellow ANSI codes if colors are enabled.
func (p *Printer) Yellow(s string) string { return p.wrap(colorYellow, s) }

// Gray returns s wrapped in gray ANSI codes if colors are enabled.
func (p *Printer) Gray(s string) string { return p.wrap(colorGray, s) }
