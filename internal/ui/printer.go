package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Printer writes user-facing output. Styling is applied only when Color is
// set, so redirected output and tests see plain text.
type Printer struct {
	Out   io.Writer
	Color bool
}

// NewPrinter colours output only when w is a terminal
func NewPrinter(w io.Writer) *Printer {
	return &Printer{Out: w, Color: ShouldColorize(w)}
}

// ShouldColorize reports whether writer is a terminal
func ShouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.Color {
		return s
	}
	return style.Render(s)
}

func (p *Printer) marker(m lipgloss.Style) string {
	if !p.Color {
		return m.Value()
	}
	return m.String()
}

func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.Out, a...)
}

func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.Out, format, a...)
}

func (p *Printer) Title(s string) {
	fmt.Fprintln(p.Out, p.render(TitleStyle, s))
}

func (p *Printer) Highlight(s string) string {
	return p.render(HighlightStyle, s)
}

func (p *Printer) Muted(s string) string {
	return p.render(MutedStyle, s)
}

func (p *Printer) OK(message string) {
	fmt.Fprintln(p.Out, p.marker(OKMarker)+" "+message)
}

func (p *Printer) Info(message string) {
	fmt.Fprintln(p.Out, p.marker(InfoMarker)+" "+message)
}

func (p *Printer) Warn(message string) {
	fmt.Fprintln(p.Out, p.marker(WarnMarker)+" "+message)
}

func (p *Printer) Fail(message string) {
	fmt.Fprintln(p.Out, p.marker(FailMarker)+" "+message)
}

// Block prints a pre-rendered multi-line block followed by a blank line
func (p *Printer) Block(s string) {
	fmt.Fprintln(p.Out, strings.TrimRight(s, "\n"))
	fmt.Fprintln(p.Out)
}
