// Package diagfmt renders diagnostics and lowered units for humans and
// for tools: an annotated text form with source excerpts, and a stable
// JSON form.
package diagfmt

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"sable/internal/diag"
	"sable/internal/source"
)

// DetectColor reports whether fd is a terminal willing to take ANSI color.
func DetectColor(fd uintptr) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(fd))
}

// Pretty renders diagnostics in a human-readable form. It walks
// bag.Items() (bag.Sort() is expected beforehand) and prints, for each
// diagnostic, a <path>:<line>:<col>: <SEV> <CODE>: <message> header, the
// source line with a ^~~~ underline over the span, and then the notes
// and fixes when the options ask for them.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := prettyPrinter{w: w, fs: fs, opts: opts}
	for _, d := range bag.Items() {
		p.diagnostic(d)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p *prettyPrinter) diagnostic(d diag.Diagnostic) {
	sev := p.paint(severityColor(d.Severity), d.Severity.String())
	code := p.paint(color.New(color.Bold), d.Code.ID())
	fmt.Fprintf(p.w, "%s: %s %s: %s\n", p.location(d.Primary), sev, code, d.Message)
	p.excerpt(d.Primary, severityColor(d.Severity))

	if p.opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(p.w, "  %s: %s: %s\n", p.location(n.Span), p.paint(noteColor(), "note"), n.Msg)
			p.excerpt(n.Span, noteColor())
		}
	}
	if p.opts.ShowFixes {
		for _, fx := range d.Fixes {
			fmt.Fprintf(p.w, "  %s: %s\n", p.paint(noteColor(), "fix"), fx.Title)
		}
	}
}

func (p *prettyPrinter) location(span source.Span) string {
	if p.fs == nil || int(span.File) >= p.fs.Len() {
		return "<unknown>"
	}
	f := p.fs.Get(span.File)
	path := formatPath(f.Path, f.Flags&source.FileVirtual != 0, p.opts.PathMode)
	start, _ := p.fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

// excerpt prints the first line of the span with an underline. Underline
// columns are measured in display cells, not bytes.
func (p *prettyPrinter) excerpt(span source.Span, c *color.Color) {
	if p.fs == nil || int(span.File) >= p.fs.Len() || span.Empty() {
		return
	}
	f := p.fs.Get(span.File)
	start, _ := p.fs.Resolve(span)
	line := f.GetLine(start.Line)
	if strings.TrimSpace(line) == "" {
		return
	}

	prefixEnd := int(start.Col) - 1
	if prefixEnd > len(line) {
		prefixEnd = len(line)
	}
	spanEnd := prefixEnd + int(span.Len())
	if spanEnd > len(line) {
		spanEnd = len(line)
	}

	pad := runewidth.StringWidth(line[:prefixEnd])
	width := runewidth.StringWidth(line[prefixEnd:spanEnd])
	if width < 1 {
		width = 1
	}

	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(p.w, "  %4d | %s\n", start.Line, line)
	fmt.Fprintf(p.w, "       | %s%s\n", strings.Repeat(" ", pad), p.paint(c, marker))
}

func (p *prettyPrinter) paint(c *color.Color, s string) string {
	if !p.opts.Color {
		return s
	}
	c.EnableColor()
	return c.Sprint(s)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

func noteColor() *color.Color {
	return color.New(color.FgBlue)
}
