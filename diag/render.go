package diag

import (
	"bytes"
	"fmt"
	"go/token"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Printer renders diagnostics as
//
//	path:line:col: error[code]: message
//	    <source line>
//	    ^~~~
//	  path:line:col: note: message
type Printer struct {
	fset    *token.FileSet
	sources map[string][]byte

	errStyle  *color.Color
	warnStyle *color.Color
	infoStyle *color.Color
	noteStyle *color.Color
	markStyle *color.Color
}

// NewPrinter creates a printer resolving positions through fset.
func NewPrinter(fset *token.FileSet, colored bool) *Printer {
	p := &Printer{
		fset:      fset,
		sources:   make(map[string][]byte),
		errStyle:  color.New(color.FgRed, color.Bold),
		warnStyle: color.New(color.FgYellow, color.Bold),
		infoStyle: color.New(color.FgCyan),
		noteStyle: color.New(color.FgBlue, color.Bold),
		markStyle: color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.errStyle, p.warnStyle, p.infoStyle, p.noteStyle, p.markStyle} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// AddSource registers file contents so snippets do not hit the disk.
func (p *Printer) AddSource(filename string, src []byte) {
	p.sources[filename] = src
}

// PrintBag renders every diagnostic of the bag.
func (p *Printer) PrintBag(w io.Writer, bag *Bag) {
	for _, d := range bag.Items() {
		p.Print(w, d)
	}
	if n := bag.Omitted(); n > 0 {
		fmt.Fprintf(w, "%s: %d more diagnostics omitted\n", p.noteStyle.Sprint("note"), n)
	}
}

// Print renders a single diagnostic.
func (p *Printer) Print(w io.Writer, d Diagnostic) {
	style := p.errStyle
	switch d.Severity {
	case SevWarning:
		style = p.warnStyle
	case SevInfo:
		style = p.infoStyle
	}
	fmt.Fprintf(w, "%s: %s: %s\n",
		p.location(d.Primary.Pos),
		style.Sprintf("%s[%s]", d.Severity, d.Code),
		d.Message)
	p.snippet(w, d.Primary, "    ")
	for _, n := range d.Notes {
		fmt.Fprintf(w, "  %s: %s: %s\n", p.location(n.Span.Pos), p.noteStyle.Sprint("note"), n.Msg)
		p.snippet(w, n.Span, "      ")
	}
}

func (p *Printer) location(pos token.Pos) string {
	if p.fset == nil || !pos.IsValid() {
		return "-"
	}
	return p.fset.Position(pos).String()
}

func (p *Printer) snippet(w io.Writer, s Span, indent string) {
	if p.fset == nil || !s.IsValid() {
		return
	}
	start := p.fset.Position(s.Pos)
	line, ok := p.line(start.Filename, start.Line)
	if !ok {
		return
	}
	col := start.Column - 1
	if col > len(line) {
		col = len(line)
	}
	width := 1
	if s.End > s.Pos {
		end := col + int(s.End-s.Pos)
		if end > len(line) {
			end = len(line)
		}
		if cw := runewidth.StringWidth(line[col:end]); cw > 0 {
			width = cw
		}
	}
	fmt.Fprintf(w, "%s%s\n", indent, line)
	fmt.Fprintf(w, "%s%s%s\n", indent, pad(line[:col]), p.markStyle.Sprint("^"+strings.Repeat("~", width-1)))
}

func (p *Printer) line(filename string, n int) (string, bool) {
	src, ok := p.sources[filename]
	if !ok {
		data, err := os.ReadFile(filename)
		if err != nil {
			return "", false
		}
		p.sources[filename] = data
		src = data
	}
	lines := bytes.Split(src, []byte("\n"))
	if n < 1 || n > len(lines) {
		return "", false
	}
	return strings.TrimRight(string(lines[n-1]), "\r"), true
}

// pad keeps tabs and replaces everything else by blanks of the same display width.
func pad(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}
