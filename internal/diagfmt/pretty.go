package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"hellomacro/internal/diag"
	"hellomacro/internal/source"
)

type palette struct {
	err, warn, info, note, loc, gutter, caret, fix *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgBlue, color.Bold),
		loc:    mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		fix:    mk(color.FgGreen),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	f := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s %s %s\n",
		pal.loc.Sprintf("%s:%d:%d:", formatPath(f, fs, opts.PathMode), start.Line, start.Col),
		pal.severity(d.Severity).Sprintf("%s %s:", d.Severity, d.Code.ID()),
		d.Message)
	if f != nil {
		writeSnippet(w, f, fs, d.Primary, int(opts.Context), pal)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s %s\n",
				pal.note.Sprint("note:"),
				pal.loc.Sprintf("%s:%d:%d:", formatPath(nf, fs, opts.PathMode), ns.Line, ns.Col),
				n.Msg)
			if nf != nil {
				writeSnippet(w, nf, fs, n.Span, 0, pal)
			}
		}
	}

	if opts.ShowFixes {
		for i, fix := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", pal.fix.Sprintf("fix #%d:", i+1), fix.Title)
			for _, e := range fix.Edits {
				ef := fs.Get(e.Span.File)
				es, _ := fs.Resolve(e.Span)
				fmt.Fprintf(w, "    %s:%d:%d apply=%q\n", formatPath(ef, fs, opts.PathMode), es.Line, es.Col, e.NewText)
			}
		}
	}
}

// writeSnippet печатает строки span с номерами и подчёркивание под первой.
func writeSnippet(w io.Writer, f *source.File, fs *source.FileSet, sp source.Span, context int, pal palette) {
	start, end := fs.Resolve(sp)
	if start.Line == 0 || len(f.Content) == 0 {
		return
	}
	lastLine := uint32(len(f.LineIdx) + 1)
	from := start.Line
	to := start.Line
	for range context {
		if from > 1 {
			from--
		}
		if to < lastLine {
			to++
		}
	}
	gutterWidth := len(fmt.Sprint(to))

	for ln := from; ln <= to; ln++ {
		line := f.GetLine(ln)
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), line)
		if ln != start.Line {
			continue
		}
		endCol := end.Col
		if end.Line != start.Line {
			endCol = uint32(len(line)) + 1
		}
		pad, width := caretLayout(line, int(start.Col), int(endCol))
		underline := "^" + strings.Repeat("~", max(width-1, 0))
		fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), pad, pal.caret.Sprint(underline))
	}
}

// caretLayout returns the indentation before the caret and the display
// width of the underlined part. Columns are 1-based byte columns; tabs in
// the prefix are kept so the caret lines up in the terminal.
func caretLayout(line string, startCol, endCol int) (string, int) {
	startCol = min(max(startCol-1, 0), len(line))
	endCol = min(max(endCol-1, startCol), len(line))

	var pad strings.Builder
	for _, r := range line[:startCol] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	width := runewidth.StringWidth(line[startCol:endCol])
	return pad.String(), max(width, 1)
}
