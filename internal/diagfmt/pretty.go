package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"erasec/internal/diag"
	"erasec/internal/source"
)

type palette struct {
	sev  map[diag.Severity]*color.Color
	loc  *color.Color
	mark *color.Color
	note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		loc:  color.New(color.Bold),
		mark: color.New(color.FgRed),
		note: color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.loc, p.mark, p.note} {
		setColor(c, enabled)
	}
	for _, c := range p.sev {
		setColor(c, enabled)
	}
	return p
}

func setColor(c *color.Color, enabled bool) {
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
// Диагностики без файла (fs == nil) печатаются без позиции.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		sev := p.sev[d.Severity]
		if sev == nil {
			sev = p.loc
		}
		head := sev.Sprintf("%s %s", d.Severity, d.Code.ID())
		if loc, ok := location(fs, d.Primary, opts); ok {
			if _, err := fmt.Fprintf(w, "%s: %s: %s\n", p.loc.Sprint(loc), head, d.Message); err != nil {
				return err
			}
			if err := excerpt(w, fs, d.Primary, p.mark); err != nil {
				return err
			}
		} else if _, err := fmt.Fprintf(w, "%s: %s\n", head, d.Message); err != nil {
			return err
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			loc, ok := location(fs, n.Span, opts)
			if !ok {
				loc = "note"
			}
			if _, err := fmt.Fprintf(w, "  %s: %s %s\n", p.loc.Sprint(loc), p.note.Sprint("note:"), n.Msg); err != nil {
				return err
			}
			if ok {
				if err := excerpt(w, fs, n.Span, p.note); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func location(fs *source.FileSet, sp source.Span, opts PrettyOpts) (string, bool) {
	f := fs.Get(sp.File)
	if f == nil {
		return "", false
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(f, opts.PathMode, opts.BaseDir), start.Line, start.Col), true
}

// excerpt prints the first line of sp with a marker under the spanned text.
// Spans running past the line end are clipped to it.
func excerpt(w io.Writer, fs *source.FileSet, sp source.Span, mark *color.Color) error {
	start, end := fs.Resolve(sp)
	line := fs.Get(sp.File).Line(start.Line)
	if line == "" {
		return nil
	}
	line = strings.ReplaceAll(line, "\t", " ")
	from := min(int(start.Col)-1, len(line))
	to := len(line)
	if end.Line == start.Line {
		to = min(int(end.Col)-1, len(line))
	}
	pad := runewidth.StringWidth(line[:from])
	width := max(runewidth.StringWidth(line[from:max(from, to)]), 1)
	gutter := fmt.Sprintf("%5d | ", start.Line)
	if _, err := fmt.Fprintf(w, "%s%s\n", gutter, line); err != nil {
		return err
	}
	marker := "^" + strings.Repeat("~", width-1)
	_, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", len(gutter)+pad), mark.Sprint(marker))
	return err
}
