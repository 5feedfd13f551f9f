// Package printers renders notes, dashboards and reports for the terminal.
package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/tags"
)

type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
	Now    func() time.Time
}

// New returns a printer writing to out, or to color.Output when out is nil.
func New(out io.Writer) *PrettyPrint {
	if out == nil {
		out = color.Output
	}
	return &PrettyPrint{Out: out, Now: time.Now}
}

var (
	titleStyle = color.New(color.Bold, color.Underline)
	faint      = color.New(color.Faint)
	idStyle    = color.New(color.FgHiYellow, color.Italic, color.Faint)
	tagStyle   = color.New(color.FgCyan)
	okStyle    = color.New(color.FgGreen)
	warnStyle  = color.New(color.FgYellow)
	errStyle   = color.New(color.FgRed, color.Bold)
)

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.Out)
}

func (pp *PrettyPrint) Title(title string) {
	_, _ = titleStyle.Fprintln(pp.Out, title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	_, _ = titleStyle.Fprint(pp.Out, title)
	_, _ = faint.Fprintf(pp.Out, " - %d %s\n", count, noun)
}

// Empty prints the placeholder for an empty collection.
func (pp *PrettyPrint) Empty(msg string) {
	_, _ = color.New(color.Faint, color.Italic).Fprintf(pp.Out, " %s\n", msg)
}

func (pp *PrettyPrint) Success(format string, args ...interface{}) {
	_, _ = okStyle.Fprint(pp.Out, "✓ ")
	_, _ = fmt.Fprintf(pp.Out, format+"\n", args...)
}

func (pp *PrettyPrint) Warning(format string, args ...interface{}) {
	_, _ = warnStyle.Fprint(pp.Out, "⚠ ")
	_, _ = fmt.Fprintf(pp.Out, format+"\n", args...)
}

func (pp *PrettyPrint) Failure(format string, args ...interface{}) {
	_, _ = errStyle.Fprint(pp.Out, "❌ ")
	_, _ = fmt.Fprintf(pp.Out, format+"\n", args...)
}

func (pp *PrettyPrint) table() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	return tbl
}

func (pp *PrettyPrint) flush(tbl *uitable.Table) {
	_, _ = fmt.Fprintln(pp.Out, tbl)
}

func (pp *PrettyPrint) id(id string) string {
	return idStyle.Sprint(id)
}

// Tags renders tags as colored #hashtags.
func Tags(list []string) string {
	out := make([]string, len(list))
	for i, t := range list {
		out[i] = tagStyle.Sprint("#" + t)
	}
	return strings.Join(out, " ")
}

// Notes prints notes newest first with their age and tags.
func (pp *PrettyPrint) Notes(title string, list []models.Note) {
	pp.TitleWithCount(title, len(list), plural(len(list), "note"))
	if len(list) == 0 {
		pp.Empty("none")
		return
	}
	tbl := pp.table()
	for _, n := range list {
		row := []interface{}{}
		if pp.ShowID {
			row = append(row, pp.id(n.ID))
		}
		text := n.Content.PlainText()
		if n.Content.HasImage() {
			text = strings.TrimSpace(text + " [image]")
		}
		row = append(row, faint.Sprint(humanize.RelTime(n.CreatedAt.Time, pp.Now(), "ago", "from now")), text, Tags(tags.Unique(n.Tags)))
		tbl.AddRow(row...)
	}
	pp.flush(tbl)
}

// TagCloud prints tags on one line.
func (pp *PrettyPrint) TagCloud(title string, list []string) {
	pp.TitleWithCount(title, len(list), plural(len(list), "tag"))
	if len(list) == 0 {
		pp.Empty("none")
		return
	}
	_, _ = fmt.Fprintln(pp.Out, Tags(list))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
