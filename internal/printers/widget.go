package printers

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/dashboard"
	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/widgets"
)

// DetailOptions narrows what Widget prints.
type DetailOptions struct {
	Category string // LIST and RATING tab, empty for all
	Date     string // PLAN day, empty for today
	Query    string // NOTE search
}

// Widget prints the header and contents of one widget.
func (pp *PrettyPrint) Widget(w models.Widget, opts DetailOptions) {
	header := w.Title
	if pp.ShowID {
		header = fmt.Sprintf("%s %s", w.Title, pp.id(w.ID))
	}
	pp.Title(header)
	meta := []string{string(w.Type), dashboard.PresentationFor(w.Type).String()}
	if w.DashboardCategory != "" {
		meta = append(meta, w.DashboardCategory)
	}
	if w.Color != "" {
		meta = append(meta, Swatch(w.Color))
	}
	_, _ = faint.Fprintln(pp.Out, strings.Join(meta, " · "))
	models.Visit(w.Data, detail{pp: pp, opts: opts, now: pp.Now()})
	pp.NewLine()
}

type detail struct {
	pp   *PrettyPrint
	opts DetailOptions
	now  time.Time
}

func (d detail) row(id string, cols ...interface{}) []interface{} {
	if d.pp.ShowID {
		return append([]interface{}{d.pp.id(id)}, cols...)
	}
	return cols
}

func (d detail) tabs(cats []string) {
	out := make([]string, len(cats))
	for i, c := range cats {
		if c == d.opts.Category {
			c = okStyle.Sprint("[" + c + "]")
		}
		out[i] = c
	}
	_, _ = fmt.Fprintf(d.pp.Out, "Tabs: %s\n", strings.Join(out, " "))
}

func (d detail) List(data models.ListData) struct{} {
	d.tabs(data.Categories)
	items := widgets.SortedListItems(data, d.opts.Category)
	if len(items) == 0 {
		d.pp.Empty("no items")
		return struct{}{}
	}
	tbl := d.pp.table()
	for _, it := range items {
		check, star := "[ ]", " "
		if it.Completed {
			check = okStyle.Sprint("[✓]")
		}
		if it.Starred {
			star = warnStyle.Sprint("★")
		}
		title := it.Title
		if it.Completed {
			title = faint.Sprint(title)
		}
		tbl.AddRow(d.row(it.ID, check, star, title, faint.Sprint(it.Category))...)
	}
	d.pp.flush(tbl)
	return struct{}{}
}

func (d detail) Rating(data models.RatingData) struct{} {
	d.tabs(data.Categories)
	items := widgets.FilterRating(data, d.opts.Category)
	if len(items) == 0 {
		d.pp.Empty("no items")
		return struct{}{}
	}
	tbl := d.pp.table()
	for _, it := range items {
		cover := ""
		if it.Cover != "" {
			cover = faint.Sprint("[cover]")
		}
		tbl.AddRow(d.row(it.ID, warnStyle.Sprint(dashboard.Stars(it.Rating)), it.Title, faint.Sprint(it.Category), it.Review, cover)...)
	}
	d.pp.flush(tbl)
	return struct{}{}
}

func (d detail) Countdown(data models.CountdownData) struct{} {
	days, err := widgets.DaysUntil(data, d.now)
	if err != nil {
		d.pp.Failure("%v", err)
		return struct{}{}
	}
	_, _ = fmt.Fprintf(d.pp.Out, "%s: %s (%s)\n", data.EventName, CountdownText(days), data.TargetDate)
	return struct{}{}
}

// CountdownText is the countdown phrase with its day count emphasized.
func CountdownText(days int) string {
	phrase := widgets.CountdownPhrase(days)
	if days == 0 {
		return okStyle.Sprint(phrase)
	}
	return phrase
}

func (d detail) LastDone(data models.LastDoneData) struct{} {
	since := widgets.DaysSince(data, d.now)
	line := fmt.Sprintf("Last done %s (%d %s), every %d %s",
		humanize.RelTime(data.LastDate.Time, d.now, "ago", "from now"),
		since, plural(since, "day"), data.FrequencyDays, plural(data.FrequencyDays, "day"))
	if widgets.IsOverdue(data, d.now) {
		line = warnStyle.Sprint(line + " · overdue")
	}
	_, _ = fmt.Fprintln(d.pp.Out, line)
	if len(data.History) == 0 {
		return struct{}{}
	}
	tbl := d.pp.table()
	for _, ts := range data.History {
		tbl.AddRow("  "+ts.Local().Format("2006-01-02 15:04"), faint.Sprint(humanize.RelTime(ts.Time, d.now, "ago", "from now")))
	}
	d.pp.flush(tbl)
	return struct{}{}
}

func (d detail) Plan(data models.PlanData) struct{} {
	date := d.opts.Date
	if date == "" {
		date = d.now.Format(constants.DateFormat)
	}
	strip := widgets.DateStrip(d.now)
	days := make([]string, len(strip))
	for i, s := range strip {
		answered, total := widgets.Progress(data, s)
		label := fmt.Sprintf("%s %d/%d", s[5:], answered, total)
		if s == date {
			label = okStyle.Sprint("[" + label + "]")
		}
		days[i] = label
	}
	_, _ = fmt.Fprintln(d.pp.Out, strings.Join(days, " "))

	answers := widgets.Answers(data, date)
	tbl := d.pp.table()
	for _, q := range data.Questions {
		answer := answers[q.ID]
		if answer == "" {
			answer = faint.Sprint("-")
		}
		tbl.AddRow(d.row(q.ID, q.Text, answer)...)
	}
	d.pp.flush(tbl)
	return struct{}{}
}

func (d detail) Series(data models.SeriesData) struct{} {
	head := data.Label
	if data.Unit != "" {
		head += " (" + data.Unit + ")"
	}
	if latest, ok := widgets.Latest(data); ok {
		head += fmt.Sprintf(": %s on %s", humanize.FtoaWithDigits(latest.Value, 2), latest.Date)
	}
	_, _ = fmt.Fprintln(d.pp.Out, head)
	if len(data.Points) == 0 {
		d.pp.Empty("no points")
		return struct{}{}
	}
	_, _ = fmt.Fprintln(d.pp.Out, Sparkline(widgets.Trend(data, len(data.Points))))
	tbl := d.pp.table()
	points := slices.Clone(data.Points)
	slices.Reverse(points)
	for _, p := range points {
		tbl.AddRow("  "+p.Date, humanize.FtoaWithDigits(p.Value, 2)+data.Unit)
	}
	d.pp.flush(tbl)
	return struct{}{}
}

func (d detail) Notebook(data models.NotebookData) struct{} {
	items := widgets.SearchNotebook(data, d.opts.Query)
	if tagList := widgets.NotebookTags(data, constants.RecentTagLimit); len(tagList) > 0 {
		_, _ = fmt.Fprintln(d.pp.Out, Tags(tagList))
	}
	if len(items) == 0 {
		d.pp.Empty("no notes")
		return struct{}{}
	}
	tbl := d.pp.table()
	for _, it := range items {
		tbl.AddRow(d.row(it.ID,
			faint.Sprint(humanize.RelTime(it.CreatedAt.Time, d.now, "ago", "from now")),
			it.Content.PlainText(), Tags(it.Tags))...)
	}
	d.pp.flush(tbl)
	return struct{}{}
}
