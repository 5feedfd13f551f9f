package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/widgets"
)

// Card is the summary drawn for a widget on the dashboard.
type Card struct {
	ID       string
	Type     models.WidgetType
	Title    string
	Headline string
	Detail   string
	Spark    []float64
	Accent   string
	// Alert marks a card that wants attention, e.g. an overdue LAST_DONE.
	Alert bool
}

const snippetRunes = 40

type previewer struct{ now time.Time }

func (p previewer) List(d models.ListData) Card {
	open := 0
	for _, it := range d.Items {
		if !it.Completed {
			open++
		}
	}
	c := Card{Headline: fmt.Sprintf("%d open", open)}
	c.Detail = fmt.Sprintf("%d of %d done", len(d.Items)-open, len(d.Items))
	if sorted := widgets.SortedListItems(d, ""); len(sorted) > 0 && !sorted[0].Completed {
		c.Detail = sorted[0].Title
	}
	return c
}

func (p previewer) Rating(d models.RatingData) Card {
	c := Card{Headline: fmt.Sprintf("%s rated", humanize.Comma(int64(len(d.Items))))}
	if len(d.Items) > 0 {
		it := d.Items[0]
		c.Detail = fmt.Sprintf("%s %s", it.Title, Stars(it.Rating))
	}
	return c
}

func (p previewer) Countdown(d models.CountdownData) Card {
	days, err := widgets.DaysUntil(d, p.now)
	if err != nil {
		return Card{Headline: "?", Detail: d.EventName}
	}
	return Card{Headline: widgets.CountdownPhrase(days), Detail: d.EventName}
}

func (p previewer) LastDone(d models.LastDoneData) Card {
	return Card{
		Headline: humanize.RelTime(d.LastDate.Time, p.now, "ago", "from now"),
		Detail:   fmt.Sprintf("every %d %s", d.FrequencyDays, plural(d.FrequencyDays, "day")),
		Alert:    widgets.IsOverdue(d, p.now),
	}
}

func (p previewer) Plan(d models.PlanData) Card {
	answered, total := widgets.Progress(d, p.now.Format(constants.DateFormat))
	pct := 0
	if total > 0 {
		pct = answered * 100 / total
	}
	return Card{Headline: fmt.Sprintf("%d%%", pct), Detail: fmt.Sprintf("%d/%d answered today", answered, total)}
}

func (p previewer) Series(d models.SeriesData) Card {
	c := Card{Headline: "-", Detail: d.Label, Spark: widgets.Trend(d, constants.TrendPreviewPoints)}
	if latest, ok := widgets.Latest(d); ok {
		c.Headline = strings.TrimSpace(humanize.FtoaWithDigits(latest.Value, 2) + " " + d.Unit)
	}
	return c
}

func (p previewer) Notebook(d models.NotebookData) Card {
	c := Card{Headline: fmt.Sprintf("%s %s", humanize.Comma(int64(len(d.Items))), plural(len(d.Items), "note"))}
	if len(d.Items) > 0 {
		c.Detail = Snippet(d.Items[0].Content.PlainText(), snippetRunes)
	}
	return c
}

// Preview summarizes w for a dashboard card.
func Preview(w models.Widget, now time.Time) Card {
	c := models.Visit[Card](w.Data, previewer{now: now})
	c.ID = w.ID
	c.Type = w.Type
	c.Title = w.Title
	c.Accent = w.Color
	return c
}

// Stars renders a 0..5 rating as full and half stars.
func Stars(r float64) string {
	full := int(r)
	s := strings.Repeat("★", full)
	if r-float64(full) >= 0.5 {
		s += "½"
	}
	return s
}

// Snippet collapses whitespace and shortens s to at most n runes.
func Snippet(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
