package tui

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/dashboard"
	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/richtext"
	"github.com/julianstephens/lifetracks/internal/tui/components/detail"
	"github.com/julianstephens/lifetracks/internal/widgets"
)

// Two-step edits: pick an item, then open a form prefilled from it.

type editListItemMsg struct {
	widgetID string
	item     models.PlaylistItem
}

type editRatingItemMsg struct {
	widgetID string
	item     models.RatingItem
	cats     []string
}

type editNotebookItemMsg struct {
	widgetID string
	item     models.NotebookItem
}

// pickForm asks for one of opts and hands the choice to then.
func (m *Model) pickForm(title string, opts []huh.Option[string], then func(id string) tea.Cmd) tea.Cmd {
	if len(opts) == 0 {
		m.setStatus("Nothing to choose from")
		return nil
	}
	var choice string
	f := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(title).
			Options(opts...).
			Value(&choice),
	))
	return m.openForm(f, func() tea.Cmd { return then(choice) })
}

func validRating(s string) error {
	r, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("rating must be a number")
	}
	_, err = widgets.NormalizeRating(r)
	return err
}

func parseRating(s string) float64 {
	r, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return r
}

// widgetAction runs a detail action, usually by opening a form.
func (m *Model) widgetAction(msg detail.ActionMsg) tea.Cmd {
	if msg.Action == detail.ActTitle {
		return m.titleForm(msg.Widget)
	}
	switch d := msg.Widget.Data.(type) {
	case models.ListData:
		return m.listAction(msg, d)
	case models.RatingData:
		return m.ratingAction(msg, d)
	case models.CountdownData:
		return m.countdownForm(msg.Widget.ID, d)
	case models.LastDoneData:
		return m.lastDoneAction(msg, d)
	case models.PlanData:
		return m.planAction(msg, d)
	case models.SeriesData:
		return m.seriesAction(msg, d)
	case models.NotebookData:
		return m.notebookAction(msg, d)
	}
	return nil
}

func (m *Model) titleForm(w models.Widget) tea.Cmd {
	ctrl := m.ctrl
	title, color := w.Title, w.Color
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Value(&title).
			Validate(required("title")),
	}
	accent := w.Type == models.WidgetCountdown || w.Type == models.WidgetLastDone
	if accent {
		opts := []huh.Option[string]{huh.NewOption("(default)", "")}
		for _, c := range constants.AccentPalette {
			opts = append(opts, huh.NewOption(c, c))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Accent color").
			Options(opts...).
			Value(&color))
	}
	return m.openForm(huh.NewForm(huh.NewGroup(fields...)), func() tea.Cmd {
		if err := ctrl.SetWidgetTitle(w.ID, title); err != nil {
			return result("", err)
		}
		if accent && color != "" && color != w.Color {
			if err := ctrl.SetWidgetColor(w.ID, color); err != nil {
				return result("", err)
			}
		}
		return result("Widget updated", nil)
	})
}

func (m *Model) listAction(msg detail.ActionMsg, d models.ListData) tea.Cmd {
	ctrl, id := m.ctrl, msg.Widget.ID
	items := widgets.SortedListItems(d, msg.Category)
	opts := make([]huh.Option[string], len(items))
	for i, it := range items {
		label := it.Title
		if it.Completed {
			label = "✓ " + label
		}
		if it.Starred {
			label += " ★"
		}
		opts[i] = huh.NewOption(label, it.ID)
	}
	find := func(itemID string) models.PlaylistItem {
		for _, it := range items {
			if it.ID == itemID {
				return it
			}
		}
		return models.PlaylistItem{ID: itemID}
	}

	switch msg.Action {
	case detail.ActAdd:
		var title string
		category := msg.Category
		if category == "" && len(d.Categories) > 0 {
			category = d.Categories[0]
		}
		fields := []huh.Field{
			huh.NewInput().Title("Item").Value(&title).Validate(required("title")),
		}
		if len(d.Categories) > 0 {
			fields = append(fields, huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions(d.Categories, false)...).
				Value(&category))
		}
		return m.openForm(huh.NewForm(huh.NewGroup(fields...)), func() tea.Cmd {
			return result("Item added", ctrl.AddListItem(id, title, category))
		})
	case detail.ActEdit:
		return m.pickForm("Edit which item?", opts, func(itemID string) tea.Cmd {
			return emit(editListItemMsg{widgetID: id, item: find(itemID)})
		})
	case detail.ActToggle:
		return m.pickForm("Toggle which item?", opts, func(itemID string) tea.Cmd {
			return result("Item toggled", ctrl.ToggleListItem(id, itemID))
		})
	case detail.ActStar:
		return m.pickForm("Star which item?", opts, func(itemID string) tea.Cmd {
			return result("Star toggled", ctrl.StarListItem(id, itemID))
		})
	case detail.ActDelete:
		return m.pickForm("Delete which item?", opts, func(itemID string) tea.Cmd {
			return askConfirm(fmt.Sprintf("Delete %q?", find(itemID).Title), func() error {
				return ctrl.DeleteListItem(id, itemID)
			})
		})
	case detail.ActPick:
		it, err := ctrl.PickListItem(id, msg.Category)
		if err != nil {
			m.setError(err)
			return nil
		}
		m.setStatus("🎲 " + it.Title)
	}
	return nil
}

func (m *Model) editListItemForm(msg editListItemMsg) tea.Cmd {
	ctrl := m.ctrl
	title := msg.item.Title
	f := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Item").Value(&title).Validate(required("title")),
	))
	return m.openForm(f, func() tea.Cmd {
		return result("Item updated", ctrl.EditListItem(msg.widgetID, msg.item.ID, title))
	})
}

func (m *Model) ratingAction(msg detail.ActionMsg, d models.RatingData) tea.Cmd {
	ctrl, id := m.ctrl, msg.Widget.ID
	items := widgets.FilterRating(d, msg.Category)
	opts := make([]huh.Option[string], len(items))
	for i, it := range items {
		opts[i] = huh.NewOption(fmt.Sprintf("%s  %s", it.Title, dashboard.Stars(it.Rating)), it.ID)
	}
	find := func(itemID string) models.RatingItem {
		for _, it := range items {
			if it.ID == itemID {
				return it
			}
		}
		return models.RatingItem{ID: itemID}
	}

	switch msg.Action {
	case detail.ActAdd:
		return m.ratingForm("New rating", models.RatingItem{Category: msg.Category}, d.Categories, func(in widgets.RatingInput) error {
			return ctrl.AddRatingItem(id, in)
		})
	case detail.ActEdit:
		return m.pickForm("Edit which item?", opts, func(itemID string) tea.Cmd {
			return emit(editRatingItemMsg{widgetID: id, item: find(itemID), cats: d.Categories})
		})
	case detail.ActDelete:
		return m.pickForm("Delete which item?", opts, func(itemID string) tea.Cmd {
			return askConfirm(fmt.Sprintf("Delete %q?", find(itemID).Title), func() error {
				return ctrl.DeleteRatingItem(id, itemID)
			})
		})
	case detail.ActPick:
		it, err := ctrl.PickRatingItem(id, msg.Category)
		if err != nil {
			m.setError(err)
			return nil
		}
		m.setStatus(fmt.Sprintf("🎲 %s %s", it.Title, dashboard.Stars(it.Rating)))
	case detail.ActCover:
		var itemID, path string
		if len(opts) == 0 {
			m.setStatus("Nothing to choose from")
			return nil
		}
		f := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().Title("Item").Options(opts...).Value(&itemID),
			huh.NewInput().
				Title("Cover image").
				Placeholder("~/Pictures/cover.jpg").
				Value(&path).
				Validate(required("path")),
		))
		return m.openForm(f, func() tea.Cmd {
			return attachCmd("Cover", path, func(f *os.File, done func(error)) {
				ctrl.SetRatingCover(id, itemID, f, done)
			})
		})
	}
	return nil
}

// ratingForm edits the text fields of a rating item; the cover is kept.
func (m *Model) ratingForm(title string, it models.RatingItem, cats []string, save func(widgets.RatingInput) error) tea.Cmd {
	name, review, category := it.Title, it.Review, it.Category
	rating := strconv.FormatFloat(it.Rating, 'f', -1, 64)
	fields := []huh.Field{
		huh.NewInput().Title("Title").Value(&name).Validate(required("title")),
		huh.NewInput().
			Title(fmt.Sprintf("Rating (0-%g)", constants.MaxRating)).
			Description("Rounded to the nearest half star").
			Value(&rating).
			Validate(validRating),
	}
	if len(cats) > 0 {
		opts := categoryOptions(cats, false)
		if category != "" && !slices.Contains(cats, category) {
			opts = append(opts, huh.NewOption(category+" (no tab)", category))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Category").
			Options(opts...).
			Value(&category))
	}
	fields = append(fields, huh.NewText().Title("Review").Value(&review))
	f := huh.NewForm(huh.NewGroup(fields...).Title(title))
	return m.openForm(f, func() tea.Cmd {
		return result("Rating saved", save(widgets.RatingInput{
			Title:    name,
			Rating:   parseRating(rating),
			Category: category,
			Cover:    it.Cover,
			Review:   review,
		}))
	})
}

func (m *Model) editRatingItemForm(msg editRatingItemMsg) tea.Cmd {
	ctrl := m.ctrl
	return m.ratingForm("Edit rating", msg.item, msg.cats, func(in widgets.RatingInput) error {
		return ctrl.EditRatingItem(msg.widgetID, msg.item.ID, in)
	})
}

func (m *Model) countdownForm(id string, d models.CountdownData) tea.Cmd {
	ctrl := m.ctrl
	event, date := d.EventName, d.TargetDate
	f := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Event").Value(&event).Validate(required("event")),
		huh.NewInput().Title("Date").Placeholder("YYYY-MM-DD").Value(&date).Validate(validDate),
	))
	return m.openForm(f, func() tea.Cmd {
		err := ctrl.EditCountdown(id, event, date)
		if err == nil {
			ctrl.FlushPending()
		}
		return result("Countdown updated", err)
	})
}

func (m *Model) lastDoneAction(msg detail.ActionMsg, d models.LastDoneData) tea.Cmd {
	ctrl, id := m.ctrl, msg.Widget.ID
	switch msg.Action {
	case detail.ActDone:
		err := ctrl.MarkDone(id)
		m.report("Marked done today", err)
	case detail.ActEdit:
		freq := strconv.Itoa(d.FrequencyDays)
		f := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Frequency (days)").
				Description("Overdue once this many days pass").
				Value(&freq),
		))
		return m.openForm(f, func() tea.Cmd {
			return result("Frequency updated", ctrl.SetFrequency(id, freq))
		})
	}
	return nil
}

func (m *Model) planAction(msg detail.ActionMsg, d models.PlanData) tea.Cmd {
	ctrl, id := m.ctrl, msg.Widget.ID
	opts := make([]huh.Option[string], len(d.Questions))
	for i, q := range d.Questions {
		opts[i] = huh.NewOption(q.Text, q.ID)
	}
	date := msg.Date
	if date == "" {
		date = m.now().Format(constants.DateFormat)
	}

	switch msg.Action {
	case detail.ActAdd:
		if len(opts) == 0 {
			m.setStatus("Add a question first (e)")
			return nil
		}
		var questionID, answer string
		f := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().Title("Question").Options(opts...).Value(&questionID),
			huh.NewInput().
				Title("Answer for "+date).
				Description("Leave blank to clear").
				Value(&answer),
		))
		return m.openForm(f, func() tea.Cmd {
			return result("Answer saved", ctrl.AnswerPlan(id, date, questionID, answer))
		})
	case detail.ActEdit:
		var text string
		f := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("New question").Value(&text).Validate(required("question")),
		))
		return m.openForm(f, func() tea.Cmd {
			return result("Question added", ctrl.AddPlanQuestion(id, text))
		})
	case detail.ActDelete:
		return m.pickForm("Delete which question?", opts, func(questionID string) tea.Cmd {
			return askConfirm("Delete this question? Past answers are kept.", func() error {
				return ctrl.DeletePlanQuestion(id, questionID)
			})
		})
	}
	return nil
}

func (m *Model) seriesAction(msg detail.ActionMsg, d models.SeriesData) tea.Cmd {
	ctrl, id := m.ctrl, msg.Widget.ID
	switch msg.Action {
	case detail.ActAdd:
		date := m.now().Format(constants.DateFormat)
		var value string
		f := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Date").Value(&date).Validate(validDate),
			huh.NewInput().
				Title("Value").
				Description("Replaces any value already on that date").
				Value(&value).
				Validate(required("value")),
		))
		return m.openForm(f, func() tea.Cmd {
			return result("Point saved", ctrl.AddDataPoint(id, date, value))
		})
	case detail.ActEdit:
		label, unit := d.Label, d.Unit
		f := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Label").Value(&label),
			huh.NewInput().Title("Unit").Value(&unit),
		))
		return m.openForm(f, func() tea.Cmd {
			return result("Series updated", ctrl.SetSeriesMeta(id, label, unit))
		})
	case detail.ActDelete:
		opts := make([]huh.Option[string], len(d.Points))
		// Newest first
		for i, p := range d.Points {
			opts[len(d.Points)-1-i] = huh.NewOption(fmt.Sprintf("%s  %g %s", p.Date, p.Value, d.Unit), p.Date)
		}
		return m.pickForm("Delete which point?", opts, func(date string) tea.Cmd {
			return askConfirm(fmt.Sprintf("Delete the point on %s?", date), func() error {
				return ctrl.DeleteDataPoint(id, date)
			})
		})
	case detail.ActAnalyze:
		m.setStatus("Asking for an insight…")
		return analyzeTrendCmd(ctrl, id, msg.Widget.Title)
	}
	return nil
}

func (m *Model) notebookAction(msg detail.ActionMsg, d models.NotebookData) tea.Cmd {
	ctrl, id := m.ctrl, msg.Widget.ID
	opts := make([]huh.Option[string], len(d.Items))
	for i, it := range d.Items {
		opts[i] = huh.NewOption(dashboard.Snippet(it.Content.PlainText(), 60), it.ID)
	}
	find := func(itemID string) models.NotebookItem {
		for _, it := range d.Items {
			if it.ID == itemID {
				return it
			}
		}
		return models.NotebookItem{ID: itemID}
	}

	switch msg.Action {
	case detail.ActAdd:
		var text string
		f := huh.NewForm(huh.NewGroup(
			huh.NewText().
				Title("New notebook entry").
				Description(tagHint(widgets.NotebookTags(d, constants.RecentTagLimit))).
				Value(&text).
				Validate(required("entry")),
		))
		return m.openForm(f, func() tea.Cmd {
			return result("Entry added", ctrl.AddNotebookItem(id, richtext.ParseMarkup(text)))
		})
	case detail.ActEdit:
		return m.pickForm("Edit which entry?", opts, func(itemID string) tea.Cmd {
			return emit(editNotebookItemMsg{widgetID: id, item: find(itemID)})
		})
	case detail.ActDelete:
		return m.pickForm("Delete which entry?", opts, func(itemID string) tea.Cmd {
			return askConfirm("Delete this entry?", func() error {
				return ctrl.DeleteNotebookItem(id, itemID)
			})
		})
	case detail.ActSearch:
		var query string
		f := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Search").
				Description("Matches text or #tag; blank shows everything").
				Value(&query),
		))
		return m.openForm(f, func() tea.Cmd {
			return emit(searchMsg{query: strings.TrimSpace(query)})
		})
	}
	return nil
}

func (m *Model) editNotebookItemForm(msg editNotebookItemMsg) tea.Cmd {
	ctrl := m.ctrl
	text := msg.item.Content.PlainText()
	f := huh.NewForm(huh.NewGroup(
		huh.NewText().Title("Edit entry").Value(&text).Validate(required("entry")),
	))
	return m.openForm(f, func() tea.Cmd {
		return result("Entry updated", ctrl.EditNotebookItem(msg.widgetID, msg.item.ID, richtext.ParseMarkup(text)))
	})
}
