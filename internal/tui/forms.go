package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/richtext"
)

// resultMsg carries the outcome of a form submission.
type resultMsg struct {
	status string
	err    error
}

// confirmMsg asks for a y/n confirmation before run.
type confirmMsg struct {
	prompt string
	run    func() error
}

type searchMsg struct {
	query string
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func result(status string, err error) tea.Cmd {
	return emit(resultMsg{status: status, err: err})
}

func askConfirm(prompt string, run func() error) tea.Cmd {
	return emit(confirmMsg{prompt: prompt, run: run})
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validDate(s string) error {
	if _, err := time.Parse(constants.DateFormat, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	return nil
}

const markupHelp = "**bold**, ==highlight==, '- ' starts a list item, #tag"

func tagHint(tags []string) string {
	if len(tags) == 0 {
		return markupHelp
	}
	hint := make([]string, len(tags))
	for i, t := range tags {
		hint[i] = "#" + t
	}
	return markupHelp + "\nRecent: " + strings.Join(hint, " ")
}

func categoryOptions(cats []string, allowNone bool) []huh.Option[string] {
	var opts []huh.Option[string]
	if allowNone {
		opts = append(opts, huh.NewOption("(none)", ""))
	}
	for _, c := range cats {
		opts = append(opts, huh.NewOption(c, c))
	}
	return opts
}

func (m *Model) addNoteForm() tea.Cmd {
	ctrl := m.ctrl
	var text string
	f := huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title("New note").
			Description(tagHint(ctrl.RecentTags())).
			Value(&text).
			Validate(required("note")),
	))
	return m.openForm(f, func() tea.Cmd {
		_, err := ctrl.AddNote(richtext.ParseMarkup(text))
		return result("Note added", err)
	})
}

// editNoteForm prefills the note's plain text; bold and highlight marks are
// not carried into the editor.
func (m *Model) editNoteForm(n models.Note) tea.Cmd {
	ctrl := m.ctrl
	text := n.Content.PlainText()
	f := huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title("Edit note").
			Description(tagHint(ctrl.RecentTags())).
			Value(&text).
			Validate(required("note")),
	))
	return m.openForm(f, func() tea.Cmd {
		return result("Note updated", ctrl.EditNote(n.ID, richtext.ParseMarkup(text)))
	})
}

func (m *Model) attachImageForm(noteID string) tea.Cmd {
	ctrl := m.ctrl
	var path string
	f := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Image file").
			Placeholder("~/Pictures/photo.jpg").
			Value(&path).
			Validate(required("path")),
	))
	return m.openForm(f, func() tea.Cmd {
		return attachCmd("Image", path, func(f *os.File, done func(error)) {
			ctrl.AttachNoteImage(noteID, f, done)
		})
	})
}

func (m *Model) addWidgetForm() tea.Cmd {
	ctrl := m.ctrl
	cats := ctrl.Snapshot().DashboardCats
	typ := models.WidgetList
	category := ctrl.State().ActiveCategory
	if category == "" && len(cats) > 0 {
		category = cats[0]
	}

	types := make([]huh.Option[models.WidgetType], len(models.WidgetTypes))
	for i, t := range models.WidgetTypes {
		types[i] = huh.NewOption(widgetLabel(t), t)
	}
	f := huh.NewForm(huh.NewGroup(
		huh.NewSelect[models.WidgetType]().
			Title("Widget type").
			Options(types...).
			Value(&typ),
		huh.NewSelect[string]().
			Title("Category").
			Options(categoryOptions(cats, len(cats) == 0)...).
			Value(&category),
	))
	return m.openForm(f, func() tea.Cmd {
		w, err := ctrl.AddWidget(typ, category)
		return result(fmt.Sprintf("Added %s", w.Title), err)
	})
}

func widgetLabel(t models.WidgetType) string {
	switch t {
	case models.WidgetList:
		return "List (playlist of items)"
	case models.WidgetRating:
		return "Rating (scored reviews)"
	case models.WidgetCountdown:
		return "Countdown (days to an event)"
	case models.WidgetLastDone:
		return "Last done (days since)"
	case models.WidgetPlan:
		return "Plan (daily questions)"
	case models.WidgetSeries:
		return "Data (dated values)"
	default:
		return "Notebook (notes on the board)"
	}
}

func (m *Model) addCategoryForm() tea.Cmd {
	ctrl := m.ctrl
	var name string
	f := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("New dashboard category").
			Value(&name).
			Validate(required("name")),
	))
	return m.openForm(f, func() tea.Cmd {
		name = strings.TrimSpace(name)
		err := ctrl.AddDashboardCategory(name)
		if err == nil {
			ctrl.SetActiveCategory(name)
		}
		return result(fmt.Sprintf("Added category %q", name), err)
	})
}

func (m *Model) renameCategoryForm(old string) tea.Cmd {
	ctrl := m.ctrl
	name := old
	f := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Rename category").
			Description("Leave blank to delete it").
			Value(&name),
	))
	return m.openForm(f, func() tea.Cmd {
		if strings.TrimSpace(name) == "" {
			return askConfirm(fmt.Sprintf("Delete category %q? Its widgets are kept.", old), func() error {
				return ctrl.DeleteDashboardCategory(old)
			})
		}
		return result("Category renamed", ctrl.RenameDashboardCategory(old, name))
	})
}

// moveWidgetsForm moves id, or the current selection when id is empty.
func (m *Model) moveWidgetsForm(id string) tea.Cmd {
	ctrl := m.ctrl
	sel := ctrl.State().Selection
	if id != "" {
		sel = models.NewSelection(id)
	}
	if sel.IsEmpty() {
		m.setStatus("Nothing selected")
		return nil
	}
	cats := ctrl.Snapshot().DashboardCats
	if len(cats) == 0 {
		m.setStatus("Add a category first")
		return nil
	}
	category := cats[0]
	f := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(fmt.Sprintf("Move %d widget(s) to", sel.Len())).
			Options(categoryOptions(cats, false)...).
			Value(&category),
	))
	return m.openForm(f, func() tea.Cmd {
		return result(fmt.Sprintf("Moved to %s", category), ctrl.MoveWidgets(sel, category))
	})
}
