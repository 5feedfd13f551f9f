package board

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lifetracks/internal/dashboard"
	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/printers"
)

type OpenWidgetMsg struct {
	ID string
}

type AddWidgetMsg struct{}

type DeleteWidgetMsg struct {
	ID string
}

type DeleteSelectedMsg struct{}

type MoveWidgetsMsg struct {
	// ID is empty when the selection should move.
	ID string
}

type StartSelectMsg struct{}

type ToggleSelectMsg struct {
	ID string
}

type CycleCategoryMsg struct {
	Reverse bool
}

type AddCategoryMsg struct{}

type RenameCategoryMsg struct{}

type Item struct {
	Card      dashboard.Card
	Category  string
	Selecting bool
	Selected  bool
}

func (i Item) Title() string {
	title := i.Card.Title
	if i.Card.Accent != "" {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color(i.Card.Accent)).Render("▍") + title
	}
	if i.Selecting {
		if i.Selected {
			title = "[x] " + title
		} else {
			title = "[ ] " + title
		}
	}
	return title
}

func (i Item) Description() string {
	parts := []string{string(i.Card.Type)}
	if i.Category != "" {
		parts = append(parts, i.Category)
	}
	headline := i.Card.Headline
	if i.Card.Alert {
		headline = "⚠ " + headline
	}
	parts = append(parts, headline)
	if len(i.Card.Spark) > 0 {
		parts = append(parts, printers.Sparkline(i.Card.Spark))
	}
	if i.Card.Detail != "" {
		parts = append(parts, i.Card.Detail)
	}
	return strings.Join(parts, " · ")
}

func (i Item) FilterValue() string { return i.Card.Title }

type KeyMap struct {
	Open      key.Binding
	Add       key.Binding
	Delete    key.Binding
	Select    key.Binding
	Toggle    key.Binding
	Move      key.Binding
	NextCat   key.Binding
	PrevCat   key.Binding
	AddCat    key.Binding
	RenameCat key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add widget"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Select: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "select"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move"),
		),
		NextCat: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("[/]", "category"),
		),
		PrevCat: key.NewBinding(
			key.WithKeys("["),
		),
		AddCat: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "new category"),
		),
		RenameCat: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename category"),
		),
	}
}

type Model struct {
	list      list.Model
	keys      KeyMap
	selecting bool
	category  string
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	return Model{list: l, keys: DefaultKeyMap()}
}

// SetRows shows the widgets of category, or of every row when category is
// empty.
func (m *Model) SetRows(rows []dashboard.Row, category string, selecting bool, sel models.Selection, now time.Time) {
	var items []list.Item
	for _, row := range rows {
		if category != "" && row.Category != category {
			continue
		}
		label := row.Category
		if category != "" {
			label = ""
		}
		for _, w := range row.Widgets {
			items = append(items, Item{
				Card:      dashboard.Preview(w, now),
				Category:  label,
				Selecting: selecting,
				Selected:  sel.Has(w.ID),
			})
		}
	}
	m.selecting = selecting
	m.category = category
	m.list.SetItems(items)
}

func (m Model) Category() string {
	return m.category
}

// HelpKeys lists the bindings; the first three make the short help.
func (m Model) HelpKeys() []key.Binding {
	k := m.keys
	return []key.Binding{k.Open, k.Add, k.NextCat, k.Delete, k.Select, k.Toggle, k.Move, k.AddCat, k.RenameCat, m.list.KeyMap.Filter}
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		current, hasCurrent := m.list.SelectedItem().(Item)
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, emit(AddWidgetMsg{})
		case key.Matches(msg, m.keys.NextCat):
			return m, emit(CycleCategoryMsg{})
		case key.Matches(msg, m.keys.PrevCat):
			return m, emit(CycleCategoryMsg{Reverse: true})
		case key.Matches(msg, m.keys.AddCat):
			return m, emit(AddCategoryMsg{})
		case key.Matches(msg, m.keys.RenameCat) && m.category != "":
			return m, emit(RenameCategoryMsg{})
		case key.Matches(msg, m.keys.Select):
			return m, emit(StartSelectMsg{})
		case key.Matches(msg, m.keys.Delete) && m.selecting:
			return m, emit(DeleteSelectedMsg{})
		case key.Matches(msg, m.keys.Move) && m.selecting:
			return m, emit(MoveWidgetsMsg{})
		case !hasCurrent:
		case key.Matches(msg, m.keys.Toggle) && m.selecting:
			return m, emit(ToggleSelectMsg{ID: current.Card.ID})
		case key.Matches(msg, m.keys.Open):
			return m, emit(OpenWidgetMsg{ID: current.Card.ID})
		case key.Matches(msg, m.keys.Delete):
			return m, emit(DeleteWidgetMsg{ID: current.Card.ID})
		case key.Matches(msg, m.keys.Move):
			return m, emit(MoveWidgetsMsg{ID: current.Card.ID})
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No widgets here.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
