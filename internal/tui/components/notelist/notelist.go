package notelist

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/lifetracks/internal/dashboard"
	"github.com/julianstephens/lifetracks/internal/models"
)

type AddNoteMsg struct{}

type EditNoteMsg struct {
	Note models.Note
}

type DeleteNoteMsg struct {
	ID string
}

// DeleteSelectedMsg and MoveSelectedMsg act on the current selection.
type DeleteSelectedMsg struct{}

type MoveSelectedMsg struct{}

type StartSelectMsg struct{}

type ToggleSelectMsg struct {
	ID string
}

type CycleTagMsg struct {
	Reverse bool
}

type SuggestTagsMsg struct {
	ID string
}

type AttachImageMsg struct {
	ID string
}

const snippetRunes = 72

type Item struct {
	Note      models.Note
	Selecting bool
	Selected  bool
	Now       time.Time
}

func (i Item) Title() string {
	title := dashboard.Snippet(i.Note.Content.PlainText(), snippetRunes)
	if title == "" {
		title = "(empty)"
	}
	if i.Note.Content.HasImage() {
		title += " 🖼"
	}
	if !i.Selecting {
		return title
	}
	if i.Selected {
		return "[x] " + title
	}
	return "[ ] " + title
}

func (i Item) Description() string {
	age := humanize.RelTime(i.Note.CreatedAt.Time, i.Now, "ago", "from now")
	if len(i.Note.Tags) == 0 {
		return age
	}
	tags := make([]string, len(i.Note.Tags))
	for j, t := range i.Note.Tags {
		tags[j] = "#" + t
	}
	return strings.Join(tags, " ") + " · " + age
}

func (i Item) FilterValue() string {
	return i.Note.Content.PlainText() + " " + strings.Join(i.Note.Tags, " ")
}

type KeyMap struct {
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Select  key.Binding
	Toggle  key.Binding
	Move    key.Binding
	NextTag key.Binding
	PrevTag key.Binding
	Suggest key.Binding
	Image   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
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
			key.WithHelp("m", "to notebook"),
		),
		NextTag: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t/T", "tag filter"),
		),
		PrevTag: key.NewBinding(
			key.WithKeys("T"),
		),
		Suggest: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "suggest tags"),
		),
		Image: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "attach image"),
		),
	}
}

type Model struct {
	list      list.Model
	keys      KeyMap
	selecting bool
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Notes"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	return Model{list: l, keys: DefaultKeyMap()}
}

// SetNotes replaces the rows; the list keeps its cursor index.
func (m *Model) SetNotes(notes []models.Note, selecting bool, sel models.Selection, now time.Time) {
	items := make([]list.Item, len(notes))
	for i, n := range notes {
		items[i] = Item{Note: n, Selecting: selecting, Selected: sel.Has(n.ID), Now: now}
	}
	m.selecting = selecting
	m.list.SetItems(items)
}

func (m Model) Selected() (models.Note, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Note, ok
}

// HelpKeys lists the bindings; the first three make the short help.
func (m Model) HelpKeys() []key.Binding {
	k := m.keys
	return []key.Binding{k.Add, k.Edit, k.NextTag, k.Delete, k.Select, k.Toggle, k.Move, k.Suggest, k.Image, m.list.KeyMap.Filter}
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
		current, hasCurrent := m.Selected()
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, emit(AddNoteMsg{})
		case key.Matches(msg, m.keys.NextTag):
			return m, emit(CycleTagMsg{})
		case key.Matches(msg, m.keys.PrevTag):
			return m, emit(CycleTagMsg{Reverse: true})
		case key.Matches(msg, m.keys.Select):
			return m, emit(StartSelectMsg{})
		case key.Matches(msg, m.keys.Delete) && m.selecting:
			return m, emit(DeleteSelectedMsg{})
		case key.Matches(msg, m.keys.Move) && m.selecting:
			return m, emit(MoveSelectedMsg{})
		case !hasCurrent:
		case key.Matches(msg, m.keys.Toggle) && m.selecting:
			return m, emit(ToggleSelectMsg{ID: current.ID})
		case key.Matches(msg, m.keys.Edit):
			return m, emit(EditNoteMsg{Note: current})
		case key.Matches(msg, m.keys.Delete):
			return m, emit(DeleteNoteMsg{ID: current.ID})
		case key.Matches(msg, m.keys.Suggest):
			return m, emit(SuggestTagsMsg{ID: current.ID})
		case key.Matches(msg, m.keys.Image):
			return m, emit(AttachImageMsg{ID: current.ID})
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No notes yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
