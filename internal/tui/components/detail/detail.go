package detail

import (
	"bytes"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lifetracks/internal/dashboard"
	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/printers"
	"github.com/julianstephens/lifetracks/internal/widgets"
)

type Action int

const (
	ActAdd Action = iota
	ActEdit
	ActToggle
	ActStar
	ActDelete
	ActDone
	ActPick
	ActAnalyze
	ActSearch
	ActCover
	ActTitle
)

// ActionMsg asks the parent to run a widget action, usually through a form.
type ActionMsg struct {
	Action   Action
	Widget   models.Widget
	Category string
	Date     string
}

type CloseMsg struct{}

type KeyMap struct {
	Close   key.Binding
	Add     key.Binding
	Edit    key.Binding
	Toggle  key.Binding
	Star    key.Binding
	Delete  key.Binding
	Done    key.Binding
	Pick    key.Binding
	Analyze key.Binding
	Search  key.Binding
	Cover   key.Binding
	Title   key.Binding
	NextTab key.Binding
	PrevTab key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle item")),
		Star:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "star")),
		Delete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Done:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "done today")),
		Pick:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pick random")),
		Analyze: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insight")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Cover:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cover")),
		Title:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "title")),
		NextTab: key.NewBinding(key.WithKeys("]"), key.WithHelp("[/]", "tab")),
		PrevTab: key.NewBinding(key.WithKeys("[")),
	}
}

// For returns the binding of an action.
func (k KeyMap) For(a Action) key.Binding {
	switch a {
	case ActAdd:
		return k.Add
	case ActEdit:
		return k.Edit
	case ActToggle:
		return k.Toggle
	case ActStar:
		return k.Star
	case ActDelete:
		return k.Delete
	case ActDone:
		return k.Done
	case ActPick:
		return k.Pick
	case ActAnalyze:
		return k.Analyze
	case ActSearch:
		return k.Search
	case ActTitle:
		return k.Title
	default:
		return k.Cover
	}
}

// actions lists what each widget type supports.
var actions = map[models.WidgetType][]Action{
	models.WidgetList:      {ActAdd, ActEdit, ActToggle, ActStar, ActDelete, ActPick, ActTitle},
	models.WidgetRating:    {ActAdd, ActEdit, ActDelete, ActPick, ActCover, ActTitle},
	models.WidgetCountdown: {ActEdit, ActTitle},
	models.WidgetLastDone:  {ActDone, ActEdit, ActTitle},
	models.WidgetPlan:      {ActAdd, ActEdit, ActDelete, ActTitle},
	models.WidgetSeries:    {ActAdd, ActEdit, ActDelete, ActAnalyze, ActTitle},
	models.WidgetNote:      {ActAdd, ActEdit, ActDelete, ActSearch, ActTitle},
}

var dialogStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(1, 2)

type Model struct {
	viewport viewport.Model
	keys     KeyMap
	widget   models.Widget
	opts     printers.DetailOptions
	now      time.Time
	width    int
	height   int
}

func New(width, height int) Model {
	vp := viewport.New(width, height)
	return Model{viewport: vp, keys: DefaultKeyMap(), width: width, height: height}
}

// SetWidget redraws the detail of w. The tab, day and search query persist
// while the same widget stays open.
func (m *Model) SetWidget(w models.Widget, now time.Time) {
	if w.ID != m.widget.ID {
		m.opts = printers.DetailOptions{}
		m.viewport.GotoTop()
	}
	m.widget = w
	m.now = now
	m.SetSize(m.width, m.height)
	m.render()
}

func (m *Model) SetQuery(q string) {
	m.opts.Query = q
	m.render()
}

func (m Model) Widget() models.Widget {
	return m.widget
}

func (m Model) Presentation() dashboard.Presentation {
	return dashboard.PresentationFor(m.widget.Type)
}

func (m *Model) render() {
	var buf bytes.Buffer
	pp := printers.New(&buf)
	pp.Now = func() time.Time { return m.now }
	pp.Widget(m.widget, m.opts)
	m.viewport.SetContent(buf.String())
}

// cycle moves the LIST/RATING tab or the PLAN day.
func (m *Model) cycle(step int) {
	var options []string
	current := ""
	switch d := m.widget.Data.(type) {
	case models.ListData:
		options, current = append([]string{""}, d.Categories...), m.opts.Category
	case models.RatingData:
		options, current = append([]string{""}, d.Categories...), m.opts.Category
	case models.PlanData:
		options, current = widgets.DateStrip(m.now), m.opts.Date
		if current == "" {
			current = options[len(options)-1]
		}
	default:
		return
	}
	i := slices.Index(options, current)
	i = (i + step + len(options)) % len(options)
	if _, ok := m.widget.Data.(models.PlanData); ok {
		m.opts.Date = options[i]
	} else {
		m.opts.Category = options[i]
	}
	m.render()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Close):
			return m, func() tea.Msg { return CloseMsg{} }
		case key.Matches(msg, m.keys.NextTab):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevTab):
			m.cycle(-1)
			return m, nil
		}
		for _, a := range actions[m.widget.Type] {
			if key.Matches(msg, m.keys.For(a)) {
				out := ActionMsg{Action: a, Widget: m.widget, Category: m.opts.Category, Date: m.opts.Date}
				return m, func() tea.Msg { return out }
			}
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Presentation() == dashboard.Dialog {
		return lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			dialogStyle.Render(m.viewport.View()),
		)
	}
	return m.viewport.View()
}

// HelpKeys returns the bindings that apply to the open widget.
func (m Model) HelpKeys() []key.Binding {
	out := []key.Binding{m.keys.Close}
	switch m.widget.Data.(type) {
	case models.ListData, models.RatingData, models.PlanData:
		out = append(out, m.keys.NextTab)
	}
	for _, a := range actions[m.widget.Type] {
		out = append(out, m.keys.For(a))
	}
	return out
}

func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	if m.Presentation() == dashboard.Dialog {
		// Leave room for the border and padding
		width, height = min(width-6, 60), min(height-4, 16)
	}
	m.viewport.Width, m.viewport.Height = max(width, 10), max(height, 3)
}
