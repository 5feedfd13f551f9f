package tui

import (
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifetracks/internal/app"
	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/tui/components/board"
	"github.com/julianstephens/lifetracks/internal/tui/components/detail"
	"github.com/julianstephens/lifetracks/internal/tui/components/notelist"
	"github.com/julianstephens/lifetracks/internal/validation"
)

type mode int

const (
	modeBrowse mode = iota
	modeDetail
	modeForm
	modeConfirm
)

type Model struct {
	ctrl *app.Controller
	gate *Gate
	now  func() time.Time

	mode   mode
	keys   KeyMap
	help   help.Model
	notes  notelist.Model
	board  board.Model
	detail detail.Model

	// Active form and what runs when it completes
	form     *huh.Form
	onSubmit func() tea.Cmd
	formBack mode

	// Pending y/n confirmation
	prompt      string
	onConfirm   func() error
	confirmBack mode

	status      string
	statusIsErr bool
	conflicts   int

	quitting bool
	width    int
	height   int
}

// NewModel builds the TUI over ctrl. gate must be the confirmer ctrl was
// created with.
func NewModel(ctrl *app.Controller, gate *Gate) Model {
	m := Model{
		ctrl:   ctrl,
		gate:   gate,
		now:    time.Now,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		notes:  notelist.New(0, 0),
		board:  board.New(0, 0),
		detail: detail.New(0, 0),
	}
	m.refresh()
	return m
}

func (m Model) componentKeys() []key.Binding {
	switch {
	case m.mode == modeDetail:
		return m.detail.HelpKeys()
	case m.ctrl.State().View == constants.SessionDashboard:
		return m.board.HelpKeys()
	default:
		return m.notes.HelpKeys()
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := m.componentKeys()
	if m.mode != modeDetail {
		keys = keys[:min(3, len(keys))]
	}
	return append(slices.Clone(keys), m.keys.Tab, m.keys.Quit, m.keys.Help)
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		m.componentKeys(),
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Back, m.keys.Quit, m.keys.Help},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh pushes controller state into the components.
func (m *Model) refresh() {
	st := m.ctrl.State()
	now := m.now()
	m.notes.SetNotes(m.ctrl.VisibleNotes(), st.Selecting && st.View == constants.SessionNotes, st.Selection, now)
	m.board.SetRows(m.ctrl.Rows(), st.ActiveCategory, st.Selecting && st.View == constants.SessionDashboard, st.Selection, now)

	if st.ActiveWidget != "" {
		if w, err := m.ctrl.Widget(st.ActiveWidget); err == nil {
			m.detail.SetWidget(w, now)
			if m.mode == modeBrowse {
				m.mode = modeDetail
			}
		} else {
			m.ctrl.CloseWidget()
			if m.mode == modeDetail {
				m.mode = modeBrowse
			}
		}
	} else if m.mode == modeDetail {
		m.mode = modeBrowse
	}

	m.conflicts = len(validation.New().ValidateSnapshot(st.Snapshot).Conflicts)
}

func (m *Model) setStatus(msg string) {
	m.status, m.statusIsErr = msg, false
}

func (m *Model) setError(err error) {
	m.status, m.statusIsErr = err.Error(), true
}

// report shows the outcome of a controller call and refreshes the views.
func (m *Model) report(okMsg string, err error) {
	switch {
	case err != nil:
		m.setError(err)
	case m.ctrl.PersistErr() != nil:
		m.setError(fmt.Errorf("not saved: %w", m.ctrl.PersistErr()))
	default:
		m.setStatus(okMsg)
	}
	m.refresh()
}

// openForm shows f. submit runs once the form completes and returns the
// command that reports its outcome.
func (m *Model) openForm(f *huh.Form, submit func() tea.Cmd) tea.Cmd {
	m.form = f.WithTheme(huh.ThemeDracula()).WithShowHelp(true)
	m.onSubmit = submit
	if m.mode != modeForm {
		m.formBack = m.mode
	}
	m.mode = modeForm
	if m.width > 0 {
		m.form = m.form.WithWidth(m.width - 4)
	}
	return m.form.Init()
}

func (m *Model) closeForm() {
	m.form, m.onSubmit = nil, nil
	m.mode = m.formBack
	m.refresh()
}

// confirm shows a y/n prompt; run is called with the gate armed on y.
func (m *Model) confirm(prompt string, run func() error) {
	m.prompt, m.onConfirm = prompt, run
	m.confirmBack = m.mode
	m.mode = modeConfirm
}

// cycleTag steps the tag filter through "" and every known tag.
func (m *Model) cycleTag(reverse bool) {
	options := append([]string{""}, m.ctrl.AllTags()...)
	i := slices.Index(options, m.ctrl.State().TagFilter)
	step := 1
	if reverse {
		step = -1
	}
	i = (i + step + len(options)) % len(options)
	m.ctrl.SetTagFilter(options[i])
	m.refresh()
}

// cycleCategory steps the dashboard between all rows and each category.
func (m *Model) cycleCategory(reverse bool) {
	options := append([]string{""}, m.ctrl.Snapshot().DashboardCats...)
	i := slices.Index(options, m.ctrl.State().ActiveCategory)
	step := 1
	if reverse {
		step = -1
	}
	i = (i + step + len(options)) % len(options)
	m.ctrl.SetActiveCategory(options[i])
	m.refresh()
}

func (m *Model) resize() {
	// Tabs, banner, status and help
	h := m.height - 6
	if h < 3 {
		h = 3
	}
	w := m.width - 4
	m.notes.SetSize(w, h)
	m.board.SetSize(w, h)
	m.detail.SetSize(w, h)
	m.help.Width = m.width
}
