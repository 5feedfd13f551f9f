package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/lifetracks/internal/app"
	"github.com/julianstephens/lifetracks/internal/constants"
	"github.com/julianstephens/lifetracks/internal/logger"
	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/tui/components/board"
	"github.com/julianstephens/lifetracks/internal/tui/components/detail"
	"github.com/julianstephens/lifetracks/internal/tui/components/notelist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		if m.form != nil {
			m.form = m.form.WithWidth(m.width - 4)
		}
		return m, nil
	}

	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeConfirm:
		if msg, ok := msg.(tea.KeyMsg); ok {
			return m.updateConfirm(msg)
		}
	}

	if handled, cmd := m.handleResult(msg); handled {
		return m, cmd
	}
	if handled, cmd := m.handleNotes(msg); handled {
		return m, cmd
	}
	if handled, cmd := m.handleBoard(msg); handled {
		return m, cmd
	}
	if handled, cmd := m.handleDetail(msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok && m.mode != modeConfirm && !m.filtering() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.ctrl.FlushPending()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
			m.switchView()
			return m, nil
		case key.Matches(msg, m.keys.Back) && m.mode == modeBrowse && m.ctrl.State().Selecting:
			m.ctrl.EndSelection()
			m.refresh()
			return m, nil
		}
	}

	return m.delegate(msg)
}

// switchView toggles between the notes and dashboard tabs. Any open widget
// closes first.
func (m *Model) switchView() {
	st := m.ctrl.State()
	if st.ActiveWidget != "" {
		m.ctrl.CloseWidget()
	}
	next := constants.SessionDashboard
	if st.View == constants.SessionDashboard {
		next = constants.SessionNotes
	}
	m.ctrl.SetView(next)
	m.mode = modeBrowse
	m.status = ""
	m.refresh()
}

// filtering reports whether the visible list is taking filter input.
func (m Model) filtering() bool {
	if m.mode != modeBrowse {
		return false
	}
	if m.ctrl.State().View == constants.SessionDashboard {
		return m.board.Filtering()
	}
	return m.notes.Filtering()
}

// delegate hands msg to the component that owns the screen.
func (m Model) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.mode == modeDetail:
		m.detail, cmd = m.detail.Update(msg)
	case m.ctrl.State().View == constants.SessionDashboard:
		m.board, cmd = m.board.Update(msg)
	default:
		m.notes, cmd = m.notes.Update(msg)
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		m.setStatus("Cancelled")
		return m, nil
	}
	// Results of async work still land while a form is open
	switch msg.(type) {
	case tagsSuggestedMsg, trendMsg, attachedMsg:
		_, cmd := m.handleResult(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		submit := m.onSubmit
		m.closeForm()
		if submit != nil {
			cmds = append(cmds, submit())
		}
	case huh.StateAborted:
		m.closeForm()
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		run := m.onConfirm
		m.mode = m.confirmBack
		m.prompt, m.onConfirm = "", nil
		err := m.gate.Run(run)
		if err == nil {
			m.report("Done", nil)
		} else {
			m.report("", err)
		}
	case key.Matches(msg, m.keys.No):
		m.mode = m.confirmBack
		m.prompt, m.onConfirm = "", nil
		m.setStatus("Cancelled")
	}
	return m, nil
}

// handleResult applies form outcomes and async results. Results whose
// target was removed meanwhile are dropped without a status.
func (m *Model) handleResult(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tagsSuggestedMsg, trendMsg, attachedMsg:
		if errors.Is(asyncErr(msg), app.ErrTargetGone) {
			m.refresh()
			return true, nil
		}
	}
	switch msg := msg.(type) {
	case resultMsg:
		m.report(msg.status, msg.err)
	case confirmMsg:
		m.confirm(msg.prompt, msg.run)
	case searchMsg:
		m.detail.SetQuery(msg.query)
		if msg.query == "" {
			m.setStatus("Search cleared")
		} else {
			m.setStatus(fmt.Sprintf("Searching %q", msg.query))
		}
	case editListItemMsg:
		return true, m.editListItemForm(msg)
	case editRatingItemMsg:
		return true, m.editRatingItemForm(msg)
	case editNotebookItemMsg:
		return true, m.editNotebookItemForm(msg)
	case tagsSuggestedMsg:
		if msg.err != nil {
			logger.Debug("tag suggestion failed", "err", msg.err)
			m.report("", msg.err)
		} else if len(msg.tags) == 0 {
			m.report("No new tags suggested", nil)
		} else {
			m.report("Tagged #"+strings.Join(msg.tags, " #"), nil)
		}
	case trendMsg:
		if msg.err != nil {
			m.report("", msg.err)
		} else {
			m.report(fmt.Sprintf("%s: %s", msg.title, msg.text), nil)
		}
	case attachedMsg:
		m.report(msg.what+" attached", msg.err)
	default:
		return false, nil
	}
	return true, nil
}

func asyncErr(msg tea.Msg) error {
	switch msg := msg.(type) {
	case tagsSuggestedMsg:
		return msg.err
	case trendMsg:
		return msg.err
	case attachedMsg:
		return msg.err
	}
	return nil
}

func (m *Model) handleNotes(msg tea.Msg) (bool, tea.Cmd) {
	ctrl := m.ctrl
	switch msg := msg.(type) {
	case notelist.AddNoteMsg:
		return true, m.addNoteForm()
	case notelist.EditNoteMsg:
		return true, m.editNoteForm(msg.Note)
	case notelist.DeleteNoteMsg:
		m.confirm("Delete this note?", func() error { return ctrl.DeleteNote(msg.ID) })
	case notelist.DeleteSelectedMsg:
		sel := ctrl.State().Selection
		m.confirm(fmt.Sprintf("Delete %d selected notes?", sel.Len()), func() error {
			return ctrl.DeleteNotes(sel)
		})
	case notelist.MoveSelectedMsg:
		sel := ctrl.State().Selection
		m.confirm(fmt.Sprintf("Move %d selected notes to the notebook?", sel.Len()), func() error {
			return ctrl.MoveNotesToNotebook(sel)
		})
	case notelist.StartSelectMsg:
		ctrl.StartSelection()
		m.setStatus("Selecting: space toggles, d deletes, m moves, esc ends")
		m.refresh()
	case notelist.ToggleSelectMsg:
		ctrl.ToggleSelected(msg.ID)
		m.refresh()
	case notelist.CycleTagMsg:
		m.cycleTag(msg.Reverse)
	case notelist.SuggestTagsMsg:
		m.setStatus("Asking for tags…")
		return true, suggestTagsCmd(ctrl, msg.ID)
	case notelist.AttachImageMsg:
		return true, m.attachImageForm(msg.ID)
	default:
		return false, nil
	}
	return true, nil
}

func (m *Model) handleBoard(msg tea.Msg) (bool, tea.Cmd) {
	ctrl := m.ctrl
	switch msg := msg.(type) {
	case board.OpenWidgetMsg:
		ctrl.OpenWidget(msg.ID)
		m.status = ""
		m.refresh()
	case board.AddWidgetMsg:
		return true, m.addWidgetForm()
	case board.DeleteWidgetMsg:
		m.confirm("Delete this widget?", func() error {
			return ctrl.DeleteWidgets(models.NewSelection(msg.ID))
		})
	case board.DeleteSelectedMsg:
		sel := ctrl.State().Selection
		m.confirm(fmt.Sprintf("Delete %d selected widgets?", sel.Len()), func() error {
			return ctrl.DeleteWidgets(sel)
		})
	case board.MoveWidgetsMsg:
		return true, m.moveWidgetsForm(msg.ID)
	case board.StartSelectMsg:
		ctrl.StartSelection()
		m.setStatus("Selecting: space toggles, d deletes, m moves, esc ends")
		m.refresh()
	case board.ToggleSelectMsg:
		ctrl.ToggleSelected(msg.ID)
		m.refresh()
	case board.CycleCategoryMsg:
		m.cycleCategory(msg.Reverse)
	case board.AddCategoryMsg:
		return true, m.addCategoryForm()
	case board.RenameCategoryMsg:
		return true, m.renameCategoryForm(m.board.Category())
	default:
		return false, nil
	}
	return true, nil
}

func (m *Model) handleDetail(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case detail.CloseMsg:
		m.ctrl.CloseWidget()
		m.status = ""
		m.refresh()
	case detail.ActionMsg:
		return true, m.widgetAction(msg)
	default:
		return false, nil
	}
	return true, nil
}
