package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/lifetracks/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.mode {
	case modeForm:
		content = docStyle.Render(m.form.View())
	case modeConfirm:
		content = m.viewConfirm()
	case modeDetail:
		content = docStyle.Render(m.detail.View())
	default:
		if m.ctrl.State().View == constants.SessionDashboard {
			content = docStyle.Render(m.board.View())
		} else {
			content = docStyle.Render(m.notes.View())
		}
	}

	var banner string
	if m.conflicts > 0 {
		banner = warningStyle.Render(fmt.Sprintf("  ⚠ %d CONFLICT(S) DETECTED · run 'lifetracks doctor'", m.conflicts))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	st := m.ctrl.State()
	theme := st.Snapshot.ThemeColor
	if theme == "" {
		theme = constants.DefaultThemeColor
	}
	var tabs []string
	for _, t := range []struct {
		title string
		view  constants.SessionState
	}{
		{"Notes", constants.SessionNotes},
		{"Dashboard", constants.SessionDashboard},
	} {
		if st.View == t.view {
			tabs = append(tabs, tabStyle(theme).Render(t.title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(t.title))
		}
	}

	var filter string
	switch {
	case st.View == constants.SessionNotes && st.TagFilter != "":
		filter = "#" + st.TagFilter
	case st.View == constants.SessionDashboard && st.ActiveCategory != "":
		filter = st.ActiveCategory
	}
	if filter != "" {
		tabs = append(tabs, filterStyle.Render("· "+filter))
	}
	if st.Selecting {
		tabs = append(tabs, filterStyle.Render(fmt.Sprintf("· %d selected", st.Selection.Len())))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewConfirm() string {
	return lipgloss.Place(m.width, max(m.height-6, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(m.prompt),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewStatus() string {
	switch {
	case m.status == "":
		return ""
	case m.statusIsErr:
		return statusStyle.Foreground(lipgloss.Color("196")).Render(m.status)
	default:
		return statusStyle.Render(m.status)
	}
}
