package tui

import "github.com/charmbracelet/lipgloss"

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 2)

	filterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Padding(0, 1)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)

// tabStyle colors the active tab with the user's theme.
func tabStyle(theme string) lipgloss.Style {
	return activeTabStyle.Background(lipgloss.Color(theme))
}
