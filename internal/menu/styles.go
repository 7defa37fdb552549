package menu

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	runningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	waitingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boxStyle      = lipgloss.NewStyle().Padding(0, 1)
)

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
