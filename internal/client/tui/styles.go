package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F44336"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF6B6B")).
			Padding(1, 2).
			Width(44)

	cardNameStyle = lipgloss.NewStyle().Bold(true)
	cardBioStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	unreadStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4"))

	meStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff8"))
	otherStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#45f"))
)
