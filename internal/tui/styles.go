package tui

import "github.com/charmbracelet/lipgloss"

var (
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	errorFg   = lipgloss.Color("#DC2626")
	okFg      = lipgloss.Color("#16A34A")
	borderCol = lipgloss.Color("#243141")

	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	okStyle    = lipgloss.NewStyle().Foreground(okFg)
	errStyle   = lipgloss.NewStyle().Foreground(errorFg).Bold(true)
)

// Boxed frames s with a rounded border.
func Boxed(s string) string { return boxStyle.Render(s) }

// Title renders a heading.
func Title(s string) string { return titleStyle.Render(s) }

// Failure renders an error for the terminal.
func Failure(err error) string {
	return errStyle.Render("error: ") + err.Error()
}
