package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// truncate shortens s to maxLen runes, adding "..." if truncated
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := (a.height - lines) / 2
	if padding < 0 {
		padding = 0
	}
	return strings.Repeat("\n", padding) + content
}

func (a *App) boxWidth() int {
	w := min(76, a.width-4)
	if w < 30 {
		w = 30
	}
	return w
}

var (
	// Colors
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#06B6D4")
	colorSuccess   = lipgloss.Color("#10B981")
	colorError     = lipgloss.Color("#EF4444")
	colorWarning   = lipgloss.Color("#EAB308")
	colorMuted     = lipgloss.Color("#6B7280")
	colorWhite     = lipgloss.Color("#F9FAFB")

	styleLogo = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleSubtitle = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleSpinner = lipgloss.NewStyle().
			Foreground(colorPrimary)

	// Option rows
	styleOptionLabel = lipgloss.NewStyle().
				Foreground(colorMuted).
				Width(10)

	styleOptionValue = lipgloss.NewStyle().
				Foreground(colorWhite)

	styleOptionFocused = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true)

	styleNotice = lipgloss.NewStyle().
			Foreground(colorError)

	styleCopied = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)
)
