package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderHelp() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("帮助")
	b.WriteString(a.center(title))
	b.WriteString("\n\n")

	bindings := []key.Binding{
		keys.Submit, keys.Retry, keys.Analyze, keys.Copy,
		keys.Next, keys.Prev, keys.Left, keys.Right,
		keys.PageUp, keys.PageDown,
		keys.Help, keys.Info, keys.Quit,
	}
	lines := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		lines = append(lines, fmt.Sprintf("  %-18s %s", h.Key, h.Desc))
	}

	shortcutsBox := styleBox.
		Width(50).
		Render(strings.Join(lines, "\n"))
	b.WriteString(a.center(shortcutsBox))
	b.WriteString("\n\n")

	usage := []string{
		"在编辑框输入文本，用 Tab 切到长度、格式、语气、",
		"输出语言，左右方向键选择，然后按 Alt+Enter 改写。",
		"选项为“自动”时不会向模型追加对应要求。",
	}
	b.WriteString(a.center(styleSubtitle.Render(strings.Join(usage, "\n"))))
	b.WriteString("\n\n")

	b.WriteString(a.center(styleStatusBar.Render("[Esc/F1] 返回")))

	return a.centerVertically(b.String())
}
