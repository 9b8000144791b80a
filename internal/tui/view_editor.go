package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/miaobi/internal/options"
	"github.com/sant0-9/miaobi/internal/session"
)

const logo = "妙 笔 生 花"

func (a *App) renderEditor() string {
	var b strings.Builder
	st := a.state.session.Snapshot()

	b.WriteString(a.renderHeader())
	b.WriteString("\n\n")

	// Editor
	editorStyle := styleBox.Width(a.boxWidth())
	if a.state.focus == 0 {
		editorStyle = editorStyle.BorderForeground(colorPrimary)
	}
	b.WriteString(a.center(editorStyle.Render(a.state.editor.View())))
	b.WriteString("\n")
	b.WriteString(a.center(styleSubtitle.Render(a.inputStats(st.InputText))))
	b.WriteString("\n\n")

	b.WriteString(a.center(a.renderOptions(st.Options)))
	b.WriteString("\n\n")

	if a.state.notice != "" {
		b.WriteString(a.center(styleNotice.Render(a.state.notice)))
		b.WriteString("\n\n")
	}

	if panel := a.renderResult(st); panel != "" {
		b.WriteString(panel)
		b.WriteString("\n\n")
	}

	b.WriteString(a.center(styleStatusBar.Render(a.statusLine(st))))
	return b.String()
}

func (a *App) renderHeader() string {
	title := styleLogo.Render(logo)
	sub := styleSubtitle.Render("AI 文本改写 · " + a.modelDisplayName())

	var status string
	switch {
	case a.state.providerError != nil:
		status = lipgloss.NewStyle().Foreground(colorError).Render("● 连接失败")
	case a.state.providerReady:
		status = lipgloss.NewStyle().Foreground(colorSuccess).Render("● 已连接")
	}
	if status != "" {
		sub += "  " + status
	}

	return lipgloss.JoinVertical(lipgloss.Left, a.center(title), a.center(sub))
}

func (a *App) renderOptions(opts options.Options) string {
	lines := make([]string, 0, len(options.Dimensions)+1)
	for i, d := range options.Dimensions {
		value := opts.Value(d)
		label := options.LabelOf(d, value)

		cursor := "  "
		valueStyle := styleOptionValue
		if a.state.focus == i+1 {
			cursor = "› "
			valueStyle = styleOptionFocused
			label = "‹ " + label + " ›"
		}
		lines = append(lines, cursor+styleOptionLabel.Render(d.Label())+valueStyle.Render(label))
	}

	mode := "仅改写"
	if a.state.mode == session.ModeAnalyze {
		mode = "AI 检测 + 改写"
	}
	lines = append(lines, "  "+styleOptionLabel.Render("模式")+styleOptionValue.Render(mode))

	return styleBox.Width(a.boxWidth()).Render(strings.Join(lines, "\n"))
}

func (a *App) inputStats(text string) string {
	tokens := estimateTokens(text)
	stats := fmt.Sprintf("%d 字 · 约 %d tokens", countChars(text), tokens)

	if a.state.config != nil {
		if limit := getContextLimit(a.state.config.Model); tokens > limit {
			stats += fmt.Sprintf(" · 超出模型上下文 (%dk)", limit/1000)
		}
	}
	return stats
}

func (a *App) statusLine(st session.State) string {
	if st.IsLoading {
		return "[Esc] 退出"
	}

	parts := []string{"[Alt+Enter/Ctrl+S] 改写", "[Tab] 切换", "[Ctrl+A] AI 检测"}
	if st.LastResult != nil {
		parts = append(parts, "[Ctrl+Y] 复制")
	}
	if st.LastError != "" {
		parts = append(parts, "[Ctrl+R] 重试")
	}
	parts = append(parts, "[F1] 帮助", "[Esc] 退出")
	return strings.Join(parts, "  ")
}

func (a *App) center(s string) string {
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, s)
}

// resize lays the editor and result pane out for the current window.
func (a *App) resize() {
	inner := a.boxWidth() - 4
	a.state.editor.SetWidth(inner)

	// header, stats, options, status and borders take roughly 20 rows
	free := a.height - 20
	if free < 8 {
		free = 8
	}
	a.state.editor.SetHeight(max(3, free*2/5))

	a.state.result.Width = inner
	a.state.result.Height = max(3, free-free*2/5)
	a.refreshResult()
}

func (a *App) refreshResult() {
	st := a.state.session.Snapshot()
	if st.LastResult == nil {
		a.state.result.SetContent("")
		return
	}
	wrapped := lipgloss.NewStyle().Width(a.state.result.Width).Render(st.LastResult.Text)
	a.state.result.SetContent(wrapped)
	a.state.result.GotoTop()
}

// modelDisplayName returns a friendly model name for display
func (a *App) modelDisplayName() string {
	if a.state.config == nil {
		return ""
	}
	model := a.state.config.Model
	provider := a.state.config.Provider

	display := model
	switch {
	case strings.Contains(model, "gemini-2.5-flash"):
		display = "Gemini 2.5 Flash"
	case strings.Contains(model, "gemini-2.5-pro"):
		display = "Gemini 2.5 Pro"
	case strings.Contains(model, "claude-3-5-sonnet"):
		display = "Claude 3.5 Sonnet"
	case strings.Contains(model, "gpt-4o-mini"):
		display = "GPT-4o mini"
	case strings.Contains(model, "gpt-4o"):
		display = "GPT-4o"
	case strings.Contains(model, "deepseek-chat"):
		display = "DeepSeek V3"
	}

	if provider != "" && !strings.Contains(strings.ToLower(display), strings.ToLower(provider)) {
		return fmt.Sprintf("%s via %s", display, provider)
	}
	return display
}
