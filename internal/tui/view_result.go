package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/miaobi/internal/rewrite"
	"github.com/sant0-9/miaobi/internal/session"
)

var loadingMessages = []string{
	"正在改写...",
	"斟酌字句...",
	"调整语气...",
	"打磨节奏...",
	"润色中...",
}

const confidenceBarWidth = 20

// renderResult draws whatever the last submission left behind: a spinner,
// the error, or the rewritten text with its analysis.
func (a *App) renderResult(st session.State) string {
	switch {
	case st.IsLoading:
		return a.center(a.renderLoading())
	case st.LastError != "":
		return a.renderError(st.LastError)
	case st.LastResult != nil:
		return a.renderOutput(st)
	default:
		return ""
	}
}

func (a *App) renderLoading() string {
	elapsed := time.Since(a.state.submittedAt).Seconds()
	msg := loadingMessages[int(elapsed)%len(loadingMessages)]
	if a.state.mode == session.ModeAnalyze {
		msg = "正在检测并改写..."
	}
	return fmt.Sprintf("%s %s  %.1fs", a.state.spinner.View(), msg, elapsed)
}

func (a *App) renderOutput(st session.State) string {
	var b strings.Builder

	if st.LastAnalysis != nil {
		b.WriteString(a.center(a.renderAnalysis(*st.LastAnalysis)))
		b.WriteString("\n")
	}

	box := styleBox.
		Width(a.boxWidth()).
		BorderForeground(colorPrimary).
		Render(a.state.result.View())
	b.WriteString(a.center(box))
	b.WriteString("\n")

	footer := styleSubtitle.Render(fmt.Sprintf("%d 字", countChars(st.LastResult.Text)))
	if a.state.copied {
		footer += "  " + styleCopied.Render("已复制!")
	}
	if a.state.result.TotalLineCount() > a.state.result.Height {
		footer += "  " + styleSubtitle.Render(fmt.Sprintf("%.0f%%", a.state.result.ScrollPercent()*100))
	}
	b.WriteString(a.center(footer))

	return b.String()
}

func (a *App) renderAnalysis(an rewrite.Analysis) string {
	color := colorSuccess
	verdict := "更像人类写作"
	if an.IsAI {
		color = colorError
		verdict = "疑似 AI 生成"
	}
	pct := int(math.Round(an.Confidence * 100))

	head := lipgloss.NewStyle().Foreground(color).Bold(true).
		Render(fmt.Sprintf("%s  %d%%", verdict, pct))

	lines := []string{head, confidenceBar(an.Confidence)}
	if an.Reasoning != "" {
		reason := lipgloss.NewStyle().Width(a.boxWidth() - 4).
			Render("分析依据：" + an.Reasoning)
		lines = append(lines, reason)
	}

	return styleBox.
		Width(a.boxWidth()).
		BorderForeground(color).
		Render(strings.Join(lines, "\n"))
}

// confidenceColor grades the bar by percentage: green up to 50, yellow
// above, red above 80.
func confidenceColor(confidence float64) lipgloss.Color {
	pct := int(math.Round(confidence * 100))
	switch {
	case pct > 80:
		return colorError
	case pct > 50:
		return colorWarning
	default:
		return colorSuccess
	}
}

func confidenceBar(confidence float64) string {
	filled := int(math.Round(confidence * confidenceBarWidth))
	filled = max(0, min(confidenceBarWidth, filled))

	bar := lipgloss.NewStyle().Foreground(confidenceColor(confidence)).Render(strings.Repeat("█", filled))
	rest := styleSubtitle.Render(strings.Repeat("░", confidenceBarWidth-filled))
	return bar + rest
}
