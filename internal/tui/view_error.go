package tui

import (
	"strings"
)

// renderError shows the stored failure message. The message itself is
// generic, so suggestions come from the startup connectivity check.
func (a *App) renderError(msg string) string {
	var b strings.Builder

	errBox := styleBox.
		Width(a.boxWidth()).
		BorderForeground(colorError).
		Render(styleNotice.Render(msg))
	b.WriteString(a.center(errBox))

	if suggestions := a.suggestions(); len(suggestions) > 0 {
		b.WriteString("\n")
		suggBox := styleBox.
			Width(a.boxWidth()).
			Render("建议：\n" + strings.Join(suggestions, "\n"))
		b.WriteString(a.center(suggBox))
	}

	return b.String()
}

func (a *App) suggestions() []string {
	if a.state.providerError == nil {
		return nil
	}

	var suggestions []string
	errLower := strings.ToLower(a.state.providerError.Error())

	switch {
	case strings.Contains(errLower, "api key") || strings.Contains(errLower, "401") ||
		strings.Contains(errLower, "403") || strings.Contains(errLower, "unauthorized"):
		suggestions = append(suggestions, "检查 API_KEY 环境变量或 ~/.config/miaobi/config.yaml 中的 api_key")
	case strings.Contains(errLower, "rate limit") || strings.Contains(errLower, "429") || strings.Contains(errLower, "quota"):
		suggestions = append(suggestions, "已触发接口限流或额度用尽，请稍后再试")
	case strings.Contains(errLower, "ollama"):
		suggestions = append(suggestions, "确认 Ollama 正在运行：ollama serve")
	case strings.Contains(errLower, "connect") || strings.Contains(errLower, "timeout") ||
		strings.Contains(errLower, "deadline"):
		suggestions = append(suggestions, "检查网络连接")
		suggestions = append(suggestions, "或设置 MIAOBI_PROVIDER=ollama 使用本地模型")
	default:
		suggestions = append(suggestions, "启动时的连接检查失败："+truncate(a.state.providerError.Error(), 60))
	}
	return suggestions
}
