package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/miaobi/internal/config"
)

// renderInfo shows the active configuration. It is read only; changes go
// through the config file or environment.
func (a *App) renderInfo() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("当前配置")
	b.WriteString(a.center(title))
	b.WriteString("\n\n")

	cfg := a.state.config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	providerName := cfg.Provider
	if p := config.GetProvider(cfg.Provider); p != nil {
		providerName = p.Name
	}

	status := "检查中..."
	switch {
	case a.state.providerError != nil:
		status = "失败：" + truncate(a.state.providerError.Error(), 40)
	case a.state.providerReady:
		status = "正常"
	}

	lines := []string{
		fmt.Sprintf("  服务商:   %s", providerName),
		fmt.Sprintf("  模型:     %s", cfg.Model),
		fmt.Sprintf("  API Key:  %s", cfg.MaskedAPIKey()),
		fmt.Sprintf("  连接:     %s", status),
	}
	if cfg.BaseURL != "" {
		lines = append(lines, fmt.Sprintf("  地址:     %s", truncate(cfg.BaseURL, 40)))
	}
	if cfg.Log.File != "" {
		lines = append(lines, fmt.Sprintf("  日志:     %s", truncate(cfg.Log.File, 40)))
	}

	configBox := styleBox.
		Width(60).
		Render(strings.Join(lines, "\n"))
	b.WriteString(a.center(configBox))
	b.WriteString("\n\n")

	path := cfg.Path
	if path == "" {
		path, _ = config.ConfigPath()
	}
	if path != "" {
		b.WriteString(a.center(styleSubtitle.Render("配置文件：" + path)))
		b.WriteString("\n\n")
	}

	b.WriteString(a.center(styleStatusBar.Render("[Esc/F2] 返回")))

	return a.centerVertically(b.String())
}
