package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"go.uber.org/zap"

	"github.com/sant0-9/miaobi/internal/config"
	"github.com/sant0-9/miaobi/internal/llm"
	"github.com/sant0-9/miaobi/internal/session"
)

type state struct {
	config   *config.Config
	session  *session.Session
	provider llm.Provider
	log      *zap.SugaredLogger

	// Input
	editor textarea.Model
	// focus 0 is the editor; i > 0 is the option row options.Dimensions[i-1]
	focus int

	// Submission
	mode        session.Mode
	spinner     spinner.Model
	submittedAt time.Time
	notice      string

	// Result
	result viewport.Model

	// Clipboard
	clipboard func(string) error
	copied    bool
	copySeq   int

	// Provider
	providerReady bool
	providerError error
}

func newState() *state {
	editor := textarea.New()
	editor.Placeholder = "在此输入或粘贴需要改写的文本..."
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.SetWidth(68)
	editor.SetHeight(8)
	editor.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleSpinner

	return &state{
		editor:  editor,
		spinner: sp,
		result:  viewport.New(68, 10),
		log:     zap.NewNop().Sugar(),
	}
}
