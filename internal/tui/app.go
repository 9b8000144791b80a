package tui

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sant0-9/miaobi/internal/config"
	"github.com/sant0-9/miaobi/internal/llm"
	"github.com/sant0-9/miaobi/internal/options"
	"github.com/sant0-9/miaobi/internal/session"
)

const copyAckDuration = 2 * time.Second

type view int

const (
	viewEditor view = iota
	viewHelp
	viewInfo
)

type App struct {
	width    int
	height   int
	view     view
	state    *state
	quitting bool
}

type Option func(*App)

func WithLogger(log *zap.SugaredLogger) Option {
	return func(a *App) {
		if log != nil {
			a.state.log = log
		}
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(a *App) {
		a.state.clipboard = write
	}
}

// NewApp builds the rewrite screen around sess. provider is only used to
// check connectivity on start and may be nil.
func NewApp(cfg *config.Config, sess *session.Session, provider llm.Provider, opts ...Option) *App {
	s := newState()
	s.config = cfg
	s.session = sess
	s.provider = provider
	s.clipboard = clipboard.WriteAll

	a := &App{
		view:  viewEditor,
		state: s,
	}
	for _, opt := range opts {
		opt(a)
	}

	s.editor.SetValue(sess.Snapshot().InputText)
	return a
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.WindowSize(), textarea.Blink}
	if a.state.provider != nil {
		cmds = append(cmds, a.pingProvider())
	}
	return tea.Batch(cmds...)
}

func (a *App) pingProvider() tea.Cmd {
	provider := a.state.provider
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := provider.Ping(ctx); err != nil {
			return providerErrorMsg{err}
		}
		return providerReadyMsg{}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := a.handleKey(msg)
		if handled {
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case providerReadyMsg:
		a.state.providerReady = true
		a.state.providerError = nil
		return a, nil

	case providerErrorMsg:
		a.state.providerError = msg.error
		a.state.log.Warnw("provider check failed", "error", msg.error)
		return a, nil

	case rewriteDoneMsg:
		a.state.session.Finish(msg.outcome)
		a.refreshResult()
		return a, nil

	case copyAckExpiredMsg:
		if msg.seq == a.state.copySeq {
			a.state.copied = false
		}
		return a, nil

	case spinner.TickMsg:
		if !a.state.session.Snapshot().IsLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.state.spinner, cmd = a.state.spinner.Update(msg)
		return a, cmd
	}

	if a.view == viewEditor && a.state.focus == 0 {
		before := a.state.editor.Value()
		var cmd tea.Cmd
		a.state.editor, cmd = a.state.editor.Update(msg)
		cmds = append(cmds, cmd)

		if after := a.state.editor.Value(); after != before {
			a.state.session.SetInputText(after)
			a.state.notice = ""
		}
	}

	return a, tea.Batch(cmds...)
}

// handleKey reports whether it consumed msg. Unconsumed keys go to the editor.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		if a.view != viewEditor {
			a.view = viewEditor
			return nil, true
		}
		a.quitting = true
		return tea.Quit, true

	case key.Matches(msg, keys.Help):
		a.toggleView(viewHelp)
		return nil, true

	case key.Matches(msg, keys.Info):
		a.toggleView(viewInfo)
		return nil, true
	}

	if a.view != viewEditor {
		return nil, true
	}

	switch {
	case key.Matches(msg, keys.Submit), key.Matches(msg, keys.Retry):
		return a.submit(), true

	case key.Matches(msg, keys.Analyze):
		if a.state.mode == session.ModeAnalyze {
			a.state.mode = session.ModeRewrite
		} else {
			a.state.mode = session.ModeAnalyze
		}
		return nil, true

	case key.Matches(msg, keys.Copy):
		return a.copyResult(), true

	case key.Matches(msg, keys.Next):
		a.moveFocus(1)
		return nil, true

	case key.Matches(msg, keys.Prev):
		a.moveFocus(-1)
		return nil, true

	case key.Matches(msg, keys.PageUp):
		a.state.result.HalfViewUp()
		return nil, true

	case key.Matches(msg, keys.PageDown):
		a.state.result.HalfViewDown()
		return nil, true
	}

	if a.state.focus > 0 {
		switch {
		case key.Matches(msg, keys.Left):
			a.stepOption(-1)
		case key.Matches(msg, keys.Right):
			a.stepOption(1)
		}
		return nil, true
	}

	return nil, false
}

func (a *App) toggleView(v view) {
	if a.view == v {
		a.view = viewEditor
		return
	}
	a.view = v
}

func (a *App) moveFocus(delta int) {
	n := len(options.Dimensions) + 1
	a.state.focus = (a.state.focus + delta + n) % n

	if a.state.focus == 0 {
		a.state.editor.Focus()
	} else {
		a.state.editor.Blur()
	}
}

func (a *App) stepOption(delta int) {
	d := options.Dimensions[a.state.focus-1]
	current := a.state.session.Options().Value(d)

	next := options.Next(d, current)
	if delta < 0 {
		next = options.Prev(d, current)
	}
	if err := a.state.session.SetOption(d, next); err != nil {
		a.state.log.Errorw("set option", "dimension", d, "value", next, "error", err)
	}
}

func (a *App) submit() tea.Cmd {
	req, err := a.state.session.Begin(a.state.mode)
	switch {
	case errors.Is(err, session.ErrBlankInput):
		a.state.notice = "请输入需要改写的文本。"
		return nil
	case errors.Is(err, session.ErrBusy):
		return nil
	case err != nil:
		a.state.log.Errorw("begin submission", "error", err)
		return nil
	}

	a.state.notice = ""
	a.state.copied = false
	a.state.submittedAt = time.Now()

	sess := a.state.session
	run := func() tea.Msg {
		return rewriteDoneMsg{outcome: sess.Run(context.Background(), req)}
	}
	return tea.Batch(a.state.spinner.Tick, run)
}

func (a *App) copyResult() tea.Cmd {
	st := a.state.session.Snapshot()
	if st.LastResult == nil || st.IsLoading {
		return nil
	}

	if err := a.state.clipboard(st.LastResult.Text); err != nil {
		a.state.log.Warnw("copy to clipboard", "error", err)
		a.state.notice = "复制失败：无法访问剪贴板。"
		return nil
	}

	a.state.copied = true
	a.state.copySeq++
	seq := a.state.copySeq
	return tea.Tick(copyAckDuration, func(time.Time) tea.Msg {
		return copyAckExpiredMsg{seq: seq}
	})
}

type providerReadyMsg struct{}
type providerErrorMsg struct{ error }

type rewriteDoneMsg struct {
	outcome session.Outcome
}

type copyAckExpiredMsg struct {
	seq int
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewHelp:
		return a.renderHelp()
	case viewInfo:
		return a.renderInfo()
	default:
		return a.renderEditor()
	}
}
