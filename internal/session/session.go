// Package session holds the state behind one rewrite screen: the text being
// edited, the selected options, and the outcome of the last submission.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sant0-9/miaobi/internal/options"
	"github.com/sant0-9/miaobi/internal/prompts"
	"github.com/sant0-9/miaobi/internal/rewrite"
)

var (
	// ErrBlankInput is returned when the input holds only whitespace.
	ErrBlankInput = errors.New("input text is blank")

	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("a rewrite is already in progress")
)

type Mode int

const (
	// ModeRewrite sends a single rewrite call.
	ModeRewrite Mode = iota
	// ModeAnalyze runs the AI-detection analysis alongside the rewrite.
	ModeAnalyze
)

func (m Mode) String() string {
	if m == ModeAnalyze {
		return "analyze"
	}
	return "rewrite"
}

// Rewriter is the part of rewrite.Client a session needs.
type Rewriter interface {
	Rewrite(ctx context.Context, prompt string, lang options.Language) (rewrite.Result, error)
	Analyze(ctx context.Context, text string, lang options.Language) (rewrite.Analysis, error)
}

// State is a point-in-time copy of a session.
type State struct {
	InputText    string            `json:"inputText"`
	Options      options.Options   `json:"options"`
	LastResult   *rewrite.Result   `json:"lastResult,omitempty"`
	LastAnalysis *rewrite.Analysis `json:"lastAnalysis,omitempty"`
	IsLoading    bool              `json:"isLoading"`
	LastError    string            `json:"lastError,omitempty"`
	Seq          uint64            `json:"seq"`
}

// Request is a submission frozen at the moment it began. Later edits to the
// session do not change it.
type Request struct {
	Seq     uint64
	Mode    Mode
	Text    string
	Options options.Options
	Prompt  string
}

// Outcome is what Run produced for a Request.
type Outcome struct {
	Seq      uint64
	Mode     Mode
	Text     string
	Lang     options.Language
	Result   rewrite.Result
	Analysis *rewrite.Analysis
	Err      error
}

type Session struct {
	client Rewriter
	log    *zap.SugaredLogger

	mu    sync.Mutex
	state State
	// analyzed is the input LastAnalysis was computed for.
	analyzed string
}

type Option func(*Session)

func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// New returns an idle session with empty text and default options.
func New(client Rewriter, opts ...Option) *Session {
	s := &Session{
		client: client,
		log:    zap.NewNop().Sugar(),
		state: State{
			Options: options.Default(),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) SetInputText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.InputText = text
}

func (s *Session) SetOption(d options.Dimension, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.state.Options.With(d, value)
	if err != nil {
		return err
	}
	s.state.Options = next
	return nil
}

func (s *Session) SetOptions(o options.Options) error {
	if err := o.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Options = o
	return nil
}

func (s *Session) Options() options.Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Options
}

// Snapshot returns a copy that is safe to read while the session changes.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	if st.LastResult != nil {
		r := *st.LastResult
		st.LastResult = &r
	}
	if st.LastAnalysis != nil {
		a := *st.LastAnalysis
		st.LastAnalysis = &a
	}
	return st
}

// Begin moves the session into the submitting state and returns the request
// to run. Blank input and an outstanding submission leave the state untouched.
func (s *Session) Begin(mode Mode) (*Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(s.state.InputText) == "" {
		return nil, ErrBlankInput
	}
	if s.state.IsLoading {
		return nil, ErrBusy
	}

	s.state.Seq++
	req := &Request{
		Seq:     s.state.Seq,
		Mode:    mode,
		Text:    s.state.InputText,
		Options: s.state.Options,
		Prompt:  prompts.Build(s.state.InputText, s.state.Options),
	}

	s.state.LastError = ""
	if mode == ModeAnalyze || req.Text != s.analyzed {
		s.state.LastAnalysis = nil
	}
	if mode == ModeAnalyze {
		s.state.LastResult = nil
	}
	s.state.IsLoading = true

	s.log.Debugw("submission started", "seq", req.Seq, "mode", mode, "options", req.Options)
	return req, nil
}

// Run performs the provider calls for req. It does not touch the session
// state, so it can run off the caller's goroutine.
func (s *Session) Run(ctx context.Context, req *Request) Outcome {
	out := Outcome{Seq: req.Seq, Mode: req.Mode, Text: req.Text, Lang: req.Options.Language}

	if req.Mode != ModeAnalyze {
		out.Result, out.Err = s.client.Rewrite(ctx, req.Prompt, req.Options.Language)
		return out
	}

	var (
		result   rewrite.Result
		analysis rewrite.Analysis
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		analysis, err = s.client.Analyze(gctx, req.Text, req.Options.Language)
		return err
	})
	g.Go(func() error {
		var err error
		result, err = s.client.Rewrite(gctx, req.Prompt, req.Options.Language)
		return err
	})
	if err := g.Wait(); err != nil {
		out.Err = err
		return out
	}

	out.Result = result
	out.Analysis = &analysis
	return out
}

// Finish applies out and returns the session to idle.
func (s *Session) Finish(out Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if out.Seq != s.state.Seq {
		s.log.Warnw("applying outcome of an older submission", "seq", out.Seq, "current", s.state.Seq)
	}

	if out.Err != nil {
		s.state.LastError = userMessage(out.Err, out.Lang)
		s.state.LastResult = nil
		s.state.LastAnalysis = nil
		s.analyzed = ""
		s.log.Infow("submission failed", "seq", out.Seq, "mode", out.Mode, "error", out.Err)
	} else {
		r := out.Result
		s.state.LastResult = &r
		s.state.LastError = ""
		if out.Mode == ModeAnalyze {
			s.state.LastAnalysis = out.Analysis
			s.analyzed = out.Text
		}
		s.log.Infow("submission done", "seq", out.Seq, "mode", out.Mode)
	}
	s.state.IsLoading = false
}

// Submit runs a whole submission and returns the resulting state. The error
// is only ever ErrBlankInput or ErrBusy; provider failures land in
// State.LastError.
func (s *Session) Submit(ctx context.Context, mode Mode) (State, error) {
	req, err := s.Begin(mode)
	if err != nil {
		return s.Snapshot(), err
	}
	s.Finish(s.Run(ctx, req))
	return s.Snapshot(), nil
}

func userMessage(err error, lang options.Language) string {
	var genErr *rewrite.GenerationError
	if errors.As(err, &genErr) {
		return genErr.Message
	}
	return rewrite.RewriteFailedMessage(lang)
}
