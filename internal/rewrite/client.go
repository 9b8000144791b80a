// Package rewrite wraps a single provider call per operation and reduces
// every failure to a GenerationError.
package rewrite

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/sant0-9/miaobi/internal/llm"
	"github.com/sant0-9/miaobi/internal/options"
	"github.com/sant0-9/miaobi/internal/prompts"
)

const (
	RewriteTemperature  = 0.75
	AnalysisTemperature = 0.2
)

var errBlankOutput = errors.New("provider returned only whitespace")

// Result is a finished rewrite, trimmed of surrounding whitespace.
type Result struct {
	Text string `json:"text"`
}

type Client struct {
	provider llm.Provider
	log      *zap.SugaredLogger
}

type Option func(*Client)

func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

func New(provider llm.Provider, opts ...Option) *Client {
	c := &Client{
		provider: provider,
		log:      zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rewrite sends prompt once. lang only picks the language of the error
// message.
func (c *Client) Rewrite(ctx context.Context, prompt string, lang options.Language) (Result, error) {
	text, err := c.generate(ctx, prompt, RewriteTemperature)
	if err == nil && text == "" {
		err = errBlankOutput
	}
	if err != nil {
		c.log.Errorw("rewrite failed", "provider", c.provider.Name(), "error", err)
		return Result{}, &GenerationError{Message: RewriteFailedMessage(lang), Err: err}
	}

	c.log.Debugw("rewrite done", "provider", c.provider.Name(), "chars", len([]rune(text)))
	return Result{Text: text}, nil
}

// Analyze asks the provider whether text reads as machine-written.
func (c *Client) Analyze(ctx context.Context, text string, lang options.Language) (Analysis, error) {
	raw, err := c.generate(ctx, prompts.BuildAnalysis(text), AnalysisTemperature)
	if err != nil {
		c.log.Errorw("analysis failed", "provider", c.provider.Name(), "error", err)
		return Analysis{}, &GenerationError{Message: AnalysisFailedMessage(lang), Err: err}
	}

	a, err := parseAnalysis(raw)
	if err != nil {
		c.log.Errorw("analysis unparseable", "provider", c.provider.Name(), "error", err, "raw", raw)
		return Analysis{}, &GenerationError{Message: AnalysisFailedMessage(lang), Err: err}
	}
	return a, nil
}

func (c *Client) generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	resp, err := c.provider.Generate(ctx, llm.NewRequest(prompt, temperature))
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", llm.ErrEmptyResponse
	}
	return strings.TrimSpace(resp.Content), nil
}
