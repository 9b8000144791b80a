package llm

import (
	"context"
	"errors"
)

// Provider is the interface every model backend implements.
type Provider interface {
	// Name returns the provider id from the config catalog.
	Name() string

	// Generate sends a single prompt and waits for the whole answer.
	Generate(ctx context.Context, req *Request) (*Response, error)

	// Ping checks that the provider is reachable and the credential works.
	Ping(ctx context.Context) error
}

// Request is one single-turn generation.
type Request struct {
	Model       string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

type Response struct {
	Content      string
	Model        string
	FinishReason string
	Usage        Usage
}

// Usage tracks token usage
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ErrEmptyResponse is returned when the backend answered without any text.
var ErrEmptyResponse = errors.New("llm: empty response")

// NewRequest creates a request for the provider's configured model.
func NewRequest(prompt string, temperature float64) *Request {
	return &Request{
		Prompt:      prompt,
		Temperature: temperature,
	}
}

func pickModel(req *Request, fallback string) string {
	if req.Model != "" {
		return req.Model
	}
	return fallback
}
