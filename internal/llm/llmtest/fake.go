// Package llmtest provides an in-memory llm.Provider for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/sant0-9/miaobi/internal/llm"
)

// Fake answers every Generate call with Respond. With Gate set, each call
// blocks until a value is received from Gate or the context ends.
type Fake struct {
	Respond func(req *llm.Request) (string, error)
	Gate    chan struct{}

	mu       sync.Mutex
	requests []llm.Request
	started  chan struct{}
}

// Reply returns a Fake that always answers content.
func Reply(content string) *Fake {
	return &Fake{Respond: func(*llm.Request) (string, error) { return content, nil }}
}

// Fail returns a Fake that always fails with err.
func Fail(err error) *Fake {
	return &Fake{Respond: func(*llm.Request) (string, error) { return "", err }}
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) Ping(ctx context.Context) error { return nil }

func (f *Fake) Generate(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, *req)
	started := f.started
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}

	if f.Gate != nil {
		select {
		case <-f.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	content, err := f.Respond(req)
	if err != nil {
		return nil, err
	}
	return &llm.Response{Content: content, Model: "fake"}, nil
}

// Started returns a channel that receives once per Generate call, before the
// call waits on Gate.
func (f *Fake) Started() <-chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.started == nil {
		f.started = make(chan struct{}, 16)
	}
	return f.started
}

// Requests returns a copy of every request seen so far.
func (f *Fake) Requests() []llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llm.Request(nil), f.requests...)
}

func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}
