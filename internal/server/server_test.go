package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/miaobi/internal/llm"
	"github.com/sant0-9/miaobi/internal/llm/llmtest"
	"github.com/sant0-9/miaobi/internal/rewrite"
)

type testAPI struct {
	t   *testing.T
	srv *httptest.Server
}

func newTestAPI(t *testing.T, p llm.Provider) *testAPI {
	t.Helper()
	srv := httptest.NewServer(New(rewrite.New(p)).Handler())
	t.Cleanup(srv.Close)
	return &testAPI{t: t, srv: srv}
}

func (a *testAPI) do(method, path string, body any) (*http.Response, map[string]any) {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, a.srv.URL+path, &buf)
	require.NoError(a.t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(a.t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func (a *testAPI) newSession() string {
	a.t.Helper()
	resp, body := a.do(http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(a.t, http.StatusCreated, resp.StatusCode)
	id, _ := body["id"].(string)
	require.NotEmpty(a.t, id)
	return id
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t, llmtest.Reply("x"))
	resp, body := api.do(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestCatalog(t *testing.T) {
	api := newTestAPI(t, llmtest.Reply("x"))
	resp, body := api.do(http.MethodGet, "/api/v1/catalog", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	formats, ok := body["format"].([]any)
	require.True(t, ok)
	assert.Len(t, formats, 18)
	first := formats[0].(map[string]any)
	assert.Equal(t, "auto", first["value"])
	assert.Equal(t, "自动", first["label"])

	assert.Contains(t, body, "outputLanguage")
}

func TestCreateSessionDefaults(t *testing.T) {
	api := newTestAPI(t, llmtest.Reply("x"))
	id := api.newSession()

	resp, body := api.do(http.MethodGet, "/api/v1/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	opts := body["options"].(map[string]any)
	assert.Equal(t, "auto", opts["tone"])
	assert.Equal(t, "zh", opts["outputLanguage"])
	assert.Equal(t, false, body["isLoading"])
}

func TestRewriteFlow(t *testing.T) {
	fake := llmtest.Reply("  **Hello** there  ")
	api := newTestAPI(t, fake)
	id := api.newSession()

	resp, _ := api.do(http.MethodPut, "/api/v1/sessions/"+id+"/input", map[string]string{"text": "hello"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := api.do(http.MethodPut, "/api/v1/sessions/"+id+"/options", map[string]string{
		"outputLanguage": "en",
		"tone":           "witty",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "witty", body["options"].(map[string]any)["tone"])

	resp, body = api.do(http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "**Hello** there", body["lastResult"].(map[string]any)["text"])
	assert.Contains(t, body["resultHtml"], "<strong>Hello</strong>")
	assert.Equal(t, false, body["isLoading"])

	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].Prompt, "The tone should be witty.")
}

func TestSubmitAnalyze(t *testing.T) {
	fake := &llmtest.Fake{Respond: func(req *llm.Request) (string, error) {
		if req.Temperature == rewrite.AnalysisTemperature {
			return `{"isAI": false, "confidence": 0.25, "reasoning": "自然"}`, nil
		}
		return "rewritten", nil
	}}
	api := newTestAPI(t, fake)
	id := api.newSession()
	api.do(http.MethodPut, "/api/v1/sessions/"+id+"/input", map[string]string{"text": "原文"})

	resp, body := api.do(http.MethodPost, "/api/v1/sessions/"+id+"/submit", map[string]bool{"analyze": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	analysis := body["lastAnalysis"].(map[string]any)
	assert.Equal(t, false, analysis["isAI"])
	assert.InDelta(t, 0.25, analysis["confidence"], 1e-9)
}

func TestSubmitBlank(t *testing.T) {
	fake := llmtest.Reply("x")
	api := newTestAPI(t, fake)
	id := api.newSession()
	api.do(http.MethodPut, "/api/v1/sessions/"+id+"/input", map[string]string{"text": "   "})

	resp, body := api.do(http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
	assert.Zero(t, fake.Calls())
}

func TestSubmitBusy(t *testing.T) {
	fake := llmtest.Reply("slow")
	fake.Gate = make(chan struct{})
	started := fake.Started()

	api := newTestAPI(t, fake)
	id := api.newSession()
	api.do(http.MethodPut, "/api/v1/sessions/"+id+"/input", map[string]string{"text": "hello"})

	done := make(chan int, 1)
	go func() {
		resp, err := http.Post(api.srv.URL+"/api/v1/sessions/"+id+"/submit", "application/json", nil)
		if err != nil {
			done <- 0
			return
		}
		resp.Body.Close()
		done <- resp.StatusCode
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("submission never reached the provider")
	}

	resp, _ := api.do(http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	close(fake.Gate)
	assert.Equal(t, http.StatusOK, <-done)
	assert.Equal(t, 1, fake.Calls())
}

func TestSubmitProviderFailure(t *testing.T) {
	api := newTestAPI(t, llmtest.Fail(errors.New("quota")))
	id := api.newSession()
	api.do(http.MethodPut, "/api/v1/sessions/"+id+"/input", map[string]string{"text": "hello"})

	resp, body := api.do(http.MethodPost, "/api/v1/sessions/"+id+"/submit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "文本改写失败，请重试。", body["lastError"])
	assert.NotContains(t, body, "lastResult")
	assert.NotContains(t, body, "resultHtml")
}

func TestSetOptionsRejectsUnknown(t *testing.T) {
	api := newTestAPI(t, llmtest.Reply("x"))
	id := api.newSession()

	for _, fields := range []map[string]string{
		{"tone": "sarcastic"},
		{"colour": "blue"},
		{"tone": "formal", "length": "epic"},
	} {
		resp, body := api.do(http.MethodPut, "/api/v1/sessions/"+id+"/options", fields)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "%v", fields)
		assert.NotEmpty(t, body["error"])
	}

	_, body := api.do(http.MethodGet, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, "auto", body["options"].(map[string]any)["tone"], "rejected update applies nothing")
}

func TestUnknownSession(t *testing.T) {
	api := newTestAPI(t, llmtest.Reply("x"))
	for _, c := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/sessions/nope"},
		{http.MethodPost, "/api/v1/sessions/nope/submit"},
		{http.MethodDelete, "/api/v1/sessions/nope"},
	} {
		resp, _ := api.do(c.method, c.path, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, c.path)
	}
}

func TestDeleteSession(t *testing.T) {
	api := newTestAPI(t, llmtest.Reply("x"))
	id := api.newSession()

	resp, _ := api.do(http.MethodDelete, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = api.do(http.MethodGet, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIdleSessionsExpire(t *testing.T) {
	s := New(rewrite.New(llmtest.Reply("x")), WithIdleTTL(time.Minute))
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	stale, _, err := s.create()
	require.NoError(t, err)
	kept, _, err := s.create()
	require.NoError(t, err)

	clock = clock.Add(50 * time.Second)
	_, ok := s.lookup(kept)
	require.True(t, ok)

	clock = clock.Add(30 * time.Second)
	_, _, err = s.create()
	require.NoError(t, err)

	_, ok = s.lookup(stale)
	assert.False(t, ok, "untouched session is swept")
	_, ok = s.lookup(kept)
	assert.True(t, ok, "recently used session survives")
}

func TestSessionCap(t *testing.T) {
	srv := httptest.NewServer(New(rewrite.New(llmtest.Reply("x")), WithMaxSessions(2)).Handler())
	t.Cleanup(srv.Close)
	api := &testAPI{t: t, srv: srv}

	first := api.newSession()
	api.newSession()

	resp, body := api.do(http.MethodPost, "/api/v1/sessions", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, ErrTooManySessions.Error(), body["error"])

	resp, _ = api.do(http.MethodDelete, "/api/v1/sessions/"+first, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	api.newSession()
}
