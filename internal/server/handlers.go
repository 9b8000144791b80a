package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sant0-9/miaobi/internal/options"
	"github.com/sant0-9/miaobi/internal/render"
	"github.com/sant0-9/miaobi/internal/session"
)

type stateResponse struct {
	ID string `json:"id"`
	session.State
	ResultHTML string `json:"resultHtml,omitempty"`
}

type inputRequest struct {
	Text string `json:"text"`
}

type submitRequest struct {
	Analyze bool `json:"analyze"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	catalog := make(map[string][]options.Entry, len(options.Dimensions))
	for _, d := range options.Dimensions {
		catalog[d.String()] = options.Catalog(d)
	}
	writeJSON(w, http.StatusOK, catalog)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id, sess, err := s.create()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.log.Infow("session created", "session", id)
	s.writeState(w, http.StatusCreated, id, sess.Snapshot())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.sessionFrom(w, r)
	if !ok {
		return
	}
	s.writeState(w, http.StatusOK, id, sess.Snapshot())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.remove(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetInput(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.sessionFrom(w, r)
	if !ok {
		return
	}

	var req inputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sess.SetInputText(req.Text)
	s.writeState(w, http.StatusOK, id, sess.Snapshot())
}

// handleSetOptions applies a partial update. Every field is checked before
// any is applied.
func (s *Server) handleSetOptions(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.sessionFrom(w, r)
	if !ok {
		return
	}

	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	next := sess.Options()
	for name, value := range fields {
		d, err := options.ParseDimension(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if next, err = next.With(d, value); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if err := sess.SetOptions(next); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeState(w, http.StatusOK, id, sess.Snapshot())
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.sessionFrom(w, r)
	if !ok {
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	mode := session.ModeRewrite
	if req.Analyze {
		mode = session.ModeAnalyze
	}

	// a client hanging up does not abandon the submission
	st, err := sess.Submit(context.WithoutCancel(r.Context()), mode)
	switch {
	case errors.Is(err, session.ErrBusy):
		writeError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, session.ErrBlankInput):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeState(w, http.StatusOK, id, st)
}

func (s *Server) sessionFrom(w http.ResponseWriter, r *http.Request) (string, *session.Session, bool) {
	id := chi.URLParam(r, "id")
	sess, ok := s.lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return "", nil, false
	}
	return id, sess, true
}

func (s *Server) writeState(w http.ResponseWriter, status int, id string, st session.State) {
	resp := stateResponse{ID: id, State: st}
	if st.LastResult != nil {
		html, err := render.HTML(st.LastResult.Text)
		if err != nil {
			s.log.Warnw("render result", "session", id, "error", err)
		}
		resp.ResultHTML = html
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
