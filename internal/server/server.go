// Package server exposes rewrite sessions over a small JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sant0-9/miaobi/internal/session"
)

const (
	defaultIdleTTL     = 30 * time.Minute
	defaultMaxSessions = 1000
)

// ErrTooManySessions is returned when the store is full of live sessions.
var ErrTooManySessions = errors.New("too many open sessions")

type Server struct {
	client session.Rewriter
	log    *zap.SugaredLogger
	router *chi.Mux

	idleTTL     time.Duration
	maxSessions int
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	sess     *session.Session
	lastUsed time.Time
}

type Option func(*Server)

// WithIdleTTL sets how long an untouched session is kept.
func WithIdleTTL(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.idleTTL = d
		}
	}
}

// WithMaxSessions caps the number of live sessions.
func WithMaxSessions(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

func New(client session.Rewriter, opts ...Option) *Server {
	s := &Server{
		client:      client,
		log:         zap.NewNop().Sugar(),
		router:      chi.NewRouter(),
		idleTTL:     defaultIdleTTL,
		maxSessions: defaultMaxSessions,
		now:         time.Now,
		sessions:    make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  printLogger{s.log},
		NoColor: true,
	}))
	s.router.Use(middleware.Recoverer)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/catalog", s.handleCatalog)

		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Put("/input", s.handleSetInput)
			r.Put("/options", s.handleSetOptions)
			r.Post("/submit", s.handleSubmit)
		})
	})
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// create sweeps idle sessions before adding a new one, so the store stays
// bounded without a background goroutine.
func (s *Server) create() (string, *session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	if len(s.sessions) >= s.maxSessions {
		return "", nil, ErrTooManySessions
	}

	id := uuid.NewString()
	sess := session.New(s.client, session.WithLogger(s.log.With("session", id)))
	s.sessions[id] = &entry{sess: sess, lastUsed: s.now()}
	return id, sess, nil
}

func (s *Server) sweepLocked() {
	cutoff := s.now().Add(-s.idleTTL)
	for id, e := range s.sessions {
		// a submission in flight keeps its session alive
		if e.lastUsed.Before(cutoff) && !e.sess.Snapshot().IsLoading {
			delete(s.sessions, id)
			s.log.Infow("session expired", "session", id)
		}
	}
}

func (s *Server) lookup(id string) (*session.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastUsed = s.now()
	return e.sess, true
}

func (s *Server) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// printLogger lets chi's request logger write through zap.
type printLogger struct {
	log *zap.SugaredLogger
}

func (p printLogger) Print(v ...interface{}) {
	p.log.Info(v...)
}
