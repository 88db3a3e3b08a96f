// Package server exposes the tritone filter over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves one-shot processing and session-based re-rendering.
type Server struct {
	cfg      Config
	logger   *slog.Logger
	presets  *presetStore
	sessions *sessionStore
	router   *chi.Mux
}

// New creates a server, loading the presets file when configured.
func New(cfg Config) (*Server, error) {
	cfg.defaults()

	presets, err := newPresetStore(cfg.PresetsFile)
	if err != nil {
		return nil, fmt.Errorf("load presets: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		logger:   cfg.Logger,
		presets:  presets,
		sessions: newSessionStore(cfg.SessionTTL, cfg.MaxSessions),
	}
	s.router = s.routes()

	return s, nil
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/presets", s.handlePresets)
		r.Post("/process", s.handleProcess)
		r.Post("/sessions", s.handleCreateSession)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Get("/sessions/{id}/render", s.handleRender)
		r.Delete("/sessions/{id}", s.handleDeleteSession)
	})

	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.cfg.PresetsFile != "" {
		w, err := newFileWatcher(s.cfg.PresetsFile, s.cfg.WatchDebounce, func() error {
			if err := s.presets.reload(); err != nil {
				return err
			}
			s.logger.Info("presets reloaded", "path", s.cfg.PresetsFile)
			return nil
		}, func(err error) {
			s.logger.Warn("presets watch", "path", s.cfg.PresetsFile, "error", err)
		})
		if err != nil {
			return fmt.Errorf("watch presets: %w", err)
		}
		w.Start()
		defer w.Stop()
	}

	go s.sweepLoop(ctx)
	defer s.sessions.closeAll()

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("http server stopping")

	return srv.Shutdown(shutdownCtx)
}

func (s *Server) sweepLoop(ctx context.Context) {
	interval := s.cfg.SessionTTL / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.sweep(); n > 0 {
				s.logger.Debug("sessions expired", "count", n)
			}
		}
	}
}
