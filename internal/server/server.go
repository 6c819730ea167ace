// Package server serves a generated site with per-session toggle state.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/docview/internal/view"
)

// Config holds server configuration.
type Config struct {
	Port        int
	SiteDir     string        // directory containing the generated site
	AllowAll    bool          // allow all CORS origins (dev mode)
	SessionIdle time.Duration // sessions unused for longer are dropped
	Watch       bool          // invalidate views when site files change
}

// Server is the documentation server.
type Server struct {
	cfg        Config
	views      *view.Registry
	router     chi.Router
	httpServer *http.Server
}

// New creates a server answering from views.
func New(cfg Config, views *view.Registry) *Server {
	if cfg.SessionIdle <= 0 {
		cfg.SessionIdle = 30 * time.Minute
	}
	s := &Server{cfg: cfg, views: views}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// The WebSocket outlives any request timeout, so it is routed apart.
	r.Get("/api/view/*", s.handleViewGet)
	r.With(middleware.Timeout(30*time.Second)).Post("/api/view/*", s.handleCommand)

	static := http.FileServer(http.Dir(s.cfg.SiteDir))
	r.Get("/*", s.handlePage(static))

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully. It also
// prunes idle sessions and, if configured, watches the site directory.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.pruneLoop(ctx)
	if s.cfg.Watch {
		w, err := NewWatcher(s.cfg.SiteDir, s.views)
		if err != nil {
			log.Printf("docview: site watcher disabled: %v", err)
		} else {
			go w.Run(ctx)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("docview server listening on %s (site=%s)", addr, s.cfg.SiteDir)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		log.Printf("docview server shutting down")
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) pruneLoop(ctx context.Context) {
	interval := s.cfg.SessionIdle / 2
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
			if n := s.views.Prune(s.cfg.SessionIdle); n > 0 {
				log.Printf("docview: dropped %d idle sessions, %d active", n, s.views.Sessions())
			}
		}
	}
}
