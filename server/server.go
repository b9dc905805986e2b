// Package server provides an HTTP REST server that resolves player input
// against a verb table without running a game. It gives clients the same
// classification, suggestions, and error messages the terminal game shows.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tnwae/nuventure/internal/journal"
	"github.com/tnwae/nuventure/server/api"
	"github.com/tnwae/nuventure/server/middle"
	"github.com/tnwae/nuventure/server/nvs"
	"go.uber.org/zap"
)

// server:
//  - GET    /api/v1/info                  - version info and verb count.
//  - GET    /api/v1/verbs                 - the verb table, without cheats.
//  - POST   /api/v1/resolve               - resolve {"input": "..."} for a session.
//  - GET    /api/v1/sessions/{id}/journal - every line a session sent.
//  - GET    /metrics                      - prometheus metrics.

// Server is an HTTP REST server that resolves Nuventure input. The zero-value
// of a Server should not be used directly; call New() to get one ready for
// use.
type Server struct {
	router  chi.Router
	journal journal.Store
	listen  string
	log     *zap.Logger
}

// New creates a new Server from cfg. Unset values of cfg take their defaults.
func New(cfg Config) (*Server, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	table, err := nvs.LoadTable(cfg.VerbFile)
	if err != nil {
		return nil, fmt.Errorf("load verb table: %w", err)
	}

	srv := &Server{
		listen: cfg.Listen,
		log:    cfg.Logger,
	}

	if cfg.Journal.Enabled() {
		srv.journal, err = cfg.Journal.Connect()
		if err != nil {
			return nil, fmt.Errorf("connect journal: %w", err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc, err := nvs.New(nvs.Config{
		Table:    table,
		Tagger:   cfg.Tagger,
		Journal:  srv.journal,
		Registry: reg,
		Logger:   cfg.Logger,
	})
	if err != nil {
		srv.Close()
		return nil, err
	}

	srv.router = newRouter(api.API{Backend: svc, Log: cfg.Logger}, reg, cfg.CORSOrigins)

	return srv, nil
}

func newRouter(a api.API, reg *prometheus.Registry, origins []string) chi.Router {
	r := chi.NewRouter()
	r.Use(middle.CORS(origins))

	r.Route(api.PathPrefix, func(r chi.Router) {
		r.Use(middle.Session())

		r.Get("/info", a.HTTPGetInfo())
		r.Get("/verbs", a.HTTPGetAllVerbs())
		r.Post("/resolve", a.HTTPResolve())
		r.Get("/sessions/{id}/journal", a.HTTPGetJournal())
	})

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return r
}

// Handler returns the handler that serves every route of the server.
func (srv *Server) Handler() http.Handler {
	return srv.router
}

// ServeForever listens on the configured address and serves HTTP REST client
// requests until ctx is done, at which point it shuts down gracefully.
func (srv *Server) ServeForever(ctx context.Context) error {
	hs := &http.Server{
		Addr:              srv.listen,
		Handler:           srv.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		srv.log.Info("listening", zap.String("address", srv.listen))
		errCh <- hs.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	srv.log.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases the journal store, if one is open.
func (srv *Server) Close() error {
	if srv.journal == nil {
		return nil
	}
	return srv.journal.Close()
}
