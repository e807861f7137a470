package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sumcheck/sumcheck/internal/config"
	"github.com/sumcheck/sumcheck/internal/store"
)

type Server struct {
	cfg   *config.Config
	http  *http.Server
	store store.SolveStore // closed on shutdown
}

// New builds the service graph and HTTP server. ctx bounds startup work such
// as connecting to Postgres.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	s := &Server{cfg: cfg}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	s.store = st

	s.http = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.setupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: time.Duration(cfg.AgentTimeout+30) * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.http.Addr).Msg("listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("graceful shutdown initiated")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := s.http.Shutdown(shutdownCtx)
		s.closeStore()
		return err
	case err := <-errCh:
		s.closeStore()
		return err
	}
}

func (s *Server) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		log.Warn().Err(err).Msg("error closing solve store")
	} else {
		log.Info().Msg("solve store closed")
	}
}

// openStore uses Postgres when a database URL is configured and falls back to
// the in-memory ring otherwise.
func openStore(ctx context.Context, cfg *config.Config) (store.SolveStore, error) {
	if cfg.DatabaseURL == "" {
		log.Warn().Int("capacity", cfg.MemoryStoreSize).Msg("DATABASE_URL not set - solve records kept in memory")
		return store.NewMemoryStore(cfg.MemoryStoreSize), nil
	}
	connCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	return store.NewPostgresStore(connCtx, cfg.DatabaseURL)
}
