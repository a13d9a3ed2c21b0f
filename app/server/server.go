// Package server exposes the evaluator over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"

	"tcalc/app/config"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP API process.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	http   *http.Server
}

// New builds a server from cfg. A nil logger discards output.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := NewHandler(cfg.Evaluator(), cfg.Server.MaxExpressionLength)
	return &Server{
		cfg:    cfg,
		logger: logger,
		http: &http.Server{
			Addr:              cfg.Server.Address(),
			Handler:           NewRouter(h, cfg.Server, logger),
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run listens on the configured address and serves until ctx is cancelled
// or the process receives SIGINT/SIGTERM.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln, which it takes ownership of.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if n := s.cfg.Server.MaxConnections; n > 0 {
		ln = netutil.LimitListener(ln, n)
	}

	s.logger.Info("Configuration loaded",
		slog.String("http_address", ln.Addr().String()),
		slog.String("log_level", s.cfg.App.LogLevel.String()),
		slog.Duration("request_timeout", s.cfg.Server.RequestTimeout),
		slog.Bool("fixed_clock", s.cfg.Clock.Fixed != ""))

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Starting HTTP server", slog.String("address", ln.Addr().String()))
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			s.logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			s.logger.Info("Context cancelled, initiating shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Server error", slog.String("error", err.Error()))
		return err
	}

	s.logger.Info("Server stopped successfully")
	return nil
}
