package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmarakulin/learn-logbook/internal/config"
	"github.com/dmarakulin/learn-logbook/internal/logger"
)

// shutdownTimeout bounds how long in-flight requests may run after a stop
// signal before the listener is torn down.
const shutdownTimeout = 10 * time.Second

// Server is the lifecycle contract for the transport server.
//
// RunServer blocks until shutdown is requested; Shutdown stops accepting new
// connections and drains in-flight requests.
type Server interface {
	RunServer()
	Shutdown()
}

type server struct {
	httpServer *http.Server
	logger     *logger.Logger

	stopOnce sync.Once
	stopped  chan struct{}
}

// NewServer builds an HTTP server around the given router using the network
// settings from cfg.
func NewServer(router http.Handler, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if cfg.HTTPAddress == "" {
		return nil, errNoListenAddress
	}

	return &server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddress,
			Handler:      router,
			ReadTimeout:  cfg.RequestTimeout,
			WriteTimeout: cfg.RequestTimeout,
		},
		logger:  logger,
		stopped: make(chan struct{}),
	}, nil
}

func (s *server) RunServer() {
	if err := s.run(); err != nil {
		s.logger.Error().Err(err).Msg("error running server")
	}
}

// Shutdown drains in-flight requests and stops the listener. Safe to call
// more than once; subsequent calls are no-ops.
func (s *server) Shutdown() {
	s.stopOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown")
		}

		close(s.stopped)
	})
}

func (s *server) run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// listen for stop signals
	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	s.logger.Info().Str("address", s.httpServer.Addr).Msg("launching HTTP server")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	// ListenAndServe returned because a shutdown started; wait for the
	// drain to finish.
	<-s.stopped
	s.logger.Info().Msg("server shut down gracefully")

	return nil
}
