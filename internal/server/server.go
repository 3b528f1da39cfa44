// Package server owns the listen/serve/shutdown lifecycle for the HTTP API
// and the optional gRPC health endpoint.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/pizza-delivery-api/internal/kernel"
	pizzagrpc "github.com/shashiranjanraj/pizza-delivery-api/pkg/grpc"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// Server pairs the HTTP listener with the kernel it serves.
type Server struct {
	kernel *kernel.Kernel
	http   *http.Server
	grpc   *pizzagrpc.Server
}

// New builds a server for k. Nothing is bound until Serve.
func New(k *kernel.Kernel) *Server {
	return &Server{
		kernel: k,
		http: &http.Server{
			Addr:              ":" + k.Config.AppPort,
			Handler:           k.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lis, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve accepts HTTP connections on lis until ctx is cancelled. When
// GRPC_PORT is set the gRPC health server runs alongside it.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	if port := s.kernel.Config.GRPCPort; port != "" {
		g, err := pizzagrpc.Start(port, s.kernel.Health)
		if err != nil {
			_ = lis.Close()
			return err
		}
		s.grpc = g
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("pizza API listening", "addr", lis.Addr().String(), "env", s.kernel.Config.AppEnv)
		if err := s.http.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.grpc.Stop()
		if err != nil {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", shutdownTimeout.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.grpc.Stop()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return <-errCh
}
