// Package grpc runs the gRPC side of the service: the standard health
// check (grpc.health.v1.Health) backed by the same probe as HTTP /health.
//
// Features:
//   - Panic-recovery interceptor (returns INTERNAL status instead of killing goroutine)
//   - Request logging interceptor (method, duration, status code)
//   - Prometheus metrics interceptor (pizza_grpc_requests_total, pizza_grpc_request_duration_seconds)
//   - Graceful shutdown via Stop()
//
// Usage in server bootstrap:
//
//	srv, err := grpc.Start(cfg.GRPCPort, k.Health)
//	// ...run until signal...
//	srv.Stop()
package grpc

import (
	"context"
	"fmt"
	"net"
	"runtime/debug"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/shashiranjanraj/pizza-delivery-api/pkg/logger"
	"github.com/shashiranjanraj/pizza-delivery-api/pkg/metrics"
)

// HealthCheck reports whether the service can serve traffic.
type HealthCheck func(ctx context.Context) error

// ─── Interceptors ─────────────────────────────────────────────────────────────

// recoveryInterceptor catches panics in gRPC handlers and returns a gRPC
// INTERNAL error instead of crashing the process.
func recoveryInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (resp interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("grpc: panic recovered",
				"method", info.FullMethod,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			err = status.Errorf(codes.Internal, "internal server error")
		}
	}()
	return handler(ctx, req)
}

// observeInterceptor logs each unary RPC and records it in pkg/metrics.
func observeInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	dur := time.Since(start)

	code := status.Code(err)

	metrics.GRPCRequests.WithLabelValues(info.FullMethod, code.String()).Inc()
	metrics.GRPCDuration.WithLabelValues(info.FullMethod).Observe(dur.Seconds())

	logger.Info("grpc: request",
		"method", info.FullMethod,
		"duration_ms", dur.Milliseconds(),
		"code", code.String(),
	)
	return resp, err
}

// ─── Health service ───────────────────────────────────────────────────────────

// healthServer implements grpc_health_v1.HealthServer over a HealthCheck.
type healthServer struct {
	grpc_health_v1.UnimplementedHealthServer
	check HealthCheck
}

func (h *healthServer) status(ctx context.Context) grpc_health_v1.HealthCheckResponse_ServingStatus {
	if h.check == nil {
		return grpc_health_v1.HealthCheckResponse_SERVING
	}
	if err := h.check(ctx); err != nil {
		logger.Warn("grpc: health check failed", "error", err)
		return grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	return grpc_health_v1.HealthCheckResponse_SERVING
}

func (h *healthServer) Check(
	ctx context.Context,
	_ *grpc_health_v1.HealthCheckRequest,
) (*grpc_health_v1.HealthCheckResponse, error) {
	return &grpc_health_v1.HealthCheckResponse{Status: h.status(ctx)}, nil
}

func (h *healthServer) Watch(
	_ *grpc_health_v1.HealthCheckRequest,
	stream grpc_health_v1.Health_WatchServer,
) error {
	return stream.Send(&grpc_health_v1.HealthCheckResponse{Status: h.status(stream.Context())})
}

// ─── Public API ───────────────────────────────────────────────────────────────

// Server is a running gRPC server.
type Server struct {
	srv *grpc.Server
	lis net.Listener
}

// NewServer builds a gRPC server with the interceptor chain and the health
// service registered.
func NewServer(check HealthCheck) *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(recoveryInterceptor, observeInterceptor),
		grpc.MaxRecvMsgSize(4*1024*1024), // 4 MB
		grpc.MaxSendMsgSize(4*1024*1024), // 4 MB
	)

	grpc_health_v1.RegisterHealthServer(srv, &healthServer{check: check})

	// Enable server reflection so tools like grpcurl work without proto files.
	reflection.Register(srv)
	return srv
}

// Start listens on port ("0" picks a free one) and serves in the background.
func Start(port string, check HealthCheck) (*Server, error) {
	addr := ":" + port

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("grpc: listen on %s: %w", addr, err)
	}

	srv := NewServer(check)
	logger.Info("gRPC server starting", "addr", lis.Addr().String())

	go func() {
		if err := srv.Serve(lis); err != nil {
			logger.Error("grpc: serve error", "error", err)
		}
	}()

	return &Server{srv: srv, lis: lis}, nil
}

// Addr returns the bound address.
func (s *Server) Addr() net.Addr { return s.lis.Addr() }

// Stop gracefully shuts down the gRPC server, waiting for in-flight RPCs to
// complete.
func (s *Server) Stop() {
	if s == nil || s.srv == nil {
		return
	}
	logger.Info("gRPC server shutting down")
	s.srv.GracefulStop()
}
