package health

import (
	"context"
	"time"

	"google.golang.org/grpc"

	healthgrpc "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// StatusFunc reports, per service name, whether the service can serve.
type StatusFunc func() map[string]bool

// Server wraps grpc health server
type Server struct {
	server *healthgrpc.Server
}

// NewServer creates health server using default grpc health server.
func NewServer() *Server {
	return &Server{
		server: healthgrpc.NewServer(),
	}
}

// InitService marks a service as SERVING.
func (h *Server) InitService(serviceName string) {
	h.server.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
}

// SetServing sets a service to SERVING or NOT_SERVING.
func (h *Server) SetServing(serviceName string, serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.server.SetServingStatus(serviceName, status)
}

// Sync applies statuses until ctx is done, refreshing every interval.
func (h *Server) Sync(ctx context.Context, interval time.Duration, statuses StatusFunc) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		for name, serving := range statuses() {
			h.SetServing(name, serving)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Shutdown sets all serving status to NOT_SERVING.
func (h *Server) Shutdown() {
	h.server.Shutdown()
}

// Register registers health server.
func (h *Server) Register(grpc *grpc.Server) {
	healthpb.RegisterHealthServer(grpc, h.server)
}
