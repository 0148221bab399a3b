package grpc

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the name reported to grpc.health.v1 clients in addition to
// the overall "" service.
const ServiceName = "decor_admin"

type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves grpc.health.v1 with a status that follows database
// liveness.
type HealthHandler struct {
	server   *health.Server
	db       Pinger
	interval time.Duration
	log      *logrus.Logger
}

func NewHealthHandler(db Pinger, interval time.Duration, logger *logrus.Logger) *HealthHandler {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &HealthHandler{
		server:   health.NewServer(),
		db:       db,
		interval: interval,
		log:      logger,
	}
}

// Register adds the health and reflection services to s.
func (h *HealthHandler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.server)
	reflection.Register(s)
}

// Check pings the database once and publishes the result.
func (h *HealthHandler) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, h.interval/2+time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := h.db.PingContext(ctx); err != nil {
		h.log.Warnf("gRPC Health: Database ping failed: %v", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.server.SetServingStatus("", status)
	h.server.SetServingStatus(ServiceName, status)
	return status
}

// Watch runs Check every interval until ctx is done, then marks the service
// as not serving.
func (h *HealthHandler) Watch(ctx context.Context) {
	h.Check(ctx)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.server.Shutdown()
			h.log.Info("gRPC Health: Watcher stopped")
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}
