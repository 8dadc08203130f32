package health

import (
	"context"
	"sync"
	"time"

	"github.com/ciricc/go-transcript-player/internal/monitor"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

const watchPollInterval = time.Second

// HealthChecker implements the gRPC health protocol. A service reported as
// SERVING is downgraded to NOT_SERVING while the stream load is too high.
type HealthChecker struct {
	grpc_health_v1.UnimplementedHealthServer
	mu          sync.RWMutex
	loadMonitor monitor.LoadMonitor
	statusMap   map[string]grpc_health_v1.HealthCheckResponse_ServingStatus
}

func NewHealthChecker(loadMonitor monitor.LoadMonitor) *HealthChecker {
	return &HealthChecker{
		loadMonitor: loadMonitor,
		statusMap:   make(map[string]grpc_health_v1.HealthCheckResponse_ServingStatus),
	}
}

func (h *HealthChecker) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	st, err := h.status(req.GetService())
	if err != nil {
		return nil, err
	}
	return &grpc_health_v1.HealthCheckResponse{Status: st}, nil
}

// Watch sends the current status and then every change, polling the load
// monitor until the stream ends.
func (h *HealthChecker) Watch(req *grpc_health_v1.HealthCheckRequest, stream grpc_health_v1.Health_WatchServer) error {
	service := req.GetService()

	last, err := h.status(service)
	if err != nil {
		return err
	}
	if err := stream.Send(&grpc_health_v1.HealthCheckResponse{Status: last}); err != nil {
		return err
	}

	ticker := time.NewTicker(watchPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stream.Context().Done():
			return stream.Context().Err()
		case <-ticker.C:
			cur, err := h.status(service)
			if err != nil {
				return err
			}
			if cur == last {
				continue
			}
			last = cur
			if err := stream.Send(&grpc_health_v1.HealthCheckResponse{Status: cur}); err != nil {
				return err
			}
		}
	}
}

func (h *HealthChecker) SetServingStatus(service string, st grpc_health_v1.HealthCheckResponse_ServingStatus) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statusMap[service] = st
}

func (h *HealthChecker) GetLoadMetrics() monitor.LoadMetrics {
	return h.loadMonitor.GetMetrics()
}

func (h *HealthChecker) status(service string) (grpc_health_v1.HealthCheckResponse_ServingStatus, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	st := grpc_health_v1.HealthCheckResponse_SERVING
	if service != "" {
		var ok bool
		st, ok = h.statusMap[service]
		if !ok {
			return grpc_health_v1.HealthCheckResponse_SERVICE_UNKNOWN, status.Error(codes.NotFound, "service not found")
		}
	}

	if st == grpc_health_v1.HealthCheckResponse_SERVING && !h.loadMonitor.IsHealthy() {
		st = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	return st, nil
}
