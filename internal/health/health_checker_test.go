package health

import (
	"context"
	"testing"

	"github.com/ciricc/go-transcript-player/internal/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

func check(t *testing.T, h *HealthChecker, service string) grpc_health_v1.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := h.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHealthChecker_Check(t *testing.T) {
	m := monitor.NewSemaphoreLoadMonitor(2, 0.5)
	h := NewHealthChecker(m)
	h.SetServingStatus("player.v1.Player", grpc_health_v1.HealthCheckResponse_SERVING)

	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, check(t, h, ""))
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, check(t, h, "player.v1.Player"))

	require.True(t, m.TryAcquire())
	require.True(t, m.TryAcquire())

	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, check(t, h, ""))
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, check(t, h, "player.v1.Player"))
	assert.Equal(t, int64(2), h.GetLoadMetrics().ActiveStreams)
}

func TestHealthChecker_UnknownService(t *testing.T) {
	h := NewHealthChecker(monitor.NewSemaphoreLoadMonitor(1, 1))

	_, err := h.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: "nope"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestHealthChecker_ExplicitNotServing(t *testing.T) {
	h := NewHealthChecker(monitor.NewSemaphoreLoadMonitor(1, 1))
	h.SetServingStatus("svc", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, check(t, h, "svc"))
}
