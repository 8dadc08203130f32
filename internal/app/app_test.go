package app

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ciricc/go-transcript-player/internal/config"
	playerv1 "github.com/ciricc/go-transcript-player/pkg/proto/player/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/types/known/emptypb"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "transcript.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"word": "hello", "start_time": 0, "duration": 400},
		{"word": "there", "start_time": 400, "duration": 400}
	]`), 0o644))

	cfg := config.Default()
	cfg.Transcript.Path = path
	cfg.Log.Level = "error"
	return cfg
}

func TestNewFromConfig_MissingTranscript(t *testing.T) {
	cfg := config.Default()
	cfg.Transcript.Path = filepath.Join(t.TempDir(), "missing.json")

	_, err := NewFromConfig(cfg)
	assert.Error(t, err)
}

func TestNewFromConfig_TelemetryMissingFile(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "")
	cfg := testConfig(t)
	cfg.Telemetry.ConfigPath = filepath.Join(t.TempDir(), "otel.yaml")

	application, err := NewFromConfig(cfg)
	require.NoError(t, err)
	assert.Nil(t, application.telemetry)
	assert.NoError(t, application.Close())
}

func TestNewFromConfig_TelemetryMalformed(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "")
	cfg := testConfig(t)
	cfg.Telemetry.ConfigPath = filepath.Join(t.TempDir(), "otel.yaml")
	require.NoError(t, os.WriteFile(cfg.Telemetry.ConfigPath, []byte("file_format: [unclosed\n"), 0o644))

	_, err := NewFromConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telemetry")
}

func TestApplication_Run(t *testing.T) {
	application, err := NewFromConfig(testConfig(t))
	require.NoError(t, err)
	defer application.Close()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Run(ctx, lis) }()

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	callCtx, callCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer callCancel()

	words, err := playerv1.NewPlayerClient(conn).GetWords(callCtx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Len(t, words.GetValues(), 2)

	hc, err := grpc_health_v1.NewHealthClient(conn).Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: playerv1.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, hc.GetStatus())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
