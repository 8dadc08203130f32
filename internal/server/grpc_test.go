package server

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/ciricc/go-transcript-player/internal/engine"
	"github.com/ciricc/go-transcript-player/internal/health"
	"github.com/ciricc/go-transcript-player/internal/model/word"
	"github.com/ciricc/go-transcript-player/internal/monitor"
	"github.com/ciricc/go-transcript-player/internal/notify"
	"github.com/ciricc/go-transcript-player/internal/playback"
	playerv1 "github.com/ciricc/go-transcript-player/pkg/proto/player/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type testEnv struct {
	client playerv1.PlayerClient
	health grpc_health_v1.HealthClient
	engine *engine.Engine
	clock  *playback.ManualClock
	hub    *notify.Hub
}

func newTestEnv(t *testing.T, maxStreams int64, limiter *rate.Limiter) *testEnv {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := notify.NewHub(8)
	clock := playback.NewManualClock()
	eng := engine.New([]word.Word{
		{Text: "the", Start: 0, Duration: 500 * time.Millisecond},
		{Text: "fox", Start: 500 * time.Millisecond, Duration: 500 * time.Millisecond},
	}, engine.WithClock(clock), engine.WithSink(hub), engine.WithLogger(log))

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		LoggingUnaryInterceptor(log),
		RateLimitUnaryInterceptor(limiter),
	))
	loadMonitor := monitor.NewSemaphoreLoadMonitor(maxStreams, 1)
	playerv1.RegisterPlayerServer(srv, NewPlayerServer(log, eng, hub, loadMonitor))
	healthChecker := health.NewHealthChecker(loadMonitor)
	healthChecker.SetServingStatus(playerv1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(srv, healthChecker)
	go func() { _ = srv.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		srv.Stop()
		_ = eng.Close()
	})

	return &testEnv{
		client: playerv1.NewPlayerClient(conn),
		health: grpc_health_v1.NewHealthClient(conn),
		engine: eng,
		clock:  clock,
		hub:    hub,
	}
}

func testCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestPlayerServer_TransportCommands(t *testing.T) {
	env := newTestEnv(t, 4, nil)
	ctx := testCtx(t)

	_, err := env.client.Play(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	env.clock.Advance(600 * time.Millisecond)

	state, err := env.client.GetState(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "playing", state.Fields["mode"].GetStringValue())
	assert.Equal(t, 600.0, state.Fields["current_time_ms"].GetNumberValue())
	assert.Equal(t, 1.0, state.Fields["highlight_index"].GetNumberValue())
	assert.Equal(t, "0:01", state.Fields["total_duration"].GetStringValue())

	_, err = env.client.SeekBegin(ctx, durationpb.New(200*time.Millisecond))
	require.NoError(t, err)
	_, err = env.client.SeekUpdate(ctx, durationpb.New(5*time.Second))
	require.NoError(t, err)
	_, err = env.client.SeekEnd(ctx, &emptypb.Empty{})
	require.NoError(t, err)

	s := env.engine.Snapshot()
	assert.Equal(t, playback.ModePlaying, s.Mode)
	assert.Equal(t, time.Second, s.CurrentTime)

	_, err = env.client.Stop(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	state, err = env.client.GetState(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "stopped", state.Fields["mode"].GetStringValue())
	assert.Equal(t, 0.0, state.Fields["current_time_ms"].GetNumberValue())
	assert.False(t, state.Fields["finished"].GetBoolValue())
}

func TestPlayerServer_EditCommands(t *testing.T) {
	env := newTestEnv(t, 4, nil)
	ctx := testCtx(t)

	notifications, err := env.client.Notifications(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return env.hub.Len() == 1
	}, time.Second, time.Millisecond)

	_, err = env.client.BeginEdit(ctx, wrapperspb.Int32(1))
	require.NoError(t, err)

	accepted, err := env.client.ChangeText(ctx, wrapperspb.String("a b"))
	require.NoError(t, err)
	assert.False(t, accepted.GetValue())

	ev, err := notifications.Recv()
	require.NoError(t, err)
	assert.Equal(t, "ContainsWhitespace", ev.Fields["kind"].GetStringValue())
	assert.Equal(t, 1.0, ev.Fields["index"].GetNumberValue())

	accepted, err = env.client.ChangeText(ctx, wrapperspb.String("cat"))
	require.NoError(t, err)
	assert.True(t, accepted.GetValue())

	text, err := env.client.DisplayText(ctx, wrapperspb.Int32(1))
	require.NoError(t, err)
	assert.Equal(t, "cat", text.GetValue())

	_, err = env.client.CommitEdit(ctx, &emptypb.Empty{})
	require.NoError(t, err)

	words, err := env.client.GetWords(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	require.Len(t, words.GetValues(), 2)
	second := words.GetValues()[1].GetStructValue()
	assert.Equal(t, "cat", second.Fields["word"].GetStringValue())
	assert.Equal(t, 500.0, second.Fields["start_time"].GetNumberValue())
}

func TestPlayerServer_ErrorCodes(t *testing.T) {
	env := newTestEnv(t, 4, nil)
	ctx := testCtx(t)

	_, err := env.client.BeginEdit(ctx, wrapperspb.Int32(7))
	assert.Equal(t, codes.OutOfRange, status.Code(err))

	_, err = env.client.DisplayText(ctx, wrapperspb.Int32(-1))
	assert.Equal(t, codes.OutOfRange, status.Code(err))

	_, err = env.client.ChangeText(ctx, wrapperspb.String("fox"))
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestPlayerServer_Watch(t *testing.T) {
	env := newTestEnv(t, 4, nil)
	ctx := testCtx(t)

	stream, err := env.client.Watch(ctx, &emptypb.Empty{})
	require.NoError(t, err)

	first, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, "stopped", first.Fields["mode"].GetStringValue())

	_, err = env.client.Play(ctx, &emptypb.Empty{})
	require.NoError(t, err)

	next, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, "playing", next.Fields["mode"].GetStringValue())
}

func TestPlayerServer_StreamLimit(t *testing.T) {
	env := newTestEnv(t, 1, nil)
	ctx := testCtx(t)

	first, err := env.client.Watch(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	_, err = first.Recv()
	require.NoError(t, err)

	second, err := env.client.Watch(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	_, err = second.Recv()
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
}

func TestPlayerServer_RateLimit(t *testing.T) {
	env := newTestEnv(t, 4, rate.NewLimiter(rate.Every(time.Hour), 2))
	ctx := testCtx(t)

	_, err := env.client.Play(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	_, err = env.client.Pause(ctx, &emptypb.Empty{})
	require.NoError(t, err)

	_, err = env.client.Play(ctx, &emptypb.Empty{})
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
}

func TestPlayerServer_RateLimitSkipsHealth(t *testing.T) {
	env := newTestEnv(t, 4, rate.NewLimiter(rate.Every(time.Hour), 2))
	ctx := testCtx(t)

	for range 5 {
		_, _ = env.client.GetState(ctx, &emptypb.Empty{})
	}
	_, err := env.client.GetState(ctx, &emptypb.Empty{})
	require.Equal(t, codes.ResourceExhausted, status.Code(err))

	resp, err := env.health.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: playerv1.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestNewCommandLimiter(t *testing.T) {
	assert.Nil(t, NewCommandLimiter(0))

	l := NewCommandLimiter(3)
	require.NotNil(t, l)
	assert.Equal(t, 3, l.Burst())
}
