package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/ciricc/go-transcript-player/internal/config"
	"github.com/ciricc/go-transcript-player/internal/engine"
	"github.com/ciricc/go-transcript-player/internal/health"
	"github.com/ciricc/go-transcript-player/internal/monitor"
	"github.com/ciricc/go-transcript-player/internal/notify"
	"github.com/ciricc/go-transcript-player/internal/server"
	"github.com/ciricc/go-transcript-player/internal/telemetry"
	"github.com/ciricc/go-transcript-player/internal/transcript"
	playerv1 "github.com/ciricc/go-transcript-player/pkg/proto/player/v1"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
)

const shutdownTimeout = 5 * time.Second

type Application struct {
	Config        config.Config
	Engine        *engine.Engine
	Server        *server.PlayerServer
	HealthChecker *health.HealthChecker
	log           *slog.Logger
	hub           *notify.Hub
	loadMonitor   monitor.LoadMonitor
	telemetry     *telemetry.SDK
}

// New loads the config file at path and builds the application from it.
func New(path string) (*Application, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewFromConfig(cfg)
}

func NewFromConfig(cfg config.Config) (*Application, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	words, err := transcript.LoadFile(cfg.Transcript.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}

	sdk, err := telemetry.InitFromConfig(context.Background(), cfg.Telemetry.ConfigPath, log)
	if err != nil {
		return nil, fmt.Errorf("failed to init telemetry: %w", err)
	}

	hub := notify.NewHub(16)

	eng := engine.New(words,
		engine.WithLogger(log),
		engine.WithTickInterval(cfg.Playback.TickInterval),
		engine.WithSink(notify.Multi{notify.NewLogSink(log), hub}),
	)

	loadMonitor := monitor.NewSemaphoreLoadMonitor(
		cfg.Server.MaxWatchers,
		cfg.Health.LoadThreshold,
	)

	var healthChecker *health.HealthChecker
	if cfg.Health.Enabled {
		healthChecker = health.NewHealthChecker(loadMonitor)
		healthChecker.SetServingStatus(
			playerv1.ServiceName,
			grpc_health_v1.HealthCheckResponse_SERVING,
		)
	}

	log.Info("transcript loaded",
		"path", cfg.Transcript.Path,
		"words", len(words),
	)

	return &Application{
		Config:        cfg,
		Engine:        eng,
		Server:        server.NewPlayerServer(log, eng, hub, loadMonitor),
		HealthChecker: healthChecker,
		log:           log,
		hub:           hub,
		loadMonitor:   loadMonitor,
		telemetry:     sdk,
	}, nil
}

// Run serves gRPC on lis until ctx is cancelled or serving fails.
func (a *Application) Run(ctx context.Context, lis net.Listener) error {
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			server.TracingUnaryInterceptor(otel.GetTracerProvider()),
			server.LoggingUnaryInterceptor(a.log),
			server.RateLimitUnaryInterceptor(server.NewCommandLimiter(a.Config.Server.CommandsPerSecond)),
		),
	)
	playerv1.RegisterPlayerServer(grpcServer, a.Server)
	if a.HealthChecker != nil {
		grpc_health_v1.RegisterHealthServer(grpcServer, a.HealthChecker)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.InfoContext(gctx, "listening", "address", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.log.InfoContext(gctx, "shutting down")

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()

		select {
		case <-stopped:
		case <-time.After(shutdownTimeout):
			// Watch streams only end with their clients.
			grpcServer.Stop()
		}
		return nil
	})

	return g.Wait()
}

// Close stops the engine clock and flushes telemetry.
func (a *Application) Close() error {
	var errs []error
	if a.Engine != nil {
		errs = append(errs, a.Engine.Close())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.telemetry.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("telemetry shutdown: %w", err))
	}
	return errors.Join(errs...)
}
