package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	otelconf "go.opentelemetry.io/contrib/otelconf/v0.3.0"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/log/global"
)

const disabledEnv = "OTEL_SDK_DISABLED"

// SDK owns the OpenTelemetry providers built from a configuration file.
type SDK struct {
	sdk otelconf.SDK
}

// InitFromConfig builds the SDK described by the opentelemetry-configuration
// file at path and installs its providers globally.
// It returns a nil SDK and nil error when path is empty, the file does not
// exist, OTEL_SDK_DISABLED=true, or the file sets disabled: true.
func InitFromConfig(ctx context.Context, path string, log *slog.Logger) (*SDK, error) {
	log = log.With("method", "InitFromConfig", "path", path)

	if path == "" {
		log.DebugContext(ctx, "telemetry disabled, no config path")
		return nil, nil
	}
	if os.Getenv(disabledEnv) == "true" {
		log.DebugContext(ctx, "telemetry disabled by environment")
		return nil, nil
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.InfoContext(ctx, "telemetry config not found, telemetry disabled")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read otel config: %w", err)
	}

	cfg, err := otelconf.ParseYAML(b)
	if err != nil {
		return nil, fmt.Errorf("parse otel config: %w", err)
	}
	if cfg.Disabled != nil && *cfg.Disabled {
		log.DebugContext(ctx, "telemetry disabled by config")
		return nil, nil
	}

	sdk, err := otelconf.NewSDK(otelconf.WithOpenTelemetryConfiguration(*cfg))
	if err != nil {
		return nil, fmt.Errorf("create otel sdk: %w", err)
	}

	otel.SetTracerProvider(sdk.TracerProvider())
	otel.SetMeterProvider(sdk.MeterProvider())
	global.SetLoggerProvider(sdk.LoggerProvider())

	log.InfoContext(ctx, "telemetry initialized",
		"tracerProvider", fmt.Sprintf("%T", sdk.TracerProvider()),
		"meterProvider", fmt.Sprintf("%T", sdk.MeterProvider()),
	)

	return &SDK{sdk: sdk}, nil
}

// Shutdown flushes and stops the providers. It is safe on a nil SDK.
func (s *SDK) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.sdk.Shutdown(ctx)
}
