package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ciricc/go-transcript-player/internal/config"
	playerv1 "github.com/ciricc/go-transcript-player/pkg/proto/player/v1"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

var (
	verbose bool
	quiet   bool
	cfgPath string
	addr    string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "playerctl",
	Short: "Control a transcript player server",
	Long: `playerctl drives a running transcript player over gRPC: transport
commands (play, pause, stop, seek), word edits, and live state streams.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config.yaml for the server address")
	rootCmd.PersistentFlags().StringVar(&addr, "addr", "localhost:50051", "server address, overrides --config")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "timeout for unary calls")
}

func resolveAddr() (string, error) {
	if cfgPath == "" || rootCmd.PersistentFlags().Changed("addr") {
		return addr, nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	a := cfg.Server.Address
	if strings.HasPrefix(a, ":") {
		a = "localhost" + a
	}
	return a, nil
}

// withClient dials the server and runs fn with a client.
func withClient(fn func(client playerv1.PlayerClient) error) error {
	target, err := resolveAddr()
	if err != nil {
		return err
	}

	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("new client: %w", err)
	}
	defer conn.Close()

	slog.Debug("connected", "addr", target)
	return fn(playerv1.NewPlayerClient(conn))
}

func unaryContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}
