package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os/signal"
	"syscall"

	"github.com/ciricc/go-transcript-player/internal/app"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to config.yaml")
	flag.Parse()

	if err := run(*cfgPath); err != nil {
		log.Fatal(err)
	}
}

func run(cfgPath string) error {
	application, err := app.New(cfgPath)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer application.Close()

	lis, err := net.Listen("tcp", application.Config.Server.Address)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx, lis); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
