package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/ofwire/internal/observability"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML config path")
		listen     = flag.String("listen", "", "listen address override")
		debug      = flag.Bool("debug", false, "enable per-message logging")
	)
	flag.Parse()

	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ofmock: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *listen != "" {
		cfg.ListenAddr = *listen
	}
	if *debug && cfg.Debug == 0 {
		cfg.Debug = 1
	}

	logger := observability.InitLogger("ofmock", cfg.Debug > 0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := newServer(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ofmock: %v\n", err)
		os.Exit(1)
	}
	if err := srv.run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ofmock: %v\n", err)
		os.Exit(1)
	}
}
