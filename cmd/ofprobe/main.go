package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danmuck/ofwire/internal/observability"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML config path")
		target     = flag.String("target", "", "target address override")
		count      = flag.Int("count", 0, "echo round trip count override")
		debug      = flag.Bool("debug", false, "enable per-message logging")
	)
	flag.Parse()

	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ofprobe: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *target != "" {
		cfg.Target = *target
	}
	if *count > 0 {
		cfg.Count = *count
	}
	if *debug && cfg.Debug == 0 {
		cfg.Debug = 1
	}

	logger := observability.InitLogger("ofprobe", cfg.Debug > 0)

	if err := probe(cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "ofprobe: %v\n", err)
		os.Exit(1)
	}
}
