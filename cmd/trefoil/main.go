// Package main is the entry point for the trefoil knot demo.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/trefoil/internal/config"
	"github.com/Faultbox/trefoil/internal/demo"
	"github.com/Faultbox/trefoil/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Trefoil ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	d, err := demo.New(cfg)
	if err != nil {
		logger.Error("failed to create demo", zap.Error(err))
		os.Exit(1)
	}
	defer d.Close()

	if err := d.Run(); err != nil {
		logger.Error("demo error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("demo closed normally")
}
