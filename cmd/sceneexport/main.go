// Command sceneexport converts a Ragnarok Online map into a JSON scene
// document and, optionally, registers it in a MonoGame content manifest.
//
// Usage:
//
//	sceneexport [flags] <map>
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneexport/internal/config"
	"github.com/Faultbox/sceneexport/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	args := config.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: sceneexport [flags] <map>")
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg, afero.NewOsFs(), logger.Named("export"))
	if err != nil {
		logger.Error("failed to open data sources", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	m, res, err := a.exportMap(ctx, args[0])
	if err != nil {
		logger.Error("export failed", zap.String("map", args[0]), zap.Error(err))
		os.Exit(1)
	}
	fmt.Println(res.Path)

	if !cfg.Watch.Enabled {
		return
	}
	if err := a.watch(ctx, args[0], m); err != nil {
		logger.Error("watch failed", zap.Error(err))
		os.Exit(1)
	}
}
