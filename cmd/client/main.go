package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"TripKeeper/internal/bootstrap"
	"TripKeeper/internal/cli/commands"
	"TripKeeper/internal/config"

	"go.uber.org/zap"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show CLI version and exit")
	// Load unified config (env + flags)
	cfg := config.NewConfig()

	if *showVersion {
		printVersion()
		return
	}

	logger, err := bootstrap.NewLogger(cfg.Debug)
	if err != nil {
		panic(err)
	}
	if !cfg.Debug {
		// в CLI без отладки показываем только предупреждения и ошибки
		logger = logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel))
	}
	commands.Log = logger.Sugar()
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// dispatcher
	exitCode := commands.Dispatch(ctx, cfg, flag.Args())
	if exitCode == 0 {
		return
	}
	_ = logger.Sync()
	cancel()
	os.Exit(exitCode)
}

func printVersion() {
	fmt.Printf("TripKeeper CLI\nVersion: %s\nBuild date: %s\n", version, buildDate)
}
