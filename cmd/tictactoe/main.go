package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ctchen222/tictactoe-engine/internal/config"
	"ctchen222/tictactoe-engine/internal/console"
	"ctchen222/tictactoe-engine/internal/hub"
	"ctchen222/tictactoe-engine/internal/logger"
	"ctchen222/tictactoe-engine/internal/session"
	"ctchen222/tictactoe-engine/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the YAML config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conf := config.MustLoad(*configPath)

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, conf.Telemetry, os.Stderr)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	logger.Init(os.Stderr, conf.LogLevel, conf.LogFormat)

	mode, err := session.ParseMode(conf.Mode)
	if err != nil {
		log.Fatalf("invalid mode: %v", err)
	}

	h := hub.NewHub(hub.SeededOpponents(conf.Seed))
	shell := console.New(h, os.Stdin, os.Stdout, console.Options{
		Dialect: console.Dialect(conf.Dialect),
		Mode:    mode,
		NoColor: conf.NoColor,
	})

	slog.InfoContext(ctx, "Starting game", "game.mode", mode, "console.dialect", conf.Dialect)
	if err := shell.Run(ctx); err != nil && ctx.Err() == nil {
		slog.ErrorContext(ctx, "Console stopped", "error", err)
		return
	}
	slog.InfoContext(ctx, "Exiting")
}
