package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"webwatch_bot/internal/bot"
	"webwatch_bot/internal/config"
	"webwatch_bot/internal/detector"
	"webwatch_bot/internal/fetcher"
	"webwatch_bot/internal/monitor"
	"webwatch_bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	for _, p := range []string{cfg.ConfigPath, cfg.SnapshotsPath} {
		if dir := filepath.Dir(p); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				log.Error("create data directory", "path", dir, "error", err)
				os.Exit(1)
			}
		}
	}

	cfgStore, err := storage.LoadConfig(cfg.ConfigPath)
	if err != nil {
		log.Warn("load monitor config, using defaults", "path", cfg.ConfigPath, "error", err)
	}
	snapStore, err := storage.LoadSnapshots(cfg.SnapshotsPath)
	if err != nil {
		log.Warn("load snapshots, starting empty", "path", cfg.SnapshotsPath, "error", err)
	}

	b, err := bot.New(cfg.TelegramBotToken, cfg.ChatID, log)
	if err != nil {
		log.Error("create bot", "error", err)
		os.Exit(1)
	}
	if err := b.Probe(); err != nil {
		log.Warn("telegram credentials validation failed, messages may not be delivered", "error", err)
	}

	det := detector.New(fetcher.New(http.DefaultClient), snapStore, log)
	mon := monitor.New(cfgStore, det, b, b, cfg.ChatID, log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("starting webpage monitor")

	mon.Run(ctx)

	log.Info("webpage monitor stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
