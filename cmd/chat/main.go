package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"nutrisnap/internal/chat"
	"nutrisnap/internal/config"
	"nutrisnap/internal/history"
	"nutrisnap/internal/logging"
	"nutrisnap/internal/transport"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// stdout занят диалогом, логи уходят в stderr.
	logger := logging.New(cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg.History)
	if err != nil {
		log.Fatalf("failed to init history store: %v", err)
	}
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}

	manager := history.NewManager(store, logger)
	if err := manager.Load(ctx); err != nil {
		logger.Warn("starting with empty history", slog.String("error", err.Error()))
	}

	relayClient := chat.NewRelayClient(cfg.RelayURL, transport.NewHTTPClient(cfg.RequestTimeout))
	session := chat.NewSession(manager, relayClient, logger)

	// Закрытие stdin прерывает ожидание ввода после Ctrl-C.
	go func() {
		<-ctx.Done()
		os.Stdin.Close()
	}()

	console := chat.NewConsole(session, manager, os.Stdin, os.Stdout)
	if err := console.Run(ctx); err != nil {
		logger.Error("console stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg config.HistoryConfig) (history.Store, error) {
	switch cfg.Store {
	case "memory":
		return history.NewMemoryStore(), nil
	case "redis":
		return history.NewRedisStore(ctx, cfg.RedisURL, cfg.Key)
	case "sqlite":
		return history.NewSQLiteStore(cfg.SQLitePath, cfg.Key)
	default:
		return history.NewFileStore(cfg.Path)
	}
}
