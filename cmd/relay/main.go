package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nutrisnap/internal/config"
	"nutrisnap/internal/httpserver"
	"nutrisnap/internal/llm"
	"nutrisnap/internal/logging"
	"nutrisnap/internal/middleware"
	"nutrisnap/internal/relay"
	"nutrisnap/internal/transport"
)

func main() {
	cfg, err := config.LoadRelay()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, os.Stdout)

	if cfg.Provider.APIKey == "" {
		logger.Warn("LLM_API_KEY is empty, provider calls will be unauthenticated")
	}
	if !llm.IsKnownModel(cfg.Provider.Model) {
		logger.Warn("model is not in the known list", slog.String("model", cfg.Provider.Model))
	}

	httpClient := transport.NewHTTPClient(cfg.RequestTimeout)

	var llmClient llm.Client
	switch cfg.Provider.Kind {
	case config.ProviderLangChain:
		lc, err := llm.NewLangChainClient(cfg.Provider, httpClient)
		if err != nil {
			log.Fatalf("failed to init langchain provider: %v", err)
		}
		llmClient = lc
	default:
		llmClient = llm.NewOpenAIClient(cfg.Provider, httpClient, logger)
	}

	service := relay.NewService(relay.ServiceConfig{
		Client:       llmClient,
		Model:        cfg.Provider.Model,
		SystemPrompt: cfg.SystemPrompt,
		Window:       newWindow(cfg.Window, logger),
		Logger:       logger,
	})

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Logger:         logger,
		ChatHandler:    relay.NewHandler(service, logger),
		RateLimiter:    limiter,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:        cfg.HTTPAddr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// Ответ провайдера может идти дольше таймаута клиента к нему.
		WriteTimeout: cfg.RequestTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("relay starting",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("provider", cfg.Provider.Kind),
			slog.String("model", llm.GetModelName(cfg.Provider.Model)))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("relay stopped")
}

func newWindow(cfg config.WindowConfig, logger *slog.Logger) relay.Window {
	w := relay.Window{MaxTurns: cfg.MaxTurns, MaxTokens: cfg.MaxTokens}
	if cfg.MaxTokens == 0 {
		return w
	}

	counter, err := relay.NewTiktokenCounter(cfg.Encoding)
	if err != nil {
		logger.Warn("tokenizer unavailable, using approximate counter",
			slog.String("encoding", cfg.Encoding),
			slog.String("error", err.Error()))
		w.Counter = relay.ApproxCounter{}
		return w
	}
	w.Counter = counter
	return w
}
