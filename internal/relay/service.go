package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"nutrisnap/internal/llm"
)

var (
	ErrEmptyHistory = errors.New("history is required")
	ErrInvalidRole  = errors.New("role must be user or assistant")
	ErrUpstream     = errors.New("provider request failed")
)

// Service превращает историю клиента в один запрос к провайдеру.
// Состояния между запросами не хранит.
type Service struct {
	client       llm.Client
	model        string
	systemPrompt string
	window       Window
	logger       *slog.Logger
}

type ServiceConfig struct {
	Client       llm.Client
	Model        string
	SystemPrompt string
	Window       Window
	Logger       *slog.Logger
}

func NewService(cfg ServiceConfig) *Service {
	prompt := cfg.SystemPrompt
	if prompt == "" {
		prompt = DefaultSystemPrompt
	}
	return &Service{
		client:       cfg.Client,
		model:        cfg.Model,
		systemPrompt: prompt,
		window:       cfg.Window,
		logger:       cfg.Logger,
	}
}

// Reply отправляет [system prompt] + history провайдеру и возвращает текст первого ответа.
// Ошибки валидации возвращаются как есть, любые ошибки провайдера оборачиваются в ErrUpstream.
func (s *Service) Reply(ctx context.Context, history []llm.Message) (string, error) {
	if len(history) == 0 {
		return "", ErrEmptyHistory
	}
	for i, msg := range history {
		if msg.Role != llm.RoleUser && msg.Role != llm.RoleAssistant {
			return "", fmt.Errorf("turn %d: %w", i, ErrInvalidRole)
		}
	}

	window := s.window.Apply(history)

	messages := make([]llm.Message, 0, len(window)+1)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: s.systemPrompt})
	messages = append(messages, window...)

	start := time.Now()
	reply, err := s.client.Complete(ctx, s.model, messages)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	if s.logger != nil {
		s.logger.Info("reply generated",
			slog.Int("history", len(history)),
			slog.Int("forwarded", len(window)),
			slog.Duration("duration", time.Since(start)))
	}
	return reply, nil
}
