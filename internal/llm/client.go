package llm

import (
	"context"
	"errors"
	"fmt"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	ErrInvalidModel    = errors.New("model is required")
	ErrEmptyCompletion = errors.New("empty response from model")
)

// Message одно сообщение в формате chat completions.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client минимальный публичный интерфейс LLM провайдера.
// Один вызов — один запрос, без стриминга и без повторов.
type Client interface {
	Complete(ctx context.Context, model string, messages []Message) (string, error)
}

// StatusError ответ провайдера с не-2xx статусом.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}
