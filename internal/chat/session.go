package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"nutrisnap/internal/history"
)

// ConnectivityNotice текст, который добавляется вместо ответа, если релей недоступен.
const ConnectivityNotice = "I'm having trouble connecting. Is the backend live?"

var (
	ErrEmptyInput = errors.New("message is empty")
	ErrBusy       = errors.New("a reply is already being generated")
)

// Session реализует отправку сообщения: оптимистичное добавление реплики
// пользователя, вызов релея и добавление ответа.
// Одновременно в полёте не больше одного запроса к релею.
type Session struct {
	history *history.Manager
	relay   Relay
	logger  *slog.Logger
	busy    atomic.Bool
}

func NewSession(h *history.Manager, relay Relay, logger *slog.Logger) *Session {
	return &Session{history: h, relay: relay, logger: logger}
}

// Busy сообщает, ждёт ли сессия ответа релея.
func (s *Session) Busy() bool {
	return s.busy.Load()
}

// Send отправляет text и возвращает добавленную реплику ассистента.
// Сбой релея не считается ошибкой: в историю добавляется синтетическая реплика
// ConnectivityNotice. Ошибки возвращаются только если отправка не состоялась
// (ErrEmptyInput, ErrBusy), и тогда история не меняется.
func (s *Session) Send(ctx context.Context, text string) (history.Message, error) {
	if strings.TrimSpace(text) == "" {
		return history.Message{}, ErrEmptyInput
	}
	if !s.busy.CompareAndSwap(false, true) {
		return history.Message{}, ErrBusy
	}
	defer s.busy.Store(false)

	requestID := uuid.NewString()

	s.history.Append(ctx, history.UserMessage(text))
	turns := Outbound(s.history.Messages())

	start := time.Now()
	reply, err := s.relay.Reply(ctx, turns)
	if err != nil {
		s.logger.Error("relay call failed",
			slog.String("request_id", requestID),
			slog.Int("turns", len(turns)),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()))

		notice := history.NoticeMessage(ConnectivityNotice)
		s.history.Append(ctx, notice)
		return notice, nil
	}

	s.logger.Debug("relay replied",
		slog.String("request_id", requestID),
		slog.Int("turns", len(turns)),
		slog.Duration("duration", time.Since(start)))

	msg := history.AssistantMessage(reply)
	s.history.Append(ctx, msg)
	return msg, nil
}

// Outbound переводит историю в формат релея.
// Синтетические реплики пропускаются, чтобы не отправлять их провайдеру как контекст.
func Outbound(messages []history.Message) []Turn {
	turns := make([]Turn, 0, len(messages))
	for _, msg := range messages {
		if msg.Synthetic {
			continue
		}
		role := "assistant"
		if msg.Role == history.RoleUser {
			role = "user"
		}
		turns = append(turns, Turn{Role: role, Content: msg.Text})
	}
	return turns
}
