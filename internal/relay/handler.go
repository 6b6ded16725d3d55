package relay

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"nutrisnap/internal/httpserver"
	"nutrisnap/internal/llm"
	"nutrisnap/internal/middleware"
)

const (
	maxBodyBytes = 1 << 20

	// UnavailableMessage единственный текст ошибки, который видит клиент при сбое провайдера.
	UnavailableMessage = "service temporarily unavailable"
)

// Replier то, что нужно обработчику от Service.
type Replier interface {
	Reply(ctx context.Context, history []llm.Message) (string, error)
}

type chatRequest struct {
	History []llm.Message `json:"history"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Handler обслуживает POST /api/chat.
type Handler struct {
	service Replier
	logger  *slog.Logger
}

func NewHandler(service Replier, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpserver.WriteJSONError(w, http.StatusBadRequest, "cannot parse request body")
		return
	}

	h.logger.Info("chat request received",
		slog.Int("history", len(req.History)),
		slog.String("request_id", r.Header.Get(middleware.HeaderRequestID)))

	reply, err := h.service.Reply(r.Context(), req.History)
	switch {
	case err == nil:
		httpserver.WriteJSON(w, http.StatusOK, chatResponse{Reply: reply})
	case errors.Is(err, ErrEmptyHistory), errors.Is(err, ErrInvalidRole):
		httpserver.WriteJSONError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("provider call failed",
			append(classify(err), slog.String("error", err.Error()))...)
		httpserver.WriteJSONError(w, http.StatusServiceUnavailable, UnavailableMessage)
	}
}

// classify раскладывает причину сбоя на атрибуты лога; клиенту она не уходит.
func classify(err error) []any {
	var se *llm.StatusError
	switch {
	case errors.As(err, &se):
		kind := "provider_error"
		switch {
		case se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden:
			kind = "auth"
		case se.StatusCode == http.StatusTooManyRequests:
			kind = "rate_limited"
		case se.StatusCode >= 500:
			kind = "provider_unavailable"
		}
		return []any{slog.String("kind", kind), slog.Int("upstream_status", se.StatusCode)}
	case errors.Is(err, context.DeadlineExceeded):
		return []any{slog.String("kind", "timeout")}
	case errors.Is(err, context.Canceled):
		return []any{slog.String("kind", "canceled")}
	case errors.Is(err, llm.ErrEmptyCompletion):
		return []any{slog.String("kind", "empty_completion")}
	default:
		return []any{slog.String("kind", "network_or_decode")}
	}
}
