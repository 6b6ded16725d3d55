package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var ErrEmptyReply = errors.New("relay returned an empty reply")

// Turn реплика в формате запроса к релею.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Relay то, что Session нужно от бэкенда.
type Relay interface {
	Reply(ctx context.Context, history []Turn) (string, error)
}

// RelayError ответ релея с не-2xx статусом.
type RelayError struct {
	StatusCode int
	Message    string
}

func (e *RelayError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("relay status %d", e.StatusCode)
	}
	return fmt.Sprintf("relay status %d: %s", e.StatusCode, e.Message)
}

// RelayClient вызывает POST {baseURL}/api/chat.
type RelayClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRelayClient(baseURL string, httpClient *http.Client) *RelayClient {
	return &RelayClient{baseURL: baseURL, httpClient: httpClient}
}

func (c *RelayClient) Reply(ctx context.Context, history []Turn) (string, error) {
	buf, err := json.Marshal(struct {
		History []Turn `json:"history"`
	}{History: history})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var failure struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &failure)
		return "", &RelayError{StatusCode: resp.StatusCode, Message: failure.Error}
	}

	var parsed struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if parsed.Reply == "" {
		return "", ErrEmptyReply
	}
	return parsed.Reply, nil
}
