package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"nutrisnap/internal/config"
)

// LangChainClient реализует Client поверх langchaingo.
type LangChainClient struct {
	model        llms.Model
	defaultModel string
}

func NewLangChainClient(cfg config.ProviderConfig, httpClient *http.Client) (*LangChainClient, error) {
	model, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithModel(cfg.Model),
		openai.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("init langchain openai: %w", err)
	}
	return &LangChainClient{model: model, defaultModel: cfg.Model}, nil
}

func (c *LangChainClient) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	if model == "" {
		model = c.defaultModel
	}
	if model == "" {
		return "", ErrInvalidModel
	}

	resp, err := c.model.GenerateContent(ctx, toMessageContent(messages), llms.WithModel(model))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Content, nil
}

func toMessageContent(messages []Message) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		out = append(out, llms.TextParts(chatMessageType(msg.Role), msg.Content))
	}
	return out
}

func chatMessageType(role string) schema.ChatMessageType {
	switch role {
	case RoleSystem:
		return schema.ChatMessageTypeSystem
	case RoleUser:
		return schema.ChatMessageTypeHuman
	default:
		return schema.ChatMessageTypeAI
	}
}
