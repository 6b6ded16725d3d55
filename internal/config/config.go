package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI    = "openai"
	ProviderLangChain = "langchain"
)

// RelayConfig настройки HTTP-релея.
type RelayConfig struct {
	HTTPAddr       string
	LogLevel       string
	RequestTimeout time.Duration
	SystemPrompt   string
	Provider       ProviderConfig
	Window         WindowConfig
	RateLimit      RateLimitConfig
	AllowedOrigins []string
}

// ProviderConfig описывает OpenAI-совместимого провайдера.
type ProviderConfig struct {
	Kind    string
	APIKey  string
	BaseURL string
	Model   string
}

// WindowConfig ограничивает историю перед отправкой провайдеру.
// Нулевые значения отключают ограничение.
type WindowConfig struct {
	MaxTurns  int
	MaxTokens int
	Encoding  string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// ClientConfig настройки терминального чат-клиента.
type ClientConfig struct {
	RelayURL       string
	LogLevel       string
	RequestTimeout time.Duration
	History        HistoryConfig
}

type HistoryConfig struct {
	Store      string
	Path       string
	Key        string
	RedisURL   string
	SQLitePath string
}

// LoadRelay читает конфигурацию релея из окружения (и .env, если он есть).
func LoadRelay() (RelayConfig, error) {
	_ = godotenv.Load()

	var cfg RelayConfig

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":5000")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.SystemPrompt = getEnv("SYSTEM_PROMPT", "")

	reqTimeout, err := parseDuration(getEnv("HTTP_CLIENT_TIMEOUT", "60s"))
	if err != nil {
		return RelayConfig{}, fmt.Errorf("parse HTTP_CLIENT_TIMEOUT: %w", err)
	}
	cfg.RequestTimeout = reqTimeout

	cfg.Provider = ProviderConfig{
		Kind:    strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI)),
		APIKey:  firstNonEmpty(getEnv("LLM_API_KEY", ""), getEnv("GROQ_API_KEY", "")),
		BaseURL: strings.TrimRight(getEnv("LLM_BASE_URL", "https://api.groq.com/openai/v1"), "/"),
		Model:   getEnv("LLM_MODEL", "llama-3.3-70b-versatile"),
	}
	switch cfg.Provider.Kind {
	case ProviderOpenAI, ProviderLangChain:
	default:
		return RelayConfig{}, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.Provider.Kind)
	}

	if cfg.Window.MaxTurns, err = parseIntDefault(getEnv("HISTORY_MAX_TURNS", ""), 0); err != nil {
		return RelayConfig{}, fmt.Errorf("parse HISTORY_MAX_TURNS: %w", err)
	}
	if cfg.Window.MaxTokens, err = parseIntDefault(getEnv("HISTORY_MAX_TOKENS", ""), 0); err != nil {
		return RelayConfig{}, fmt.Errorf("parse HISTORY_MAX_TOKENS: %w", err)
	}
	cfg.Window.Encoding = getEnv("TOKENIZER_ENCODING", "cl100k_base")

	if cfg.RateLimit.RPS, err = parseFloatDefault(getEnv("RATE_LIMIT_RPS", ""), 0); err != nil {
		return RelayConfig{}, fmt.Errorf("parse RATE_LIMIT_RPS: %w", err)
	}
	if cfg.RateLimit.Burst, err = parseIntDefault(getEnv("RATE_LIMIT_BURST", ""), 5); err != nil {
		return RelayConfig{}, fmt.Errorf("parse RATE_LIMIT_BURST: %w", err)
	}

	cfg.AllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "*"))

	return cfg, nil
}

// LoadClient читает конфигурацию чат-клиента.
func LoadClient() (ClientConfig, error) {
	_ = godotenv.Load()

	var cfg ClientConfig

	cfg.RelayURL = strings.TrimRight(getEnv("RELAY_URL", "http://localhost:5000"), "/")
	cfg.LogLevel = getEnv("LOG_LEVEL", "warn")

	// 0s — без таймаута, ожидаем ответа релея сколько потребуется.
	reqTimeout, err := parseDuration(getEnv("HTTP_CLIENT_TIMEOUT", "0s"))
	if err != nil {
		return ClientConfig{}, fmt.Errorf("parse HTTP_CLIENT_TIMEOUT: %w", err)
	}
	cfg.RequestTimeout = reqTimeout

	cfg.History = HistoryConfig{
		Store:      strings.ToLower(getEnv("HISTORY_STORE", "file")),
		Path:       getEnv("HISTORY_PATH", "data/nutrisnap_history.json"),
		Key:        getEnv("HISTORY_KEY", "@nutrisnap_history"),
		RedisURL:   getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SQLitePath: getEnv("SQLITE_PATH", "data/nutrisnap.db"),
	}

	return cfg, nil
}

func parseDuration(value string) (time.Duration, error) {
	if value == "" {
		return 0, fmt.Errorf("duration is empty")
	}
	return time.ParseDuration(value)
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseIntDefault(value string, def int) (int, error) {
	if value == "" {
		return def, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if parsed < 0 {
		return 0, fmt.Errorf("negative value %d", parsed)
	}
	return parsed, nil
}

func parseFloatDefault(value string, def float64) (float64, error) {
	if value == "" {
		return def, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if parsed < 0 {
		return 0, fmt.Errorf("negative value %v", parsed)
	}
	return parsed, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
