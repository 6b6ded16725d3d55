package config

import (
	"testing"
	"time"
)

func TestLoadRelayDefaults(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_MODEL", "llama-3.3-70b-versatile")
	t.Setenv("HISTORY_MAX_TURNS", "")
	t.Setenv("HISTORY_MAX_TOKENS", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "*")

	cfg, err := LoadRelay()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Provider.APIKey != "gsk_test" {
		t.Fatalf("expected GROQ_API_KEY fallback, got %q", cfg.Provider.APIKey)
	}
	if cfg.Provider.Model != "llama-3.3-70b-versatile" {
		t.Fatalf("unexpected model %q", cfg.Provider.Model)
	}
	if cfg.Window.MaxTurns != 0 || cfg.Window.MaxTokens != 0 {
		t.Fatalf("window must be disabled by default: %+v", cfg.Window)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestLoadRelayAPIKeyFallback(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("GROQ_API_KEY", "gsk_fallback")

	t.Run("explicit key wins", func(t *testing.T) {
		t.Setenv("LLM_API_KEY", "explicit")
		cfg, err := LoadRelay()
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if cfg.Provider.APIKey != "explicit" {
			t.Fatalf("got %q", cfg.Provider.APIKey)
		}
	})
}

func TestLoadRelayRejectsUnknownProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "carrier-pigeon")
	if _, err := LoadRelay(); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestLoadRelayParsesWindow(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("HISTORY_MAX_TURNS", "20")
	t.Setenv("HISTORY_MAX_TOKENS", "4000")
	t.Setenv("HTTP_CLIENT_TIMEOUT", "5s")

	cfg, err := LoadRelay()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Window.MaxTurns != 20 || cfg.Window.MaxTokens != 4000 {
		t.Fatalf("unexpected window %+v", cfg.Window)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.RequestTimeout)
	}
}

func TestLoadClientDefaults(t *testing.T) {
	t.Setenv("RELAY_URL", "http://relay.local:5000/")
	t.Setenv("HTTP_CLIENT_TIMEOUT", "0s")
	t.Setenv("HISTORY_STORE", "FILE")

	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RelayURL != "http://relay.local:5000" {
		t.Fatalf("trailing slash must be trimmed, got %q", cfg.RelayURL)
	}
	if cfg.RequestTimeout != 0 {
		t.Fatalf("expected no timeout, got %v", cfg.RequestTimeout)
	}
	if cfg.History.Store != "file" {
		t.Fatalf("store kind must be lower-cased, got %q", cfg.History.Store)
	}
}

func TestParseIntDefault(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int
		wantErr bool
	}{
		{"empty uses default", "", 7, false},
		{"parses value", "42", 42, false},
		{"rejects garbage", "abc", 0, true},
		{"rejects negative", "-1", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseIntDefault(tc.value, 7)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if !tc.wantErr && got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" https://a.example , ,https://b.example")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("unexpected list %v", got)
	}
}
