package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nutrisnap/internal/transport"
)

func TestRelayClient_Reply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chat" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			History []Turn `json:"history"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode: %v", err)
		}
		if len(body.History) != 1 || body.History[0].Content != "What are good protein sources?" {
			t.Errorf("unexpected history %+v", body.History)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"reply":"Eggs."}`))
	}))
	defer srv.Close()

	client := NewRelayClient(srv.URL, transport.NewHTTPClient(5*time.Second))
	reply, err := client.Reply(context.Background(), []Turn{{Role: "user", Content: "What are good protein sources?"}})
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if reply != "Eggs." {
		t.Fatalf("unexpected reply %q", reply)
	}
}

func TestRelayClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"service temporarily unavailable"}`))
	}))
	defer srv.Close()

	client := NewRelayClient(srv.URL, http.DefaultClient)
	_, err := client.Reply(context.Background(), []Turn{{Role: "user", Content: "hi"}})

	var re *RelayError
	if !errors.As(err, &re) {
		t.Fatalf("expected RelayError, got %v", err)
	}
	if re.StatusCode != http.StatusServiceUnavailable || re.Message != "service temporarily unavailable" {
		t.Fatalf("unexpected error %+v", re)
	}
}

func TestRelayClient_EmptyReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewRelayClient(srv.URL, http.DefaultClient).Reply(context.Background(), nil)
	if !errors.Is(err, ErrEmptyReply) {
		t.Fatalf("expected ErrEmptyReply, got %v", err)
	}
}

func TestRelayClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := NewRelayClient(url, http.DefaultClient).Reply(context.Background(), nil); err == nil {
		t.Fatalf("expected network error")
	}
}
