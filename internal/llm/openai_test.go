package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type chatRequest struct {
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float32 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func chatServer(t *testing.T, status int, reply string, seen *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		if seen != nil {
			if err := json.NewDecoder(r.Body).Decode(seen); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(reply))
	}))
}

func TestOpenAICompleteSendsMessages(t *testing.T) {
	var seen chatRequest
	srv := chatServer(t, http.StatusOK,
		`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  Hola mundo \n"},"finish_reason":"stop"}]}`,
		&seen)
	defer srv.Close()

	c := NewOpenAI(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1", Timeout: 5 * time.Second})
	got, err := c.Complete(context.Background(), Request{
		System:      "You are a professional translator. Translate the following text to Spanish.",
		User:        []string{"Hello world"},
		MaxTokens:   250,
		Temperature: 0.3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hola mundo" {
		t.Errorf("expected trimmed reply, got %q", got)
	}

	if seen.Model != DefaultOpenAIModel {
		t.Errorf("expected default model %q, got %q", DefaultOpenAIModel, seen.Model)
	}
	if seen.MaxTokens != 250 {
		t.Errorf("expected max_tokens 250, got %d", seen.MaxTokens)
	}
	if len(seen.Messages) != 2 || seen.Messages[0].Role != "system" || seen.Messages[1].Role != "user" {
		t.Fatalf("unexpected messages: %+v", seen.Messages)
	}
	if seen.Messages[1].Content != "Hello world" {
		t.Errorf("unexpected user content %q", seen.Messages[1].Content)
	}
}

func TestOpenAIEmptyChoices(t *testing.T) {
	srv := chatServer(t, http.StatusOK, `{"choices":[]}`, nil)
	defer srv.Close()

	c := NewOpenAI(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	_, err := c.Complete(context.Background(), Request{User: []string{"x"}})
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestOpenAIAPIError(t *testing.T) {
	srv := chatServer(t, http.StatusTooManyRequests,
		`{"error":{"message":"quota exceeded","type":"insufficient_quota"}}`, nil)
	defer srv.Close()

	c := NewOpenAI(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	if _, err := c.Complete(context.Background(), Request{User: []string{"x"}}); err == nil {
		t.Error("expected error for 429 response")
	}
}

func TestWarmUpSendsTinyRequest(t *testing.T) {
	var seen chatRequest
	srv := chatServer(t, http.StatusOK,
		`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`, &seen)
	defer srv.Close()

	c := NewOpenAI(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	if err := WarmUp(context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen.MaxTokens != 5 {
		t.Errorf("expected 5 max tokens, got %d", seen.MaxTokens)
	}
	if len(seen.Messages) != 1 || seen.Messages[0].Content != "Warm-up request" {
		t.Errorf("unexpected warm-up messages: %+v", seen.Messages)
	}
}

func TestNewUnknownProvider(t *testing.T) {
	if _, err := New(context.Background(), Config{Provider: "parrot"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
