package translate

import (
	"context"
	"errors"
	"testing"

	"github.com/deusflow/newshub/internal/llm"
	"github.com/deusflow/newshub/internal/llm/llmtest"
)

func TestIsEnglish(t *testing.T) {
	tests := []struct {
		lang string
		want bool
	}{
		{"English", true},
		{"english", true},
		{" ENGLISH ", true},
		{"Spanish", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsEnglish(tt.lang); got != tt.want {
			t.Errorf("IsEnglish(%q) = %v, want %v", tt.lang, got, tt.want)
		}
	}
}

func TestTranslateReturnsModelOutput(t *testing.T) {
	stub := &llmtest.Stub{Respond: func(req llm.Request) (string, error) {
		return "  Hola mundo  ", nil
	}}

	got := New(stub).Translate(context.Background(), "Hello world", "Spanish")
	if got != "Hola mundo" {
		t.Errorf("expected trimmed translation, got %q", got)
	}

	reqs := stub.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	req := reqs[0]
	if req.System != "You are a professional translator. Translate the following text to Spanish." {
		t.Errorf("unexpected system prompt %q", req.System)
	}
	if req.MaxTokens != 250 || req.Temperature != 0.3 {
		t.Errorf("unexpected generation settings: %d tokens, %v temperature", req.MaxTokens, req.Temperature)
	}
	if len(req.User) != 1 || req.User[0] != "Hello world" {
		t.Errorf("unexpected user messages %v", req.User)
	}
}

func TestTranslateFailureReturnsOriginal(t *testing.T) {
	stub := &llmtest.Stub{Respond: func(req llm.Request) (string, error) {
		return "", errors.New("quota exceeded")
	}}

	if got := New(stub).Translate(context.Background(), "Hello world", "French"); got != "Hello world" {
		t.Errorf("expected original text on failure, got %q", got)
	}
}

func TestTranslateDisclaimerOnlyReturnsOriginal(t *testing.T) {
	stub := &llmtest.Stub{Respond: func(req llm.Request) (string, error) {
		return "Note: I cannot translate this.", nil
	}}

	if got := New(stub).Translate(context.Background(), "Hello world", "German"); got != "Hello world" {
		t.Errorf("expected original text, got %q", got)
	}
}

func TestTranslateBlankSkipsModel(t *testing.T) {
	stub := &llmtest.Stub{}
	if got := New(stub).Translate(context.Background(), "   ", "Hindi"); got != "   " {
		t.Errorf("expected blank text unchanged, got %q", got)
	}
	if stub.Calls() != 0 {
		t.Errorf("expected no model calls, got %d", stub.Calls())
	}
}
