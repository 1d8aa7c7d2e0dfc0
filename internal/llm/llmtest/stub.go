// Package llmtest provides an in-memory llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/deusflow/newshub/internal/llm"
)

// Stub answers every request through Respond and records what it was asked.
// A nil Respond echoes the last user message.
type Stub struct {
	Respond func(req llm.Request) (string, error)

	mu       sync.Mutex
	requests []llm.Request
}

func (s *Stub) Name() string { return "stub" }

func (s *Stub) Complete(ctx context.Context, req llm.Request) (string, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.Respond == nil {
		if len(req.User) == 0 {
			return "", llm.ErrEmptyResponse
		}
		return req.User[len(req.User)-1], nil
	}
	return s.Respond(req)
}

// Requests returns a copy of every request seen so far.
func (s *Stub) Requests() []llm.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]llm.Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Calls reports how many requests were made.
func (s *Stub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}
