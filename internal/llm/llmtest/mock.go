// Package llmtest provides a scriptable llm.Provider for tests.
package llmtest

import (
	"context"
	"sync"
	"time"

	"github.com/ziadkadry99/flowgen/internal/llm"
)

// MockProvider records calls and returns canned responses.
type MockProvider struct {
	mu       sync.Mutex
	Calls    []llm.CompletionRequest
	Response *llm.CompletionResponse
	Err      error
	// Delay holds each call for the given duration or until the context ends.
	Delay    time.Duration
	ProvName string
}

// NewMockProvider returns a MockProvider that answers every call with content.
func NewMockProvider(content string) *MockProvider {
	return &MockProvider{
		ProvName: "mock",
		Response: &llm.CompletionResponse{
			Content:      content,
			InputTokens:  10,
			OutputTokens: 20,
			Model:        "mock-model",
			FinishReason: "stop",
		},
	}
}

func (m *MockProvider) Name() string {
	return m.ProvName
}

func (m *MockProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	delay, resp, err := m.Delay, m.Response, m.Err
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	if err != nil {
		return nil, err
	}
	out := *resp
	return &out, nil
}

// CallCount returns the number of Complete calls so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent request. It panics if there were none.
func (m *MockProvider) LastCall() llm.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[len(m.Calls)-1]
}

// SetContent replaces the canned response text.
func (m *MockProvider) SetContent(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	resp := *m.Response
	resp.Content = content
	m.Response = &resp
}

// SetErr makes subsequent calls fail with err.
func (m *MockProvider) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}
