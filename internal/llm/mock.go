package llm

import (
	"context"
	"sync"
)

// MockProvider is a Provider implementation for tests. It records every
// prompt and returns a fixed response or error.
type MockProvider struct {
	mu       sync.Mutex
	Response string
	Err      error
	Prompts  []string
}

// NewMockProvider creates a mock returning the given response.
func NewMockProvider(response string) *MockProvider {
	return &MockProvider{Response: response}
}

// Generate records the prompt and returns the configured response or error.
func (m *MockProvider) Generate(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// Model returns a fixed identifier.
func (m *MockProvider) Model() string {
	return "mock"
}

// CallCount returns how many completions were requested.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

// LastPrompt returns the most recent prompt, or empty if none.
func (m *MockProvider) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Prompts) == 0 {
		return ""
	}
	return m.Prompts[len(m.Prompts)-1]
}
