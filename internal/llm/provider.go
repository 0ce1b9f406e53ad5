// Package llm provides the completion collaborator used by the report
// pipeline. Providers are passed in explicitly at construction time; there
// is no process-wide client.
package llm

import "context"

// Provider defines the interface for LLM completion providers. The report
// pipeline only needs single-prompt completion; conversation state is the
// caller's concern.
type Provider interface {
	// Generate sends a prompt for completion and returns the model's text.
	// The context bounds the call; providers apply their own timeout on top.
	Generate(ctx context.Context, prompt string) (string, error)

	// Model returns the model identifier the provider completes with.
	Model() string
}
