// Package tools implements the callable tools exposed to the LLM agent and
// the registry they are served from. Every tool is a (name, parameter
// schema, handler) triple registered statically at startup; handlers never
// let an error cross the tool boundary — the invocation surface converts
// every failure into an "Error: ..." text result the calling model can read.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// ErrorPrefix marks a failed tool invocation in the text protocol.
const ErrorPrefix = "Error: "

// Tool defines the interface that all tools implement. A tool represents a
// function that can be called by the LLM agent.
type Tool interface {
	// Name returns the unique name of the tool.
	Name() string

	// Description returns a human-readable description of what the tool
	// does, used by the LLM to decide when to call it.
	Description() string

	// Parameters returns a JSON Schema object describing the tool's input
	// parameters, in function-calling format.
	Parameters() map[string]interface{}

	// Execute runs the tool. args is a JSON-encoded string containing the
	// tool's input parameters.
	Execute(ctx context.Context, args string) (string, error)
}

// Registry manages the collection of available tools. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// NewRegistry creates a new empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool to the registry. Registering a name twice replaces
// the earlier tool.
func (r *Registry) Register(tool Tool) error {
	if tool == nil {
		return fmt.Errorf("cannot register nil tool")
	}
	name := tool.Name()
	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = tool
	return nil
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns all registered tools in registration order.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// ToolDefinition represents a tool definition in function-calling format.
type ToolDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// Definitions converts the registered tools to function definitions.
func (r *Registry) Definitions() []ToolDefinition {
	defs := make([]ToolDefinition, 0, len(r.order))
	for _, tool := range r.List() {
		defs = append(defs, ToolDefinition{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	return defs
}

// DefinitionsJSON renders the definitions as indented JSON, for debugging
// and for handing the schema to a completion request.
func (r *Registry) DefinitionsJSON() (string, error) {
	data, err := json.MarshalIndent(r.Definitions(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal definitions: %w", err)
	}
	return string(data), nil
}

// Invoke executes a named tool and returns a single text blob. Success and
// failure are both plain text; failures carry the Error: prefix so the
// calling model can branch on them. An optional timeout bounds the call.
func (r *Registry) Invoke(ctx context.Context, name, args string, timeout time.Duration) string {
	tool, ok := r.Get(name)
	if !ok {
		return ErrorPrefix + fmt.Sprintf("tool not found: %s", name)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type invokeResult struct {
		text string
		err  error
	}
	resultCh := make(chan invokeResult, 1)

	go func() {
		text, err := tool.Execute(ctx, args)
		resultCh <- invokeResult{text: text, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			return ErrorPrefix + res.err.Error()
		}
		return res.text
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return ErrorPrefix + fmt.Sprintf("tool execution timed out after %v", timeout)
		}
		return ErrorPrefix + fmt.Sprintf("tool execution cancelled: %v", ctx.Err())
	}
}
