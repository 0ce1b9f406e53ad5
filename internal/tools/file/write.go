package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nebulus/blackbox/internal/tools"
	"github.com/nebulus/blackbox/internal/workspace"
)

// WriteTool creates or overwrites a file inside the workspace.
type WriteTool struct {
	toolBase
}

// WriteArgs represents the arguments for the write_file tool.
type WriteArgs struct {
	Path    string `json:"path"`    // Path relative to the workspace root
	Content string `json:"content"` // Full file content to write
}

// NewWriteTool creates a WriteTool confined by the given guard.
func NewWriteTool(guard *workspace.Guard) *WriteTool {
	return &WriteTool{toolBase{guard: guard}}
}

// Name returns the tool name.
func (t *WriteTool) Name() string {
	return "write_file"
}

// Description returns a description of what the tool does.
func (t *WriteTool) Description() string {
	return "Write content to a file in the workspace, creating it if missing and overwriting it otherwise."
}

// Parameters returns the JSON Schema for the tool's parameters.
func (t *WriteTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Path of the file to write, relative to the workspace root.",
			},
			"content": map[string]interface{}{
				"type":        "string",
				"description": "The full content to write to the file.",
			},
		},
		"required": []string{"path", "content"},
	}
}

// Execute writes the content and confirms the result.
func (t *WriteTool) Execute(_ context.Context, args string) (string, error) {
	var writeArgs WriteArgs
	if err := tools.ParseArgs(args, &writeArgs); err != nil {
		return "", fmt.Errorf("failed to parse arguments: %w", err)
	}
	if writeArgs.Path == "" {
		return "", fmt.Errorf("path is required")
	}

	fullPath, err := t.guard.Resolve(writeArgs.Path)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create parent directory: %w", err)
	}

	if err := os.WriteFile(fullPath, []byte(writeArgs.Content), 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fmt.Sprintf("Successfully wrote %d bytes to %s", len(writeArgs.Content), writeArgs.Path), nil
}
