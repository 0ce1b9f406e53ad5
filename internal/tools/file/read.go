package file

import (
	"context"
	"fmt"
	"os"

	"github.com/nebulus/blackbox/internal/tools"
	"github.com/nebulus/blackbox/internal/workspace"
)

// ReadTool reads a file from the workspace and returns its content
// unchanged, so write-then-read round-trips exactly.
type ReadTool struct {
	toolBase
}

// ReadArgs represents the arguments for the read_file tool.
type ReadArgs struct {
	Path string `json:"path"` // Path relative to the workspace root
}

// NewReadTool creates a ReadTool confined by the given guard.
func NewReadTool(guard *workspace.Guard) *ReadTool {
	return &ReadTool{toolBase{guard: guard}}
}

// Name returns the tool name.
func (t *ReadTool) Name() string {
	return "read_file"
}

// Description returns a description of what the tool does.
func (t *ReadTool) Description() string {
	return "Read the content of a file from the workspace."
}

// Parameters returns the JSON Schema for the tool's parameters.
func (t *ReadTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Path of the file to read, relative to the workspace root.",
			},
		},
		"required": []string{"path"},
	}
}

// Execute reads the file and returns its content.
func (t *ReadTool) Execute(_ context.Context, args string) (string, error) {
	var readArgs ReadArgs
	if err := tools.ParseArgs(args, &readArgs); err != nil {
		return "", fmt.Errorf("failed to parse arguments: %w", err)
	}
	if readArgs.Path == "" {
		return "", fmt.Errorf("path is required")
	}

	fullPath, err := t.guard.Resolve(readArgs.Path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", tools.NewNotFoundError(
				fmt.Sprintf("file not found: %s", readArgs.Path),
				"use list_directory to inspect the workspace")
		}
		return "", fmt.Errorf("failed to access file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", readArgs.Path)
	}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return string(content), nil
}
