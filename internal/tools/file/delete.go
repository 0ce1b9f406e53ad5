package file

import (
	"context"
	"fmt"
	"os"

	"github.com/nebulus/blackbox/internal/tools"
	"github.com/nebulus/blackbox/internal/workspace"
)

// DeleteTool removes a single file from the workspace. Directories are
// refused; the agent has no recursive delete.
type DeleteTool struct {
	toolBase
}

// DeleteArgs represents the arguments for the delete_file tool.
type DeleteArgs struct {
	Path string `json:"path"` // Path relative to the workspace root
}

// NewDeleteTool creates a DeleteTool confined by the given guard.
func NewDeleteTool(guard *workspace.Guard) *DeleteTool {
	return &DeleteTool{toolBase{guard: guard}}
}

// Name returns the tool name.
func (t *DeleteTool) Name() string {
	return "delete_file"
}

// Description returns a description of what the tool does.
func (t *DeleteTool) Description() string {
	return "Delete a file from the workspace. Directories cannot be deleted."
}

// Parameters returns the JSON Schema for the tool's parameters.
func (t *DeleteTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Path of the file to delete, relative to the workspace root.",
			},
		},
		"required": []string{"path"},
	}
}

// Execute removes the file and confirms the result.
func (t *DeleteTool) Execute(_ context.Context, args string) (string, error) {
	var deleteArgs DeleteArgs
	if err := tools.ParseArgs(args, &deleteArgs); err != nil {
		return "", fmt.Errorf("failed to parse arguments: %w", err)
	}
	if deleteArgs.Path == "" {
		return "", fmt.Errorf("path is required")
	}

	fullPath, err := t.guard.Resolve(deleteArgs.Path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", tools.NewNotFoundError(
				fmt.Sprintf("file not found: %s", deleteArgs.Path), "")
		}
		return "", fmt.Errorf("failed to access file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", deleteArgs.Path)
	}

	if err := os.Remove(fullPath); err != nil {
		return "", fmt.Errorf("failed to delete file: %w", err)
	}

	return fmt.Sprintf("Successfully deleted %s", deleteArgs.Path), nil
}
