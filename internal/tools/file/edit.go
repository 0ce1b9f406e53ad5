package file

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nebulus/blackbox/internal/tools"
	"github.com/nebulus/blackbox/internal/workspace"
)

// EditTool replaces the first occurrence of a target string in a file.
// Re-applying the same edit after the target is gone fails instead of
// replacing something else, so edits are not silently repeated.
type EditTool struct {
	toolBase
}

// EditArgs represents the arguments for the edit_file tool.
type EditArgs struct {
	Path        string `json:"path"`        // Path relative to the workspace root
	Target      string `json:"target"`      // Exact string to replace
	Replacement string `json:"replacement"` // Replacement text
}

// NewEditTool creates an EditTool confined by the given guard.
func NewEditTool(guard *workspace.Guard) *EditTool {
	return &EditTool{toolBase{guard: guard}}
}

// Name returns the tool name.
func (t *EditTool) Name() string {
	return "edit_file"
}

// Description returns a description of what the tool does.
func (t *EditTool) Description() string {
	return "Replace the first occurrence of a target string in a workspace file."
}

// Parameters returns the JSON Schema for the tool's parameters.
func (t *EditTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Path of the file to edit, relative to the workspace root.",
			},
			"target": map[string]interface{}{
				"type":        "string",
				"description": "The exact string to search for.",
			},
			"replacement": map[string]interface{}{
				"type":        "string",
				"description": "The string to replace the target with.",
			},
		},
		"required": []string{"path", "target", "replacement"},
	}
}

// Execute applies the replacement and confirms the result.
func (t *EditTool) Execute(_ context.Context, args string) (string, error) {
	var editArgs EditArgs
	if err := tools.ParseArgs(args, &editArgs); err != nil {
		return "", fmt.Errorf("failed to parse arguments: %w", err)
	}
	if editArgs.Path == "" {
		return "", fmt.Errorf("path is required")
	}
	if editArgs.Target == "" {
		return "", fmt.Errorf("target is required")
	}

	fullPath, err := t.guard.Resolve(editArgs.Path)
	if err != nil {
		return "", err
	}

	raw, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", tools.NewNotFoundError(
				fmt.Sprintf("file not found: %s", editArgs.Path), "")
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	content := string(raw)
	if !strings.Contains(content, editArgs.Target) {
		return "", fmt.Errorf("target string not found in %s", editArgs.Path)
	}

	updated := strings.Replace(content, editArgs.Target, editArgs.Replacement, 1)
	if err := os.WriteFile(fullPath, []byte(updated), 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fmt.Sprintf("Successfully edited %s", editArgs.Path), nil
}
