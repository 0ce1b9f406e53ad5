package file

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nebulus/blackbox/internal/tools"
	"github.com/nebulus/blackbox/internal/workspace"
)

// ListTool lists the contents of a workspace directory.
type ListTool struct {
	toolBase
}

// ListArgs represents the arguments for the list_directory tool.
type ListArgs struct {
	Path string `json:"path,omitempty"` // Directory relative to the workspace root, defaults to "."
}

// NewListTool creates a ListTool confined by the given guard.
func NewListTool(guard *workspace.Guard) *ListTool {
	return &ListTool{toolBase{guard: guard}}
}

// Name returns the tool name.
func (t *ListTool) Name() string {
	return "list_directory"
}

// Description returns a description of what the tool does.
func (t *ListTool) Description() string {
	return "List the contents of a directory in the workspace."
}

// Parameters returns the JSON Schema for the tool's parameters.
func (t *ListTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Directory to list, relative to the workspace root. Defaults to the root.",
				"default":     ".",
			},
		},
	}
}

// Execute lists the directory entries, one per line.
func (t *ListTool) Execute(_ context.Context, args string) (string, error) {
	var listArgs ListArgs
	if args != "" {
		if err := tools.ParseArgs(args, &listArgs); err != nil {
			return "", fmt.Errorf("failed to parse arguments: %w", err)
		}
	}
	if listArgs.Path == "" {
		listArgs.Path = "."
	}

	fullPath, err := t.guard.Resolve(listArgs.Path)
	if err != nil {
		return "", err
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", tools.NewNotFoundError(
				fmt.Sprintf("directory not found: %s", listArgs.Path), "")
		}
		return "", fmt.Errorf("failed to list directory: %w", err)
	}

	if len(entries) == 0 {
		return "(empty directory)", nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	return strings.Join(names, "\n"), nil
}
