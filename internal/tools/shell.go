package tools

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/nebulus/blackbox/internal/security"
	"github.com/nebulus/blackbox/internal/workspace"
)

const defaultShellTimeout = 30 * time.Second

// ShellTool runs a single allowlisted command inside the workspace.
// The command string is vetted by the gate and executed argv-style, so
// the shell never interprets it.
type ShellTool struct {
	gate    *security.Gate
	guard   *workspace.Guard
	timeout time.Duration
}

// ShellArgs represents the arguments for the run_command tool.
type ShellArgs struct {
	Command string `json:"command"` // Full command line, e.g. "ls -la docs"
}

// NewShellTool creates a ShellTool with the given gate and guard.
// A non-positive timeout falls back to 30 seconds.
func NewShellTool(gate *security.Gate, guard *workspace.Guard, timeout time.Duration) *ShellTool {
	if timeout <= 0 {
		timeout = defaultShellTimeout
	}
	return &ShellTool{gate: gate, guard: guard, timeout: timeout}
}

// Name returns the tool name.
func (t *ShellTool) Name() string {
	return "run_command"
}

// Description returns a description of what the tool does.
func (t *ShellTool) Description() string {
	return fmt.Sprintf("Run a read-only shell command in the workspace. Allowed commands: %s.",
		strings.Join(t.gate.Allowed(), ", "))
}

// Parameters returns the JSON Schema for the tool's parameters.
func (t *ShellTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"command": map[string]interface{}{
				"type":        "string",
				"description": "The command line to run. Pipes, redirection and command chaining are not permitted.",
			},
		},
		"required": []string{"command"},
	}
}

// Execute vets the command and runs it with the workspace root as the
// working directory.
func (t *ShellTool) Execute(ctx context.Context, args string) (string, error) {
	var shellArgs ShellArgs
	if err := ParseArgs(args, &shellArgs); err != nil {
		return "", fmt.Errorf("failed to parse arguments: %w", err)
	}
	if strings.TrimSpace(shellArgs.Command) == "" {
		return "", fmt.Errorf("command is required")
	}

	argv, err := t.gate.Authorize(shellArgs.Command)
	if err != nil {
		return "", err
	}

	runCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Dir = t.guard.Root()

	output, err := cmd.CombinedOutput()
	text := strings.TrimRight(string(output), "\n")

	if runCtx.Err() == context.DeadlineExceeded {
		return "", NewTimeoutError("command", int(t.timeout.Seconds()))
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			if text == "" {
				return fmt.Sprintf("Command exited with code %d.", exitErr.ExitCode()), nil
			}
			return fmt.Sprintf("Command exited with code %d:\n%s", exitErr.ExitCode(), text), nil
		}
		return "", fmt.Errorf("failed to run command: %w", err)
	}

	if text == "" {
		return "(no output)", nil
	}
	return text, nil
}
