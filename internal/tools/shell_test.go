package tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebulus/blackbox/internal/security"
	"github.com/nebulus/blackbox/internal/workspace"
)

func newShellTool(t *testing.T, allowed []string) (*ShellTool, *workspace.Guard) {
	t.Helper()
	guard, err := workspace.NewGuard(t.TempDir())
	require.NoError(t, err)
	gate := security.NewGate(allowed)
	return NewShellTool(gate, guard, 5*time.Second), guard
}

func TestShellToolRunsAllowedCommand(t *testing.T) {
	tool, _ := newShellTool(t, []string{"echo"})

	result, err := tool.Execute(context.Background(), `{"command": "echo hello world"}`)
	require.NoError(t, err)
	assert.Equal(t, "hello world", result)
}

func TestShellToolRunsInWorkspace(t *testing.T) {
	tool, guard := newShellTool(t, []string{"ls"})
	require.NoError(t, os.WriteFile(filepath.Join(guard.Root(), "marker.txt"), []byte("x"), 0644))

	result, err := tool.Execute(context.Background(), `{"command": "ls"}`)
	require.NoError(t, err)
	assert.Contains(t, result, "marker.txt")
}

func TestShellToolDeniesUnlistedBinary(t *testing.T) {
	tool, _ := newShellTool(t, []string{"echo"})

	_, err := tool.Execute(context.Background(), `{"command": "rm -rf /"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binary not allowed: rm")
}

func TestShellToolDeniesOperators(t *testing.T) {
	tool, _ := newShellTool(t, []string{"echo", "cat"})

	for _, cmd := range []string{
		`echo hi > out.txt`,
		`echo hi && cat /etc/passwd`,
		`echo hi | cat`,
		`echo $(whoami)`,
	} {
		_, err := tool.Execute(context.Background(), `{"command": "`+escapeJSON(cmd)+`"}`)
		require.Error(t, err, "command %q should be denied", cmd)
		assert.Contains(t, err.Error(), "blocked operator")
	}
}

func TestShellToolQuotedArgumentsStayLiteral(t *testing.T) {
	tool, _ := newShellTool(t, []string{"echo"})

	result, err := tool.Execute(context.Background(), `{"command": "echo 'two words'"}`)
	require.NoError(t, err)
	assert.Equal(t, "two words", result)
}

func TestShellToolReportsExitCode(t *testing.T) {
	tool, _ := newShellTool(t, []string{"ls"})

	result, err := tool.Execute(context.Background(), `{"command": "ls /definitely/not/here"}`)
	require.NoError(t, err)
	assert.Contains(t, result, "Command exited with code")
}

func TestShellToolRequiresCommand(t *testing.T) {
	tool, _ := newShellTool(t, []string{"echo"})

	_, err := tool.Execute(context.Background(), `{"command": "   "}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command is required")
}

func escapeJSON(s string) string {
	out := ""
	for _, r := range s {
		switch r {
		case '"':
			out += `\"`
		case '\\':
			out += `\\`
		default:
			out += string(r)
		}
	}
	return out
}
