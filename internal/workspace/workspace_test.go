package workspace

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuard(t *testing.T) *Guard {
	t.Helper()
	guard, err := NewGuard(t.TempDir())
	require.NoError(t, err)
	return guard
}

func TestResolve_InsideWorkspace(t *testing.T) {
	guard := newTestGuard(t)

	tests := []struct {
		name string
		path string
	}{
		{"plain file", "notes.txt"},
		{"nested file", "reports/daily/summary.txt"},
		{"dot prefix", "./notes.txt"},
		{"redundant separators", "reports//daily.txt"},
		{"internal dotdot staying inside", "reports/../notes.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abs, err := guard.Resolve(tt.path)
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(abs))
			rel, err := filepath.Rel(guard.Root(), abs)
			require.NoError(t, err)
			assert.NotContains(t, rel, "..")
		})
	}
}

func TestResolve_EscapeDenied(t *testing.T) {
	guard := newTestGuard(t)

	tests := []struct {
		name string
		path string
	}{
		{"parent traversal", "../outside.txt"},
		{"deep traversal", "reports/../../outside.txt"},
		{"bare dotdot", ".."},
		{"empty path", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := guard.Resolve(tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "access denied")
		})
	}
}

func TestResolve_AbsoluteOverrideStripped(t *testing.T) {
	guard := newTestGuard(t)

	// An absolute path is re-rooted inside the workspace, not honored.
	abs, err := guard.Resolve("/etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(guard.Root(), "etc", "passwd"), abs)
}

func TestResolve_SymlinkEscapeDenied(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink semantics differ on windows")
	}

	guard := newTestGuard(t)
	outside := t.TempDir()

	link := filepath.Join(guard.Root(), "sneaky")
	require.NoError(t, os.Symlink(outside, link))

	_, err := guard.Resolve("sneaky/secret.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestResolve_MissingTargetUsesExistingAncestor(t *testing.T) {
	guard := newTestGuard(t)

	// Target does not exist yet; resolution still succeeds and stays inside.
	abs, err := guard.Resolve("new/dir/file.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(guard.Root(), "new", "dir", "file.txt"), abs)
}

func TestNewGuard_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")
	guard, err := NewGuard(root)
	require.NoError(t, err)

	info, err := os.Stat(guard.Root())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureSubdir(t *testing.T) {
	guard := newTestGuard(t)

	sub, err := guard.EnsureSubdir("cron")
	require.NoError(t, err)

	info, err := os.Stat(sub)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = guard.EnsureSubdir("")
	assert.Error(t, err)
}
