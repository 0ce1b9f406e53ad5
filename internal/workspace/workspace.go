// Package workspace confines all filesystem access to a single root
// directory. Every file and document tool resolves user-supplied paths
// through Guard.Resolve before touching the disk; there is no other way to
// obtain an absolute path from tool input.
//
// Example usage:
//
//	guard, err := workspace.NewGuard("/workspace")
//	if err != nil {
//	    return err
//	}
//	abs, err := guard.Resolve("reports/daily.txt")
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Guard resolves user-supplied paths against a fixed workspace root and
// rejects anything that escapes it. The check is stateless; a single Guard
// is shared by all tool invocations without locking.
type Guard struct {
	root string // canonical workspace root
}

// NewGuard creates a Guard for the given root directory. The directory is
// created if missing so the root can be canonicalized up front.
func NewGuard(root string) (*Guard, error) {
	if root == "" {
		return nil, fmt.Errorf("workspace root is empty")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root: %w", err)
	}

	if err := ensureDir(abs); err != nil {
		return nil, err
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize workspace root: %w", err)
	}

	return &Guard{root: canonical}, nil
}

// Root returns the canonical workspace root.
func (g *Guard) Root() string {
	return g.root
}

// Resolve maps a user-supplied path to an absolute path inside the
// workspace. A leading separator is stripped so absolute input cannot
// override the root; the joined path is canonicalized (resolving symlinks)
// and must remain under the root. Any escape is an access denial.
func (g *Guard) Resolve(userPath string) (string, error) {
	if userPath == "" {
		return "", fmt.Errorf("access denied: path is empty")
	}

	// Absolute-path injection: treat the input as relative to the root.
	trimmed := strings.TrimLeft(userPath, "/\\")
	joined := filepath.Join(g.root, filepath.Clean(trimmed))

	canonical, err := canonicalize(joined)
	if err != nil {
		return "", fmt.Errorf("access denied: cannot resolve path %s: %w", userPath, err)
	}

	if !g.contains(canonical) {
		return "", fmt.Errorf("access denied: path escapes workspace: %s", userPath)
	}

	return canonical, nil
}

// EnsureSubdir creates a subdirectory under the root and returns its path.
func (g *Guard) EnsureSubdir(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("subdirectory name is empty")
	}
	sub := filepath.Join(g.root, name)
	if err := ensureDir(sub); err != nil {
		return "", err
	}
	return sub, nil
}

// contains reports whether a canonical path lies inside the root.
func (g *Guard) contains(path string) bool {
	if path == g.root {
		return true
	}
	return strings.HasPrefix(path, g.root+string(filepath.Separator))
}

// canonicalize resolves symlinks for the path. For targets that do not exist
// yet (file about to be written) the nearest existing ancestor is resolved
// and the remaining components are re-joined lexically, so a symlinked
// parent still cannot smuggle the path outside the root.
func canonicalize(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}

	dir, base := filepath.Split(filepath.Clean(path))
	dir = filepath.Clean(dir)
	if dir == path {
		// Walked up to the filesystem root without finding anything.
		return "", fmt.Errorf("no existing ancestor for %s", path)
	}

	resolvedDir, err := canonicalize(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedDir, base), nil
}

func ensureDir(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("path exists but is not a directory: %s", path)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access %s: %w", path, err)
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}
