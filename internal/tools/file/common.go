// Package file implements the filesystem tools. Every tool resolves its
// path through the workspace guard before touching the disk.
package file

import (
	"github.com/nebulus/blackbox/internal/workspace"
)

// toolBase carries the shared workspace guard.
type toolBase struct {
	guard *workspace.Guard
}
