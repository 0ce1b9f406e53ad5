// Package security validates raw command lines before execution. The gate
// combines a fixed block-list of shell operators, shell-style tokenization
// and a configurable binary allow-list; commands are later executed directly
// from the argument vector, never through a shell.
package security

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

// blockedOperators are shell metacharacters that are never allowed in a
// command line. The scan runs on the raw string before tokenization, so
// quoting cannot smuggle an operator past it. Longer operators come first so
// the denial names the operator the caller actually wrote.
var blockedOperators = []string{
	">>", ">", "&&", "&", "||", "|", ";", "`", "$(",
}

// Gate authorizes command lines against the allow-list of binaries.
type Gate struct {
	allowed map[string]struct{}
}

// NewGate creates a Gate allowing only the given binaries.
func NewGate(allowedBinaries []string) *Gate {
	allowed := make(map[string]struct{}, len(allowedBinaries))
	for _, bin := range allowedBinaries {
		bin = strings.TrimSpace(bin)
		if bin != "" {
			allowed[bin] = struct{}{}
		}
	}
	return &Gate{allowed: allowed}
}

// Authorize validates a raw command line and returns the argument vector to
// execute. Checks run in order: operator block-list on the raw string,
// shell-word tokenization, non-empty vector, binary allow-list.
func (g *Gate) Authorize(raw string) ([]string, error) {
	for _, op := range blockedOperators {
		if strings.Contains(raw, op) {
			return nil, fmt.Errorf("command contains blocked operator %q", op)
		}
	}

	argv, err := shellquote.Split(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize command: %w", err)
	}

	if len(argv) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	if _, ok := g.allowed[argv[0]]; !ok {
		return nil, fmt.Errorf("binary not allowed: %s", argv[0])
	}

	return argv, nil
}

// Allowed returns the sorted-at-registration set of permitted binaries, for
// inclusion in tool descriptions.
func (g *Gate) Allowed() []string {
	out := make([]string, 0, len(g.allowed))
	for bin := range g.allowed {
		out = append(out, bin)
	}
	return out
}
