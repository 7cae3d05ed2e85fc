// Package vcs answers one question: is this path under version control?
// The fix command rewrites files in place and refuses to do so for
// unversioned trees unless the user explicitly opts out of the gate.
package vcs

import (
	"fmt"
	"os"
	"path/filepath"
)

// markers that identify a repository root. .git may be a plain file in
// linked worktrees and submodules, so presence is all that is checked.
var markers = []string{".git", ".hg", ".svn"}

// InWorktree walks up from dir looking for a repository marker.
func InWorktree(dir string) (bool, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %q: %w", dir, err)
	}
	for {
		for _, marker := range markers {
			if _, err := os.Stat(filepath.Join(abs, marker)); err == nil {
				return true, nil
			}
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return false, nil
		}
		abs = parent
	}
}
