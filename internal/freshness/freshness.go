// Package freshness decides whether the installed daemon binary is stale
// relative to its source tree.
package freshness

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// Decision is the result of a staleness scan.
type Decision struct {
	Required bool
	// Triggers lists the source files found newer than the artifact, in
	// scan order. The scan short-circuits, so only the first trigger is
	// recorded.
	Triggers []string
}

// Scan compares every file matched by the patterns (in order, relative to
// root) against artifactMTime. Any source file strictly newer marks the
// decision as required. Pattern and match order affect only which trigger is
// reported, not the outcome.
func Scan(root string, patterns []string, artifactMTime time.Time) (Decision, error) {
	fsys := os.DirFS(root)
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return Decision{}, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			info, err := os.Stat(filepath.Join(root, match))
			if err != nil {
				// File vanished mid-scan or is unreadable; it cannot
				// prove staleness either way.
				continue
			}
			if info.IsDir() {
				continue
			}
			if info.ModTime().After(artifactMTime) {
				return Decision{Required: true, Triggers: []string{match}}, nil
			}
		}
	}
	return Decision{}, nil
}
