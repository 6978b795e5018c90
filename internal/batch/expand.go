package batch

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoFiles is returned when no pattern matches a file.
var ErrNoFiles = errors.New("no input files matched")

// Expand resolves doublestar patterns (e.g. "runs/**/*.json") relative to
// baseDir into a sorted, de-duplicated list of files. Directories are skipped.
func Expand(baseDir string, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		full := pattern
		if baseDir != "" && !filepath.IsAbs(full) {
			full = filepath.Join(baseDir, full)
		}
		if !doublestar.ValidatePathPattern(full) {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
		matches, err := doublestar.FilepathGlob(full, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to expand %q: %w", pattern, err)
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	sort.Strings(files)
	return files, nil
}
