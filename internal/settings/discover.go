package settings

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Exported variables.
var (
	ErrNoPatterns = errors.New("no patterns provided")
)

// Discover expands glob patterns (including ** and {a,b}) into a sorted,
// de-duplicated list of settings files with a supported extension.
func Discover(patterns ...string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}

	seen := make(map[string]bool)

	var matches []string

	for _, pattern := range patterns {
		list, err := doublestar.FilepathGlob(filepath.Clean(pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("matching pattern %q: %w", pattern, err)
		}

		for _, path := range list {
			if _, err := FormatFor(path); err != nil {
				continue
			}

			if !seen[path] {
				seen[path] = true
				matches = append(matches, path)
			}
		}
	}

	sort.Strings(matches)

	return matches, nil
}

// Layered loads each path into its own store, chaining them so the first path
// is the root and the last is nearest the returned store. The returned store is
// a fresh, empty child named name; pass it to the parser to collect command-line values.
// arrayKeys are registered on every level.
func Layered(name string, paths []string, arrayKeys ...string) (*Store, error) {
	var parent *Store

	for _, path := range paths {
		level := New(path, parent)
		for _, key := range arrayKeys {
			level.RegisterArray(key)
		}

		if err := level.LoadFile(path); err != nil {
			return nil, err
		}

		parent = level
	}

	top := New(name, parent)
	for _, key := range arrayKeys {
		top.RegisterArray(key)
	}

	return top, nil
}
