//go:build dev

package dev

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var errNoRepoRoot = errors.New("could not find go.mod in any parent directory")

// findRepoRoot walks up from the working directory to the one holding go.mod.
func findRepoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errNoRepoRoot
		}

		dir = parent
	}
}

// walkGoFiles calls visit with the repo-relative path and content of every Go
// file under root. Directories starting with "_" or "." are skipped.
func walkGoFiles(root string, visit func(rel, content string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}

			return nil
		}

		if !strings.HasSuffix(path, ".go") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		return visit(filepath.ToSlash(rel), string(content))
	})
}
