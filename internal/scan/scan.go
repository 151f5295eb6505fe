// Package scan discovers git repositories under a root directory.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gittrack/internal/contract"
)

// skipDirs are dependency and build output folders that are never
// worth descending into.
var skipDirs = map[string]struct{}{
	"node_modules":     {},
	"vendor":           {},
	"bower_components": {},
	"__pycache__":      {},
	".venv":            {},
	"venv":             {},
	"dist":             {},
	"build":            {},
	"target":           {},
	"out":              {},
}

// FindRepos walks root and returns the absolute path of every
// directory containing a .git folder. It does not descend into found
// repositories, hidden directories or well-known dependency folders.
func FindRepos(root string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}

	var repos []string
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == abs {
				// The root itself is missing or unreadable.
				return err
			}
			// Unreadable subtree, keep walking the rest.
			return fs.SkipDir
		}
		if !d.IsDir() {
			return nil
		}

		name := d.Name()
		if path != abs {
			if strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			if _, ok := skipDirs[name]; ok {
				return fs.SkipDir
			}
		}

		if info, err := os.Stat(filepath.Join(path, ".git")); err == nil && info.IsDir() {
			repos = append(repos, path)
			return fs.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", abs, err)
	}
	return repos, nil
}

// SaveRepos upserts the discovered paths into the store, naming each
// repo after its folder basename. Returns the number saved.
func SaveRepos(store contract.Store, paths []string) (int, error) {
	for _, path := range paths {
		if err := store.UpsertRepo(path, filepath.Base(path)); err != nil {
			return 0, fmt.Errorf("save repo %s: %w", path, err)
		}
	}
	return len(paths), nil
}
