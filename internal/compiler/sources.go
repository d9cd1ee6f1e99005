package compiler

import (
	"io/fs"
	"path/filepath"
	"strings"
)

var ignoredDirs = []string{".git", "build", "node_modules"}

// DiscoverSources walks a source directory and returns module name ->
// file path for every source file found. Module names are the relative
// path with the extension stripped, e.g. "gleam/list".
func DiscoverSources(srcDir string) (map[string]string, error) {
	sources := make(map[string]string)

	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip ignored directories
		if d.IsDir() {
			for _, ign := range ignoredDirs {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".gleam") {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.ToSlash(rel), ".gleam")
		sources[name] = path
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sources, nil
}
