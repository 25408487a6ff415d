// Package repofs is the read-only filesystem collaborator: discovery
// of repository files by role and working-tree reads, with build and
// vendor directories excluded.
package repofs

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Directories never descended into during discovery.
var excludedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
	".next":        true,
	"out":          true,
}

// Extensions considered source code for repository-wide scans.
var sourceExts = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".mjs": true, ".cjs": true,
}

// Extensions considered documentation.
var docExts = map[string]bool{
	".md": true, ".mdx": true, ".rst": true, ".txt": true,
}

// Dir is a repository root to discover and read files under.
type Dir struct {
	Root string
}

// New returns a Dir rooted at root.
func New(root string) *Dir {
	return &Dir{Root: root}
}

// SourceFiles lists repository-relative paths of all source files.
func (d *Dir) SourceFiles() ([]string, error) {
	return d.find(func(path string) bool {
		return sourceExts[strings.ToLower(filepath.Ext(path))]
	})
}

// DocFiles lists repository-relative paths of all documentation files.
func (d *Dir) DocFiles() ([]string, error) {
	return d.find(func(path string) bool {
		return docExts[strings.ToLower(filepath.Ext(path))]
	})
}

// Exists reports whether a repository-relative path exists in the
// working tree.
func (d *Dir) Exists(rel string) bool {
	info, err := os.Stat(filepath.Join(d.Root, rel))
	return err == nil && !info.IsDir()
}

// ReadFile returns working-tree content of a repository-relative path.
func (d *Dir) ReadFile(rel string) (string, error) {
	data, err := os.ReadFile(filepath.Join(d.Root, rel))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (d *Dir) find(match func(path string) bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(d.Root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if entry.IsDir() {
			base := entry.Name()
			if path != d.Root && (excludedDirs[base] || strings.HasPrefix(base, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !match(path) {
			return nil
		}
		rel, err := filepath.Rel(d.Root, path)
		if err != nil {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
