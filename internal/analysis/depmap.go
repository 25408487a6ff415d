package analysis

import (
	"context"
	"path"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// scanBatchSize bounds how many files the repository-wide scan reads
// concurrently.
const scanBatchSize = 50

// Import extraction covers static import/export-from statements,
// dynamic import() calls, and require() calls.
var (
	importFromRe = regexp.MustCompile(`(?m)(?:import|export)\s+[^'"\n]*?from\s*['"]([^'"]+)['"]`)
	importBareRe = regexp.MustCompile(`(?m)^\s*import\s*['"]([^'"]+)['"]`)
	importDynRe  = regexp.MustCompile(`import\s*\(\s*['"]([^'"]+)['"]\s*\)`)
	requireRe    = regexp.MustCompile(`require\s*\(\s*['"]([^'"]+)['"]\s*\)`)
)

var resolvableExts = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"}

var indexNames = []string{"index.ts", "index.tsx", "index.js", "index.jsx"}

// DepMap is the repository-wide reverse import-dependency map:
// resolved import target -> set of importing files. It is built once
// per analysis call and shared read-only between breaking-change
// consumer lookup and impact-graph traversal; it is never kept as
// process-global state.
type DepMap struct {
	reverse map[string]map[string]struct{}
	files   map[string]bool
}

// FileReader is the slice of the filesystem collaborator the scan needs.
type FileReader interface {
	SourceFiles() ([]string, error)
	ReadFile(path string) (string, error)
}

// BuildDepMap scans every source file in the repository and builds the
// reverse import map. Files are read in bounded concurrent batches;
// unreadable files are skipped.
func BuildDepMap(ctx context.Context, ws FileReader) (*DepMap, error) {
	files, err := ws.SourceFiles()
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(files))
	for _, f := range files {
		known[f] = true
	}

	dm := &DepMap{
		reverse: make(map[string]map[string]struct{}),
		files:   known,
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(scanBatchSize)

	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := ws.ReadFile(file)
			if err != nil {
				return nil // unreadable files contribute no edges
			}
			targets := extractImports(content)

			mu.Lock()
			defer mu.Unlock()
			for _, target := range targets {
				resolved := resolveImport(file, target, known)
				if resolved == "" || resolved == file {
					continue
				}
				importers, ok := dm.reverse[resolved]
				if !ok {
					importers = make(map[string]struct{})
					dm.reverse[resolved] = importers
				}
				importers[file] = struct{}{}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dm, nil
}

// Importers returns the sorted set of files importing path.
func (m *DepMap) Importers(p string) []string {
	set := m.reverse[p]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Knows reports whether path was part of the scanned file set.
func (m *DepMap) Knows(p string) bool {
	return m.files[p]
}

func extractImports(content string) []string {
	var targets []string
	for _, re := range []*regexp.Regexp{importFromRe, importBareRe, importDynRe, requireRe} {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			targets = append(targets, m[1])
		}
	}
	return targets
}

// resolveImport resolves a relative import target against the
// importing file's directory: exact path, then each resolvable
// extension appended, then each index-file name inside the target as a
// directory. Package (non-relative) imports resolve to "".
func resolveImport(importer, target string, known map[string]bool) string {
	if !strings.HasPrefix(target, ".") {
		return ""
	}

	base := path.Clean(path.Join(path.Dir(importer), target))
	if known[base] {
		return base
	}
	for _, ext := range resolvableExts {
		if cand := base + ext; known[cand] {
			return cand
		}
	}
	for _, idx := range indexNames {
		if cand := path.Join(base, idx); known[cand] {
			return cand
		}
	}
	return ""
}
