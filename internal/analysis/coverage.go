package analysis

import (
	"path"
	"strings"

	"github.com/ducdmdev/prrisk/internal/model"
)

var testExts = []string{".ts", ".tsx", ".js", ".jsx"}

// Existence checks for expected test files.
type FileChecker interface {
	Exists(path string) bool
}

// candidateTestFiles lists every path where a test for src could
// conventionally live: same-directory .test/.spec siblings, a
// __tests__ directory next to the source, and a top-level test/ or
// tests/ tree mirroring the source layout.
func candidateTestFiles(src string) []string {
	dir := path.Dir(src)
	base := path.Base(src)
	stem := strings.TrimSuffix(base, path.Ext(base))

	var out []string
	for _, ext := range testExts {
		out = append(out,
			path.Join(dir, stem+".test"+ext),
			path.Join(dir, stem+".spec"+ext),
		)
	}
	for _, ext := range testExts {
		out = append(out,
			path.Join(dir, "__tests__", stem+ext),
			path.Join(dir, "__tests__", stem+".test"+ext),
			path.Join(dir, "__tests__", stem+".spec"+ext),
		)
	}

	mirror := src
	for _, prefix := range []string{"src/", "lib/"} {
		if strings.HasPrefix(mirror, prefix) {
			mirror = strings.TrimPrefix(mirror, prefix)
			break
		}
	}
	mirrorDir := path.Dir(mirror)
	for _, root := range []string{"test", "tests"} {
		for _, ext := range testExts {
			out = append(out,
				path.Join(root, mirrorDir, stem+".test"+ext),
				path.Join(root, mirrorDir, stem+".spec"+ext),
				path.Join(root, mirrorDir, stem+ext),
			)
		}
	}
	return out
}

// MapTestFiles narrows the conventional candidates for src down to the
// ones that exist in the working tree.
func MapTestFiles(ws FileChecker, src string) []string {
	var out []string
	for _, c := range candidateTestFiles(src) {
		if ws.Exists(c) {
			out = append(out, c)
		}
	}
	return out
}

// CheckTestCoverage reports which changed source files come with a
// changed test. A source file counts as covered when any of its
// conventional test locations appears among the changed test files.
// Deleted source files are ignored; their tests going away is expected.
func CheckTestCoverage(ws FileChecker, changed []model.ChangedFile) model.TestCoverageReport {
	changedTests := make(map[string]bool)
	for _, f := range changed {
		if f.Category == model.CategoryTest {
			changedTests[f.Path] = true
		}
	}

	report := model.TestCoverageReport{CoverageRatio: 1}
	for _, f := range changed {
		if f.Category != model.CategorySource || f.Status == model.StatusDeleted {
			continue
		}
		report.ChangedSourceFiles++

		candidates := candidateTestFiles(f.Path)
		covered := false
		for _, c := range candidates {
			if changedTests[c] {
				covered = true
				break
			}
		}
		if covered {
			report.SourceFilesWithTestChanges++
			continue
		}

		existing := MapTestFiles(ws, f.Path)
		report.Gaps = append(report.Gaps, model.TestCoverageGap{
			SourceFile:        f.Path,
			ExpectedTestFiles: candidates,
			TestFileExists:    len(existing) > 0,
			TestFileChanged:   false,
		})
	}

	if report.ChangedSourceFiles > 0 {
		report.CoverageRatio = float64(report.SourceFilesWithTestChanges) / float64(report.ChangedSourceFiles)
	}
	return report
}
