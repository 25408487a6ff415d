package analysis

import (
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/ducdmdev/prrisk/internal/exports"
	"github.com/ducdmdev/prrisk/internal/model"
)

// Stems too generic to treat as a meaningful symbol reference.
var genericStems = map[string]bool{
	"index": true, "utils": true, "helpers": true, "main": true, "app": true,
}

// DocReader is the slice of the workspace that doc scanning needs.
type DocReader interface {
	DocFiles() ([]string, error)
	ReadFile(path string) (string, error)
}

// CheckDocStaleness scans documentation for references to paths and
// symbols that the change set deleted or renamed. Docs are read from
// the working tree, falling back to head for docs not on disk. Doc
// read failures skip that doc.
func CheckDocStaleness(vcs ContentSource, ws DocReader, changed []model.ChangedFile, base, head string) model.DocStalenessReport {
	docs, err := ws.DocFiles()
	if err != nil {
		docs = nil
	}
	sort.Strings(docs)

	report := model.DocStalenessReport{CheckedFiles: docs}

	deletedPaths := make(map[string]bool)
	renamed := make(map[string]string) // old path -> new path
	removedSymbols := make(map[string]bool)

	for _, f := range changed {
		switch f.Status {
		case model.StatusDeleted:
			deletedPaths[f.Path] = true
			if isAnalyzable(f.Path) {
				if content, err := vcs.ShowFile(base, f.Path); err == nil {
					for _, s := range exports.ParseExports(content, f.Path).Symbols {
						removedSymbols[s.Name] = true
					}
				}
			}
			stem := strings.TrimSuffix(path.Base(f.Path), path.Ext(f.Path))
			if !genericStems[strings.ToLower(stem)] {
				removedSymbols[stem] = true
			}
		case model.StatusRenamed:
			if f.OldPath != "" {
				renamed[f.OldPath] = f.Path
			}
		case model.StatusModified:
			if !isAnalyzable(f.Path) {
				continue
			}
			baseContent, err := vcs.ShowFile(base, f.Path)
			if err != nil {
				continue
			}
			headContent, err := vcs.ShowFile(head, f.Path)
			if err != nil {
				continue
			}
			d := exports.DiffExports(f.Path, baseContent, headContent)
			for _, s := range d.Removed {
				removedSymbols[s.Name] = true
			}
		}
	}
	delete(removedSymbols, "")

	if len(deletedPaths) == 0 && len(renamed) == 0 && len(removedSymbols) == 0 {
		return report
	}

	symbolRes := make(map[string]*regexp.Regexp, len(removedSymbols))
	for name := range removedSymbols {
		symbolRes[name] = regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	}

	for _, doc := range docs {
		content, err := ws.ReadFile(doc)
		if err != nil {
			if content, err = vcs.ShowFile(head, doc); err != nil {
				continue
			}
		}
		for i, line := range strings.Split(content, "\n") {
			for p := range deletedPaths {
				if strings.Contains(line, p) {
					report.StaleReferences = append(report.StaleReferences, model.StaleReference{
						DocFile:   doc,
						Line:      i + 1,
						Reference: p,
						Reason:    "file was deleted",
					})
				}
			}
			for old, renamedTo := range renamed {
				if strings.Contains(line, old) {
					report.StaleReferences = append(report.StaleReferences, model.StaleReference{
						DocFile:   doc,
						Line:      i + 1,
						Reference: old,
						Reason:    fmt.Sprintf("file was renamed to %s", renamedTo),
					})
				}
			}
			for name, re := range symbolRes {
				if re.MatchString(line) {
					report.StaleReferences = append(report.StaleReferences, model.StaleReference{
						DocFile:   doc,
						Line:      i + 1,
						Reference: name,
						Reason:    "symbol was removed",
					})
				}
			}
		}
	}

	sort.Slice(report.StaleReferences, func(i, j int) bool {
		a, b := report.StaleReferences[i], report.StaleReferences[j]
		if a.DocFile != b.DocFile {
			return a.DocFile < b.DocFile
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Reference < b.Reference
	})
	return report
}
