package analysis

import (
	"fmt"
	"path"
	"strings"

	"github.com/ducdmdev/prrisk/internal/exports"
	"github.com/ducdmdev/prrisk/internal/model"
)

// ContentSource is the slice of the VCS collaborator that content
// comparisons need.
type ContentSource interface {
	// ShowFile returns a file's content at ref:path, git.ErrNotFound
	// when the path does not exist at that ref.
	ShowFile(ref, path string) (string, error)
}

// Extensions the export extractor understands.
var analyzableExts = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".mjs": true, ".cjs": true,
}

func isAnalyzable(p string) bool {
	return analyzableExts[strings.ToLower(path.Ext(p))]
}

// DetectBreakingChanges classifies removed and incompatibly altered
// exports across the change set. Only modified and deleted files can
// break anything; added files are skipped. Per-file content fetch or
// comparison failures skip that file, never the run. deps may be nil,
// in which case consumer lists are left empty.
func DetectBreakingChanges(vcs ContentSource, base, head string, changed []model.ChangedFile, deps *DepMap) []model.BreakingChange {
	var out []model.BreakingChange

	for _, f := range changed {
		if !isAnalyzable(f.Path) {
			continue
		}
		if f.Status != model.StatusModified && f.Status != model.StatusDeleted {
			continue
		}

		baseContent, err := vcs.ShowFile(base, f.Path)
		if err != nil {
			continue // no data at base: nothing could have been removed
		}

		if f.Status == model.StatusDeleted {
			fe := exports.ParseExports(baseContent, f.Path)
			for _, sym := range fe.Symbols {
				out = append(out, newBreaking(f.Path, model.RemovedExport, sym, nil, nil, deps))
			}
			continue
		}

		headContent, err := vcs.ShowFile(head, f.Path)
		if err != nil {
			continue
		}

		d := exports.DiffExports(f.Path, baseContent, headContent)
		for _, sym := range d.Removed {
			out = append(out, newBreaking(f.Path, model.RemovedExport, sym, nil, nil, deps))
		}
		for _, change := range d.Modified {
			if change.Before.Kind != change.After.Kind {
				details := []string{fmt.Sprintf("kind changed from %s to %s", change.Before.Kind, change.After.Kind)}
				out = append(out, newBreaking(f.Path, model.ChangedType, change.Before, &change.After, details, deps))
				continue
			}
			sd := exports.DiffSignatures(change.Before.Signature, change.After.Signature)
			out = append(out, newBreaking(f.Path, model.ChangedSignature, change.Before, &change.After, sd.Details, deps))
		}
	}

	return out
}

func newBreaking(filePath string, typ model.BreakingChangeType, before model.ExportedSymbol, after *model.ExportedSymbol, details []string, deps *DepMap) model.BreakingChange {
	bc := model.BreakingChange{
		FilePath:   filePath,
		Type:       typ,
		SymbolName: before.Name,
		Before:     &before,
		After:      after,
		Severity:   model.SeverityFor(typ),
		Details:    details,
	}
	if deps != nil {
		bc.Consumers = deps.Importers(filePath)
	}
	return bc
}
