// Package diff turns a git diff between two refs into categorized
// ChangedFile records.
package diff

import (
	"fmt"

	"github.com/ducdmdev/prrisk/internal/git"
	"github.com/ducdmdev/prrisk/internal/model"
)

// Summarizer provides per-file diff summaries; *git.Client implements it.
type Summarizer interface {
	DiffSummary(base, head string) (*git.DiffSummary, error)
}

// ParseRefs produces the ordered list of changed files between
// base..head. Rename-arrow notation in numstat path specs is resolved
// into explicit old/new paths.
func ParseRefs(vcs Summarizer, base, head string) ([]model.ChangedFile, error) {
	summary, err := vcs.DiffSummary(base, head)
	if err != nil {
		return nil, fmt.Errorf("diff summary %s..%s: %w", base, head, err)
	}
	return fromSummary(summary), nil
}

func fromSummary(summary *git.DiffSummary) []model.ChangedFile {
	created := toSet(summary.Created)
	deleted := toSet(summary.Deleted)
	renamedByNew := make(map[string]string, len(summary.Renamed))
	for _, r := range summary.Renamed {
		renamedByNew[r.To] = r.From
	}

	var files []model.ChangedFile
	for _, entry := range summary.Entries {
		cf := model.ChangedFile{
			Additions: entry.Additions,
			Deletions: entry.Deletions,
		}

		if from, to, ok := git.SplitRenameArrow(entry.PathSpec); ok {
			cf.Path = to
			cf.OldPath = from
		} else {
			cf.Path = entry.PathSpec
			if from, ok := renamedByNew[entry.PathSpec]; ok {
				cf.OldPath = from
			}
		}

		switch {
		case created[cf.Path]:
			cf.Status = model.StatusAdded
		case deleted[cf.Path]:
			cf.Status = model.StatusDeleted
		case cf.OldPath != "":
			// Explicitly renamed, or anything else that resolved an
			// old path.
			cf.Status = model.StatusRenamed
		default:
			cf.Status = model.StatusModified
		}

		cf.Language = DetectLanguage(cf.Path)
		cf.Category = Categorize(cf.Path)
		files = append(files, cf)
	}
	return files
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
