package diff

import (
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"github.com/ducdmdev/prrisk/internal/model"
)

// ParseUnified reads a raw unified diff (e.g. piped from `git diff`)
// and returns the same ChangedFile records ParseRefs would produce.
func ParseUnified(raw string) ([]model.ChangedFile, error) {
	parsed, _, err := gitdiff.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	var files []model.ChangedFile
	for _, f := range parsed {
		cf := model.ChangedFile{Path: f.NewName}

		switch {
		case f.IsNew:
			cf.Status = model.StatusAdded
		case f.IsDelete:
			cf.Status = model.StatusDeleted
			cf.Path = f.OldName
		case f.IsCopy:
			cf.Status = model.StatusCopied
			cf.OldPath = f.OldName
		case f.IsRename:
			cf.Status = model.StatusRenamed
			cf.OldPath = f.OldName
		default:
			cf.Status = model.StatusModified
		}
		if cf.Path == "" {
			cf.Path = f.OldName
		}

		for _, frag := range f.TextFragments {
			for _, line := range frag.Lines {
				switch line.Op {
				case gitdiff.OpAdd:
					cf.Additions++
				case gitdiff.OpDelete:
					cf.Deletions++
				}
			}
		}

		cf.Language = DetectLanguage(cf.Path)
		cf.Category = Categorize(cf.Path)
		files = append(files, cf)
	}

	return files, nil
}
