package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducdmdev/prrisk/internal/git"
	"github.com/ducdmdev/prrisk/internal/model"
)

// fakeVCS serves file contents from per-ref maps and a canned diff
// summary.
type fakeVCS struct {
	repo     bool
	refs     map[string]bool
	branches []string
	summary  *git.DiffSummary
	contents map[string]map[string]string // ref -> path -> content
}

func (f *fakeVCS) IsRepo() bool { return f.repo }

func (f *fakeVCS) RefExists(ref string) bool { return f.refs[ref] }

func (f *fakeVCS) LocalBranches() ([]string, error) { return f.branches, nil }

func (f *fakeVCS) DiffSummary(base, head string) (*git.DiffSummary, error) {
	return f.summary, nil
}

func (f *fakeVCS) ShowFile(ref, path string) (string, error) {
	if c, ok := f.contents[ref][path]; ok {
		return c, nil
	}
	return "", git.ErrNotFound
}

// fakeWorkspace is an in-memory working tree.
type fakeWorkspace struct {
	sources map[string]string // source path -> content
	docs    map[string]string
}

func (f *fakeWorkspace) SourceFiles() ([]string, error) {
	var out []string
	for p := range f.sources {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeWorkspace) DocFiles() ([]string, error) {
	var out []string
	for p := range f.docs {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeWorkspace) Exists(path string) bool {
	_, src := f.sources[path]
	_, doc := f.docs[path]
	return src || doc
}

func (f *fakeWorkspace) ReadFile(path string) (string, error) {
	if c, ok := f.sources[path]; ok {
		return c, nil
	}
	if c, ok := f.docs[path]; ok {
		return c, nil
	}
	return "", git.ErrNotFound
}

func TestDetectBreakingChangesDeletedFile(t *testing.T) {
	vcs := &fakeVCS{contents: map[string]map[string]string{
		"main": {"src/api.ts": "export function foo(a: string): void {}\n"},
	}}
	changed := []model.ChangedFile{
		{Path: "src/api.ts", Status: model.StatusDeleted, Category: model.CategorySource},
	}

	got := DetectBreakingChanges(vcs, "main", "HEAD", changed, nil)

	require.Len(t, got, 1)
	assert.Equal(t, model.RemovedExport, got[0].Type)
	assert.Equal(t, model.SeverityHigh, got[0].Severity)
	assert.Equal(t, "foo", got[0].SymbolName)
	require.NotNil(t, got[0].Before)
	assert.Nil(t, got[0].After)
}

func TestDetectBreakingChangesSignature(t *testing.T) {
	vcs := &fakeVCS{contents: map[string]map[string]string{
		"main": {"src/api.ts": "export function foo(a: string): void {}\n"},
		"HEAD": {"src/api.ts": "export function foo(a: string, b: number): void {}\n"},
	}}
	changed := []model.ChangedFile{
		{Path: "src/api.ts", Status: model.StatusModified, Category: model.CategorySource},
	}

	got := DetectBreakingChanges(vcs, "main", "HEAD", changed, nil)

	require.Len(t, got, 1)
	assert.Equal(t, model.ChangedSignature, got[0].Type)
	assert.Equal(t, model.SeverityMedium, got[0].Severity)
	assert.Contains(t, got[0].Details, "parameter count changed from 1 to 2")
	require.NotNil(t, got[0].After)
}

func TestDetectBreakingChangesKindChange(t *testing.T) {
	vcs := &fakeVCS{contents: map[string]map[string]string{
		"main": {"src/api.ts": "export function foo(): void {}\n"},
		"HEAD": {"src/api.ts": "export const foo = 1;\n"},
	}}
	changed := []model.ChangedFile{
		{Path: "src/api.ts", Status: model.StatusModified, Category: model.CategorySource},
	}

	got := DetectBreakingChanges(vcs, "main", "HEAD", changed, nil)

	require.Len(t, got, 1)
	assert.Equal(t, model.ChangedType, got[0].Type)
	assert.Contains(t, got[0].Details, "kind changed from function to const")
}

func TestDetectBreakingChangesSkipsUnreadableAndAdded(t *testing.T) {
	vcs := &fakeVCS{contents: map[string]map[string]string{}}
	changed := []model.ChangedFile{
		{Path: "src/new.ts", Status: model.StatusAdded},
		{Path: "src/gone.ts", Status: model.StatusModified}, // base content missing
		{Path: "style.css", Status: model.StatusDeleted},    // not analyzable
	}

	assert.Empty(t, DetectBreakingChanges(vcs, "main", "HEAD", changed, nil))
}

func TestDetectBreakingChangesConsumers(t *testing.T) {
	vcs := &fakeVCS{contents: map[string]map[string]string{
		"main": {"src/api.ts": "export function foo(): void {}\n"},
	}}
	ws := &fakeWorkspace{sources: map[string]string{
		"src/api.ts":    "export function foo(): void {}",
		"src/caller.ts": "import { foo } from './api';",
	}}
	deps, err := BuildDepMap(context.Background(), ws)
	require.NoError(t, err)

	changed := []model.ChangedFile{
		{Path: "src/api.ts", Status: model.StatusDeleted, Category: model.CategorySource},
	}
	got := DetectBreakingChanges(vcs, "main", "HEAD", changed, deps)

	require.Len(t, got, 1)
	assert.Equal(t, []string{"src/caller.ts"}, got[0].Consumers)
}

func TestCheckTestCoverage(t *testing.T) {
	ws := &fakeWorkspace{sources: map[string]string{
		"src/a.ts":      "",
		"src/a.test.ts": "",
	}}
	changed := []model.ChangedFile{
		{Path: "src/a.ts", Status: model.StatusModified, Category: model.CategorySource},
		{Path: "src/a.test.ts", Status: model.StatusModified, Category: model.CategoryTest},
		{Path: "src/b.ts", Status: model.StatusModified, Category: model.CategorySource},
		{Path: "src/c.ts", Status: model.StatusModified, Category: model.CategorySource},
		{Path: "tests/c.test.ts", Status: model.StatusAdded, Category: model.CategoryTest},
	}

	got := CheckTestCoverage(ws, changed)

	assert.Equal(t, 3, got.ChangedSourceFiles)
	assert.Equal(t, 2, got.SourceFilesWithTestChanges)
	assert.InDelta(t, 0.667, got.CoverageRatio, 0.001)
	require.Len(t, got.Gaps, 1)
	assert.Equal(t, "src/b.ts", got.Gaps[0].SourceFile)
	assert.False(t, got.Gaps[0].TestFileExists)
	assert.False(t, got.Gaps[0].TestFileChanged)
	assert.Contains(t, got.Gaps[0].ExpectedTestFiles, "src/b.test.ts")
}

func TestCheckTestCoverageNoSourceFiles(t *testing.T) {
	got := CheckTestCoverage(&fakeWorkspace{}, []model.ChangedFile{
		{Path: "README.md", Status: model.StatusModified, Category: model.CategoryDoc},
	})
	assert.Equal(t, 0, got.ChangedSourceFiles)
	assert.Equal(t, 1.0, got.CoverageRatio)
	assert.Empty(t, got.Gaps)
}

func TestCheckTestCoverageIgnoresDeleted(t *testing.T) {
	got := CheckTestCoverage(&fakeWorkspace{}, []model.ChangedFile{
		{Path: "src/old.ts", Status: model.StatusDeleted, Category: model.CategorySource},
	})
	assert.Equal(t, 0, got.ChangedSourceFiles)
}

func TestCandidateTestFilesMirrored(t *testing.T) {
	got := candidateTestFiles("src/utils/parse.ts")
	assert.Contains(t, got, "src/utils/parse.test.ts")
	assert.Contains(t, got, "src/utils/parse.spec.ts")
	assert.Contains(t, got, "src/utils/__tests__/parse.ts")
	assert.Contains(t, got, "test/utils/parse.test.ts")
	assert.Contains(t, got, "tests/utils/parse.spec.ts")
}

func TestCheckDocStaleness(t *testing.T) {
	vcs := &fakeVCS{contents: map[string]map[string]string{
		"main": {
			"src/gone.ts": "export function removedThing(): void {}\n",
			"src/api.ts":  "export function oldName(): void {}\nexport function kept(): void {}\n",
		},
		"HEAD": {
			"src/api.ts": "export function kept(): void {}\n",
		},
	}}
	ws := &fakeWorkspace{docs: map[string]string{
		"README.md": "See src/gone.ts for details.\nCall removedThing() then oldName().\nUse src/legacy/a.ts here.\n",
	}}
	changed := []model.ChangedFile{
		{Path: "src/gone.ts", Status: model.StatusDeleted, Category: model.CategorySource},
		{Path: "src/api.ts", Status: model.StatusModified, Category: model.CategorySource},
		{Path: "src/new/a.ts", OldPath: "src/legacy/a.ts", Status: model.StatusRenamed, Category: model.CategorySource},
	}

	got := CheckDocStaleness(vcs, ws, changed, "main", "HEAD")

	assert.Equal(t, []string{"README.md"}, got.CheckedFiles)

	refs := make(map[string]string)
	for _, r := range got.StaleReferences {
		refs[r.Reference] = r.Reason
	}
	assert.Equal(t, "file was deleted", refs["src/gone.ts"])
	assert.Equal(t, "symbol was removed", refs["removedThing"])
	assert.Equal(t, "symbol was removed", refs["oldName"])
	assert.Equal(t, "file was renamed to src/new/a.ts", refs["src/legacy/a.ts"])
	assert.NotContains(t, refs, "kept")
}

func TestCheckDocStalenessNoRemovals(t *testing.T) {
	ws := &fakeWorkspace{docs: map[string]string{"README.md": "anything"}}
	changed := []model.ChangedFile{
		{Path: "src/a.ts", Status: model.StatusAdded, Category: model.CategorySource},
	}

	got := CheckDocStaleness(&fakeVCS{}, ws, changed, "main", "HEAD")

	assert.Empty(t, got.StaleReferences)
	assert.Equal(t, []string{"README.md"}, got.CheckedFiles)
}

func TestCheckDocStalenessGenericStem(t *testing.T) {
	vcs := &fakeVCS{contents: map[string]map[string]string{}}
	ws := &fakeWorkspace{docs: map[string]string{
		"README.md": "The index of utils.\n",
	}}
	changed := []model.ChangedFile{
		{Path: "src/index.css", Status: model.StatusDeleted},
		{Path: "src/utils.css", Status: model.StatusDeleted},
	}

	got := CheckDocStaleness(vcs, ws, changed, "main", "HEAD")
	assert.Empty(t, got.StaleReferences)
}
