package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ducdmdev/prrisk/internal/git"
	"github.com/ducdmdev/prrisk/internal/model"
)

type fakeSummarizer struct {
	summary *git.DiffSummary
	err     error
}

func (f *fakeSummarizer) DiffSummary(base, head string) (*git.DiffSummary, error) {
	return f.summary, f.err
}

func TestParseRefs(t *testing.T) {
	vcs := &fakeSummarizer{summary: &git.DiffSummary{
		Entries: []git.DiffEntry{
			{PathSpec: "src/new.ts", Additions: 30},
			{PathSpec: "src/gone.ts", Deletions: 12},
			{PathSpec: "src/{old => new}/util.ts", Additions: 2, Deletions: 2},
			{PathSpec: "src/app.ts", Additions: 5, Deletions: 1},
			{PathSpec: "README.md", Additions: 3},
		},
		Created: []string{"src/new.ts"},
		Deleted: []string{"src/gone.ts"},
		Renamed: []git.Rename{{From: "src/old/util.ts", To: "src/new/util.ts"}},
	}}

	files, err := ParseRefs(vcs, "main", "HEAD")
	require.NoError(t, err)
	require.Len(t, files, 5)

	assert.Equal(t, model.StatusAdded, files[0].Status)
	assert.Equal(t, "src/new.ts", files[0].Path)
	assert.Equal(t, 30, files[0].Additions)

	assert.Equal(t, model.StatusDeleted, files[1].Status)

	assert.Equal(t, model.StatusRenamed, files[2].Status)
	assert.Equal(t, "src/new/util.ts", files[2].Path)
	assert.Equal(t, "src/old/util.ts", files[2].OldPath)

	assert.Equal(t, model.StatusModified, files[3].Status)
	assert.Equal(t, "TypeScript", files[3].Language)
	assert.Equal(t, model.CategorySource, files[3].Category)

	assert.Equal(t, model.CategoryDoc, files[4].Category)
	assert.Equal(t, "Markdown", files[4].Language)
}

func TestParseRefsEveryFileHasOneStatusAndCategory(t *testing.T) {
	vcs := &fakeSummarizer{summary: &git.DiffSummary{
		Entries: []git.DiffEntry{
			{PathSpec: "a.ts"},
			{PathSpec: "b.test.ts"},
			{PathSpec: "package.json"},
		},
	}}

	files, err := ParseRefs(vcs, "main", "HEAD")
	require.NoError(t, err)
	for _, f := range files {
		assert.NotEmpty(t, f.Status, f.Path)
		assert.NotEmpty(t, f.Category, f.Path)
	}
}

const sampleUnified = `diff --git a/src/hello.ts b/src/hello.ts
new file mode 100644
index 0000000..e69de29
--- /dev/null
+++ b/src/hello.ts
@@ -0,0 +1,5 @@
+export function hello(): string {
+  return "hello";
+}
+
+export const greeting = "hi";
diff --git a/readme.md b/readme.md
index abc1234..def5678 100644
--- a/readme.md
+++ b/readme.md
@@ -1,3 +1,4 @@
 # Project

-Old description
+New description
+Added line
`

func TestParseUnified(t *testing.T) {
	files, err := ParseUnified(sampleUnified)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "src/hello.ts", files[0].Path)
	assert.Equal(t, model.StatusAdded, files[0].Status)
	assert.Equal(t, 5, files[0].Additions)
	assert.Equal(t, model.CategorySource, files[0].Category)

	assert.Equal(t, "readme.md", files[1].Path)
	assert.Equal(t, model.StatusModified, files[1].Status)
	assert.Equal(t, 2, files[1].Additions)
	assert.Equal(t, 1, files[1].Deletions)
	assert.Equal(t, model.CategoryDoc, files[1].Category)
}

func TestParseUnifiedEmpty(t *testing.T) {
	files, err := ParseUnified("")
	require.NoError(t, err)
	assert.Empty(t, files)
}
