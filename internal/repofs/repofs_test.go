package repofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSourceFilesSkipsVendorDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.ts", "export const a = 1;")
	writeFile(t, root, "src/b.tsx", "export const b = 2;")
	writeFile(t, root, "node_modules/pkg/index.js", "module.exports = {};")
	writeFile(t, root, "dist/a.js", "var a = 1;")
	writeFile(t, root, "README.md", "# readme")

	d := New(root)
	files, err := d.SourceFiles()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"src/a.ts", "src/b.tsx"}, files)
}

func TestDocFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "# readme")
	writeFile(t, root, "docs/guide.mdx", "guide")
	writeFile(t, root, "src/a.ts", "export {}")

	d := New(root)
	files, err := d.DocFiles()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"README.md", "docs/guide.mdx"}, files)
}

func TestExistsAndRead(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.ts", "export const a = 1;")

	d := New(root)
	assert.True(t, d.Exists("src/a.ts"))
	assert.False(t, d.Exists("src/missing.ts"))

	content, err := d.ReadFile("src/a.ts")
	require.NoError(t, err)
	assert.Equal(t, "export const a = 1;", content)
}
