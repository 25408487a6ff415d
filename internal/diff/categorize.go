package diff

import (
	"path"
	"strings"

	"github.com/ducdmdev/prrisk/internal/model"
)

// Well-known configuration filenames.
var configNames = map[string]bool{
	"package.json":       true,
	"package-lock.json":  true,
	"yarn.lock":          true,
	"pnpm-lock.yaml":     true,
	"tsconfig.json":      true,
	"jsconfig.json":      true,
	"go.mod":             true,
	"go.sum":             true,
	"cargo.toml":         true,
	"cargo.lock":         true,
	"gemfile":            true,
	"gemfile.lock":       true,
	"requirements.txt":   true,
	"pyproject.toml":     true,
	"dockerfile":         true,
	"docker-compose.yml": true,
	"docker-compose.yaml": true,
	"compose.yml":        true,
	"compose.yaml":       true,
	"makefile":           true,
	"jenkinsfile":        true,
	".gitignore":         true,
	".gitattributes":     true,
	".dockerignore":      true,
	".editorconfig":      true,
	".nvmrc":             true,
	".travis.yml":        true,
	".gitlab-ci.yml":     true,
	"azure-pipelines.yml": true,
}

// Configuration filename prefixes (tooling config families).
var configPrefixes = []string{
	"webpack.config",
	"rollup.config",
	"vite.config",
	"babel.config",
	"jest.config",
	"vitest.config",
	"eslint.config",
	".eslintrc",
	".prettierrc",
	".babelrc",
}

// Source-code extensions for categorization (wider than the set the
// engine can extract exports from).
var sourceCodeExts = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".mjs": true, ".cjs": true, ".vue": true, ".svelte": true,
	".go": true, ".py": true, ".rb": true, ".rs": true,
	".java": true, ".kt": true, ".scala": true, ".swift": true,
	".c": true, ".h": true, ".cpp": true, ".hpp": true,
	".cs": true, ".php": true, ".ex": true, ".exs": true,
}

var docFileExts = map[string]bool{
	".md": true, ".mdx": true, ".rst": true, ".txt": true,
}

// Categorize maps a repository-relative path to exactly one category.
// Precedence: test patterns, then docs, then config, then source
// extension, otherwise other. Pure: no I/O.
func Categorize(p string) model.FileCategory {
	p = path.Clean(strings.ReplaceAll(p, "\\", "/"))
	base := path.Base(p)
	lowerBase := strings.ToLower(base)
	ext := strings.ToLower(path.Ext(p))

	if isTestPath(p, lowerBase) {
		return model.CategoryTest
	}

	if docFileExts[ext] || strings.HasPrefix(p, "docs/") || strings.HasPrefix(p, "doc/") {
		return model.CategoryDoc
	}

	if isConfigPath(p, lowerBase) {
		return model.CategoryConfig
	}

	if sourceCodeExts[ext] {
		return model.CategorySource
	}

	return model.CategoryOther
}

func isTestPath(p, lowerBase string) bool {
	for _, dir := range strings.Split(path.Dir(p), "/") {
		switch dir {
		case "__tests__", "test", "tests":
			return true
		}
	}
	if strings.Contains(lowerBase, ".test.") || strings.Contains(lowerBase, ".spec.") {
		return true
	}
	return strings.HasPrefix(lowerBase, "test")
}

func isConfigPath(p, lowerBase string) bool {
	if strings.HasPrefix(p, ".github/") {
		return true
	}
	if configNames[lowerBase] {
		return true
	}
	for _, prefix := range configPrefixes {
		if strings.HasPrefix(lowerBase, prefix) {
			return true
		}
	}
	// Remaining dotfiles at any depth count as config.
	return strings.HasPrefix(lowerBase, ".")
}
