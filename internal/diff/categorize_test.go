package diff

import (
	"testing"

	"github.com/ducdmdev/prrisk/internal/model"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		path string
		want model.FileCategory
	}{
		// Test patterns win over source extensions.
		{"src/foo.test.ts", model.CategoryTest},
		{"src/foo.spec.js", model.CategoryTest},
		{"src/__tests__/foo.ts", model.CategoryTest},
		{"test/helpers.ts", model.CategoryTest},
		{"tests/integration/api.js", model.CategoryTest},
		{"src/testUtils.ts", model.CategoryTest},

		// Docs.
		{"README.md", model.CategoryDoc},
		{"docs/guide.txt", model.CategoryDoc},
		{"doc/design.html", model.CategoryDoc},
		{"CHANGELOG.mdx", model.CategoryDoc},

		// Config.
		{"package.json", model.CategoryConfig},
		{"pnpm-lock.yaml", model.CategoryConfig},
		{"webpack.config.js", model.CategoryConfig},
		{".eslintrc.json", model.CategoryConfig},
		{".github/workflows/ci.yml", model.CategoryConfig},
		{"Dockerfile", model.CategoryConfig},
		{"Makefile", model.CategoryConfig},
		{"src/.env", model.CategoryConfig},

		// Source.
		{"src/index.ts", model.CategorySource},
		{"lib/util.go", model.CategorySource},
		{"app/main.py", model.CategorySource},
		{"components/App.vue", model.CategorySource},

		// Other.
		{"assets/logo.png", model.CategoryOther},
		{"data.csv", model.CategoryOther},
	}
	for _, tt := range tests {
		if got := Categorize(tt.path); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"src/index.ts", "TypeScript"},
		{"src/app.jsx", "JavaScript"},
		{"main.go", "Go"},
		{"Dockerfile", "Docker"},
		{"Makefile", "Make"},
		{"README.md", "Markdown"},
		{"mystery.xyz", "unknown"},
		{"noextension", "unknown"},
	}
	for _, tt := range tests {
		if got := DetectLanguage(tt.path); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
