package diff

import (
	"path"
	"strings"
)

var langByExt = map[string]string{
	".ts":     "TypeScript",
	".tsx":    "TypeScript",
	".js":     "JavaScript",
	".jsx":    "JavaScript",
	".mjs":    "JavaScript",
	".cjs":    "JavaScript",
	".go":     "Go",
	".py":     "Python",
	".rb":     "Ruby",
	".rs":     "Rust",
	".java":   "Java",
	".kt":     "Kotlin",
	".scala":  "Scala",
	".swift":  "Swift",
	".c":      "C",
	".h":      "C",
	".cpp":    "C++",
	".hpp":    "C++",
	".cs":     "C#",
	".php":    "PHP",
	".ex":     "Elixir",
	".exs":    "Elixir",
	".vue":    "Vue",
	".svelte": "Svelte",
	".md":     "Markdown",
	".mdx":    "Markdown",
	".rst":    "reStructuredText",
	".json":   "JSON",
	".yml":    "YAML",
	".yaml":   "YAML",
	".toml":   "TOML",
	".sh":     "Shell",
	".bash":   "Shell",
	".sql":    "SQL",
	".css":    "CSS",
	".scss":   "CSS",
	".html":   "HTML",
	".proto":  "Protobuf",
}

// Bare filenames with a well-known language.
var langByName = map[string]string{
	"dockerfile": "Docker",
	"makefile":   "Make",
	"rakefile":   "Ruby",
	"gemfile":    "Ruby",
	"jenkinsfile": "Groovy",
}

// DetectLanguage maps a filename to a language tag, "unknown" when no
// rule applies.
func DetectLanguage(p string) string {
	base := strings.ToLower(path.Base(p))
	if lang, ok := langByName[base]; ok {
		return lang
	}
	if lang, ok := langByExt[strings.ToLower(path.Ext(p))]; ok {
		return lang
	}
	return "unknown"
}
