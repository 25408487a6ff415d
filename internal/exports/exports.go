// Package exports extracts exported symbols from JavaScript/TypeScript
// source text and structurally compares them between two revisions.
//
// Extraction is ordered pattern matching over comment-stripped text,
// not a real parser. That trades bounded false positives/negatives for
// needing no language toolchain; the pattern order and symbol-kind
// taxonomy are part of the tool's compatibility surface and must not
// change silently.
package exports

import (
	"regexp"
	"strings"

	"github.com/ducdmdev/prrisk/internal/model"
)

var (
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRe  = regexp.MustCompile(`(?m)//[^\n]*`)

	defaultFuncRe = regexp.MustCompile(`(?m)^\s*export\s+default\s+(?:async\s+)?function\s*(\w*)\s*(\([^)]*\)(?:\s*:\s*[^{\n]+)?)?`)
	namedFuncRe   = regexp.MustCompile(`(?m)^\s*export\s+(?:async\s+)?function\s+(\w+)\s*(\([^)]*\)(?:\s*:\s*[^{\n]+)?)`)
	defaultClassRe = regexp.MustCompile(`(?m)^\s*export\s+default\s+(?:abstract\s+)?class\s*(\w*)`)
	namedClassRe   = regexp.MustCompile(`(?m)^\s*export\s+(?:abstract\s+)?class\s+(\w+)`)
	defaultIdentRe = regexp.MustCompile(`(?m)^\s*export\s+default\s+(\w+)\s*;?\s*$`)
	varRe          = regexp.MustCompile(`(?m)^\s*export\s+(const|let|var)\s+(\w+)\s*(?::\s*([^=;\n]+))?`)
	interfaceRe    = regexp.MustCompile(`(?m)^\s*export\s+interface\s+(\w+)`)
	typeAliasRe    = regexp.MustCompile(`(?m)^\s*export\s+type\s+(\w+)`)
	enumRe         = regexp.MustCompile(`(?m)^\s*export\s+(?:const\s+)?enum\s+(\w+)`)
	braceListRe    = regexp.MustCompile(`export\s*(type\s+)?\{([^}]*)\}`)
	braceItemRe    = regexp.MustCompile(`^(type\s+)?(\w+)(?:\s+as\s+(\w+))?$`)
)

// Keywords that the default-identifier pattern must not capture.
var defaultKeywords = map[string]bool{
	"function": true, "class": true, "async": true,
	"interface": true, "enum": true, "abstract": true,
	"const": true, "let": true, "var": true, "new": true,
}

// ParseExports extracts the exported symbols of one file, in pattern
// order, deduplicated by (isDefault, name) with first occurrence
// winning.
func ParseExports(content, path string) model.FileExports {
	content = StripComments(content)

	var symbols []model.ExportedSymbol
	add := func(s model.ExportedSymbol) {
		symbols = append(symbols, s)
	}

	// 1. Default function exports, named or anonymous.
	for _, m := range defaultFuncRe.FindAllStringSubmatch(content, -1) {
		name := m[1]
		if name == "" {
			name = "default"
		}
		add(model.ExportedSymbol{
			Name:      name,
			Kind:      model.KindFunction,
			Signature: normalizeSpace(m[2]),
			IsDefault: true,
		})
	}

	// 2. Named function exports.
	for _, m := range namedFuncRe.FindAllStringSubmatch(content, -1) {
		add(model.ExportedSymbol{
			Name:      m[1],
			Kind:      model.KindFunction,
			Signature: normalizeSpace(m[2]),
		})
	}

	// 3. Class and bare default exports.
	for _, m := range defaultClassRe.FindAllStringSubmatch(content, -1) {
		name := m[1]
		if name == "" {
			name = "default"
		}
		add(model.ExportedSymbol{Name: name, Kind: model.KindClass, IsDefault: true})
	}
	for _, m := range namedClassRe.FindAllStringSubmatch(content, -1) {
		add(model.ExportedSymbol{Name: m[1], Kind: model.KindClass})
	}
	for _, m := range defaultIdentRe.FindAllStringSubmatch(content, -1) {
		if defaultKeywords[m[1]] {
			continue
		}
		add(model.ExportedSymbol{Name: m[1], Kind: model.KindVariable, IsDefault: true})
	}

	// 4. Variable and const exports, with an optional type annotation
	// kept as the signature.
	for _, m := range varRe.FindAllStringSubmatch(content, -1) {
		kind := model.KindVariable
		if m[1] == "const" {
			kind = model.KindConst
		}
		add(model.ExportedSymbol{
			Name:      m[2],
			Kind:      kind,
			Signature: normalizeSpace(m[3]),
		})
	}

	// 5. Interface, type alias, and enum exports.
	for _, m := range interfaceRe.FindAllStringSubmatch(content, -1) {
		add(model.ExportedSymbol{Name: m[1], Kind: model.KindInterface})
	}
	for _, m := range typeAliasRe.FindAllStringSubmatch(content, -1) {
		add(model.ExportedSymbol{Name: m[1], Kind: model.KindType})
	}
	for _, m := range enumRe.FindAllStringSubmatch(content, -1) {
		add(model.ExportedSymbol{Name: m[1], Kind: model.KindEnum})
	}

	// 6. Brace-list named exports and re-exports.
	for _, m := range braceListRe.FindAllStringSubmatch(content, -1) {
		listIsType := m[1] != ""
		for _, item := range strings.Split(m[2], ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			im := braceItemRe.FindStringSubmatch(item)
			if im == nil {
				continue
			}
			sym := model.ExportedSymbol{Name: im[2], Kind: model.KindVariable}
			if listIsType || im[1] != "" {
				sym.Kind = model.KindType
			}
			switch {
			case im[3] == "default":
				sym.IsDefault = true
			case im[3] != "":
				sym.Name = im[3]
			}
			add(sym)
		}
	}

	return model.FileExports{Path: path, Symbols: dedupe(symbols)}
}

// dedupe keeps the first occurrence per (isDefault, name) key,
// preserving order.
func dedupe(symbols []model.ExportedSymbol) []model.ExportedSymbol {
	seen := make(map[string]bool, len(symbols))
	out := symbols[:0]
	for _, s := range symbols {
		if seen[s.Key()] {
			continue
		}
		seen[s.Key()] = true
		out = append(out, s)
	}
	return out
}

// StripComments removes block and line comments. String literals are
// not tracked; a comment marker inside a string is an accepted false
// positive.
func StripComments(content string) string {
	content = blockCommentRe.ReplaceAllStringFunc(content, func(m string) string {
		// Keep the newline count so later patterns still see line starts.
		return strings.Repeat("\n", strings.Count(m, "\n"))
	})
	return lineCommentRe.ReplaceAllString(content, "")
}

// SymbolChange pairs two revisions of the same exported symbol.
type SymbolChange struct {
	Before model.ExportedSymbol
	After  model.ExportedSymbol
}

// ExportDiff is the outcome of comparing a file's exports at two refs.
type ExportDiff struct {
	Removed  []model.ExportedSymbol
	Added    []model.ExportedSymbol
	Modified []SymbolChange
}

// DiffExports compares exports between base and head content of the
// same path. A symbol counts as modified when its kind differs or its
// whitespace-normalized signature differs.
func DiffExports(path, baseContent, headContent string) ExportDiff {
	base := ParseExports(baseContent, path)
	head := ParseExports(headContent, path)

	headByKey := make(map[string]model.ExportedSymbol, len(head.Symbols))
	for _, s := range head.Symbols {
		headByKey[s.Key()] = s
	}
	baseKeys := make(map[string]bool, len(base.Symbols))

	var d ExportDiff
	for _, b := range base.Symbols {
		baseKeys[b.Key()] = true
		h, ok := headByKey[b.Key()]
		if !ok {
			d.Removed = append(d.Removed, b)
			continue
		}
		if b.Kind != h.Kind || normalizeSpace(b.Signature) != normalizeSpace(h.Signature) {
			d.Modified = append(d.Modified, SymbolChange{Before: b, After: h})
		}
	}
	for _, h := range head.Symbols {
		if !baseKeys[h.Key()] {
			d.Added = append(d.Added, h)
		}
	}
	return d
}

var spaceRe = regexp.MustCompile(`\s+`)

func normalizeSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
