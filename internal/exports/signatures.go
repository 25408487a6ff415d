package exports

import (
	"fmt"
	"strings"
)

// SignatureDiff is the result of structurally comparing two function
// signatures.
type SignatureDiff struct {
	Changed bool
	Details []string
}

// DiffSignatures compares two signatures of form "(params): returnType"
// independent of whitespace. It reports atomic differences (parameter
// count, per-position parameter type, return type) when it can identify
// them, and a generic "signature changed" otherwise.
func DiffSignatures(baseSig, headSig string) SignatureDiff {
	baseSig = normalizeSpace(baseSig)
	headSig = normalizeSpace(headSig)

	switch {
	case baseSig == headSig:
		return SignatureDiff{}
	case baseSig == "":
		return SignatureDiff{Changed: true, Details: []string{"signature added"}}
	case headSig == "":
		return SignatureDiff{Changed: true, Details: []string{"signature removed"}}
	}

	baseParams, baseRet := splitSignature(baseSig)
	headParams, headRet := splitSignature(headSig)

	var details []string

	if len(baseParams) != len(headParams) {
		details = append(details, fmt.Sprintf("parameter count changed from %d to %d", len(baseParams), len(headParams)))
	}

	n := len(baseParams)
	if len(headParams) < n {
		n = len(headParams)
	}
	for i := 0; i < n; i++ {
		bt := paramType(baseParams[i])
		ht := paramType(headParams[i])
		if bt != ht {
			details = append(details, fmt.Sprintf("parameter %d type changed from %q to %q", i+1, bt, ht))
		}
	}

	switch {
	case baseRet == "" && headRet != "":
		details = append(details, fmt.Sprintf("return type added %q", headRet))
	case baseRet != "" && headRet == "":
		details = append(details, fmt.Sprintf("return type removed %q", baseRet))
	case baseRet != headRet:
		details = append(details, fmt.Sprintf("return type changed from %q to %q", baseRet, headRet))
	}

	if len(details) == 0 {
		details = append(details, "signature changed")
	}
	return SignatureDiff{Changed: true, Details: details}
}

// splitSignature separates "(a: string, b: number): void" into its
// parameter list and return type, respecting nested brackets.
func splitSignature(sig string) (params []string, returnType string) {
	open := strings.Index(sig, "(")
	if open < 0 {
		return nil, ""
	}

	depth := 0
	closeIdx := -1
	for i := open; i < len(sig); i++ {
		switch sig[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 && sig[i] == ')' {
				closeIdx = i
			}
		}
		if closeIdx >= 0 {
			break
		}
	}
	if closeIdx < 0 {
		return nil, ""
	}

	params = splitTopLevel(sig[open+1 : closeIdx])

	rest := strings.TrimSpace(sig[closeIdx+1:])
	if strings.HasPrefix(rest, ":") {
		returnType = normalizeSpace(rest[1:])
	}
	return params, returnType
}

// splitTopLevel splits on commas outside any bracket nesting.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if strings.TrimSpace(s[start:]) != "" {
		parts = append(parts, s[start:])
	}

	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// paramType extracts the declared type of a parameter: the substring
// after the first top-level colon, with a leading spread marker
// stripped. Parameters without an annotation yield "".
func paramType(param string) string {
	param = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(param), "..."))
	depth := 0
	for i := 0; i < len(param); i++ {
		switch param[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ':':
			if depth == 0 {
				return normalizeSpace(param[i+1:])
			}
		}
	}
	return ""
}
