package report

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// highlightCode syntax-highlights a code snippet for terminal output,
// picking a lexer from the path's extension. Falls back to the plain
// text on any lexer failure.
func highlightCode(path, code string) string {
	lexer := lexerForFile(path)
	if lexer == nil {
		return code
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	style := styles.Get("dracula")
	if style == nil {
		style = styles.Fallback
	}

	var b strings.Builder
	for _, token := range iterator.Tokens() {
		entry := style.Get(token.Type)
		if entry.Colour.IsSet() {
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(entry.Colour.String())).
				Render(token.Value))
		} else {
			b.WriteString(token.Value)
		}
	}
	return b.String()
}

func lexerForFile(path string) chroma.Lexer {
	lexer := lexers.Match(path)
	if lexer == nil {
		if i := strings.LastIndex(path, "."); i >= 0 {
			lexer = lexers.Match("file" + path[i:])
		}
	}
	if lexer != nil {
		lexer = chroma.Coalesce(lexer)
	}
	return lexer
}
