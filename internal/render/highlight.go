package render

import (
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chroma_html "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

func formatter() *chroma_html.Formatter {
	return chroma_html.New(
		chroma_html.WithClasses(true),
		chroma_html.TabWidth(4),
		chroma_html.WithLineNumbers(true),
		chroma_html.WrapLongLines(true),
	)
}

func HighlightCode(code, language, highlightTheme string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	style := styles.Get(highlightTheme)
	if style == nil {
		style = styles.Fallback
	}

	var buf strings.Builder
	if err := formatter().Format(&buf, style, iterator); err != nil {
		return code
	}

	return html.UnescapeString(buf.String())
}
