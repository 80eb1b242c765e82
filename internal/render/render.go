// Package render turns post and review markdown into highlighted HTML for
// the preview command.
package render

import (
	"fmt"
	"io"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	md_html "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/rs/zerolog"

	"github.com/techboard/techboard/internal/cache"
	"github.com/techboard/techboard/internal/util"
)

var renderLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	renderLogger = l
}

// Rendered previews are cached per content hash and syntax theme.
var renderedCache = cache.NewCache[string, []byte]()

func Markdown(md []byte, syntaxTheme string) []byte {
	opts := md_html.RendererOptions{
		Flags: md_html.CommonFlags | md_html.HrefTargetBlank | md_html.FootnoteReturnLinks,
		RenderNodeHook: func(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
			if code, ok := node.(*ast.CodeBlock); ok && entering {
				var lang string
				if info := code.Info; info != nil {
					lang = string(info)
				}
				highlighted := HighlightCode(string(code.Literal), lang, syntaxTheme)
				fmt.Fprintf(w, "<div class=\"highlight\">%s</div>", highlighted)
				return ast.GoToNext, true
			}
			return ast.GoToNext, false
		},
	}

	doc := parser.NewWithExtensions(
		parser.Tables | parser.FencedCode | parser.Autolink | parser.Strikethrough |
			parser.SpaceHeadings | parser.HeadingIDs | parser.AutoHeadingIDs |
			parser.Footnotes | parser.DefinitionLists | parser.OrderedListStart,
	).Parse(md)

	return markdown.Render(doc, md_html.NewRenderer(opts))
}

// MarkdownCached renders through the preview cache.
func MarkdownCached(md []byte, syntaxTheme string) []byte {
	key := util.ContentHash(md) + ":" + syntaxTheme
	if html, ok := renderedCache.Get(key); ok {
		renderLogger.Debug().Str("key", key).Msg("Preview cache hit")
		return html
	}

	html := Markdown(md, syntaxTheme)
	renderedCache.Set(key, html)
	return html
}
