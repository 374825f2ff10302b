// Package colorize writes markup to a terminal with ANSI colors.
package colorize

import (
	"io"

	"braces.dev/errtrace"
	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
)

// TermStyle is the palette for colorized output.
// Tags, attributes, and strings get distinct colors
// so an added class attribute is easy to spot.
var TermStyle = chroma.MustNewStyle("highlight-here", chroma.StyleEntries{
	chroma.NameTag:       "#5fafd7",
	chroma.NameAttribute: "#87af87",
	chroma.LiteralString: "#d7af5f",
	chroma.Comment:       "#808080",
})

var _htmlLexer = newHTMLLexer()

func newHTMLLexer() chroma.Lexer {
	l := lexers.Get("html")
	if l == nil {
		return lexers.Fallback
	}
	return chroma.Coalesce(l)
}

// HTML writes markup to w, colorized for a 256-color terminal.
func HTML(w io.Writer, markup string) error {
	tokens, err := chroma.Tokenise(_htmlLexer, nil, markup)
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(formatters.TTY256.Format(w, TermStyle, chroma.Literator(tokens...)))
}
