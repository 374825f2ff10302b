package highlighthere

import (
	"errors"
	"io"
	"log"
	"strings"

	"braces.dev/errtrace"
	"golang.org/x/net/html"

	"github.com/fusionbox/django-highlight-here/internal/classlist"
	"github.com/fusionbox/django-highlight-here/internal/pathmatch"
)

// DefaultClass is the class token appended to matching anchors
// when no other class is configured.
const DefaultClass = "here"

// ErrMalformedMarkup is reported when a fragment's anchor boundaries
// cannot be determined: the input ends inside a tag, an <a> is never
// closed, or a </a> has no matching opener.
var ErrMalformedMarkup = errors.New("malformed markup")

// Highlighter rewrites markup fragments, marking the anchors that
// point at the current page. The zero value is ready to use.
type Highlighter struct {
	// Class is the token added to matching anchors' class attribute.
	// Defaults to [DefaultClass].
	Class string

	// DebugLog, if set, receives a line per anchor
	// explaining the match decision.
	DebugLog *log.Logger
}

// Here returns a copy of markup where every anchor whose href points at
// path, or at a page above it, carries the highlight class.
//
// An anchor matches when its href is a prefix of path, except that an
// empty href matches nothing and href="/" matches only path "/".
// Anchors that already carry the class, anchors that do not match, and
// everything that is not an anchor are reproduced byte for byte, so
// applying Here twice gives the same bytes as applying it once.
func (h *Highlighter) Here(markup, path string) (string, error) {
	return h.hereWithClass(markup, path, h.class())
}

// Here rewrites markup with a default Highlighter.
func Here(markup, path string) (string, error) {
	return new(Highlighter).Here(markup, path)
}

func (h *Highlighter) class() string {
	if h.Class != "" {
		return h.Class
	}
	return DefaultClass
}

func (h *Highlighter) debugf(format string, args ...any) {
	if h.DebugLog != nil {
		h.DebugLog.Printf(format, args...)
	}
}

func (h *Highlighter) hereWithClass(markup, path, class string) (string, error) {
	var out strings.Builder
	out.Grow(len(markup) + len(class) + len(` class=""`))

	depth := 0 // open <a> tags
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := scanError(z, depth); err != nil {
				return "", err
			}
			return out.String(), nil

		case html.StartTagToken, html.SelfClosingTagToken:
			raw := z.Raw()
			tok := z.Token()
			if tok.Data != "a" {
				out.Write(raw)
				continue
			}
			if tok.Type == html.StartTagToken {
				depth++
			}
			h.writeAnchor(&out, raw, tok, path, class)

		case html.EndTagToken:
			raw := z.Raw()
			if tok := z.Token(); tok.Data == "a" {
				depth--
				if depth < 0 {
					return "", errtrace.Errorf("</a> without an open <a>: %w", ErrMalformedMarkup)
				}
			}
			out.Write(raw)

		default:
			out.Write(z.Raw())
		}
	}
}

// writeAnchor emits a single anchor start tag, rebuilding it with the
// highlight class when the anchor matches and the class is new.
// Anything else is passed through untouched.
func (h *Highlighter) writeAnchor(out *strings.Builder, raw []byte, tok html.Token, path, class string) {
	href := attrVal(tok.Attr, "href")
	switch {
	case href == "":
		h.debugf("anchor with no href: skipped")
	case !pathmatch.Underneath(path, href):
		h.debugf("anchor %q: not here", href)
	default:
		merged, changed := classlist.Add(attrVal(tok.Attr, "class"), class)
		if !changed {
			h.debugf("anchor %q: here, class %q already set", href, class)
			break
		}
		h.debugf("anchor %q: here", href)
		setAttr(&tok, "class", merged)
		out.WriteString(tok.String())
		return
	}
	out.Write(raw)
}

// scanError translates the tokenizer's terminal state into an error.
// A leftover raw token means the input ended inside a tag.
func scanError(z *html.Tokenizer, depth int) error {
	if err := z.Err(); !errors.Is(err, io.EOF) {
		return errtrace.Errorf("scan markup: %w", err)
	}
	if raw := z.Raw(); len(raw) > 0 {
		return errtrace.Errorf("unterminated tag %q: %w", truncate(string(raw), 40), ErrMalformedMarkup)
	}
	if depth > 0 {
		return errtrace.Errorf("%d unclosed <a> tag(s): %w", depth, ErrMalformedMarkup)
	}
	return nil
}

func attrVal(attrs []html.Attribute, key string) string {
	for _, a := range attrs {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(tok *html.Token, key, val string) {
	for i, a := range tok.Attr {
		if a.Key == key {
			tok.Attr[i].Val = val
			return
		}
	}
	tok.Attr = append(tok.Attr, html.Attribute{Key: key, Val: val})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
