package highlighthere

import (
	"strings"

	"braces.dev/errtrace"
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/fusionbox/django-highlight-here/internal/pathmatch"
)

// _anchors matches anchors that carry a link target.
var _anchors = cascadia.MustCompile("a[href]")

// HereParent is like [Highlighter.Here], but marks the parent element of
// each matching anchor instead of the anchor itself. This fits markup
// like navigation lists, where the <li> around a link is what carries
// the styling:
//
//	<ul>
//		<li><a href="/">Home</a></li>
//		<li><a href="/blog/">Blog</a></li>
//	</ul>
//
// Anchors at the top level of the fragment have no parent and are left
// alone. Unlike Here, HereParent rebuilds the whole fragment from a
// parsed tree, so formatting details such as attribute quoting may be
// normalized. The result is stable: rewriting an already rewritten
// fragment returns it unchanged.
func (h *Highlighter) HereParent(markup, path string) (string, error) {
	return h.hereParentWithClass(markup, path, h.class())
}

// HereParent rewrites markup with a default Highlighter.
func HereParent(markup, path string) (string, error) {
	return new(Highlighter).HereParent(markup, path)
}

func (h *Highlighter) hereParentWithClass(markup, path, class string) (string, error) {
	if err := checkBalance(markup); err != nil {
		return "", err
	}

	frag, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	})
	if err != nil {
		return "", errtrace.Wrap(err)
	}

	container := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Div,
		Data:     "div",
	}
	for _, n := range frag {
		container.AppendChild(n)
	}

	doc := goquery.NewDocumentFromNode(container)
	doc.FindMatcher(_anchors).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !pathmatch.Underneath(path, href) {
			h.debugf("anchor %q: not here", href)
			return
		}

		parent := s.Parent()
		if len(parent.Nodes) == 0 || parent.Nodes[0] == container {
			h.debugf("anchor %q: here, no parent to mark", href)
			return
		}

		if parent.HasClass(class) {
			h.debugf("anchor %q: here, parent already marked", href)
			return
		}
		parent.AddClass(class)
		h.debugf("anchor %q: here, marked parent <%s>", href, goquery.NodeName(parent))
	})

	var out strings.Builder
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&out, c); err != nil {
			return "", errtrace.Wrap(err)
		}
	}
	return out.String(), nil
}

// checkBalance scans markup the way [Highlighter.Here] does, without
// rewriting anything. Parsing proper repairs broken trees silently, so
// anchor boundaries are verified up front.
func checkBalance(markup string) error {
	depth := 0
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return scanError(z, depth)

		case html.StartTagToken:
			if tok := z.Token(); tok.Data == "a" {
				depth++
			}

		case html.EndTagToken:
			if tok := z.Token(); tok.Data == "a" {
				depth--
				if depth < 0 {
					return errtrace.Errorf("</a> without an open <a>: %w", ErrMalformedMarkup)
				}
			}
		}
	}
}
