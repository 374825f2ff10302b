package highlighthere

import (
	"strings"

	"braces.dev/errtrace"
	"golang.org/x/net/html"
)

// Comment markers recognized by [Highlighter.Blocks].
const (
	_markerHere   = "highlight_here"
	_markerParent = "highlight_here_parent"
	_markerEnd    = "endhighlight"
)

// blockMarker is an opening marker whose endhighlight has not been
// seen yet.
type blockMarker struct {
	name   string
	parent bool
	class  string
}

// Blocks rewrites only the regions of markup wrapped in highlight
// markers, leaving everything outside them byte for byte intact.
// Markers are HTML comments:
//
//	<!-- highlight_here -->
//	<ul>
//		<li><a href="/blog/">Blog</a></li>
//	</ul>
//	<!-- endhighlight -->
//
// A highlight_here_parent marker marks anchor parents the way
// [Highlighter.HereParent] does, and either opening marker takes an
// optional class argument:
//
//	<!-- highlight_here "active" -->
//
// The markers themselves are consumed. Blocks cannot nest; an opening
// marker inside a block, an endhighlight outside one, and a block that
// never ends all report [ErrMalformedMarkup].
func (h *Highlighter) Blocks(markup, path string) (string, error) {
	var out, block strings.Builder
	var open *blockMarker

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := scanError(z, 0); err != nil {
				return "", err
			}
			if open != nil {
				return "", errtrace.Errorf("%s block is never closed: %w", open.name, ErrMalformedMarkup)
			}
			return out.String(), nil
		}

		raw := z.Raw()
		if tt != html.CommentToken {
			writeRaw(&out, &block, open, raw)
			continue
		}

		tok := z.Token()
		fields := strings.Fields(tok.Data)
		var marker string
		if len(fields) > 0 {
			marker = fields[0]
		}

		switch marker {
		case _markerHere, _markerParent:
			if open != nil {
				return "", errtrace.Errorf("%s inside a %s block: %w", marker, open.name, ErrMalformedMarkup)
			}
			class, err := markerClass(fields, h.class())
			if err != nil {
				return "", err
			}
			open = &blockMarker{
				name:   marker,
				parent: marker == _markerParent,
				class:  class,
			}

		case _markerEnd:
			if open == nil {
				return "", errtrace.Errorf("%s without an open block: %w", _markerEnd, ErrMalformedMarkup)
			}
			rewrite := h.hereWithClass
			if open.parent {
				rewrite = h.hereParentWithClass
			}
			got, err := rewrite(block.String(), path, open.class)
			if err != nil {
				return "", err
			}
			out.WriteString(got)
			block.Reset()
			open = nil

		default:
			writeRaw(&out, &block, open, raw)
		}
	}
}

// Blocks rewrites markup with a default Highlighter.
func Blocks(markup, path string) (string, error) {
	return new(Highlighter).Blocks(markup, path)
}

// markerClass resolves the optional class argument of an opening
// marker. The argument may be bare or double-quoted.
func markerClass(fields []string, fallback string) (string, error) {
	switch len(fields) {
	case 1:
		return fallback, nil
	case 2:
		if class := strings.Trim(fields[1], `"`); class != "" {
			return class, nil
		}
		return fallback, nil
	default:
		return "", errtrace.Errorf("marker %q: want at most one class argument: %w",
			strings.Join(fields, " "), ErrMalformedMarkup)
	}
}

func writeRaw(out, block *strings.Builder, open *blockMarker, raw []byte) {
	if open != nil {
		block.Write(raw)
		return
	}
	out.Write(raw)
}
