package highlighthere

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlighter_Here(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc  string
		class string // Highlighter.Class, empty for default
		give  string
		path  string
		want  string // empty means unchanged
	}{
		{
			desc: "anchor pointing at the current page",
			give: `<a href="/blog/">Blog</a>`,
			path: "/blog/",
			want: `<a href="/blog/" class="here">Blog</a>`,
		},
		{
			desc: "anchor above the current page",
			give: `<a href="/blog/">Blog</a>`,
			path: "/blog/2024/06/",
			want: `<a href="/blog/" class="here">Blog</a>`,
		},
		{
			desc: "anchor for an unrelated page",
			give: `<a href="/about/">About</a>`,
			path: "/blog/",
		},
		{
			desc: "root anchor on the root page",
			give: `<a href="/">Home</a>`,
			path: "/",
			want: `<a href="/" class="here">Home</a>`,
		},
		{
			desc: "root anchor on a subpage",
			give: `<a href="/">Home</a>`,
			path: "/blog/",
		},
		{
			desc: "nav pair on the root page",
			give: `<a href="/" class="home">/</a><a href="/blog/">blog</a>`,
			path: "/",
			want: `<a href="/" class="home here">/</a><a href="/blog/">blog</a>`,
		},
		{
			desc: "nav pair on a subpage",
			give: `<a href="/" class="home">/</a><a href="/blog/">blog</a>`,
			path: "/blog/",
			want: `<a href="/" class="home">/</a><a href="/blog/" class="here">blog</a>`,
		},
		{
			desc: "no anchors at all",
			give: `<p>hello, <em>world</em></p>`,
			path: "/",
		},
		{
			desc: "matching is case-sensitive",
			give: `<a href="/Blog/">Blog</a>`,
			path: "/blog/",
		},
		{
			desc: "existing classes are kept",
			give: `<a href="/blog/" class="nav-link">Blog</a>`,
			path: "/blog/",
			want: `<a href="/blog/" class="nav-link here">Blog</a>`,
		},
		{
			desc: "class attribute keeps its position",
			give: `<a class="nav-link" href="/blog/">Blog</a>`,
			path: "/blog/",
			want: `<a class="nav-link here" href="/blog/">Blog</a>`,
		},
		{
			desc: "already highlighted anchor is untouched",
			give: `<a href="/blog/" class="nav here">Blog</a>`,
			path: "/blog/",
		},
		{
			desc: "odd formatting survives when untouched",
			give: `<a  href='/about/' >About</a>`,
			path: "/blog/",
		},
		{
			desc: "only matching anchors change",
			give: `<ul><li><a href="/">Home</a></li>` +
				`<li><a href="/blog/">Blog</a></li>` +
				`<li><a href="/about/">About</a></li></ul>`,
			path: "/blog/2024/06/",
			want: `<ul><li><a href="/">Home</a></li>` +
				`<li><a href="/blog/" class="here">Blog</a></li>` +
				`<li><a href="/about/">About</a></li></ul>`,
		},
		{
			desc: "surrounding markup passes through",
			give: `<p>a &amp; b</p><a href="/x">x</a><!-- note -->`,
			path: "/x",
			want: `<p>a &amp; b</p><a href="/x" class="here">x</a><!-- note -->`,
		},
		{
			desc: "anchor without href",
			give: `<a name="top">Top</a>`,
			path: "/",
		},
		{
			desc: "anchor with empty href",
			give: `<a href="">x</a>`,
			path: "/",
		},
		{
			desc:  "custom class",
			class: "active",
			give:  `<a href="/x">x</a>`,
			path:  "/x",
			want:  `<a href="/x" class="active">x</a>`,
		},
		{
			desc:  "custom class already present",
			class: "active",
			give:  `<a href="/x" class="active">x</a>`,
			path:  "/x",
		},
		{
			desc: "uppercase anchor is matched and rebuilt lowercase",
			give: `<A HREF="/x">x</A>`,
			path: "/x",
			want: `<a href="/x" class="here">x</A>`,
		},
		{
			desc: "single-quoted href is rebuilt double-quoted",
			give: `<a href='/x'>x</a>`,
			path: "/x",
			want: `<a href="/x" class="here">x</a>`,
		},
		{
			desc: "self-closing anchor",
			give: `<a href="/x"/>`,
			path: "/x",
			want: `<a href="/x" class="here"/>`,
		},
		{
			desc: "lone angle bracket is text",
			give: `a < b, <a href="/x">x</a>`,
			path: "/x",
			want: `a < b, <a href="/x" class="here">x</a>`,
		},
		{
			desc: "unterminated comment scans clean",
			give: `<a href="/x">x</a><!-- draft`,
			path: "/x",
			want: `<a href="/x" class="here">x</a><!-- draft`,
		},
		{
			desc: "unclosed non-anchor tag is fine",
			give: `<div><a href="/x">x</a>`,
			path: "/x",
			want: `<div><a href="/x" class="here">x</a>`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			h := Highlighter{Class: tt.class}
			got, err := h.Here(tt.give, tt.path)
			require.NoError(t, err)

			want := tt.want
			if want == "" {
				want = tt.give
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestHighlighter_Here_idempotent(t *testing.T) {
	t.Parallel()

	const give = `<ul><li><a href="/">Home</a></li>` +
		`<li><a href="/blog/" class="nav-link">Blog</a></li></ul>`

	var h Highlighter
	once, err := h.Here(give, "/blog/")
	require.NoError(t, err)
	assert.Contains(t, once, `class="nav-link here"`)

	twice, err := h.Here(once, "/blog/")
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestHighlighter_Here_malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give string
	}{
		{
			desc: "input ends inside a tag",
			give: `<a href="/x`,
		},
		{
			desc: "input ends inside a later tag",
			give: `<p>hi</p><a href="/blog/`,
		},
		{
			desc: "unclosed anchor",
			give: `<a href="/x">dangling`,
		},
		{
			desc: "stray closing tag",
			give: `text</a>`,
		},
		{
			desc: "closing tag after a complete pair",
			give: `<a href="/x">x</a></a>`,
		},
		{
			desc: "nested anchors missing a close",
			give: `<a href="/x">a<a href="/y">b</a>`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			var h Highlighter
			_, err := h.Here(tt.give, "/x")
			assert.ErrorIs(t, err, ErrMalformedMarkup)
		})
	}

	t.Run("error names the tag", func(t *testing.T) {
		t.Parallel()

		var h Highlighter
		_, err := h.Here(`<a href="/x`, "/x")
		assert.ErrorContains(t, err, "unterminated tag")
	})
}

func TestHighlighter_Here_debugLog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := Highlighter{DebugLog: log.New(&buf, "", 0)}

	_, err := h.Here(
		`<a href="/blog/">B</a><a href="/about/">A</a><a name="top">T</a>`,
		"/blog/")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `anchor "/blog/": here`)
	assert.Contains(t, out, `anchor "/about/": not here`)
	assert.Contains(t, out, "anchor with no href: skipped")
}

func TestHere(t *testing.T) {
	t.Parallel()

	got, err := Here(`<a href="/docs/">Docs</a>`, "/docs/guide/")
	require.NoError(t, err)
	assert.Equal(t, `<a href="/docs/" class="here">Docs</a>`, got)
}
