// Package highlighthere marks navigation links that point at the current
// page. It is a Go port of the django-highlight-here template library.
//
// Given a fragment of markup and the current request's path, [Highlighter.Here]
// appends a class token (default "here") to every anchor whose href leads to
// that path or to a page above it:
//
//	<a href="/" class="home">/</a>
//	<a href="/blog/">blog</a>
//
// On /, the first anchor becomes <a href="/" class="home here">.
// On /blog/, the second becomes <a href="/blog/" class="here"> and the
// first is left alone: the root href matches only the root page.
//
// [Highlighter.HereParent] puts the class on the anchors' parent elements
// instead, for nested navs where the highlight style lives on a wrapping
// li rather than the link itself.
//
// Three integration surfaces are provided:
//
//   - [TemplateFuncs] exposes the rewrites and the hereClass helper
//     to html/template.
//   - [Highlighter.Blocks] rewrites regions bounded by
//     <!-- highlight_here --> ... <!-- endhighlight --> comment markers,
//     and [Highlighter.Handler] applies it to HTTP responses.
//   - cmd/highlight-here does the same as a one-shot filter.
//
// All operations are pure functions of their inputs and safe for
// concurrent use.
package highlighthere
