package highlighthere

import (
	"fmt"
	"html/template"

	"braces.dev/errtrace"

	"github.com/fusionbox/django-highlight-here/internal/pathmatch"
)

// TemplateFuncs exposes the rewriters as functions for html/template.
// The zero value uses a default [Highlighter].
//
// The current path is an explicit argument to every function, so a
// single template parsed with these functions can serve any request:
//
//	tmpl := template.Must(template.New("page").
//		Funcs(highlighthere.TemplateFuncs{}.FuncMap()).
//		Parse(`<nav>{{highlightHere .Path .Nav}}</nav>`))
type TemplateFuncs struct {
	// Highlighter used by the functions. nil means a default one.
	Highlighter *Highlighter
}

// FuncMap returns the function set:
//
//	highlightHere path markup
//	highlightHereParent path markup
//	hereClass path href
//
// highlightHere and highlightHereParent apply [Highlighter.Here] and
// [Highlighter.HereParent] to a rendered fragment and return it as
// template.HTML. hereClass returns the highlight class when href
// points at path or a page above it, and "" otherwise, for templates
// that would rather write the class attribute themselves:
//
//	<a href="/blog/" class="nav-link {{hereClass .Path "/blog/"}}">Blog</a>
func (f TemplateFuncs) FuncMap() template.FuncMap {
	return template.FuncMap{
		"highlightHere":       f.highlightHere,
		"highlightHereParent": f.highlightHereParent,
		"hereClass":           f.hereClass,
	}
}

func (f TemplateFuncs) highlightHere(path string, markup any) (template.HTML, error) {
	s, err := markupString(markup)
	if err != nil {
		return "", err
	}
	got, err := f.highlighter().Here(s, path)
	return template.HTML(got), err
}

func (f TemplateFuncs) highlightHereParent(path string, markup any) (template.HTML, error) {
	s, err := markupString(markup)
	if err != nil {
		return "", err
	}
	got, err := f.highlighter().HereParent(s, path)
	return template.HTML(got), err
}

func (f TemplateFuncs) hereClass(path, href string) string {
	if pathmatch.Underneath(path, href) {
		return f.highlighter().class()
	}
	return ""
}

func (f TemplateFuncs) highlighter() *Highlighter {
	if f.Highlighter != nil {
		return f.Highlighter
	}
	return new(Highlighter)
}

// markupString accepts the fragment types templates commonly hold.
func markupString(markup any) (string, error) {
	switch s := markup.(type) {
	case template.HTML:
		return string(s), nil
	case string:
		return s, nil
	case fmt.Stringer:
		return s.String(), nil
	default:
		return "", errtrace.Errorf("markup must be a string or template.HTML, got %T", markup)
	}
}
