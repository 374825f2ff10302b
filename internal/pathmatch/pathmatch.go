// Package pathmatch decides whether one request path lies underneath another.
package pathmatch

import "strings"

// Underneath reports whether current is the page that target points at,
// or a page below it.
//
// Matching is a plain prefix comparison: case-sensitive, byte for byte,
// with no slash normalization and no URL decoding. Two values are special:
// an empty target matches nothing, and the root target "/" matches only
// the root itself.
func Underneath(current, target string) bool {
	switch target {
	case "":
		return false
	case "/":
		return current == "/"
	}
	return strings.HasPrefix(current, target)
}
