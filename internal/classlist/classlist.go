// Package classlist edits the space-separated token lists
// found in HTML class attributes.
package classlist

import "strings"

// Add returns list with token appended,
// and reports whether the list changed.
//
// Existing tokens keep their relative order and the new token goes last.
// If token is already in the list, or is empty, list is returned untouched.
// A changed list is re-joined with single spaces.
func Add(list, token string) (string, bool) {
	if token == "" {
		return list, false
	}

	tokens := strings.Fields(list)
	for _, tok := range tokens {
		if tok == token {
			return list, false
		}
	}

	if len(tokens) == 0 {
		return token, true
	}
	return strings.Join(tokens, " ") + " " + token, true
}
