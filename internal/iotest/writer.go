// Package iotest provides io utilities for tests.
package iotest

import (
	"bytes"
	"io"
	"testing"

	"github.com/fusionbox/django-highlight-here/internal/linebuf"
)

var _newline = []byte("\n")

// Writer builds an io.Writer that logs everything written to it to the
// given testing.TB, one line per log entry. Partial lines are held
// back until their newline arrives, or until the test ends.
func Writer(t testing.TB) io.Writer {
	w, done := linebuf.Writer(func(line []byte) {
		// t.Logf adds its own newline.
		t.Logf("%s", bytes.TrimSuffix(line, _newline))
	})
	t.Cleanup(done)
	return w
}
