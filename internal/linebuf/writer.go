// Package linebuf provides line-buffered IO utilities.
package linebuf

import (
	"bytes"
	"io"
	"sync"
)

// Writer returns an io.Writer that splits its input on newlines,
// calling fn once per line, trailing newline included.
// Call done when finished writing
// to flush any remaining text without a trailing newline.
//
// The line passed to fn is valid only until fn returns.
// The writer is safe for concurrent use.
func Writer(fn func([]byte)) (_ io.Writer, done func()) {
	w := writer{writeLine: fn}
	return &w, w.flush
}

type writer struct {
	writeLine func([]byte)

	mu   sync.Mutex   // guards buff
	buff bytes.Buffer // text still waiting for its newline
}

func (w *writer) Write(bs []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buff.Write(bs)
	for {
		idx := bytes.IndexByte(w.buff.Bytes(), '\n')
		if idx < 0 {
			return len(bs), nil
		}
		w.writeLine(w.buff.Next(idx + 1))
	}
}

func (w *writer) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buff.Len() > 0 {
		w.writeLine(w.buff.Bytes())
		w.buff.Reset()
	}
}
