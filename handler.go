package highlighthere

import (
	"bytes"
	"maps"
	"net/http"
	"strconv"
	"strings"
)

// Handler returns middleware that rewrites highlight blocks in every
// HTML response of next, using the request path as the current page:
//
//	mux := http.NewServeMux()
//	mux.Handle("/", pages)
//	srv := &http.Server{Handler: highlighthere.Handler(mux)}
//
// Responses are buffered until next returns. Non-HTML responses,
// encoded responses, and responses without highlight markers are
// forwarded untouched. A response whose markers cannot be rewritten is
// replaced with a plain 500.
func (h *Highlighter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bw := &bufferedResponse{header: make(http.Header)}
		next.ServeHTTP(bw, r)

		body := bw.body.Bytes()
		rewrite := isHTML(bw.header, body) &&
			bw.header.Get("Content-Encoding") == "" &&
			bytes.Contains(body, []byte(_markerHere))
		if rewrite {
			got, err := h.Blocks(bw.body.String(), r.URL.Path)
			if err != nil {
				h.debugf("rewrite %s: %v", r.URL.Path, err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			body = []byte(got)
			if bw.header.Get("Content-Length") != "" {
				bw.header.Set("Content-Length", strconv.Itoa(len(body)))
			}
		}

		maps.Copy(w.Header(), bw.header)
		if bw.status != 0 {
			w.WriteHeader(bw.status)
		}
		w.Write(body)
	})
}

// Handler wraps next with a default Highlighter.
func Handler(next http.Handler) http.Handler {
	return new(Highlighter).Handler(next)
}

// bufferedResponse holds a response back until the wrapped handler
// returns, so the body can be rewritten before anything reaches the
// client.
type bufferedResponse struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

// isHTML reports whether the response is an HTML document, going by
// the declared Content-Type or, absent one, by sniffing the body.
func isHTML(header http.Header, body []byte) bool {
	ct := header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(body)
	}
	return strings.HasPrefix(ct, "text/html")
}
