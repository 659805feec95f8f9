package plugin

import (
	"bytes"
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// Middleware injects update badges into the plugin page.
//
// It only acts on GET requests for the configured page path, and skips
// XMLHttpRequest calls. Facts are collected before the page renders; when there
// are none the request passes through untouched. Otherwise the downstream
// response is buffered and, if it is a 200 text/html response, rewritten with
// the injected blocks.
func (p *Plugin) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !p.applies(r) {
			next.ServeHTTP(w, r)
			return
		}

		facts := p.Collect(r.Context())
		if len(facts) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		buf := newBufferedResponse()
		next.ServeHTTP(buf, r)

		body := buf.body.Bytes()
		if buf.injectable() {
			body = []byte(p.Inject(string(body), facts))
			buf.header.Set("Content-Length", strconv.Itoa(len(body)))
		}

		buf.flushTo(w, body)
	})
}

func (p *Plugin) applies(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	if r.URL.Path != p.pagePath {
		return false
	}
	return !strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
}

// bufferedResponse captures a downstream response so it can be rewritten.
type bufferedResponse struct {
	header      http.Header
	body        bytes.Buffer
	status      int
	wroteHeader bool
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header)}
}

func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) WriteHeader(status int) {
	if b.wroteHeader {
		return
	}
	b.status = status
	b.wroteHeader = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if !b.wroteHeader {
		b.WriteHeader(http.StatusOK)
	}
	return b.body.Write(p)
}

func (b *bufferedResponse) statusCode() int {
	if b.status == 0 {
		return http.StatusOK
	}
	return b.status
}

// injectable reports whether the captured response is an uncompressed HTML page.
func (b *bufferedResponse) injectable() bool {
	if b.statusCode() != http.StatusOK {
		return false
	}
	if b.header.Get("Content-Encoding") != "" {
		return false
	}

	ct := b.header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(b.body.Bytes())
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mediaType == "text/html"
}

func (b *bufferedResponse) flushTo(w http.ResponseWriter, body []byte) {
	dst := w.Header()
	for k, v := range b.header {
		dst[k] = v
	}
	w.WriteHeader(b.statusCode())
	_, _ = w.Write(body)
}
