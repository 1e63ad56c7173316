package components

import (
	"io"

	"github.com/a-h/templ"
)

// htmlWriter backs the hand-maintained *_templ.go renderers. It keeps the
// first write error so markup can be emitted without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes s HTML-escaped. It is safe inside quoted attributes too.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}
