// Hand-maintained rendering of upload.templ. templ generate replaces this file.

package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// UploadForm renders the photo upload control. The form posts a single
// multipart field and swaps the results region.
func UploadForm(field string, enabled bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<form id="upload-form" class="upload-form" action="/scan" method="post" enctype="multipart/form-data" hx-post="/scan" hx-encoding="multipart/form-data" hx-target="#results" hx-swap="innerHTML" hx-indicator="#upload-indicator">`)
		h.raw(`<label class="dropzone"><span>Drop a food photo or choose a file</span><input type="file" accept="image/*" name="`)
		h.text(field)
		h.raw(`"`)
		if !enabled {
			h.raw(` disabled`)
		}
		h.raw(` required></label><button type="submit"`)
		if !enabled {
			h.raw(` disabled`)
		}
		h.raw(`>Analyze</button><span id="upload-indicator" class="htmx-indicator">Analyzing…</span>`)
		if !enabled {
			h.raw(`<p class="hint">Photo recognition is not configured. Set RECOGNITION_URL to enable uploads.</p>`)
		}
		h.raw(`</form>`)
		return h.err
	})
}
