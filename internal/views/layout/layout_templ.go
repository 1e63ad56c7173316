// Hand-maintained rendering of layout.templ. templ generate replaces this file.

package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"platecheck/internal/views/theme"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// Layout renders the document shell around content.
func Layout(title string, palette theme.Palette, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`+
			templ.EscapeString(title)+
			`</title><link rel="stylesheet" href="/assets/app.css"><script src="`+htmxScript+`" defer></script></head><body class="`+
			templ.EscapeString(palette.BodyClass)+
			`" data-theme="`+templ.EscapeString(palette.Key)+`"><main class="mx-auto max-w-3xl p-6">`); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}
