// Hand-maintained rendering of pages.templ. templ generate replaces this file.

package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"platecheck/internal/nutrition"
	"platecheck/internal/views/components"
	"platecheck/internal/views/layout"
	"platecheck/internal/views/theme"
)

// Home renders the full page: upload form, results and total.
func Home(data PageData) templ.Component {
	return layout.Layout(pageTitle, data.Palette, homeContent(data))
}

func homeContent(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<header class="mb-6"><h1 class="text-3xl font-bold">`+templ.EscapeString(pageTitle)+`</h1></header>`); err != nil {
			return err
		}
		if err := components.UploadForm(data.UploadField, data.UploadEnabled).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<div id="results" class="mt-6">`); err != nil {
			return err
		}
		if err := Results(data).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// Results renders the swappable results region.
func Results(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		parts := []templ.Component{
			components.Alert(data.Message.Kind, data.Message.Text),
			components.SkippedNotice(data.Snapshot.Skipped, data.Palette),
		}
		if data.Snapshot.Empty() {
			parts = append(parts, emptyState(data.Snapshot.Upload > 0))
		} else {
			parts = append(parts, components.TotalBadge(data.Snapshot.Totals, data.Palette, false))
			parts = append(parts, cardList(data.Snapshot.Items, data.Palette))
		}
		return renderAll(ctx, w, parts...)
	})
}

// ItemUpdate renders the response to an item edit: the refreshed card and an
// out-of-band total.
func ItemUpdate(item nutrition.FoodItem, totals nutrition.Totals, palette theme.Palette) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return renderAll(ctx, w, components.FoodCard(item, palette), components.TotalBadge(totals, palette, true))
	})
}

func cardList(items []nutrition.FoodItem, palette theme.Palette) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="cards mt-4 grid gap-4">`); err != nil {
			return err
		}
		for _, item := range items {
			if err := components.FoodCard(item, palette).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func emptyState(scanned bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<p class="empty-state">`+templ.EscapeString(emptyStateText(scanned))+`</p>`)
		return err
	})
}

func renderAll(ctx context.Context, w io.Writer, parts ...templ.Component) error {
	for _, part := range parts {
		if err := part.Render(ctx, w); err != nil {
			return err
		}
	}
	return nil
}
