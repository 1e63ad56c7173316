// Hand-maintained rendering of totals.templ. templ generate replaces this file.

package components

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"platecheck/internal/nutrition"
	"platecheck/internal/views/theme"
)

// TotalBadge renders the running total of the included items. When oob is
// true the element carries hx-swap-oob so htmx swaps it alongside a card.
func TotalBadge(totals nutrition.Totals, palette theme.Palette, oob bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section id="` + TotalID + `" class="meal-total"`)
		for name, value := range oobAttrs(oob) {
			h.raw(` ` + name + `="`)
			h.text(value.(string))
			h.raw(`"`)
		}
		h.raw(`><p class="text-2xl font-bold `)
		h.text(palette.AccentClass)
		h.raw(`"><span data-field="total-calories">`)
		h.raw(strconv.Itoa(totals.Calories))
		h.raw(`</span> kcal</p><p class="`)
		h.text(palette.MutedClass)
		h.raw(`">`)
		h.raw(strconv.Itoa(totals.Included))
		h.raw(` of `)
		h.raw(strconv.Itoa(totals.Items))
		h.raw(` items counted · P `)
		h.raw(formatMacro(totals.Protein))
		h.raw(` g · C `)
		h.raw(formatMacro(totals.Carbs))
		h.raw(` g · F `)
		h.raw(formatMacro(totals.Fat))
		h.raw(` g</p></section>`)
		return h.err
	})
}

// Alert renders a dismissible message. Empty messages render nothing.
func Alert(kind, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message == "" {
			return nil
		}
		h := &htmlWriter{w: w}
		h.raw(`<div class="alert alert-`)
		h.text(kind)
		h.raw(`" role="`)
		h.raw(alertRole(kind))
		h.raw(`">`)
		h.text(message)
		h.raw(`</div>`)
		return h.err
	})
}

// SkippedNotice lists foods that were recognised but carried no serving data.
func SkippedNotice(skipped []nutrition.SkippedItem, palette theme.Palette) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(skipped) == 0 {
			return nil
		}
		h := &htmlWriter{w: w}
		h.raw(`<p class="skipped `)
		h.text(palette.MutedClass)
		h.raw(`">No serving data for: `)
		h.text(skippedNames(skipped))
		h.raw(`</p>`)
		return h.err
	})
}
