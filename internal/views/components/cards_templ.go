// Hand-maintained rendering of cards.templ. templ generate replaces this file.

package components

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"platecheck/internal/nutrition"
	"platecheck/internal/views/theme"
)

// FoodCard renders one editable food item: inclusion toggle, quantity
// stepper, serving selector and the derived macros.
func FoodCard(item nutrition.FoodItem, palette theme.Palette) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw(`<article id="`)
		h.text(CardID(item.ID))
		h.raw(`" class="`)
		h.text(cardClass(item, palette))
		h.raw(`" data-item-id="`)
		h.text(item.ID)
		h.raw(`" data-included="`)
		h.raw(strconv.FormatBool(item.Included))
		h.raw(`">`)

		h.raw(`<header class="flex items-center justify-between gap-3"><label class="flex items-center gap-2 font-semibold"><input type="checkbox" name="included_toggle"`)
		if item.Included {
			h.raw(` checked`)
		}
		h.raw(` hx-post="`)
		h.text(itemPath(item.ID, "included"))
		h.raw(`" hx-vals="`)
		h.text(includedVals(item))
		h.raw(`" hx-target="`)
		h.text(cardTarget(item.ID))
		h.raw(`" hx-swap="outerHTML"><span class="food-name">`)
		h.text(item.Name)
		h.raw(`</span></label><span class="calories `)
		h.text(palette.AccentClass)
		h.raw(`" data-field="calories">`)
		h.raw(strconv.Itoa(item.Calories))
		h.raw(` kcal</span></header>`)

		h.raw(`<div class="mt-3 flex flex-wrap items-center gap-3">`)
		quantityStepper(h, item)
		servingSelect(h, item)
		h.raw(`</div>`)

		h.raw(`<dl class="mt-3 grid grid-cols-3 gap-2 text-sm">`)
		macro(h, palette, "Protein", "protein", item.Protein)
		macro(h, palette, "Carbs", "carbs", item.Carbs)
		macro(h, palette, "Fat", "fat", item.Fat)
		h.raw(`</dl></article>`)
		return h.err
	})
}

func quantityStepper(h *htmlWriter, item nutrition.FoodItem) {
	h.raw(`<div class="quantity flex items-center gap-1">`)
	stepButton(h, item.ID, -1, "−", item.Quantity <= 1)
	h.raw(`<input type="number" min="1" step="1" name="quantity" class="w-16 text-center" data-field="quantity" value="`)
	h.raw(strconv.Itoa(item.Quantity))
	h.raw(`" hx-post="`)
	h.text(itemPath(item.ID, "quantity"))
	h.raw(`" hx-trigger="change" hx-vals="`)
	h.text(deltaVals(0))
	h.raw(`" hx-target="`)
	h.text(cardTarget(item.ID))
	h.raw(`" hx-swap="outerHTML">`)
	stepButton(h, item.ID, 1, "+", false)
	h.raw(`</div>`)
}

func stepButton(h *htmlWriter, itemID string, delta int, label string, disabled bool) {
	h.raw(`<button type="button" class="step" hx-post="`)
	h.text(itemPath(itemID, "quantity"))
	h.raw(`" hx-vals="`)
	h.text(deltaVals(delta))
	h.raw(`" hx-target="`)
	h.text(cardTarget(itemID))
	h.raw(`" hx-swap="outerHTML"`)
	if disabled {
		h.raw(` disabled`)
	}
	h.raw(`>`)
	h.text(label)
	h.raw(`</button>`)
}

func servingSelect(h *htmlWriter, item nutrition.FoodItem) {
	h.raw(`<select name="serving" data-field="serving" hx-post="`)
	h.text(itemPath(item.ID, "serving"))
	h.raw(`" hx-trigger="change" hx-target="`)
	h.text(cardTarget(item.ID))
	h.raw(`" hx-swap="outerHTML">`)
	for _, option := range item.ServingTable.Options() {
		h.raw(`<option value="`)
		h.text(option.Description)
		h.raw(`"`)
		if option.Description == item.SelectedServing {
			h.raw(` selected`)
		}
		h.raw(`>`)
		h.text(ServingLabel(option))
		h.raw(`</option>`)
	}
	h.raw(`</select>`)
}

func macro(h *htmlWriter, palette theme.Palette, label, field string, value float64) {
	h.raw(`<div><dt class="`)
	h.text(palette.MutedClass)
	h.raw(`">`)
	h.text(label)
	h.raw(`</dt><dd data-field="`)
	h.text(field)
	h.raw(`">`)
	h.raw(formatMacro(value))
	h.raw(` g</dd></div>`)
}
