package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"platecheck/internal/nutrition"
	"platecheck/internal/views/theme"
)

// TotalID is the DOM id of the running total.
const TotalID = "meal-total"

// CardID is the DOM id of the card rendering the item with itemID.
func CardID(itemID string) string {
	return "item-" + itemID
}

// ServingLabel describes a serving option for the selector, adding the
// metric amount when the source provided one.
func ServingLabel(option nutrition.ServingOption) string {
	if option.MetricAmount == nil || option.MetricUnit == "" {
		return option.Description
	}
	amount := strconv.FormatFloat(*option.MetricAmount, 'f', -1, 64)
	return fmt.Sprintf("%s (%s %s)", option.Description, amount, option.MetricUnit)
}

func itemPath(itemID, action string) string {
	return "/items/" + itemID + "/" + action
}

func cardTarget(itemID string) string {
	return "#" + CardID(itemID)
}

func cardClass(item nutrition.FoodItem, palette theme.Palette) string {
	if item.Included {
		return palette.CardClass
	}
	return palette.CardClass + " " + palette.ExcludedCard
}

// includedVals posts the opposite of the item's current inclusion.
func includedVals(item nutrition.FoodItem) string {
	return fmt.Sprintf(`{"included": "%t"}`, !item.Included)
}

func deltaVals(delta int) string {
	return fmt.Sprintf(`{"delta": "%d"}`, delta)
}

func oobAttrs(oob bool) templ.Attributes {
	if !oob {
		return templ.Attributes{}
	}
	return templ.Attributes{"hx-swap-oob": "true"}
}

func alertRole(kind string) string {
	if kind == "error" {
		return "alert"
	}
	return "status"
}

func skippedNames(skipped []nutrition.SkippedItem) string {
	names := make([]string, len(skipped))
	for i, item := range skipped {
		names[i] = item.Name
	}
	return strings.Join(names, ", ")
}

func formatMacro(value float64) string {
	return strconv.FormatFloat(value, 'f', 1, 64)
}
