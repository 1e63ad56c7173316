package nutrition

import (
	"fmt"
	"math"
	"regexp"
)

// FoodItem is one recognised food together with the user's serving choices.
// Calories, Protein, Carbs and Fat are cached results of ComputeNutrition and
// are refreshed by every mutation.
type FoodItem struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Quantity        int          `json:"quantity"`
	ServingTable    ServingTable `json:"servings"`
	SelectedServing string       `json:"selected_serving"`
	Included        bool         `json:"included"`

	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// SelectedOption resolves the currently selected serving.
func (f FoodItem) SelectedOption() (ServingOption, bool) {
	return f.ServingTable.Get(f.SelectedServing)
}

// Nutrition returns the cached derived macros.
func (f FoodItem) Nutrition() Nutrition {
	return Nutrition{Calories: f.Calories, Protein: f.Protein, Carbs: f.Carbs, Fat: f.Fat}
}

// recompute refreshes the derived macros. It reports false, leaving the item
// untouched, when the selected serving does not resolve.
func (f *FoodItem) recompute() bool {
	option, ok := f.SelectedOption()
	if !ok {
		return false
	}
	n := ComputeNutrition(option, f.Quantity)
	f.Calories = n.Calories
	f.Protein = n.Protein
	f.Carbs = n.Carbs
	f.Fat = n.Fat
	return true
}

// maxQuantity is the largest number of servings an item can hold.
const maxQuantity = math.MaxInt32

func clampQuantity(quantity int) int {
	switch {
	case quantity < 1:
		return 1
	case quantity > maxQuantity:
		return maxQuantity
	}
	return quantity
}

// stepQuantity adds delta to quantity, saturating at the bounds instead of
// wrapping.
func stepQuantity(quantity, delta int) int {
	switch {
	case delta >= maxQuantity:
		return maxQuantity
	case delta <= -maxQuantity:
		return 1
	}
	next := int64(quantity) + int64(delta)
	if next > maxQuantity {
		return maxQuantity
	}
	return clampQuantity(int(next))
}

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	idUnsafePattern   = regexp.MustCompile(`[^A-Za-z0-9_-]`)
)

const idSeparator = "-"

// itemID derives an identifier from the food name, the generation timestamp
// and the item's 1-based position in the response.
func itemID(name string, timestamp int64, ordinal int) string {
	sanitized := whitespacePattern.ReplaceAllString(name, "_")
	sanitized = idUnsafePattern.ReplaceAllString(sanitized, "")
	return fmt.Sprintf("%s%s%d%s%d", sanitized, idSeparator, timestamp, idSeparator, ordinal)
}
