package nutrition

import (
	"errors"
	"math"
	"time"
)

// ErrEmptyServingTable marks a food entry that carries no serving options at
// all and therefore cannot be priced.
var ErrEmptyServingTable = errors.New("nutrition: food has no serving options")

// SkippedItem records an entry Normalize left out of the result set.
type SkippedItem struct {
	Name string
	Err  error
}

// Result is the outcome of normalising one recognition response.
type Result struct {
	Items   []FoodItem
	Skipped []SkippedItem
}

// Normalize converts a recognition response into food items stamped with the
// current time.
func Normalize(response RawResponse) Result {
	return NormalizeAt(response, time.Now())
}

// NormalizeAt converts a recognition response into food items, one per entry
// in response order. Entries without any serving option are reported in
// Result.Skipped instead of failing the batch. The response is not modified.
func NormalizeAt(response RawResponse, generatedAt time.Time) Result {
	timestamp := generatedAt.UnixMilli()
	result := Result{Items: make([]FoodItem, 0, len(response))}

	for i, entry := range response {
		item, err := normalizeEntry(entry, timestamp, i+1)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedItem{Name: entry.Name, Err: err})
			continue
		}
		result.Items = append(result.Items, item)
	}
	return result
}

func normalizeEntry(entry RawEntry, timestamp int64, ordinal int) (FoodItem, error) {
	payload := entry.Payload

	table := NewServingTable()
	for _, raw := range payload.Secondary {
		table.Set(NewServingOption(raw))
	}
	if payload.Primary != nil {
		table.Set(NewServingOption(payload.Primary))
	}

	selected, ok := table.first()
	if !ok {
		return FoodItem{}, ErrEmptyServingTable
	}
	if payload.Primary != nil {
		if key := primaryDescription(payload.Primary); key != "" && table.Has(key) {
			selected = key
		}
	}

	item := FoodItem{
		ID:              itemID(entry.Name, timestamp, ordinal),
		Name:            entry.Name,
		Quantity:        coerceQuantity(payload.Quantity),
		ServingTable:    table,
		SelectedServing: selected,
		Included:        true,
	}
	item.recompute()
	return item, nil
}

// coerceQuantity turns the payload's quantity into a whole number of
// servings. Fractions are truncated; anything below one becomes one.
func coerceQuantity(value any) int {
	parsed, ok := parseOptionalNumeric(value)
	if !ok || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 1
	}
	if parsed >= maxQuantity {
		return maxQuantity
	}
	return clampQuantity(int(parsed))
}
