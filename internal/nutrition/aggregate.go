package nutrition

// TotalCalories sums the calories of every included item.
func TotalCalories(items []FoodItem) int {
	total := 0
	for _, item := range items {
		if item.Included {
			total += item.Calories
		}
	}
	return total
}

// Totals is the full macro breakdown of the included items.
type Totals struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Included int     `json:"included"`
	Items    int     `json:"items"`
}

// Summarize totals every macro over the included items.
func Summarize(items []FoodItem) Totals {
	totals := Totals{Items: len(items)}
	for _, item := range items {
		if !item.Included {
			continue
		}
		totals.Included++
		totals.Protein += item.Protein
		totals.Carbs += item.Carbs
		totals.Fat += item.Fat
	}
	totals.Calories = TotalCalories(items)
	totals.Protein = round1(totals.Protein)
	totals.Carbs = round1(totals.Carbs)
	totals.Fat = round1(totals.Fat)
	return totals
}
