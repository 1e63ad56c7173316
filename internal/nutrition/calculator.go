package nutrition

import "math"

// Nutrition holds the macros derived for a serving option and quantity.
type Nutrition struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// ComputeNutrition scales the per-serving macros of option by quantity.
// Calories round to the nearest integer; the other macros to one decimal.
func ComputeNutrition(option ServingOption, quantity int) Nutrition {
	q := float64(quantity)
	return Nutrition{
		Calories: roundCalories(option.CaloriesPerServing * q),
		Protein:  round1(option.ProteinPerServing * q),
		Carbs:    round1(option.CarbsPerServing * q),
		Fat:      round1(option.FatPerServing * q),
	}
}

// maxCalories bounds a single item so a result set total cannot overflow.
const maxCalories = math.MaxInt >> 8

func roundCalories(value float64) int {
	rounded := math.Round(value)
	if rounded >= float64(maxCalories) {
		return maxCalories
	}
	return int(rounded)
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
