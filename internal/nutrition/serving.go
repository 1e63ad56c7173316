package nutrition

import (
	"encoding/json"
	"strings"
)

const fallbackServingKey = "serving"

// ServingOption is one way a food can be measured, carrying the macros of a
// single serving.
type ServingOption struct {
	Description        string   `json:"description"`
	ExternalID         string   `json:"external_id,omitempty"`
	MetricAmount       *float64 `json:"metric_amount,omitempty"`
	MetricUnit         string   `json:"metric_unit,omitempty"`
	CaloriesPerServing float64  `json:"calories_per_serving"`
	CarbsPerServing    float64  `json:"carbs_per_serving"`
	ProteinPerServing  float64  `json:"protein_per_serving"`
	FatPerServing      float64  `json:"fat_per_serving"`
}

// NewServingOption builds a ServingOption from a raw serving entry. Missing or
// non-numeric macro values become zero.
func NewServingOption(raw RawServing) ServingOption {
	option := ServingOption{
		Description:        servingKey(raw),
		ExternalID:         raw.text("serving_id"),
		MetricUnit:         raw.text("metric_serving_unit"),
		CaloriesPerServing: nonNegative(parseNumeric(raw["calories"])),
		CarbsPerServing:    nonNegative(parseNumeric(raw["carbohydrate"])),
		ProteinPerServing:  nonNegative(parseNumeric(raw["protein"])),
		FatPerServing:      nonNegative(parseNumeric(raw["fat"])),
	}
	if amount, ok := parseOptionalNumeric(raw["metric_serving_amount"]); ok {
		option.MetricAmount = &amount
	}
	return option
}

func servingKey(raw RawServing) string {
	for _, field := range []string{"serving_description", "measurement_description", "serving_id"} {
		if value := raw.text(field); value != "" {
			return value
		}
	}
	return fallbackServingKey
}

// primaryDescription returns the label a primary serving is selected by. A
// primary identified only by its serving_id is not eligible for selection.
func primaryDescription(raw RawServing) string {
	if value := raw.text("serving_description"); value != "" {
		return value
	}
	return raw.text("measurement_description")
}

func nonNegative(value float64) float64 {
	if value < 0 {
		return 0
	}
	return value
}

// ServingTable maps serving descriptions to options while remembering the
// order keys were first inserted.
type ServingTable struct {
	keys    []string
	options map[string]ServingOption
}

// NewServingTable returns an empty table.
func NewServingTable() ServingTable {
	return ServingTable{options: make(map[string]ServingOption)}
}

// Set stores option under its description. An existing key keeps its position
// but its option is replaced.
func (t *ServingTable) Set(option ServingOption) {
	if t.options == nil {
		t.options = make(map[string]ServingOption)
	}
	if _, exists := t.options[option.Description]; !exists {
		t.keys = append(t.keys, option.Description)
	}
	t.options[option.Description] = option
}

// Get looks up the option stored under key.
func (t ServingTable) Get(key string) (ServingOption, bool) {
	option, ok := t.options[key]
	return option, ok
}

// Has reports whether key is present.
func (t ServingTable) Has(key string) bool {
	_, ok := t.options[key]
	return ok
}

// Keys returns the descriptions in insertion order.
func (t ServingTable) Keys() []string {
	keys := make([]string, len(t.keys))
	copy(keys, t.keys)
	return keys
}

// Options returns the options in insertion order.
func (t ServingTable) Options() []ServingOption {
	options := make([]ServingOption, 0, len(t.keys))
	for _, key := range t.keys {
		options = append(options, t.options[key])
	}
	return options
}

func (t ServingTable) Len() int {
	return len(t.keys)
}

func (t ServingTable) first() (string, bool) {
	if len(t.keys) == 0 {
		return "", false
	}
	return t.keys[0], true
}

// MarshalJSON encodes the table as an ordered list of options.
func (t ServingTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Options())
}

// UnmarshalJSON accepts the ordered list produced by MarshalJSON.
func (t *ServingTable) UnmarshalJSON(data []byte) error {
	var options []ServingOption
	if err := json.Unmarshal(data, &options); err != nil {
		return err
	}
	*t = NewServingTable()
	for _, option := range options {
		option.Description = strings.TrimSpace(option.Description)
		if option.Description == "" {
			option.Description = fallbackServingKey
		}
		t.Set(option)
	}
	return nil
}
