package theme

import "strings"

// Option represents a selectable theme exposed to the UI.
type Option struct {
	Value string
	Label string
}

// Palette contains resolved styling primitives for the page shell and cards.
type Palette struct {
	Key          string
	BodyClass    string
	CardClass    string
	MutedClass   string
	AccentClass  string
	ExcludedCard string
}

const (
	// DefaultKey defines the fallback theme when no preference exists.
	DefaultKey = "daylight"
)

var catalogue = map[string]Palette{
	"daylight": {
		Key:          "daylight",
		BodyClass:    "min-h-screen bg-stone-50 text-stone-900",
		CardClass:    "food-card rounded-xl border border-stone-200 bg-white p-4 shadow-sm",
		MutedClass:   "text-stone-500",
		AccentClass:  "text-emerald-700",
		ExcludedCard: "opacity-50",
	},
	"night": {
		Key:          "night",
		BodyClass:    "min-h-screen bg-slate-950 text-slate-100",
		CardClass:    "food-card rounded-xl border border-slate-800 bg-slate-900 p-4",
		MutedClass:   "text-slate-400",
		AccentClass:  "text-emerald-300",
		ExcludedCard: "opacity-40",
	},
}

var options = []Option{
	{Value: "daylight", Label: "Daylight"},
	{Value: "night", Label: "Night"},
}

// Valid reports whether key names a registered theme.
func Valid(key string) bool {
	_, ok := catalogue[strings.ToLower(strings.TrimSpace(key))]
	return ok
}

// Resolve returns the registered palette for the provided key, falling back
// to the default theme.
func Resolve(key string) Palette {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if value, ok := catalogue[normalized]; ok {
		return value
	}
	return catalogue[DefaultKey]
}

// Options exposes the available theme selections for rendering in a form control.
func Options() []Option {
	return options
}
