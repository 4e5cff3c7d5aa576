package units

import (
	"strings"
)

// preferredByKeyword nudges parsed quantities toward the unit an ingredient
// is usually measured in: liquids to ML, oils to TBSP, meats and dry staples
// to G.
var preferredByKeyword = map[string]Unit{
	"milk": ML, "cream": ML, "water": ML, "broth": ML, "stock": ML,
	"juice": ML, "vinegar": ML, "wine": ML, "sauce": ML, "honey": ML,
	"syrup": ML, "yogurt": ML,

	"oil": TBSP,

	"chicken": G, "beef": G, "pork": G, "turkey": G, "bacon": G,
	"sausage": G, "fish": G, "salmon": G, "shrimp": G, "ground": G,

	"cheese": G, "parmesan": G, "mozzarella": G, "cheddar": G,

	"flour": G, "sugar": G, "rice": G, "pasta": G, "oats": G,
}

// preferredKeywords holds the lookup order; map iteration would make
// Standardize nondeterministic when a name hits several keywords.
var preferredKeywords = []string{
	"milk", "cream", "water", "broth", "stock", "juice", "vinegar",
	"wine", "sauce", "honey", "syrup", "yogurt",
	"oil",
	"chicken", "beef", "pork", "turkey", "bacon", "sausage", "fish",
	"salmon", "shrimp", "ground",
	"cheese", "parmesan", "mozzarella", "cheddar",
	"flour", "sugar", "rice", "pasta", "oats",
}

// PreferredUnit returns the unit an ingredient is conventionally measured
// in, keyed by substring keyword, or ok=false when there is no preference.
func PreferredUnit(name string) (Unit, bool) {
	lower := strings.ToLower(name)
	for _, kw := range preferredKeywords {
		if strings.Contains(lower, kw) {
			return preferredByKeyword[kw], true
		}
	}
	return "", false
}

// Standardize converts a quantity to the ingredient's preferred unit when
// one exists and the conversion stays within a single family; otherwise the
// input passes through unchanged.
func Standardize(qty float64, u Unit, name string) (float64, Unit) {
	preferred, ok := PreferredUnit(name)
	if !ok || preferred == u {
		return qty, u
	}
	converted, unit, ok := Convert(qty, u, preferred)
	if !ok {
		return qty, u
	}
	return converted, unit
}
