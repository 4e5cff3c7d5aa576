package matching

import (
	"regexp"
	"strings"

	"github.com/jinzhu/inflection"
)

var (
	specialCharsRe = regexp.MustCompile(`[*#@!]+`)
	leadingNumsRe  = regexp.MustCompile(`^[\d\s/.\-]+`)
)

// stopWords are descriptive qualifiers stripped from names before matching.
// The list is fixed; widening it changes what counts as the "same"
// ingredient, so additions belong in the synonym table instead.
var stopWords = map[string]bool{
	"fresh": true, "dried": true, "chopped": true, "diced": true,
	"sliced": true, "minced": true, "large": true, "small": true,
	"medium": true, "whole": true, "raw": true, "cooked": true,
	"boneless": true, "skinless": true, "organic": true, "frozen": true,
	"canned": true, "a": true, "an": true, "the": true, "of": true,
}

// singularMap handles plurals whose singular form the generic rule would
// mangle ("tomatoes", "leaves", "berries").
var singularMap = map[string]string{
	"eggs":      "egg",
	"onions":    "onion",
	"tomatoes":  "tomato",
	"potatoes":  "potato",
	"carrots":   "carrot",
	"peppers":   "pepper",
	"cloves":    "clove",
	"breasts":   "breast",
	"thighs":    "thigh",
	"slices":    "slice",
	"stalks":    "stalk",
	"leaves":    "leaf",
	"berries":   "berry",
	"apples":    "apple",
	"lemons":    "lemon",
	"limes":     "lime",
	"oranges":   "orange",
	"bananas":   "banana",
	"mushrooms": "mushroom",
	"tortillas": "tortilla",
	"noodles":   "noodle",
}

// invariantPlurals end in "s" but are already singular.
var invariantPlurals = map[string]bool{
	"cheese": true, "rice": true, "grass": true, "molasses": true, "hummus": true,
}

// aliasMap folds normalized variants onto a canonical display name. Checked
// after normalization, before matching.
var aliasMap = map[string]string{
	"sourdough":                        "Sourdough Bread",
	"sourdough bread":                  "Sourdough Bread",
	"bread sourdough":                  "Sourdough Bread",
	"white bread":                      "White Bread",
	"bread white":                      "White Bread",
	"ground beef":                      "Ground Beef",
	"beef ground":                      "Ground Beef",
	"minced beef":                      "Ground Beef",
	"chicken breast":                   "Chicken Breast",
	"breast chicken":                   "Chicken Breast",
	"chicken thigh":                    "Chicken Thigh",
	"green onion":                      "Green Onion",
	"scallion":                         "Green Onion",
	"spring onion":                     "Green Onion",
	"bell pepper":                      "Bell Pepper",
	"garlic clove":                     "Garlic",
	"clove garlic":                     "Garlic",
	"olive oil":                        "Olive Oil",
	"extra virgin olive oil":           "Olive Oil",
	"vegetable oil":                    "Vegetable Oil",
	"canola oil":                       "Vegetable Oil",
	"heavy cream":                      "Heavy Cream",
	"whipping cream":                   "Heavy Cream",
	"heavy whipping cream":             "Heavy Cream",
	"sour cream":                       "Sour Cream",
	"cream cheese":                     "Cream Cheese",
	"parmesan cheese":                  "Parmesan",
	"parmigiano":                       "Parmesan",
	"parmigiano reggiano":              "Parmesan",
	"cheddar cheese":                   "Cheddar Cheese",
	"mozzarella cheese":                "Mozzarella",
	"kosher salt":                      "Salt",
	"sea salt":                         "Salt",
	"table salt":                       "Salt",
	"black pepper":                     "Pepper",
	"ground pepper":                    "Pepper",
	"ground black pepper":              "Pepper",
	"egg":                              "Egg",
	"large egg":                        "Egg",
	"yellow onion":                     "Onion",
	"white onion":                      "Onion",
	"red onion":                        "Red Onion",
	"all purpose flour":                "Flour",
	"all-purpose flour":                "Flour",
	"ap flour":                         "Flour",
	"granulated sugar":                 "Sugar",
	"white sugar":                      "Sugar",
	"brown sugar":                      "Brown Sugar",
	"light brown sugar":                "Brown Sugar",
	"dark brown sugar":                 "Brown Sugar",
	"unsalted butter":                  "Butter",
	"salted butter":                    "Butter",
	"boneless skinless chicken breast": "Chicken Breast",
	"boneless skinless chicken thigh":  "Chicken Thigh",
	"boneless chicken thigh":           "Chicken Thigh",
}

// NormalizeName reduces an ingredient name to a canonical singular,
// qualifier-free form for matching, then title-cases it for display.
func NormalizeName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = specialCharsRe.ReplaceAllString(normalized, "")
	normalized = strings.Trim(normalized, "-/.,;: ")
	normalized = strings.TrimSpace(leadingNumsRe.ReplaceAllString(normalized, ""))

	words := strings.Fields(normalized)
	kept := words[:0]
	for _, w := range words {
		if !stopWords[w] {
			kept = append(kept, w)
		}
	}

	for i, w := range kept {
		kept[i] = singularize(w)
	}
	normalized = strings.Join(kept, " ")

	if canonical, ok := aliasMap[normalized]; ok {
		return canonical
	}
	return titleWords(normalized)
}

func singularize(w string) string {
	if s, ok := singularMap[w]; ok {
		return s
	}
	if !strings.HasSuffix(w, "s") || len(w) <= 3 || invariantPlurals[w] {
		return w
	}
	return inflection.Singular(w)
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
