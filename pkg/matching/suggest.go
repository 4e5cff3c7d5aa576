package matching

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"

	"mealplanner/entities"
)

// Suggestion is one advisory match candidate. The matcher never assigns a
// suggestion on its own; the caller confirms before anything is linked.
type Suggestion struct {
	Ingredient *entities.Ingredient
	Score      float64
	Reason     string
}

const fuzzyFloor = 40.0

// Suggestions ranks catalog entries against a normalized name: exact hits
// score 100, token overlap scales to 80, and an edit-distance similarity
// covers misspellings the token sets miss. Ties keep catalog insertion
// order, so results are stable across calls.
func Suggestions(normalized string, catalog []*entities.Ingredient, limit int) []Suggestion {
	lower := strings.ToLower(normalized)
	tokens := tokenSet(lower)
	params := levenshtein.NewParams()

	var out []Suggestion
	for _, ing := range catalog {
		ingLower := strings.ToLower(ing.Name)

		if ingLower == lower {
			out = append(out, Suggestion{Ingredient: ing, Score: 100, Reason: "exact"})
			continue
		}

		overlap := overlapScore(tokens, tokenSet(ingLower))
		fuzzy := levenshtein.Similarity(lower, ingLower, params) * 60

		switch {
		case overlap > 0 && overlap >= fuzzy:
			out = append(out, Suggestion{Ingredient: ing, Score: overlap, Reason: "partial"})
		case fuzzy >= fuzzyFloor:
			out = append(out, Suggestion{Ingredient: ing, Score: fuzzy, Reason: "fuzzy"})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

func overlapScore(a, b map[string]bool) float64 {
	common := 0
	for w := range a {
		if b[w] {
			common++
		}
	}
	if common == 0 {
		return 0
	}
	max := len(a)
	if len(b) > max {
		max = len(b)
	}
	return float64(common) / float64(max) * 80
}
