package matching

import (
	"strings"

	"mealplanner/entities"
)

// MatchKind reports how a name resolved against the catalog.
type MatchKind string

const (
	MatchNone    MatchKind = ""
	MatchExact   MatchKind = "exact"
	MatchSynonym MatchKind = "synonym"
)

// FindMatch resolves a raw ingredient name against a catalog snapshot.
// Resolution order: exact canonical name, then synonym table, then the
// un-normalized raw text (in case normalization stripped something
// significant). A near-miss is never picked silently; the caller recovers
// through Suggestions and explicit confirmation.
func FindMatch(raw string, catalog []*entities.Ingredient, synonyms []*entities.IngredientSynonym) (*entities.Ingredient, MatchKind) {
	normalized := strings.ToLower(NormalizeName(raw))

	if ing := byName(normalized, catalog); ing != nil {
		return ing, MatchExact
	}

	for _, syn := range synonyms {
		if strings.ToLower(syn.Synonym) != normalized {
			continue
		}
		if syn.Ingredient != nil {
			return syn.Ingredient, MatchSynonym
		}
		for _, ing := range catalog {
			if ing.ID == syn.IngredientID {
				return ing, MatchSynonym
			}
		}
	}

	rawLower := strings.ToLower(strings.TrimSpace(raw))
	if rawLower != normalized {
		if ing := byName(rawLower, catalog); ing != nil {
			return ing, MatchExact
		}
	}

	return nil, MatchNone
}

func byName(lower string, catalog []*entities.Ingredient) *entities.Ingredient {
	for _, ing := range catalog {
		if strings.ToLower(ing.Name) == lower {
			return ing
		}
	}
	return nil
}
