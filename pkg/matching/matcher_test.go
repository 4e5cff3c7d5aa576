package matching

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealplanner/entities"
)

func ing(name string) *entities.Ingredient {
	return &entities.Ingredient{ID: uuid.New(), Name: name}
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"fresh chopped tomatoes":  "Tomato",
		"2 large eggs":            "Egg",
		"Boneless Skinless Chicken Breast": "Chicken Breast",
		"kosher salt":             "Salt",
		"extra virgin olive oil":  "Olive Oil",
		"scallions":               "Green Onion",
		"garlic cloves":           "Garlic",
		"all-purpose flour":       "Flour",
		"cheese":                  "Cheese",
		"mushrooms":               "Mushroom",
		"  Red Onion ":            "Red Onion",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeName(in), "input %q", in)
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	for _, in := range []string{"fresh chopped tomatooes", "Chicken Breast", "heavy whipping cream"} {
		once := NormalizeName(in)
		assert.Equal(t, once, NormalizeName(once), "input %q", in)
	}
}

func TestFindMatchExact(t *testing.T) {
	catalog := []*entities.Ingredient{ing("Chicken Breast"), ing("Flour"), ing("Tomato")}

	match, kind := FindMatch("fresh chopped tomatoes", catalog, nil)
	require.NotNil(t, match)
	assert.Equal(t, "Tomato", match.Name)
	assert.Equal(t, MatchExact, kind)
}

func TestFindMatchSynonym(t *testing.T) {
	beef := ing("Ground Beef")
	catalog := []*entities.Ingredient{beef, ing("Flour")}
	synonyms := []*entities.IngredientSynonym{
		{Synonym: "Hamburger Meat", IngredientID: beef.ID},
	}

	match, kind := FindMatch("hamburger meat", catalog, synonyms)
	require.NotNil(t, match)
	assert.Equal(t, "Ground Beef", match.Name)
	assert.Equal(t, MatchSynonym, kind)
}

func TestFindMatchCanonicalBeatsSynonym(t *testing.T) {
	// A name that is both a canonical entry and someone else's synonym must
	// resolve to the canonical entry.
	butter := ing("Butter")
	margarine := ing("Margarine")
	catalog := []*entities.Ingredient{margarine, butter}
	synonyms := []*entities.IngredientSynonym{
		{Synonym: "Butter", IngredientID: margarine.ID},
	}

	match, kind := FindMatch("butter", catalog, synonyms)
	require.NotNil(t, match)
	assert.Equal(t, butter.ID, match.ID)
	assert.Equal(t, MatchExact, kind)
}

func TestFindMatchNoMatchIsNil(t *testing.T) {
	catalog := []*entities.Ingredient{ing("Flour")}
	match, kind := FindMatch("dragon fruit", catalog, nil)
	assert.Nil(t, match)
	assert.Equal(t, MatchNone, kind)
}

func TestFindMatchRawTextFallback(t *testing.T) {
	// Normalization maps "kosher salt" to "Salt"; a catalog that only has
	// the verbatim name still matches through the raw-text pass.
	catalog := []*entities.Ingredient{ing("Kosher Salt")}
	match, kind := FindMatch("Kosher Salt", catalog, nil)
	require.NotNil(t, match)
	assert.Equal(t, "Kosher Salt", match.Name)
	assert.Equal(t, MatchExact, kind)
}

func TestSuggestionsRanking(t *testing.T) {
	catalog := []*entities.Ingredient{
		ing("Chicken Breast"),
		ing("Chicken Thigh"),
		ing("Beef Brisket"),
	}

	got := Suggestions("Chicken Breast", catalog, 5)
	require.NotEmpty(t, got)
	assert.Equal(t, "Chicken Breast", got[0].Ingredient.Name)
	assert.Equal(t, 100.0, got[0].Score)
	assert.Equal(t, "exact", got[0].Reason)
}

func TestSuggestionsPartialOverlap(t *testing.T) {
	catalog := []*entities.Ingredient{ing("Chicken Breast"), ing("Flour")}

	got := Suggestions("Chicken Cutlet", catalog, 5)
	require.NotEmpty(t, got)
	assert.Equal(t, "Chicken Breast", got[0].Ingredient.Name)
	assert.Equal(t, "partial", got[0].Reason)
	assert.InDelta(t, 40.0, got[0].Score, 1e-9)
}

func TestSuggestionsFuzzyMisspelling(t *testing.T) {
	catalog := []*entities.Ingredient{ing("Zucchini")}

	got := Suggestions("Zuchini", catalog, 5)
	require.NotEmpty(t, got)
	assert.Equal(t, "Zucchini", got[0].Ingredient.Name)
	assert.Equal(t, "fuzzy", got[0].Reason)
	assert.GreaterOrEqual(t, got[0].Score, 40.0)
}

func TestSuggestionsStableOrder(t *testing.T) {
	catalog := []*entities.Ingredient{
		ing("Red Pepper"),
		ing("Green Pepper"),
	}

	first := Suggestions("Pepper", catalog, 5)
	require.Len(t, first, 2)
	for i := 0; i < 10; i++ {
		again := Suggestions("Pepper", catalog, 5)
		require.Len(t, again, 2)
		assert.Equal(t, first[0].Ingredient.Name, again[0].Ingredient.Name)
		assert.Equal(t, first[1].Ingredient.Name, again[1].Ingredient.Name)
	}
}

func TestSuggestionsLimit(t *testing.T) {
	catalog := []*entities.Ingredient{
		ing("Red Pepper"), ing("Green Pepper"), ing("Bell Pepper"), ing("Pepper Jack"),
	}
	got := Suggestions("Pepper", catalog, 2)
	assert.Len(t, got, 2)
}
