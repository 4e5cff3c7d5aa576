package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealplanner/domain"
)

func page(ldjson string) string {
	return `<!DOCTYPE html><html><head>
<script type="application/ld+json">` + ldjson + `</script>
</head><body><h1>Recipe page</h1></body></html>`
}

func TestExtractSingleRecipeObject(t *testing.T) {
	doc := page(`{
		"@context": "https://schema.org",
		"@type": "Recipe",
		"name": "Weeknight Chili",
		"recipeIngredient": ["1 lb ground beef", "1 can (15 oz) kidney beans"],
		"recipeInstructions": "Brown the beef. Add beans. Simmer.",
		"recipeYield": "4 servings",
		"image": "https://example.com/chili.jpg"
	}`)

	got, err := Extract(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "Weeknight Chili", got.Name)
	assert.Len(t, got.IngredientLines, 2)
	assert.Equal(t, "Brown the beef. Add beans. Simmer.", got.Instructions)
	assert.Equal(t, 4, got.Servings)
	assert.Equal(t, "https://example.com/chili.jpg", got.ImageURL)
}

func TestExtractGraphWrapper(t *testing.T) {
	doc := page(`{
		"@context": "https://schema.org",
		"@graph": [
			{"@type": "WebSite", "name": "Some Blog"},
			{"@type": ["Recipe", "NewsArticle"],
			 "name": "Lemon Pasta",
			 "recipeIngredient": ["8 oz spaghetti"],
			 "recipeYield": 2}
		]
	}`)

	got, err := Extract(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "Lemon Pasta", got.Name)
	assert.Equal(t, []string{"8 oz spaghetti"}, got.IngredientLines)
	assert.Equal(t, 2, got.Servings)
}

func TestExtractTopLevelArray(t *testing.T) {
	doc := page(`[
		{"@type": "BreadcrumbList"},
		{"@type": "Recipe", "name": "Shakshuka", "recipeIngredient": ["6 eggs"]}
	]`)

	got, err := Extract(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "Shakshuka", got.Name)
}

func TestExtractHowToSteps(t *testing.T) {
	doc := page(`{
		"@type": "Recipe",
		"name": "Pancakes",
		"recipeIngredient": ["2 cups flour"],
		"recipeInstructions": [
			{"@type": "HowToStep", "text": "Whisk the dry ingredients."},
			{"@type": "HowToSection", "itemListElement": [
				{"@type": "HowToStep", "text": "Fold in the wet ingredients."},
				{"@type": "HowToStep", "text": "Cook on a hot griddle."}
			]}
		]
	}`)

	got, err := Extract(strings.NewReader(doc))
	require.NoError(t, err)
	steps := strings.Split(got.Instructions, "\n")
	require.Len(t, steps, 3)
	assert.Equal(t, "Whisk the dry ingredients.", steps[0])
	assert.Equal(t, "Cook on a hot griddle.", steps[2])
}

func TestExtractImageVariants(t *testing.T) {
	doc := page(`{
		"@type": "Recipe",
		"name": "Salad",
		"image": {"@type": "ImageObject", "url": "https://example.com/salad.png"}
	}`)

	got, err := Extract(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/salad.png", got.ImageURL)
}

func TestExtractNoRecipeData(t *testing.T) {
	_, err := Extract(strings.NewReader(page(`{"@type": "WebSite", "name": "Some Blog"}`)))
	assert.ErrorIs(t, err, domain.ErrNoRecipeData)

	_, err = Extract(strings.NewReader(`<html><body><p>No structured data here.</p></body></html>`))
	assert.ErrorIs(t, err, domain.ErrNoRecipeData)
}

func TestExtractSkipsMalformedScriptThenFindsRecipe(t *testing.T) {
	doc := `<html><head>
<script type="application/ld+json">{not json at all</script>
<script type="application/ld+json">{"@type": "Recipe", "name": "Backup Recipe"}</script>
</head><body></body></html>`

	got, err := Extract(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "Backup Recipe", got.Name)
}
