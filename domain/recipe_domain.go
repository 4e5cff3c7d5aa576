package domain

import (
	"errors"
)

var (
	MessageSuccessAddRecipe    = "recipe added successfully"
	MessageSuccessImportRecipe = "recipe imported successfully"

	MessageFailedAddRecipe    = "failed to add recipe"
	MessageFailedImportRecipe = "failed to import recipe"

	ErrRecipeNotFound = errors.New("recipe not found")
	ErrRecipeExists   = errors.New("recipe with that name already exists")
	ErrNoRecipeData   = errors.New("no structured recipe data found")
)

type (
	AddRecipeRequest struct {
		Name         string `json:"name" validate:"required,max=200"`
		Category     string `json:"category" validate:"omitempty,oneof=Dinner Breakfast Lunch Dessert Appetizer Side Soup Salad Snack Beverage Archive"`
		Difficulty   string `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
		ProteinType  string `json:"protein_type" validate:"omitempty,max=20"`
		Servings     int    `json:"servings" validate:"omitempty,min=1"`
		Instructions string `json:"instructions" validate:"omitempty,max=50000"`
		SourceURL    string `json:"source_url" validate:"omitempty,max=500"`
	}

	AddIngredientLineRequest struct {
		RecipeID string `json:"recipe_id" validate:"required,uuid"`
		Text     string `json:"text" validate:"required,max=500"`
	}

	// ParsedLine is one reviewed row of a bulk import: the parser/matcher
	// verdict for a single free-text ingredient line. Match is nil when the
	// matcher found nothing; Suggestions are advisory and never auto-assigned.
	ParsedLine struct {
		RawText      string               `json:"raw_text"`
		Quantity     float64              `json:"quantity"`
		Unit         string               `json:"unit"`
		Name         string               `json:"name"`
		Normalized   string               `json:"normalized"`
		Match        *IngredientResponse  `json:"match,omitempty"`
		MatchType    string               `json:"match_type,omitempty"`
		Suggestions  []SuggestionResponse `json:"suggestions,omitempty"`
		ConvertedQty *float64             `json:"converted_qty,omitempty"`
		BaseUnit     string               `json:"base_unit,omitempty"`
	}

	SuggestionResponse struct {
		IngredientID string  `json:"ingredient_id"`
		Name         string  `json:"name"`
		Score        float64 `json:"score"`
		Reason       string  `json:"reason"`
	}

	// ImportedRecipe is the structured-data extraction result for one page.
	ImportedRecipe struct {
		Name            string   `json:"name"`
		IngredientLines []string `json:"ingredient_lines"`
		Instructions    string   `json:"instructions"`
		Servings        int      `json:"servings"`
		ImageURL        string   `json:"image_url,omitempty"`
		SourceURL       string   `json:"source_url,omitempty"`
	}
)
