package domain

import (
	"errors"
)

var (
	MessageSuccessRandomize = "week randomized (locked meals preserved)"

	MessageFailedRandomize = "failed to randomize meal plan"

	ErrMealPlanEmpty   = errors.New("no meals in the plan")
	ErrMealSlotMissing = errors.New("meal slot not found")
)

type (
	RandomizeRequest struct {
		Week           int  `json:"week" validate:"min=1"`
		IncludeDessert bool `json:"include_dessert"`
	}

	MealSlotResponse struct {
		Day        int    `json:"day"`
		MealType   string `json:"meal_type"`
		RecipeID   string `json:"recipe_id,omitempty"`
		RecipeName string `json:"recipe_name,omitempty"`
		Locked     bool   `json:"locked"`
	}
)
