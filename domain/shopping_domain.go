package domain

import (
	"errors"
)

var (
	MessageSuccessAddShoppingItem = "shopping item added successfully"
	MessageSuccessRegenerate      = "shopping list regenerated (manual items preserved)"

	MessageFailedAddShoppingItem = "failed to add shopping item"
	MessageFailedRegenerate      = "failed to regenerate shopping list"

	ErrShoppingItemNotFound = errors.New("shopping item not found")
	ErrNoRecipesSelected    = errors.New("no recipes selected")
)

type (
	AddShoppingItemRequest struct {
		Name     string  `json:"name" validate:"required,max=200"`
		Quantity float64 `json:"quantity" validate:"omitempty,gt=0"`
		Unit     string  `json:"unit" validate:"omitempty,max=10"`
		Category string  `json:"category" validate:"omitempty,max=50"`
	}

	RegenerateRequest struct {
		RecipeIDs   []string           `json:"recipe_ids" validate:"required,min=1,dive,uuid"`
		Multipliers map[string]float64 `json:"multipliers,omitempty" validate:"omitempty,dive,gt=0"`
	}

	ShoppingItemResponse struct {
		ID            string  `json:"id"`
		Name          string  `json:"name"`
		Quantity      float64 `json:"quantity"`
		Unit          string  `json:"unit"`
		QuantityLabel string  `json:"quantity_label"`
		Checked       bool    `json:"checked"`
		Category      string  `json:"category"`
		UnitCost      string  `json:"unit_cost,omitempty"`
		Cost          float64 `json:"cost"`
		Source        string  `json:"source"`
		UseUp         bool    `json:"use_up"`
	}

	ShoppingTotalsResponse struct {
		Subtotal float64 `json:"subtotal"`
		Tax      float64 `json:"tax"`
		Total    float64 `json:"total"`
	}
)
