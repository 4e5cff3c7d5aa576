package domain

import (
	"errors"
)

var (
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"

	ErrParseUUID = errors.New("failed to parse UUID")
)

// Closed enumerations validated at the boundary. The core packages treat an
// out-of-enum value reaching them as an invariant violation, not user input.
var (
	ValidCostFormulas = []string{"WEIGHT", "VOLUME", "PORTION", "PACKAGE", "COUNT"}

	ValidCategories = []string{
		"Produce", "Meat", "Dairy", "Bakery", "Pantry", "Frozen",
		"Beverages", "Condiments", "Spices", "Canned", "Other",
	}

	ValidRecipeCategories = []string{
		"Dinner", "Breakfast", "Lunch", "Dessert", "Appetizer",
		"Side", "Soup", "Salad", "Snack", "Beverage", "Archive",
	}

	ValidDifficulties = []string{"Easy", "Medium", "Hard"}

	ValidMealTypes = []string{"Breakfast", "Lunch", "Dinner", "Dessert", "Snack"}
)
