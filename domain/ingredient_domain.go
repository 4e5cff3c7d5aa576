package domain

import (
	"errors"
)

var (
	MessageSuccessAddIngredient    = "ingredient added successfully"
	MessageSuccessUpdateIngredient = "ingredient updated successfully"
	MessageSuccessDeleteIngredient = "ingredient deleted successfully"
	MessageSuccessAddSynonym       = "synonym added successfully"
	MessageSuccessCleanup          = "catalog cleanup complete"

	MessageFailedAddIngredient    = "failed to add ingredient"
	MessageFailedUpdateIngredient = "failed to update ingredient"
	MessageFailedDeleteIngredient = "failed to delete ingredient"

	ErrIngredientNotFound  = errors.New("ingredient not found")
	ErrIngredientExists    = errors.New("ingredient with that name already exists")
	ErrSynonymExists       = errors.New("synonym already exists")
	ErrFormulaFieldMissing = errors.New("formula-specific field missing or not positive")

	// Invariant violations: these values are whitelist-validated before the
	// cost calculator runs, so seeing them there is an internal defect.
	ErrUnknownCostFormula = errors.New("unknown cost formula")
	ErrUnknownBaseUnit    = errors.New("unknown base unit")

	// ErrCostComputation flags a negative or non-finite arithmetic result in
	// conversion or pricing. Never clamped, always propagated.
	ErrCostComputation = errors.New("cost computation produced an invalid value")
)

type (
	UpsertIngredientRequest struct {
		Name        string  `json:"name" validate:"required,max=200"`
		Category    string  `json:"category" validate:"omitempty,max=50"`
		CostFormula string  `json:"cost_formula" validate:"required,oneof=WEIGHT VOLUME PORTION PACKAGE COUNT"`
		BaseUnit    string  `json:"base_unit" validate:"required"`
		Cost        float64 `json:"cost" validate:"gte=0"`
		MinPurchase float64 `json:"min_purchase" validate:"gte=0"`
		IsCore      bool    `json:"is_core"`

		PieceWeightG *float64 `json:"piece_weight_g,omitempty" validate:"omitempty,gt=0"`
		PortionML    *float64 `json:"portion_ml,omitempty" validate:"omitempty,gt=0"`
		PortionG     *float64 `json:"portion_g,omitempty" validate:"omitempty,gt=0"`
		PkgCount     *float64 `json:"pkg_count,omitempty" validate:"omitempty,gt=0"`
	}

	AddSynonymRequest struct {
		IngredientID string `json:"ingredient_id" validate:"required,uuid"`
		Synonym      string `json:"synonym" validate:"required,max=200"`
	}

	IngredientResponse struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		Category    string   `json:"category"`
		CostFormula string   `json:"cost_formula"`
		BaseUnit    string   `json:"base_unit"`
		Cost        float64  `json:"cost"`
		MinPurchase float64  `json:"min_purchase"`
		IsCore      bool     `json:"is_core"`
		Synonyms    []string `json:"synonyms,omitempty"`
	}

	CleanupResult struct {
		MergedDuplicates int `json:"merged_duplicates"`
		RemovedOrphans   int `json:"removed_orphans"`
		RemovedUnused    int `json:"removed_unused"`
	}
)
