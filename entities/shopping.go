package entities

import (
	"github.com/google/uuid"
)

// Shopping item sources. Regeneration replaces recipe/mealplan rows wholesale
// and never touches manual rows.
const (
	SourceManual   = "manual"
	SourceRecipe   = "recipe"
	SourceMealPlan = "mealplan"
)

type ShoppingItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Quantity float64   `gorm:"default:1" json:"quantity"`
	Unit     string    `gorm:"default:EA" json:"unit"`
	Checked  bool      `gorm:"default:false" json:"checked"`
	Category string    `gorm:"default:Other" json:"category"`
	UnitCost string    `json:"unit_cost,omitempty"` // display label, e.g. "$3.99/LB"
	Cost     float64   `gorm:"default:0" json:"cost"`
	Source   string    `gorm:"index;default:manual" json:"source"`

	// Nullable link to the catalog for ID-based merging; manual entries may
	// carry only a free-text name.
	IngredientID *uuid.UUID  `gorm:"index" json:"ingredient_id,omitempty"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:SET NULL" json:"-"`
	Timestamp
}

// PantryStaple marks an ingredient the user keeps on hand; staples with
// HaveIt set are suppressed from generated shopping lists.
type PantryStaple struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	IngredientID uuid.UUID `gorm:"uniqueIndex;not null" json:"ingredient_id"`
	HaveIt       bool      `gorm:"default:true" json:"have_it"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"ingredient,omitempty"`
	Timestamp
}

// UseUpItem prioritizes an ingredient: it is surfaced first in shopping
// list ordering and in meal planning.
type UseUpItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	IngredientID uuid.UUID `gorm:"uniqueIndex;not null" json:"ingredient_id"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"ingredient,omitempty"`
	Timestamp
}
