package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name         string    `gorm:"uniqueIndex;not null" json:"name"`
	Category     string    `gorm:"index;default:Dinner" json:"category"`
	Difficulty   string    `gorm:"default:Easy" json:"difficulty"`
	ProteinType  string    `gorm:"index;default:None" json:"protein_type"`
	Servings     int       `gorm:"default:4" json:"servings"`
	Instructions string    `gorm:"type:text" json:"instructions"`
	SourceURL    string    `json:"source_url,omitempty"`

	Ingredients []*RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients,omitempty"`
	Timestamp
}

// RecipeIngredient links a recipe to an ingredient with the quantity the
// recipe calls for, kept in the recipe's original unit. IngredientID may
// dangle after an ingredient is deleted; RawText preserves the source line
// so the row can still surface as a free-text shopping entry.
type RecipeIngredient struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID     uuid.UUID  `gorm:"index;not null" json:"recipe_id"`
	IngredientID *uuid.UUID `gorm:"index" json:"ingredient_id,omitempty"`
	Quantity     float64    `gorm:"not null" json:"quantity"`
	Unit         string     `gorm:"not null" json:"unit"`
	RawText      string     `json:"raw_text,omitempty"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:SET NULL" json:"ingredient,omitempty"`
	Timestamp
}
