package entities

import (
	"github.com/google/uuid"
)

// Cost formula types. The formula decides how a recipe quantity is converted
// into the ingredient's base unit before pricing.
const (
	FormulaWeight  = "WEIGHT"  // sold by weight, converts G/OZ/LB/KG or pieces via PieceWeightG
	FormulaVolume  = "VOLUME"  // sold by volume, converts ML/L/CUP/TBSP/TSP
	FormulaPortion = "PORTION" // sold by portion, uses PortionML or PortionG
	FormulaPackage = "PACKAGE" // sold in packages, uses PkgCount
	FormulaCount   = "COUNT"   // sold individually, no conversion
)

type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name     string    `gorm:"uniqueIndex;not null" json:"name"`
	Category string    `gorm:"index;default:Other" json:"category"`

	// CostFormula selects the conversion method; must be one of the Formula* constants.
	CostFormula string `gorm:"default:COUNT" json:"cost_formula"`

	// BaseUnit is what the price is denominated in (cost per one BaseUnit).
	BaseUnit string  `gorm:"default:EA" json:"base_unit"`
	Cost     float64 `gorm:"default:0" json:"cost"`

	// MinPurchase is the smallest quantity purchasable, in BaseUnit.
	MinPurchase float64 `gorm:"default:1" json:"min_purchase"`

	// IsCore ingredients survive catalog cleanup even when unused.
	IsCore bool `gorm:"default:false" json:"is_core"`

	// Formula-specific fields. Exactly the field(s) belonging to the selected
	// formula must be set and positive; the rest are ignored.
	PieceWeightG *float64 `json:"piece_weight_g,omitempty"` // WEIGHT: average grams per piece
	PortionML    *float64 `json:"portion_ml,omitempty"`     // PORTION: millilitres per portion
	PortionG     *float64 `json:"portion_g,omitempty"`      // PORTION: grams per portion
	PkgCount     *float64 `json:"pkg_count,omitempty"`      // PACKAGE: units per package

	Synonyms []*IngredientSynonym `gorm:"foreignKey:IngredientID" json:"synonyms,omitempty"`
	Timestamp
}

// IngredientSynonym maps an alternate name to its canonical ingredient,
// e.g. "minced beef" -> "Ground Beef". Synonym text is stored normalized.
type IngredientSynonym struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Synonym      string    `gorm:"uniqueIndex;not null" json:"synonym"`
	IngredientID uuid.UUID `gorm:"index;not null" json:"ingredient_id"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}
