package entities

import (
	"github.com/google/uuid"
)

// MealPlan is one slot of the weekly plan. Locked slots survive
// randomization.
type MealPlan struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Week     int        `gorm:"index;not null" json:"week"`
	Day      int        `gorm:"not null" json:"day"` // 1-7
	MealType string     `gorm:"not null" json:"meal_type"`
	RecipeID *uuid.UUID `gorm:"index" json:"recipe_id,omitempty"`
	Locked   bool       `gorm:"default:false" json:"locked"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:SET NULL" json:"recipe,omitempty"`
	Timestamp
}
