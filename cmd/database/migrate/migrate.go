package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"mealplanner/entities"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.Ingredient{}); err != nil {
		log.Fatalf("Error migrating ingredient database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.IngredientSynonym{}); err != nil {
		log.Fatalf("Error migrating ingredient synonym database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Recipe{}); err != nil {
		log.Fatalf("Error migrating recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.RecipeIngredient{}); err != nil {
		log.Fatalf("Error migrating recipe ingredient database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ShoppingItem{}); err != nil {
		log.Fatalf("Error migrating shopping item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.PantryStaple{}); err != nil {
		log.Fatalf("Error migrating pantry staple database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.UseUpItem{}); err != nil {
		log.Fatalf("Error migrating use up item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.MealPlan{}); err != nil {
		log.Fatalf("Error migrating meal plan database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
