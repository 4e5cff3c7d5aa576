package config

import (
	"math/rand"
	"time"

	"gorm.io/gorm"

	"mealplanner/internal/logger"
	"mealplanner/internal/utils"
	"mealplanner/pkg/importer"
	"mealplanner/pkg/ingredient"
	"mealplanner/pkg/mealplan"
	"mealplanner/pkg/recipe"
	"mealplanner/pkg/shopping"
)

// App bundles the wired services. Callers embed it behind whatever surface
// they expose; everything here is transport-agnostic.
type App struct {
	IngredientService ingredient.IngredientService
	RecipeService     recipe.RecipeService
	ShoppingService   shopping.ShoppingService
	MealPlanService   mealplan.MealPlanService
	ImporterService   importer.ImporterService
}

func NewApp(db *gorm.DB) (*App, error) {
	utils.InitValidator()
	logger.InitializeLogger()

	// Repository
	ingredientRepository := ingredient.NewIngredientRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	shoppingRepository := shopping.NewShoppingRepository(db)
	mealPlanRepository := mealplan.NewMealPlanRepository(db)

	// Service
	ingredientService := ingredient.NewIngredientService(ingredientRepository)
	recipeService := recipe.NewRecipeService(recipeRepository, ingredientRepository)
	shoppingService := shopping.NewShoppingService(shoppingRepository, ingredientRepository, recipeRepository)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	mealPlanService := mealplan.NewMealPlanService(mealPlanRepository, recipeRepository, ingredientRepository, shoppingService, rng)
	importerService := importer.NewImporterService()

	return &App{
		IngredientService: ingredientService,
		RecipeService:     recipeService,
		ShoppingService:   shoppingService,
		MealPlanService:   mealPlanService,
		ImporterService:   importerService,
	}, nil
}
