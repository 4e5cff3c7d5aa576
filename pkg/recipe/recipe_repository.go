package recipe

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mealplanner/entities"
)

type (
	RecipeRepository interface {
		GetAll(ctx context.Context) ([]*entities.Recipe, error)
		GetByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Recipe, error)
		GetByCategory(ctx context.Context, category string) ([]*entities.Recipe, error)
		FindByNameInsensitive(ctx context.Context, name string) (*entities.Recipe, error)
		Create(ctx context.Context, recipe *entities.Recipe) error
		Update(ctx context.Context, recipe *entities.Recipe) error
		Delete(ctx context.Context, id uuid.UUID) error

		AddIngredientLine(ctx context.Context, line *entities.RecipeIngredient) error
		DeleteIngredientLine(ctx context.Context, id uuid.UUID) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) GetAll(ctx context.Context) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		Order("name asc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Preload("Ingredients.Ingredient").
		Where("id IN ?", ids).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) GetByCategory(ctx context.Context, category string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Ingredients").
		Where("category = ?", category).
		Order("name asc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) FindByNameInsensitive(ctx context.Context, name string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Where("lower(name) = lower(?)", name).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) Create(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) Update(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Save(recipe).Error
}

func (r *recipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Recipe{}).Error
}

func (r *recipeRepository) AddIngredientLine(ctx context.Context, line *entities.RecipeIngredient) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *recipeRepository) DeleteIngredientLine(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.RecipeIngredient{}).Error
}
