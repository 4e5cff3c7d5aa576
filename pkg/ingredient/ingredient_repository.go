package ingredient

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mealplanner/entities"
)

type (
	IngredientRepository interface {
		GetAll(ctx context.Context) ([]*entities.Ingredient, error)
		GetByID(ctx context.Context, id uuid.UUID) (*entities.Ingredient, error)
		FindByNameInsensitive(ctx context.Context, name string) (*entities.Ingredient, error)
		Create(ctx context.Context, ing *entities.Ingredient) error
		Update(ctx context.Context, ing *entities.Ingredient) error
		Delete(ctx context.Context, id uuid.UUID) error

		GetSynonyms(ctx context.Context) ([]*entities.IngredientSynonym, error)
		FindSynonym(ctx context.Context, synonym string) (*entities.IngredientSynonym, error)
		CreateSynonym(ctx context.Context, syn *entities.IngredientSynonym) error
		DeleteSynonymByID(ctx context.Context, id uuid.UUID) error

		GetPantryStaples(ctx context.Context) ([]*entities.PantryStaple, error)
		FindPantryStaple(ctx context.Context, ingredientID uuid.UUID) (*entities.PantryStaple, error)
		CreatePantryStaple(ctx context.Context, staple *entities.PantryStaple) error
		UpdatePantryStaple(ctx context.Context, staple *entities.PantryStaple) error
		DeletePantryStaple(ctx context.Context, ingredientID uuid.UUID) error

		GetUseUpItems(ctx context.Context) ([]*entities.UseUpItem, error)
		CreateUseUpItem(ctx context.Context, item *entities.UseUpItem) error
		DeleteUseUpItem(ctx context.Context, ingredientID uuid.UUID) error

		RecipeUsageCounts(ctx context.Context) (map[uuid.UUID]int64, error)
		RepointRecipeIngredients(ctx context.Context, from, to uuid.UUID) error
	}

	ingredientRepository struct {
		db *gorm.DB
	}
)

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) GetAll(ctx context.Context) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if err := r.db.WithContext(ctx).
		Preload("Synonyms").
		Order("name asc").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Ingredient, error) {
	var ing entities.Ingredient
	if err := r.db.WithContext(ctx).
		Preload("Synonyms").
		Where("id = ?", id).
		First(&ing).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *ingredientRepository) FindByNameInsensitive(ctx context.Context, name string) (*entities.Ingredient, error) {
	var ing entities.Ingredient
	if err := r.db.WithContext(ctx).
		Where("lower(name) = lower(?)", name).
		First(&ing).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *ingredientRepository) Create(ctx context.Context, ing *entities.Ingredient) error {
	return r.db.WithContext(ctx).Create(ing).Error
}

func (r *ingredientRepository) Update(ctx context.Context, ing *entities.Ingredient) error {
	return r.db.WithContext(ctx).Save(ing).Error
}

func (r *ingredientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Ingredient{}).Error
}

func (r *ingredientRepository) GetSynonyms(ctx context.Context) ([]*entities.IngredientSynonym, error) {
	var synonyms []*entities.IngredientSynonym
	if err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Find(&synonyms).Error; err != nil {
		return nil, err
	}
	return synonyms, nil
}

func (r *ingredientRepository) FindSynonym(ctx context.Context, synonym string) (*entities.IngredientSynonym, error) {
	var syn entities.IngredientSynonym
	if err := r.db.WithContext(ctx).
		Where("lower(synonym) = lower(?)", synonym).
		First(&syn).Error; err != nil {
		return nil, err
	}
	return &syn, nil
}

func (r *ingredientRepository) CreateSynonym(ctx context.Context, syn *entities.IngredientSynonym) error {
	return r.db.WithContext(ctx).Create(syn).Error
}

func (r *ingredientRepository) DeleteSynonymByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.IngredientSynonym{}).Error
}

func (r *ingredientRepository) GetPantryStaples(ctx context.Context) ([]*entities.PantryStaple, error) {
	var staples []*entities.PantryStaple
	if err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Find(&staples).Error; err != nil {
		return nil, err
	}
	return staples, nil
}

func (r *ingredientRepository) FindPantryStaple(ctx context.Context, ingredientID uuid.UUID) (*entities.PantryStaple, error) {
	var staple entities.PantryStaple
	if err := r.db.WithContext(ctx).
		Where("ingredient_id = ?", ingredientID).
		First(&staple).Error; err != nil {
		return nil, err
	}
	return &staple, nil
}

func (r *ingredientRepository) CreatePantryStaple(ctx context.Context, staple *entities.PantryStaple) error {
	return r.db.WithContext(ctx).Create(staple).Error
}

func (r *ingredientRepository) UpdatePantryStaple(ctx context.Context, staple *entities.PantryStaple) error {
	return r.db.WithContext(ctx).Save(staple).Error
}

func (r *ingredientRepository) DeletePantryStaple(ctx context.Context, ingredientID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("ingredient_id = ?", ingredientID).
		Delete(&entities.PantryStaple{}).Error
}

func (r *ingredientRepository) GetUseUpItems(ctx context.Context) ([]*entities.UseUpItem, error) {
	var items []*entities.UseUpItem
	if err := r.db.WithContext(ctx).
		Preload("Ingredient").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ingredientRepository) CreateUseUpItem(ctx context.Context, item *entities.UseUpItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *ingredientRepository) DeleteUseUpItem(ctx context.Context, ingredientID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("ingredient_id = ?", ingredientID).
		Delete(&entities.UseUpItem{}).Error
}

func (r *ingredientRepository) RecipeUsageCounts(ctx context.Context) (map[uuid.UUID]int64, error) {
	type usageRow struct {
		IngredientID uuid.UUID
		Count        int64
	}
	var rows []usageRow
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeIngredient{}).
		Select("ingredient_id, count(*) as count").
		Where("ingredient_id IS NOT NULL").
		Group("ingredient_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.IngredientID] = row.Count
	}
	return counts, nil
}

func (r *ingredientRepository) RepointRecipeIngredients(ctx context.Context, from, to uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entities.RecipeIngredient{}).
		Where("ingredient_id = ?", from).
		Update("ingredient_id", to).Error
}
