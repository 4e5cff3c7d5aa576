package shopping

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mealplanner/entities"
)

type (
	ShoppingRepository interface {
		GetItems(ctx context.Context) ([]*entities.ShoppingItem, error)
		GetItemByID(ctx context.Context, id uuid.UUID) (*entities.ShoppingItem, error)
		CreateItem(ctx context.Context, item *entities.ShoppingItem) error
		CreateItems(ctx context.Context, items []*entities.ShoppingItem) error
		UpdateItem(ctx context.Context, item *entities.ShoppingItem) error
		DeleteItem(ctx context.Context, id uuid.UUID) error
		DeleteGenerated(ctx context.Context) error
		DeleteChecked(ctx context.Context) error
	}

	shoppingRepository struct {
		db *gorm.DB
	}
)

func NewShoppingRepository(db *gorm.DB) ShoppingRepository {
	return &shoppingRepository{db: db}
}

func (r *shoppingRepository) GetItems(ctx context.Context) ([]*entities.ShoppingItem, error) {
	var items []*entities.ShoppingItem
	if err := r.db.WithContext(ctx).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *shoppingRepository) GetItemByID(ctx context.Context, id uuid.UUID) (*entities.ShoppingItem, error) {
	var item entities.ShoppingItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *shoppingRepository) CreateItem(ctx context.Context, item *entities.ShoppingItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *shoppingRepository) CreateItems(ctx context.Context, items []*entities.ShoppingItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(items).Error
}

func (r *shoppingRepository) UpdateItem(ctx context.Context, item *entities.ShoppingItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *shoppingRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.ShoppingItem{}).Error
}

// DeleteGenerated removes every non-manual row. Regeneration always clears
// the whole generated set before writing, whichever source triggered it.
func (r *shoppingRepository) DeleteGenerated(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("source <> ?", entities.SourceManual).
		Delete(&entities.ShoppingItem{}).Error
}

func (r *shoppingRepository) DeleteChecked(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("checked = ?", true).Delete(&entities.ShoppingItem{}).Error
}
