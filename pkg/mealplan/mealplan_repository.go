package mealplan

import (
	"context"

	"gorm.io/gorm"

	"mealplanner/entities"
)

type (
	MealPlanRepository interface {
		GetWeek(ctx context.Context, week int) ([]*entities.MealPlan, error)
		GetSlot(ctx context.Context, week, day int, mealType string) (*entities.MealPlan, error)
		Create(ctx context.Context, slot *entities.MealPlan) error
		Update(ctx context.Context, slot *entities.MealPlan) error
		DeleteWeek(ctx context.Context, week int) error
	}

	mealPlanRepository struct {
		db *gorm.DB
	}
)

func NewMealPlanRepository(db *gorm.DB) MealPlanRepository {
	return &mealPlanRepository{db: db}
}

func (r *mealPlanRepository) GetWeek(ctx context.Context, week int) ([]*entities.MealPlan, error) {
	var slots []*entities.MealPlan
	if err := r.db.WithContext(ctx).
		Preload("Recipe").
		Where("week = ?", week).
		Order("day asc, meal_type asc").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *mealPlanRepository) GetSlot(ctx context.Context, week, day int, mealType string) (*entities.MealPlan, error) {
	var slot entities.MealPlan
	if err := r.db.WithContext(ctx).
		Where("week = ? AND day = ? AND meal_type = ?", week, day, mealType).
		First(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *mealPlanRepository) Create(ctx context.Context, slot *entities.MealPlan) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *mealPlanRepository) Update(ctx context.Context, slot *entities.MealPlan) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

func (r *mealPlanRepository) DeleteWeek(ctx context.Context, week int) error {
	return r.db.WithContext(ctx).
		Where("week = ? AND locked = ?", week, false).
		Delete(&entities.MealPlan{}).Error
}
