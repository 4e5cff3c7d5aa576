package mealplan

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mealplanner/domain"
	"mealplanner/entities"
	"mealplanner/internal/logger"
	"mealplanner/pkg/ingredient"
	"mealplanner/pkg/recipe"
	"mealplanner/pkg/shopping"
)

const daysPerWeek = 7

type (
	MealPlanService interface {
		GetWeek(ctx context.Context, week int) ([]domain.MealSlotResponse, error)
		Randomize(ctx context.Context, req domain.RandomizeRequest) ([]domain.MealSlotResponse, error)
		AssignRecipe(ctx context.Context, week, day int, mealType, recipeID string) error
		SetSlotLock(ctx context.Context, week, day int, mealType string, locked bool) error
		GenerateShoppingList(ctx context.Context, week int) error
	}

	mealPlanService struct {
		mealPlanRepository   MealPlanRepository
		recipeRepository     recipe.RecipeRepository
		ingredientRepository ingredient.IngredientRepository
		shoppingService      shopping.ShoppingService
		rng                  *rand.Rand
	}
)

// NewMealPlanService wires the planner. The random source is injected so
// randomization is reproducible under test.
func NewMealPlanService(
	mealPlanRepository MealPlanRepository,
	recipeRepository recipe.RecipeRepository,
	ingredientRepository ingredient.IngredientRepository,
	shoppingService shopping.ShoppingService,
	rng *rand.Rand,
) MealPlanService {
	return &mealPlanService{
		mealPlanRepository:   mealPlanRepository,
		recipeRepository:     recipeRepository,
		ingredientRepository: ingredientRepository,
		shoppingService:      shoppingService,
		rng:                  rng,
	}
}

func (s *mealPlanService) GetWeek(ctx context.Context, week int) ([]domain.MealSlotResponse, error) {
	slots, err := s.mealPlanRepository.GetWeek(ctx, week)
	if err != nil {
		return nil, err
	}
	responses := make([]domain.MealSlotResponse, 0, len(slots))
	for _, slot := range slots {
		responses = append(responses, toSlotResponse(slot))
	}
	return responses, nil
}

// Randomize fills the week's dinner slots with distinct recipes drawn from
// the Dinner category, reusing recipes only once the pool runs out. Locked
// slots keep their assignment. With IncludeDessert set, each day also gets a
// dessert. Drawing order is shuffled, then recipes using use-up ingredients
// float to the front.
func (s *mealPlanService) Randomize(ctx context.Context, req domain.RandomizeRequest) ([]domain.MealSlotResponse, error) {
	week := req.Week
	if week < 1 {
		week = 1
	}

	existing, err := s.mealPlanRepository.GetWeek(ctx, week)
	if err != nil {
		return nil, err
	}
	locked := make(map[string]*entities.MealPlan)
	for _, slot := range existing {
		if slot.Locked {
			locked[slotKey(slot.Day, slot.MealType)] = slot
		}
	}

	if err := s.mealPlanRepository.DeleteWeek(ctx, week); err != nil {
		return nil, err
	}

	dinners, err := s.recipeRepository.GetByCategory(ctx, "Dinner")
	if err != nil {
		return nil, err
	}
	if len(dinners) == 0 {
		return nil, domain.ErrMealPlanEmpty
	}
	useUpIDs, err := s.useUpIDs(ctx)
	if err != nil {
		return nil, err
	}
	dinnerPool := s.shuffledPool(dinners, useUpIDs)

	var dessertPool []*entities.Recipe
	if req.IncludeDessert {
		desserts, err := s.recipeRepository.GetByCategory(ctx, "Dessert")
		if err != nil {
			return nil, err
		}
		dessertPool = s.shuffledPool(desserts, useUpIDs)
	}

	var results []*entities.MealPlan
	dinnerIdx, dessertIdx := 0, 0
	for day := 1; day <= daysPerWeek; day++ {
		slot, idx, err := s.fillSlot(ctx, week, day, "Dinner", locked, dinnerPool, dinnerIdx)
		if err != nil {
			return nil, err
		}
		dinnerIdx = idx
		results = append(results, slot)

		if req.IncludeDessert && len(dessertPool) > 0 {
			slot, idx, err := s.fillSlot(ctx, week, day, "Dessert", locked, dessertPool, dessertIdx)
			if err != nil {
				return nil, err
			}
			dessertIdx = idx
			results = append(results, slot)
		}
	}

	logger.Info("meal plan randomized", "week", week, "slots", len(results))

	responses := make([]domain.MealSlotResponse, 0, len(results))
	for _, slot := range results {
		responses = append(responses, toSlotResponse(slot))
	}
	return responses, nil
}

func (s *mealPlanService) fillSlot(
	ctx context.Context,
	week, day int,
	mealType string,
	locked map[string]*entities.MealPlan,
	pool []*entities.Recipe,
	next int,
) (*entities.MealPlan, int, error) {
	if held, ok := locked[slotKey(day, mealType)]; ok {
		return held, next, nil
	}

	rec := pool[next%len(pool)]
	id := rec.ID
	slot := &entities.MealPlan{
		Week:     week,
		Day:      day,
		MealType: mealType,
		RecipeID: &id,
		Recipe:   rec,
	}
	if err := s.mealPlanRepository.Create(ctx, slot); err != nil {
		return nil, next, err
	}
	return slot, next + 1, nil
}

// shuffledPool shuffles candidates, then pulls recipes that consume use-up
// ingredients to the front so they get planned first.
func (s *mealPlanService) shuffledPool(recipes []*entities.Recipe, useUpIDs map[uuid.UUID]bool) []*entities.Recipe {
	pool := make([]*entities.Recipe, len(recipes))
	copy(pool, recipes)
	s.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	sort.SliceStable(pool, func(i, j int) bool {
		return usesUseUp(pool[i], useUpIDs) && !usesUseUp(pool[j], useUpIDs)
	})
	return pool
}

func (s *mealPlanService) useUpIDs(ctx context.Context) (map[uuid.UUID]bool, error) {
	items, err := s.ingredientRepository.GetUseUpItems(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		ids[item.IngredientID] = true
	}
	return ids, nil
}

func usesUseUp(rec *entities.Recipe, useUpIDs map[uuid.UUID]bool) bool {
	for _, ri := range rec.Ingredients {
		if ri.IngredientID != nil && useUpIDs[*ri.IngredientID] {
			return true
		}
	}
	return false
}

func (s *mealPlanService) AssignRecipe(ctx context.Context, week, day int, mealType, recipeID string) error {
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.ErrParseUUID
	}
	if _, err := s.recipeRepository.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	slot, err := s.mealPlanRepository.GetSlot(ctx, week, day, mealType)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return s.mealPlanRepository.Create(ctx, &entities.MealPlan{
			Week:     week,
			Day:      day,
			MealType: mealType,
			RecipeID: &id,
		})
	}
	slot.RecipeID = &id
	return s.mealPlanRepository.Update(ctx, slot)
}

func (s *mealPlanService) SetSlotLock(ctx context.Context, week, day int, mealType string, locked bool) error {
	slot, err := s.mealPlanRepository.GetSlot(ctx, week, day, mealType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMealSlotMissing
		}
		return err
	}
	slot.Locked = locked
	return s.mealPlanRepository.Update(ctx, slot)
}

// GenerateShoppingList regenerates the mealplan-sourced shopping rows from
// the week's assigned recipes.
func (s *mealPlanService) GenerateShoppingList(ctx context.Context, week int) error {
	slots, err := s.mealPlanRepository.GetWeek(ctx, week)
	if err != nil {
		return err
	}

	seen := make(map[string]bool)
	var recipeIDs []string
	for _, slot := range slots {
		if slot.RecipeID == nil {
			continue
		}
		id := slot.RecipeID.String()
		if !seen[id] {
			seen[id] = true
			recipeIDs = append(recipeIDs, id)
		}
	}
	if len(recipeIDs) == 0 {
		return domain.ErrMealPlanEmpty
	}

	return s.shoppingService.Regenerate(ctx, domain.RegenerateRequest{RecipeIDs: recipeIDs}, entities.SourceMealPlan)
}

func slotKey(day int, mealType string) string {
	return fmt.Sprintf("%d:%s", day, mealType)
}

func toSlotResponse(slot *entities.MealPlan) domain.MealSlotResponse {
	resp := domain.MealSlotResponse{
		Day:      slot.Day,
		MealType: slot.MealType,
		Locked:   slot.Locked,
	}
	if slot.RecipeID != nil {
		resp.RecipeID = slot.RecipeID.String()
	}
	if slot.Recipe != nil {
		resp.RecipeName = slot.Recipe.Name
	}
	return resp
}
