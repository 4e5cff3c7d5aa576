package mealplan

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mealplanner/domain"
	"mealplanner/entities"
	"mealplanner/pkg/ingredient"
	"mealplanner/pkg/recipe"
	"mealplanner/pkg/shopping"
)

type fakeMealPlanRepository struct {
	slots map[string]*entities.MealPlan
}

func newFakeMealPlanRepository() *fakeMealPlanRepository {
	return &fakeMealPlanRepository{slots: make(map[string]*entities.MealPlan)}
}

func key(week, day int, mealType string) string {
	return fmt.Sprintf("%d/%d/%s", week, day, mealType)
}

func (f *fakeMealPlanRepository) GetWeek(_ context.Context, week int) ([]*entities.MealPlan, error) {
	var out []*entities.MealPlan
	for day := 1; day <= daysPerWeek; day++ {
		for _, mt := range []string{"Dessert", "Dinner"} {
			if slot, ok := f.slots[key(week, day, mt)]; ok {
				out = append(out, slot)
			}
		}
	}
	return out, nil
}

func (f *fakeMealPlanRepository) GetSlot(_ context.Context, week, day int, mealType string) (*entities.MealPlan, error) {
	if slot, ok := f.slots[key(week, day, mealType)]; ok {
		return slot, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMealPlanRepository) Create(_ context.Context, slot *entities.MealPlan) error {
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	f.slots[key(slot.Week, slot.Day, slot.MealType)] = slot
	return nil
}

func (f *fakeMealPlanRepository) Update(_ context.Context, slot *entities.MealPlan) error {
	f.slots[key(slot.Week, slot.Day, slot.MealType)] = slot
	return nil
}

func (f *fakeMealPlanRepository) DeleteWeek(_ context.Context, week int) error {
	for k, slot := range f.slots {
		if slot.Week == week && !slot.Locked {
			delete(f.slots, k)
		}
	}
	return nil
}

type fakeRecipeRepository struct {
	recipe.RecipeRepository
	byCategory map[string][]*entities.Recipe
}

func (f *fakeRecipeRepository) GetByCategory(_ context.Context, category string) ([]*entities.Recipe, error) {
	return f.byCategory[category], nil
}

func (f *fakeRecipeRepository) GetByID(_ context.Context, id uuid.UUID) (*entities.Recipe, error) {
	for _, recipes := range f.byCategory {
		for _, rec := range recipes {
			if rec.ID == id {
				return rec, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeIngredientRepository struct {
	ingredient.IngredientRepository
	useUp []*entities.UseUpItem
}

func (f *fakeIngredientRepository) GetUseUpItems(_ context.Context) ([]*entities.UseUpItem, error) {
	return f.useUp, nil
}

type fakeShoppingService struct {
	shopping.ShoppingService
	lastSource  string
	lastRecipes []string
}

func (f *fakeShoppingService) Regenerate(_ context.Context, req domain.RegenerateRequest, source string) error {
	f.lastSource = source
	f.lastRecipes = req.RecipeIDs
	return nil
}

func namedRecipes(category string, names ...string) []*entities.Recipe {
	out := make([]*entities.Recipe, 0, len(names))
	for _, name := range names {
		out = append(out, &entities.Recipe{ID: uuid.New(), Name: name, Category: category})
	}
	return out
}

func newTestService(planRepo MealPlanRepository, recipes *fakeRecipeRepository, seed int64) (MealPlanService, *fakeShoppingService) {
	shoppingSvc := &fakeShoppingService{}
	svc := NewMealPlanService(
		planRepo,
		recipes,
		&fakeIngredientRepository{},
		shoppingSvc,
		rand.New(rand.NewSource(seed)),
	)
	return svc, shoppingSvc
}

func TestRandomizeFillsWeek(t *testing.T) {
	planRepo := newFakeMealPlanRepository()
	recipes := &fakeRecipeRepository{byCategory: map[string][]*entities.Recipe{
		"Dinner": namedRecipes("Dinner", "Chili", "Tacos", "Stir Fry", "Pasta", "Curry", "Soup", "Roast"),
	}}
	svc, _ := newTestService(planRepo, recipes, 1)

	slots, err := svc.Randomize(context.Background(), domain.RandomizeRequest{Week: 1})
	require.NoError(t, err)
	require.Len(t, slots, daysPerWeek)

	// Seven distinct recipes fit without repeats.
	seen := make(map[string]bool)
	for _, slot := range slots {
		assert.Equal(t, "Dinner", slot.MealType)
		assert.False(t, seen[slot.RecipeID], "recipe %s planned twice", slot.RecipeName)
		seen[slot.RecipeID] = true
	}
}

func TestRandomizeReusesWhenPoolIsSmall(t *testing.T) {
	planRepo := newFakeMealPlanRepository()
	recipes := &fakeRecipeRepository{byCategory: map[string][]*entities.Recipe{
		"Dinner": namedRecipes("Dinner", "Chili", "Tacos"),
	}}
	svc, _ := newTestService(planRepo, recipes, 1)

	slots, err := svc.Randomize(context.Background(), domain.RandomizeRequest{Week: 1})
	require.NoError(t, err)
	assert.Len(t, slots, daysPerWeek)
}

func TestRandomizePreservesLockedSlots(t *testing.T) {
	planRepo := newFakeMealPlanRepository()
	dinners := namedRecipes("Dinner", "Chili", "Tacos", "Stir Fry", "Pasta")
	recipes := &fakeRecipeRepository{byCategory: map[string][]*entities.Recipe{"Dinner": dinners}}

	lockedID := dinners[0].ID
	require.NoError(t, planRepo.Create(context.Background(), &entities.MealPlan{
		Week: 1, Day: 3, MealType: "Dinner", RecipeID: &lockedID, Locked: true,
		Recipe: dinners[0],
	}))

	svc, _ := newTestService(planRepo, recipes, 2)
	slots, err := svc.Randomize(context.Background(), domain.RandomizeRequest{Week: 1})
	require.NoError(t, err)

	var day3 *domain.MealSlotResponse
	for i := range slots {
		if slots[i].Day == 3 {
			day3 = &slots[i]
		}
	}
	require.NotNil(t, day3)
	assert.Equal(t, lockedID.String(), day3.RecipeID)
	assert.True(t, day3.Locked)
}

func TestRandomizeDeterministicForSeed(t *testing.T) {
	dinners := namedRecipes("Dinner", "Chili", "Tacos", "Stir Fry", "Pasta", "Curry", "Soup", "Roast")
	run := func() []string {
		planRepo := newFakeMealPlanRepository()
		recipes := &fakeRecipeRepository{byCategory: map[string][]*entities.Recipe{"Dinner": dinners}}
		svc, _ := newTestService(planRepo, recipes, 42)
		slots, err := svc.Randomize(context.Background(), domain.RandomizeRequest{Week: 1})
		require.NoError(t, err)
		names := make([]string, len(slots))
		for i, slot := range slots {
			names[i] = slot.RecipeName
		}
		return names
	}
	assert.Equal(t, run(), run())
}

func TestRandomizeIncludesDessert(t *testing.T) {
	planRepo := newFakeMealPlanRepository()
	recipes := &fakeRecipeRepository{byCategory: map[string][]*entities.Recipe{
		"Dinner":  namedRecipes("Dinner", "Chili", "Tacos", "Stir Fry"),
		"Dessert": namedRecipes("Dessert", "Brownies", "Cheesecake"),
	}}
	svc, _ := newTestService(planRepo, recipes, 3)

	slots, err := svc.Randomize(context.Background(), domain.RandomizeRequest{Week: 1, IncludeDessert: true})
	require.NoError(t, err)
	assert.Len(t, slots, daysPerWeek*2)

	desserts := 0
	for _, slot := range slots {
		if slot.MealType == "Dessert" {
			desserts++
		}
	}
	assert.Equal(t, daysPerWeek, desserts)
}

func TestRandomizeEmptyPool(t *testing.T) {
	planRepo := newFakeMealPlanRepository()
	recipes := &fakeRecipeRepository{byCategory: map[string][]*entities.Recipe{}}
	svc, _ := newTestService(planRepo, recipes, 1)

	_, err := svc.Randomize(context.Background(), domain.RandomizeRequest{Week: 1})
	assert.ErrorIs(t, err, domain.ErrMealPlanEmpty)
}

func TestGenerateShoppingList(t *testing.T) {
	planRepo := newFakeMealPlanRepository()
	dinners := namedRecipes("Dinner", "Chili", "Tacos")
	recipes := &fakeRecipeRepository{byCategory: map[string][]*entities.Recipe{"Dinner": dinners}}
	svc, shoppingSvc := newTestService(planRepo, recipes, 1)

	ctx := context.Background()
	chiliID, tacosID := dinners[0].ID, dinners[1].ID
	require.NoError(t, planRepo.Create(ctx, &entities.MealPlan{Week: 2, Day: 1, MealType: "Dinner", RecipeID: &chiliID}))
	require.NoError(t, planRepo.Create(ctx, &entities.MealPlan{Week: 2, Day: 2, MealType: "Dinner", RecipeID: &tacosID}))
	require.NoError(t, planRepo.Create(ctx, &entities.MealPlan{Week: 2, Day: 3, MealType: "Dinner", RecipeID: &chiliID}))

	require.NoError(t, svc.GenerateShoppingList(ctx, 2))
	assert.Equal(t, entities.SourceMealPlan, shoppingSvc.lastSource)
	// Duplicate assignments collapse to one regeneration input each.
	assert.ElementsMatch(t, []string{chiliID.String(), tacosID.String()}, shoppingSvc.lastRecipes)
}

func TestGenerateShoppingListEmptyWeek(t *testing.T) {
	planRepo := newFakeMealPlanRepository()
	recipes := &fakeRecipeRepository{byCategory: map[string][]*entities.Recipe{}}
	svc, _ := newTestService(planRepo, recipes, 1)

	err := svc.GenerateShoppingList(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrMealPlanEmpty)
}
