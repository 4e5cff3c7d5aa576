package shopping

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mealplanner/domain"
	"mealplanner/entities"
	"mealplanner/pkg/ingredient"
	"mealplanner/pkg/recipe"
)

type fakeShoppingRepository struct {
	items []*entities.ShoppingItem
}

func (f *fakeShoppingRepository) GetItems(_ context.Context) ([]*entities.ShoppingItem, error) {
	return f.items, nil
}

func (f *fakeShoppingRepository) GetItemByID(_ context.Context, id uuid.UUID) (*entities.ShoppingItem, error) {
	for _, item := range f.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeShoppingRepository) CreateItem(_ context.Context, item *entities.ShoppingItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	f.items = append(f.items, item)
	return nil
}

func (f *fakeShoppingRepository) CreateItems(ctx context.Context, items []*entities.ShoppingItem) error {
	for _, item := range items {
		if err := f.CreateItem(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeShoppingRepository) UpdateItem(_ context.Context, item *entities.ShoppingItem) error {
	for i, existing := range f.items {
		if existing.ID == item.ID {
			f.items[i] = item
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeShoppingRepository) DeleteItem(_ context.Context, id uuid.UUID) error {
	f.items = filterItems(f.items, func(item *entities.ShoppingItem) bool {
		return item.ID != id
	})
	return nil
}

func (f *fakeShoppingRepository) DeleteGenerated(_ context.Context) error {
	f.items = filterItems(f.items, func(item *entities.ShoppingItem) bool {
		return item.Source == entities.SourceManual
	})
	return nil
}

func (f *fakeShoppingRepository) DeleteChecked(_ context.Context) error {
	f.items = filterItems(f.items, func(item *entities.ShoppingItem) bool {
		return !item.Checked
	})
	return nil
}

func filterItems(items []*entities.ShoppingItem, keep func(*entities.ShoppingItem) bool) []*entities.ShoppingItem {
	out := items[:0]
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

type fakePantryRepository struct {
	ingredient.IngredientRepository
	staples []*entities.PantryStaple
	useUp   []*entities.UseUpItem
	catalog []*entities.Ingredient
}

func (f *fakePantryRepository) GetPantryStaples(_ context.Context) ([]*entities.PantryStaple, error) {
	return f.staples, nil
}

func (f *fakePantryRepository) GetUseUpItems(_ context.Context) ([]*entities.UseUpItem, error) {
	return f.useUp, nil
}

func (f *fakePantryRepository) FindByNameInsensitive(_ context.Context, name string) (*entities.Ingredient, error) {
	for _, ing := range f.catalog {
		if ing.Name == name {
			return ing, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeRecipeSource struct {
	recipe.RecipeRepository
	recipes []*entities.Recipe
}

func (f *fakeRecipeSource) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*entities.Recipe, error) {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []*entities.Recipe
	for _, rec := range f.recipes {
		if wanted[rec.ID] {
			out = append(out, rec)
		}
	}
	return out, nil
}

func beefDinner() (*entities.Recipe, *entities.Ingredient) {
	beef := &entities.Ingredient{
		ID:          uuid.New(),
		Name:        "Ground Beef",
		Category:    "Meat",
		CostFormula: entities.FormulaWeight,
		BaseUnit:    "LB",
		Cost:        3.99,
	}
	beefID := beef.ID
	rec := &entities.Recipe{
		ID:       uuid.New(),
		Name:     "Chili",
		Category: "Dinner",
		Ingredients: []*entities.RecipeIngredient{
			{IngredientID: &beefID, Quantity: 1, Unit: "LB", Ingredient: beef},
		},
	}
	return rec, beef
}

func newShoppingTestService(repo *fakeShoppingRepository, recipes ...*entities.Recipe) ShoppingService {
	return NewShoppingService(repo, &fakePantryRepository{}, &fakeRecipeSource{recipes: recipes})
}

func TestRegenerateReplacesAllGeneratedRows(t *testing.T) {
	repo := &fakeShoppingRepository{}
	rec, _ := beefDinner()
	svc := newShoppingTestService(repo, rec)
	ctx := context.Background()

	manual := &entities.ShoppingItem{
		ID: uuid.New(), Name: "Birthday Candles", Quantity: 1, Unit: "EA",
		Checked: true, Source: entities.SourceManual,
	}
	stale := &entities.ShoppingItem{
		ID: uuid.New(), Name: "Old Planned Item", Quantity: 3, Unit: "EA",
		Source: entities.SourceMealPlan,
	}
	repo.items = []*entities.ShoppingItem{manual, stale}

	err := svc.Regenerate(ctx, domain.RegenerateRequest{RecipeIDs: []string{rec.ID.String()}}, entities.SourceRecipe)
	require.NoError(t, err)

	// Manual row survives verbatim; the stale mealplan row is gone even
	// though this pass was recipe-sourced.
	var sources []string
	for _, item := range repo.items {
		sources = append(sources, item.Source)
		assert.NotEqual(t, stale.ID, item.ID)
	}
	assert.ElementsMatch(t, []string{entities.SourceManual, entities.SourceRecipe}, sources)

	kept, err := repo.GetItemByID(ctx, manual.ID)
	require.NoError(t, err)
	assert.Equal(t, "Birthday Candles", kept.Name)
	assert.True(t, kept.Checked)
}

func TestRegenerateIsIdempotent(t *testing.T) {
	repo := &fakeShoppingRepository{}
	rec, _ := beefDinner()
	svc := newShoppingTestService(repo, rec)
	ctx := context.Background()
	req := domain.RegenerateRequest{RecipeIDs: []string{rec.ID.String()}}

	require.NoError(t, svc.Regenerate(ctx, req, entities.SourceRecipe))
	require.NoError(t, svc.Regenerate(ctx, req, entities.SourceRecipe))

	require.Len(t, repo.items, 1)
	item := repo.items[0]
	assert.Equal(t, "Ground Beef", item.Name)
	assert.Equal(t, float64(1), item.Quantity)
	assert.Equal(t, "LB", item.Unit)
	assert.Equal(t, entities.SourceRecipe, item.Source)
	assert.Equal(t, "$3.99/LB", item.UnitCost)
	assert.InDelta(t, 3.99, item.Cost, 0.001)
}

func TestPreviewWritesNothing(t *testing.T) {
	repo := &fakeShoppingRepository{}
	rec, _ := beefDinner()
	svc := newShoppingTestService(repo, rec)

	lines, totals, err := svc.Preview(context.Background(), domain.RegenerateRequest{
		RecipeIDs: []string{rec.ID.String()},
	})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Ground Beef", lines[0].Name)
	assert.InDelta(t, 3.99, totals.Subtotal, 0.001)
	assert.InDelta(t, 0.48, totals.Tax, 0.001)
	assert.InDelta(t, 4.47, totals.Total, 0.001)

	assert.Empty(t, repo.items)
}

func TestPreviewNoRecipesSelected(t *testing.T) {
	svc := newShoppingTestService(&fakeShoppingRepository{})

	_, _, err := svc.Preview(context.Background(), domain.RegenerateRequest{})
	assert.ErrorIs(t, err, domain.ErrNoRecipesSelected)

	_, _, err = svc.Preview(context.Background(), domain.RegenerateRequest{
		RecipeIDs: []string{uuid.New().String()},
	})
	assert.ErrorIs(t, err, domain.ErrNoRecipesSelected)
}

func TestListItemsMergesManualAndGenerated(t *testing.T) {
	repo := &fakeShoppingRepository{}
	rec, beef := beefDinner()
	svc := newShoppingTestService(repo, rec)
	ctx := context.Background()

	beefID := beef.ID
	repo.items = []*entities.ShoppingItem{
		{ID: uuid.New(), Name: "Ground Beef", Quantity: 2, Unit: "LB",
			Source: entities.SourceManual, IngredientID: &beefID, Checked: true},
		{ID: uuid.New(), Name: "Ground Beef", Quantity: 1, Unit: "LB",
			Source: entities.SourceRecipe, IngredientID: &beefID, Cost: 3.99},
	}

	items, _, err := svc.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	// Manual row anchors the merge: its checked state holds and the
	// generated quantity folds in.
	assert.Equal(t, float64(3), items[0].Quantity)
	assert.True(t, items[0].Checked)
}
