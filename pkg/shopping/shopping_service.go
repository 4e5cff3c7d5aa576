package shopping

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mealplanner/domain"
	"mealplanner/entities"
	"mealplanner/internal/logger"
	"mealplanner/pkg/ingredient"
	"mealplanner/pkg/recipe"
	"mealplanner/pkg/units"
)

type (
	ShoppingService interface {
		Preview(ctx context.Context, req domain.RegenerateRequest) ([]domain.ShoppingItemResponse, domain.ShoppingTotalsResponse, error)
		Regenerate(ctx context.Context, req domain.RegenerateRequest, source string) error
		ListItems(ctx context.Context) ([]domain.ShoppingItemResponse, domain.ShoppingTotalsResponse, error)
		AddManualItem(ctx context.Context, req domain.AddShoppingItemRequest) (domain.ShoppingItemResponse, error)
		ToggleChecked(ctx context.Context, itemID string) error
		ClearChecked(ctx context.Context) error
		DeleteItem(ctx context.Context, itemID string) error
		AddToPantry(ctx context.Context, itemID string) error
	}

	shoppingService struct {
		shoppingRepository   ShoppingRepository
		ingredientRepository ingredient.IngredientRepository
		recipeRepository     recipe.RecipeRepository
	}
)

func NewShoppingService(
	shoppingRepository ShoppingRepository,
	ingredientRepository ingredient.IngredientRepository,
	recipeRepository recipe.RecipeRepository,
) ShoppingService {
	return &shoppingService{
		shoppingRepository:   shoppingRepository,
		ingredientRepository: ingredientRepository,
		recipeRepository:     recipeRepository,
	}
}

// Preview aggregates the selected recipes without writing anything.
func (s *shoppingService) Preview(ctx context.Context, req domain.RegenerateRequest) ([]domain.ShoppingItemResponse, domain.ShoppingTotalsResponse, error) {
	lines, totals, err := s.aggregate(ctx, req)
	if err != nil {
		return nil, domain.ShoppingTotalsResponse{}, err
	}

	responses := make([]domain.ShoppingItemResponse, 0, len(lines))
	for _, line := range lines {
		responses = append(responses, lineToResponse(line, ""))
	}
	return responses, toTotalsResponse(totals), nil
}

// Regenerate replaces every generated row with a fresh aggregation tagged
// with the triggering source. Manual rows are never touched; the regeneration
// is idempotent for a fixed recipe selection.
func (s *shoppingService) Regenerate(ctx context.Context, req domain.RegenerateRequest, source string) error {
	lines, _, err := s.aggregate(ctx, req)
	if err != nil {
		return err
	}

	// Clear all non-manual rows, not just the triggering source's. A
	// recipe-sourced pass otherwise leaves stale mealplan rows behind and
	// the view merge double-counts them.
	if err := s.shoppingRepository.DeleteGenerated(ctx); err != nil {
		return fmt.Errorf("%s: %w", domain.MessageFailedRegenerate, err)
	}

	items := make([]*entities.ShoppingItem, 0, len(lines))
	for _, line := range lines {
		item := &entities.ShoppingItem{
			Name:         line.Name,
			Quantity:     line.Quantity,
			Unit:         string(line.Unit),
			Category:     line.Category,
			Cost:         line.Cost,
			Source:       source,
			IngredientID: line.IngredientID,
		}
		if line.CostPerUnit > 0 {
			item.UnitCost = fmt.Sprintf("$%.2f/%s", line.CostPerUnit, line.Unit)
		}
		items = append(items, item)
	}
	if err := s.shoppingRepository.CreateItems(ctx, items); err != nil {
		return fmt.Errorf("%s: %w", domain.MessageFailedRegenerate, err)
	}

	logger.Info("shopping list regenerated", "source", source, "items", len(items))
	return nil
}

// ListItems returns the stored list with manual and generated rows for the
// same ingredient merged into one view row. Stored rows stay untouched;
// merging happens only here so regeneration stays idempotent.
func (s *shoppingService) ListItems(ctx context.Context) ([]domain.ShoppingItemResponse, domain.ShoppingTotalsResponse, error) {
	items, err := s.shoppingRepository.GetItems(ctx)
	if err != nil {
		return nil, domain.ShoppingTotalsResponse{}, err
	}
	useUpIDs, err := s.useUpIDs(ctx)
	if err != nil {
		return nil, domain.ShoppingTotalsResponse{}, err
	}

	merged := MergeView(items)

	subtotal := decimal.Zero
	responses := make([]domain.ShoppingItemResponse, 0, len(merged))
	for _, item := range merged {
		resp := itemToResponse(item)
		if item.IngredientID != nil && useUpIDs[*item.IngredientID] {
			resp.UseUp = true
		}
		responses = append(responses, resp)
		subtotal = subtotal.Add(decimal.NewFromFloat(item.Cost))
	}

	tax := subtotal.Mul(decimal.NewFromFloat(TaxRate)).Round(2)
	totals := domain.ShoppingTotalsResponse{
		Subtotal: subtotal.Round(2).InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    subtotal.Add(tax).Round(2).InexactFloat64(),
	}
	return responses, totals, nil
}

func (s *shoppingService) AddManualItem(ctx context.Context, req domain.AddShoppingItemRequest) (domain.ShoppingItemResponse, error) {
	qty := req.Quantity
	if qty <= 0 {
		qty = 1
	}
	unit := units.EA
	if parsed, ok := units.Parse(req.Unit); ok {
		unit = parsed
	}

	item := &entities.ShoppingItem{
		Name:     strings.TrimSpace(req.Name),
		Quantity: qty,
		Unit:     string(unit),
		Category: req.Category,
		Source:   entities.SourceManual,
	}
	if item.Category == "" {
		item.Category = "Other"
	}

	// Link to the catalog when the name resolves so the view merge can pick
	// the row up alongside generated entries.
	if ing, err := s.ingredientRepository.FindByNameInsensitive(ctx, item.Name); err == nil && ing != nil {
		id := ing.ID
		item.IngredientID = &id
	}

	if err := s.shoppingRepository.CreateItem(ctx, item); err != nil {
		return domain.ShoppingItemResponse{}, fmt.Errorf("%s: %w", domain.MessageFailedAddShoppingItem, err)
	}
	return itemToResponse(item), nil
}

func (s *shoppingService) ToggleChecked(ctx context.Context, itemID string) error {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return domain.ErrParseUUID
	}
	item, err := s.shoppingRepository.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrShoppingItemNotFound
		}
		return err
	}
	item.Checked = !item.Checked
	return s.shoppingRepository.UpdateItem(ctx, item)
}

func (s *shoppingService) ClearChecked(ctx context.Context) error {
	return s.shoppingRepository.DeleteChecked(ctx)
}

func (s *shoppingService) DeleteItem(ctx context.Context, itemID string) error {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return domain.ErrParseUUID
	}
	return s.shoppingRepository.DeleteItem(ctx, id)
}

// AddToPantry marks the item's ingredient as a staple on hand, so the next
// regeneration suppresses it.
func (s *shoppingService) AddToPantry(ctx context.Context, itemID string) error {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return domain.ErrParseUUID
	}
	item, err := s.shoppingRepository.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrShoppingItemNotFound
		}
		return err
	}

	ingredientID := item.IngredientID
	if ingredientID == nil {
		ing, err := s.ingredientRepository.FindByNameInsensitive(ctx, item.Name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrIngredientNotFound
			}
			return err
		}
		ingredientID = &ing.ID
	}

	staple, err := s.ingredientRepository.FindPantryStaple(ctx, *ingredientID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := s.ingredientRepository.CreatePantryStaple(ctx, &entities.PantryStaple{
			IngredientID: *ingredientID,
			HaveIt:       true,
		}); err != nil {
			return err
		}
		return s.shoppingRepository.DeleteItem(ctx, item.ID)
	}
	staple.HaveIt = true
	if err := s.ingredientRepository.UpdatePantryStaple(ctx, staple); err != nil {
		return err
	}
	return s.shoppingRepository.DeleteItem(ctx, item.ID)
}

func (s *shoppingService) aggregate(ctx context.Context, req domain.RegenerateRequest) ([]Line, Totals, error) {
	if len(req.RecipeIDs) == 0 {
		return nil, Totals{}, domain.ErrNoRecipesSelected
	}

	ids := make([]uuid.UUID, 0, len(req.RecipeIDs))
	for _, raw := range req.RecipeIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, Totals{}, domain.ErrParseUUID
		}
		ids = append(ids, id)
	}

	recipes, err := s.recipeRepository.GetByIDs(ctx, ids)
	if err != nil {
		return nil, Totals{}, err
	}
	if len(recipes) == 0 {
		return nil, Totals{}, domain.ErrNoRecipesSelected
	}

	inputs := make([]RecipeInput, 0, len(recipes))
	for _, rec := range recipes {
		inputs = append(inputs, RecipeInput{
			Recipe:     rec,
			Multiplier: req.Multipliers[rec.ID.String()],
		})
	}

	opts, err := s.buildOptions(ctx)
	if err != nil {
		return nil, Totals{}, err
	}
	return Aggregate(inputs, opts)
}

func (s *shoppingService) buildOptions(ctx context.Context) (Options, error) {
	staples, err := s.ingredientRepository.GetPantryStaples(ctx)
	if err != nil {
		return Options{}, err
	}
	pantryIDs := make(map[uuid.UUID]bool, len(staples))
	for _, staple := range staples {
		if staple.HaveIt {
			pantryIDs[staple.IngredientID] = true
		}
	}

	useUpIDs, err := s.useUpIDs(ctx)
	if err != nil {
		return Options{}, err
	}
	return Options{PantryIDs: pantryIDs, UseUpIDs: useUpIDs}, nil
}

func (s *shoppingService) useUpIDs(ctx context.Context) (map[uuid.UUID]bool, error) {
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

// MergeView folds rows that refer to the same ingredient (or, lacking a
// link, the same lowercased name) into one row per key. The manual row, when
// present, is the anchor: its quantity and unit stay authoritative and
// compatible generated quantities convert into its unit before summing.
// Rows in different unit families stay separate.
func MergeView(items []*entities.ShoppingItem) []*entities.ShoppingItem {
	grouped := make(map[string][]*entities.ShoppingItem)
	var order []string
	for _, item := range items {
		key := viewKey(item)
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], item)
	}

	var out []*entities.ShoppingItem
	for _, key := range order {
		group := grouped[key]
		if len(group) == 1 {
			out = append(out, group[0])
			continue
		}

		anchor := group[0]
		for _, item := range group {
			if item.Source == entities.SourceManual {
				anchor = item
				break
			}
		}

		mergedRow := *anchor
		for _, item := range group {
			if item == anchor {
				continue
			}
			converted, _, ok := units.Convert(item.Quantity, units.Unit(item.Unit), units.Unit(mergedRow.Unit))
			if !ok && !strings.EqualFold(item.Unit, mergedRow.Unit) {
				out = append(out, item)
				continue
			}
			if ok {
				mergedRow.Quantity += converted
			} else {
				mergedRow.Quantity += item.Quantity
			}
			mergedRow.Cost = decimal.NewFromFloat(mergedRow.Cost).
				Add(decimal.NewFromFloat(item.Cost)).
				Round(2).InexactFloat64()
			if mergedRow.UnitCost == "" {
				mergedRow.UnitCost = item.UnitCost
			}
		}
		out = append(out, &mergedRow)
	}
	return out
}

func viewKey(item *entities.ShoppingItem) string {
	if item.IngredientID != nil {
		return "id:" + item.IngredientID.String()
	}
	return "name:" + strings.ToLower(strings.TrimSpace(item.Name))
}

func toTotalsResponse(totals Totals) domain.ShoppingTotalsResponse {
	return domain.ShoppingTotalsResponse{
		Subtotal: totals.Subtotal,
		Tax:      totals.Tax,
		Total:    totals.Total,
	}
}

func lineToResponse(line Line, id string) domain.ShoppingItemResponse {
	resp := domain.ShoppingItemResponse{
		ID:            id,
		Name:          line.Name,
		Quantity:      line.Quantity,
		Unit:          string(line.Unit),
		QuantityLabel: FormatQuantity(line.Quantity, line.Unit),
		Category:      line.Category,
		Cost:          line.Cost,
		UseUp:         line.UseUp,
	}
	if line.CostPerUnit > 0 {
		resp.UnitCost = fmt.Sprintf("$%.2f/%s", line.CostPerUnit, line.Unit)
	}
	return resp
}

func itemToResponse(item *entities.ShoppingItem) domain.ShoppingItemResponse {
	return domain.ShoppingItemResponse{
		ID:            item.ID.String(),
		Name:          item.Name,
		Quantity:      item.Quantity,
		Unit:          item.Unit,
		QuantityLabel: FormatQuantity(item.Quantity, units.Unit(item.Unit)),
		Checked:       item.Checked,
		Category:      item.Category,
		UnitCost:      item.UnitCost,
		Cost:          item.Cost,
		Source:        item.Source,
	}
}
