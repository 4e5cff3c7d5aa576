package ingredient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mealplanner/domain"
	"mealplanner/entities"
	"mealplanner/internal/logger"
	"mealplanner/pkg/matching"
	"mealplanner/pkg/units"
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context) ([]domain.IngredientResponse, error)
		GetIngredient(ctx context.Context, id string) (domain.IngredientResponse, error)
		AddIngredient(ctx context.Context, req domain.UpsertIngredientRequest) (domain.IngredientResponse, error)
		UpdateIngredient(ctx context.Context, id string, req domain.UpsertIngredientRequest) (domain.IngredientResponse, error)
		DeleteIngredient(ctx context.Context, id string) error
		AddSynonym(ctx context.Context, req domain.AddSynonymRequest) error
		SetPantryStaple(ctx context.Context, ingredientID string, haveIt bool) error
		RemovePantryStaple(ctx context.Context, ingredientID string) error
		SetUseUp(ctx context.Context, ingredientID string, useUp bool) error
		Cleanup(ctx context.Context) (domain.CleanupResult, error)
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
	}
)

func NewIngredientService(ingredientRepository IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepository: ingredientRepository}
}

func (s *ingredientService) GetIngredients(ctx context.Context) ([]domain.IngredientResponse, error) {
	ingredients, err := s.ingredientRepository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		responses = append(responses, ToIngredientResponse(ing))
	}
	return responses, nil
}

func (s *ingredientService) GetIngredient(ctx context.Context, id string) (domain.IngredientResponse, error) {
	ingredientID, err := uuid.Parse(id)
	if err != nil {
		return domain.IngredientResponse{}, domain.ErrParseUUID
	}
	ing, err := s.ingredientRepository.GetByID(ctx, ingredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}
	return ToIngredientResponse(ing), nil
}

func (s *ingredientService) AddIngredient(ctx context.Context, req domain.UpsertIngredientRequest) (domain.IngredientResponse, error) {
	if err := validateFormulaFields(req); err != nil {
		return domain.IngredientResponse{}, err
	}
	if existing, err := s.ingredientRepository.FindByNameInsensitive(ctx, req.Name); err == nil && existing != nil {
		return domain.IngredientResponse{}, domain.ErrIngredientExists
	}

	ing := &entities.Ingredient{
		Name:         strings.TrimSpace(req.Name),
		Category:     defaultCategory(req.Category),
		CostFormula:  req.CostFormula,
		BaseUnit:     strings.ToUpper(req.BaseUnit),
		Cost:         req.Cost,
		MinPurchase:  defaultMinPurchase(req.MinPurchase),
		IsCore:       req.IsCore,
		PieceWeightG: req.PieceWeightG,
		PortionML:    req.PortionML,
		PortionG:     req.PortionG,
		PkgCount:     req.PkgCount,
	}
	if err := s.ingredientRepository.Create(ctx, ing); err != nil {
		return domain.IngredientResponse{}, fmt.Errorf("%s: %w", domain.MessageFailedAddIngredient, err)
	}
	logger.Info("ingredient added", "name", ing.Name, "formula", ing.CostFormula)
	return ToIngredientResponse(ing), nil
}

func (s *ingredientService) UpdateIngredient(ctx context.Context, id string, req domain.UpsertIngredientRequest) (domain.IngredientResponse, error) {
	ingredientID, err := uuid.Parse(id)
	if err != nil {
		return domain.IngredientResponse{}, domain.ErrParseUUID
	}
	if err := validateFormulaFields(req); err != nil {
		return domain.IngredientResponse{}, err
	}

	ing, err := s.ingredientRepository.GetByID(ctx, ingredientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}

	ing.Name = strings.TrimSpace(req.Name)
	ing.Category = defaultCategory(req.Category)
	ing.CostFormula = req.CostFormula
	ing.BaseUnit = strings.ToUpper(req.BaseUnit)
	ing.Cost = req.Cost
	ing.MinPurchase = defaultMinPurchase(req.MinPurchase)
	ing.IsCore = req.IsCore
	ing.PieceWeightG = req.PieceWeightG
	ing.PortionML = req.PortionML
	ing.PortionG = req.PortionG
	ing.PkgCount = req.PkgCount

	if err := s.ingredientRepository.Update(ctx, ing); err != nil {
		return domain.IngredientResponse{}, fmt.Errorf("%s: %w", domain.MessageFailedUpdateIngredient, err)
	}
	return ToIngredientResponse(ing), nil
}

func (s *ingredientService) DeleteIngredient(ctx context.Context, id string) error {
	ingredientID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrParseUUID
	}
	if _, err := s.ingredientRepository.GetByID(ctx, ingredientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrIngredientNotFound
		}
		return err
	}
	return s.ingredientRepository.Delete(ctx, ingredientID)
}

func (s *ingredientService) AddSynonym(ctx context.Context, req domain.AddSynonymRequest) error {
	ingredientID, err := uuid.Parse(req.IngredientID)
	if err != nil {
		return domain.ErrParseUUID
	}
	if _, err := s.ingredientRepository.GetByID(ctx, ingredientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrIngredientNotFound
		}
		return err
	}

	normalized := matching.NormalizeName(req.Synonym)
	if existing, err := s.ingredientRepository.FindSynonym(ctx, normalized); err == nil && existing != nil {
		return domain.ErrSynonymExists
	}

	return s.ingredientRepository.CreateSynonym(ctx, &entities.IngredientSynonym{
		Synonym:      normalized,
		IngredientID: ingredientID,
	})
}

func (s *ingredientService) SetPantryStaple(ctx context.Context, ingredientID string, haveIt bool) error {
	id, err := uuid.Parse(ingredientID)
	if err != nil {
		return domain.ErrParseUUID
	}
	staple, err := s.ingredientRepository.FindPantryStaple(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return s.ingredientRepository.CreatePantryStaple(ctx, &entities.PantryStaple{
			IngredientID: id,
			HaveIt:       haveIt,
		})
	}
	staple.HaveIt = haveIt
	return s.ingredientRepository.UpdatePantryStaple(ctx, staple)
}

func (s *ingredientService) RemovePantryStaple(ctx context.Context, ingredientID string) error {
	id, err := uuid.Parse(ingredientID)
	if err != nil {
		return domain.ErrParseUUID
	}
	return s.ingredientRepository.DeletePantryStaple(ctx, id)
}

func (s *ingredientService) SetUseUp(ctx context.Context, ingredientID string, useUp bool) error {
	id, err := uuid.Parse(ingredientID)
	if err != nil {
		return domain.ErrParseUUID
	}
	if !useUp {
		return s.ingredientRepository.DeleteUseUpItem(ctx, id)
	}
	items, err := s.ingredientRepository.GetUseUpItems(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.IngredientID == id {
			return nil
		}
	}
	return s.ingredientRepository.CreateUseUpItem(ctx, &entities.UseUpItem{IngredientID: id})
}

// Cleanup consolidates the catalog in three passes: case-insensitive duplicate
// names merge into one survivor (recipe rows re-pointed), synonyms that shadow
// a canonical name are dropped, and ingredients nothing references are removed
// unless marked core or kept in the pantry.
func (s *ingredientService) Cleanup(ctx context.Context) (domain.CleanupResult, error) {
	var result domain.CleanupResult

	ingredients, err := s.ingredientRepository.GetAll(ctx)
	if err != nil {
		return result, err
	}

	// Pass 1: merge duplicates. The survivor is the first priced entry, or
	// simply the first seen when none carry a cost.
	byLowerName := make(map[string][]*entities.Ingredient)
	var nameOrder []string
	for _, ing := range ingredients {
		key := strings.ToLower(strings.TrimSpace(ing.Name))
		if _, ok := byLowerName[key]; !ok {
			nameOrder = append(nameOrder, key)
		}
		byLowerName[key] = append(byLowerName[key], ing)
	}
	merged := make(map[uuid.UUID]bool)
	for _, key := range nameOrder {
		group := byLowerName[key]
		if len(group) < 2 {
			continue
		}
		survivor := group[0]
		for _, ing := range group {
			if ing.Cost > 0 {
				survivor = ing
				break
			}
		}
		for _, ing := range group {
			if ing.ID == survivor.ID {
				continue
			}
			if err := s.ingredientRepository.RepointRecipeIngredients(ctx, ing.ID, survivor.ID); err != nil {
				return result, err
			}
			if err := s.ingredientRepository.Delete(ctx, ing.ID); err != nil {
				return result, err
			}
			merged[ing.ID] = true
			result.MergedDuplicates++
		}
	}

	// Pass 2: a synonym equal to any canonical name is redundant.
	synonyms, err := s.ingredientRepository.GetSynonyms(ctx)
	if err != nil {
		return result, err
	}
	canonical := make(map[string]bool, len(ingredients))
	for _, ing := range ingredients {
		if !merged[ing.ID] {
			canonical[strings.ToLower(ing.Name)] = true
		}
	}
	for _, syn := range synonyms {
		if canonical[strings.ToLower(syn.Synonym)] {
			if err := s.ingredientRepository.DeleteSynonymByID(ctx, syn.ID); err != nil {
				return result, err
			}
			result.RemovedOrphans++
		}
	}

	// Pass 3: drop unused entries. Core ingredients and pantry staples stay.
	usage, err := s.ingredientRepository.RecipeUsageCounts(ctx)
	if err != nil {
		return result, err
	}
	staples, err := s.ingredientRepository.GetPantryStaples(ctx)
	if err != nil {
		return result, err
	}
	stapleIDs := make(map[uuid.UUID]bool, len(staples))
	for _, staple := range staples {
		stapleIDs[staple.IngredientID] = true
	}
	for _, ing := range ingredients {
		if merged[ing.ID] || ing.IsCore || stapleIDs[ing.ID] {
			continue
		}
		if usage[ing.ID] > 0 {
			continue
		}
		if err := s.ingredientRepository.Delete(ctx, ing.ID); err != nil {
			return result, err
		}
		result.RemovedUnused++
	}

	logger.Info("catalog cleanup",
		"merged", result.MergedDuplicates,
		"removed_synonyms", result.RemovedOrphans,
		"removed_unused", result.RemovedUnused,
	)
	return result, nil
}

// validateFormulaFields enforces the formula-specific field invariant beyond
// struct tags: PORTION needs at least one portion size, PACKAGE needs a
// package count, and the base unit must exist in the conversion table.
// WEIGHT may omit PieceWeightG; the calculator falls back to average piece
// weights for count-unit quantities.
func validateFormulaFields(req domain.UpsertIngredientRequest) error {
	if !units.Valid(units.Unit(strings.ToUpper(req.BaseUnit))) {
		return domain.ErrUnknownBaseUnit
	}
	switch req.CostFormula {
	case entities.FormulaPortion:
		if req.PortionML == nil && req.PortionG == nil {
			return domain.ErrFormulaFieldMissing
		}
	case entities.FormulaPackage:
		if req.PkgCount == nil || *req.PkgCount <= 0 {
			return domain.ErrFormulaFieldMissing
		}
	case entities.FormulaWeight, entities.FormulaVolume, entities.FormulaCount:
		// no required variant fields
	default:
		return domain.ErrUnknownCostFormula
	}
	return nil
}

// ToIngredientResponse flattens an entity for API responses and match results.
func ToIngredientResponse(ing *entities.Ingredient) domain.IngredientResponse {
	resp := domain.IngredientResponse{
		ID:          ing.ID.String(),
		Name:        ing.Name,
		Category:    ing.Category,
		CostFormula: ing.CostFormula,
		BaseUnit:    ing.BaseUnit,
		Cost:        ing.Cost,
		MinPurchase: ing.MinPurchase,
		IsCore:      ing.IsCore,
	}
	for _, syn := range ing.Synonyms {
		resp.Synonyms = append(resp.Synonyms, syn.Synonym)
	}
	return resp
}

func defaultCategory(category string) string {
	if strings.TrimSpace(category) == "" {
		return "Other"
	}
	return category
}

func defaultMinPurchase(min float64) float64 {
	if min <= 0 {
		return 1
	}
	return min
}
