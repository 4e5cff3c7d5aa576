package recipe

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
	"mealplanner/pkg/cost"
	"mealplanner/pkg/ingredient"
	"mealplanner/pkg/matching"
	"mealplanner/pkg/parsing"
	"mealplanner/pkg/units"
)

const maxSuggestions = 5

type (
	RecipeService interface {
		GetRecipes(ctx context.Context) ([]*entities.Recipe, error)
		GetRecipe(ctx context.Context, id string) (*entities.Recipe, error)
		AddRecipe(ctx context.Context, req domain.AddRecipeRequest) (*entities.Recipe, error)
		UpdateRecipe(ctx context.Context, id string, req domain.AddRecipeRequest) (*entities.Recipe, error)
		DeleteRecipe(ctx context.Context, id string) error

		AddIngredientLine(ctx context.Context, req domain.AddIngredientLineRequest) (domain.ParsedLine, error)
		RemoveIngredientLine(ctx context.Context, lineID string) error
		ParseLines(ctx context.Context, lines []string) ([]domain.ParsedLine, error)
		SaveImported(ctx context.Context, imported domain.ImportedRecipe, category string) (*entities.Recipe, error)
	}

	recipeService struct {
		recipeRepository     RecipeRepository
		ingredientRepository ingredient.IngredientRepository
	}
)

func NewRecipeService(recipeRepository RecipeRepository, ingredientRepository ingredient.IngredientRepository) RecipeService {
	return &recipeService{
		recipeRepository:     recipeRepository,
		ingredientRepository: ingredientRepository,
	}
}

func (s *recipeService) GetRecipes(ctx context.Context) ([]*entities.Recipe, error) {
	return s.recipeRepository.GetAll(ctx)
}

func (s *recipeService) GetRecipe(ctx context.Context, id string) (*entities.Recipe, error) {
	recipeID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	recipe, err := s.recipeRepository.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) AddRecipe(ctx context.Context, req domain.AddRecipeRequest) (*entities.Recipe, error) {
	if existing, err := s.recipeRepository.FindByNameInsensitive(ctx, req.Name); err == nil && existing != nil {
		return nil, domain.ErrRecipeExists
	}
	recipe := &entities.Recipe{
		Name:         strings.TrimSpace(req.Name),
		Category:     req.Category,
		Difficulty:   req.Difficulty,
		ProteinType:  req.ProteinType,
		Servings:     req.Servings,
		Instructions: req.Instructions,
		SourceURL:    req.SourceURL,
	}
	if err := s.recipeRepository.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("%s: %w", domain.MessageFailedAddRecipe, err)
	}
	return recipe, nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id string, req domain.AddRecipeRequest) (*entities.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	recipe.Name = strings.TrimSpace(req.Name)
	recipe.Category = req.Category
	recipe.Difficulty = req.Difficulty
	recipe.ProteinType = req.ProteinType
	recipe.Servings = req.Servings
	recipe.Instructions = req.Instructions
	recipe.SourceURL = req.SourceURL
	if err := s.recipeRepository.Update(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id string) error {
	recipeID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrParseUUID
	}
	if _, err := s.recipeRepository.GetByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	return s.recipeRepository.Delete(ctx, recipeID)
}

// AddIngredientLine parses one free-text line, matches it against the
// catalog, and attaches the result to the recipe. Unmatched lines are stored
// with a nil ingredient link and the raw text preserved.
func (s *recipeService) AddIngredientLine(ctx context.Context, req domain.AddIngredientLineRequest) (domain.ParsedLine, error) {
	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		return domain.ParsedLine{}, domain.ErrParseUUID
	}
	if _, err := s.recipeRepository.GetByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ParsedLine{}, domain.ErrRecipeNotFound
		}
		return domain.ParsedLine{}, err
	}

	catalog, synonyms, err := s.loadCatalog(ctx)
	if err != nil {
		return domain.ParsedLine{}, err
	}

	parsed := s.resolveLine(req.Text, catalog, synonyms)

	line := &entities.RecipeIngredient{
		RecipeID: recipeID,
		Quantity: parsed.Quantity,
		Unit:     parsed.Unit,
		RawText:  parsed.RawText,
	}
	if parsed.Match != nil {
		matchID, err := uuid.Parse(parsed.Match.ID)
		if err != nil {
			return domain.ParsedLine{}, domain.ErrParseUUID
		}
		line.IngredientID = &matchID
	}
	if err := s.recipeRepository.AddIngredientLine(ctx, line); err != nil {
		return domain.ParsedLine{}, err
	}
	return parsed, nil
}

func (s *recipeService) RemoveIngredientLine(ctx context.Context, lineID string) error {
	id, err := uuid.Parse(lineID)
	if err != nil {
		return domain.ErrParseUUID
	}
	return s.recipeRepository.DeleteIngredientLine(ctx, id)
}

// ParseLines produces a review sheet for a bulk import: every line gets the
// parser/matcher verdict plus ranked suggestions, and nothing is written.
func (s *recipeService) ParseLines(ctx context.Context, lines []string) ([]domain.ParsedLine, error) {
	catalog, synonyms, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]domain.ParsedLine, 0, len(lines))
	for _, text := range lines {
		if strings.TrimSpace(text) == "" {
			continue
		}
		results = append(results, s.resolveLine(text, catalog, synonyms))
	}
	return results, nil
}

// SaveImported persists an extracted recipe together with whatever ingredient
// lines could be matched; the remainder keeps its raw text.
func (s *recipeService) SaveImported(ctx context.Context, imported domain.ImportedRecipe, category string) (*entities.Recipe, error) {
	if imported.Name == "" {
		return nil, domain.ErrNoRecipeData
	}
	if existing, err := s.recipeRepository.FindByNameInsensitive(ctx, imported.Name); err == nil && existing != nil {
		return nil, domain.ErrRecipeExists
	}

	catalog, synonyms, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	recipe := &entities.Recipe{
		Name:         strings.TrimSpace(imported.Name),
		Category:     category,
		Servings:     imported.Servings,
		Instructions: imported.Instructions,
		SourceURL:    imported.SourceURL,
	}
	if recipe.Servings <= 0 {
		recipe.Servings = 4
	}

	for _, text := range imported.IngredientLines {
		parsed := s.resolveLine(text, catalog, synonyms)
		line := &entities.RecipeIngredient{
			Quantity: parsed.Quantity,
			Unit:     parsed.Unit,
			RawText:  parsed.RawText,
		}
		if parsed.Match != nil {
			matchID, err := uuid.Parse(parsed.Match.ID)
			if err != nil {
				return nil, domain.ErrParseUUID
			}
			line.IngredientID = &matchID
		}
		recipe.Ingredients = append(recipe.Ingredients, line)
	}

	if err := s.recipeRepository.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("%s: %w", domain.MessageFailedImportRecipe, err)
	}
	logger.Info("recipe imported",
		"name", recipe.Name,
		"lines", len(recipe.Ingredients),
		"source", recipe.SourceURL,
	)
	return recipe, nil
}

func (s *recipeService) loadCatalog(ctx context.Context) ([]*entities.Ingredient, []*entities.IngredientSynonym, error) {
	catalog, err := s.ingredientRepository.GetAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	synonyms, err := s.ingredientRepository.GetSynonyms(ctx)
	if err != nil {
		return nil, nil, err
	}
	return catalog, synonyms, nil
}

// resolveLine runs the parse, standardize, match, suggest pipeline for one
// raw ingredient line. Parse misses fall back to quantity 1 EA with the text
// as the name, so a line never blocks an import.
func (s *recipeService) resolveLine(text string, catalog []*entities.Ingredient, synonyms []*entities.IngredientSynonym) domain.ParsedLine {
	parsed, ok := parsing.ParseIngredient(text)
	if !ok {
		parsed = parsing.Parsed{Quantity: 1, Unit: units.EA, Name: strings.TrimSpace(text)}
	}

	qty, unit := units.Standardize(parsed.Quantity, parsed.Unit, parsed.Name)
	normalized := matching.NormalizeName(parsed.Name)

	result := domain.ParsedLine{
		RawText:    strings.TrimSpace(text),
		Quantity:   qty,
		Unit:       string(unit),
		Name:       parsed.Name,
		Normalized: normalized,
	}

	match, kind := matching.FindMatch(parsed.Name, catalog, synonyms)
	if match != nil {
		resp := ingredient.ToIngredientResponse(match)
		result.Match = &resp
		result.MatchType = string(kind)
		result.BaseUnit = match.BaseUnit

		if converted, err := cost.ConvertToBaseUnit(match, qty, unit); err == nil {
			result.ConvertedQty = &converted
		}
		return result
	}

	for _, sug := range matching.Suggestions(normalized, catalog, maxSuggestions) {
		result.Suggestions = append(result.Suggestions, domain.SuggestionResponse{
			IngredientID: sug.Ingredient.ID.String(),
			Name:         sug.Ingredient.Name,
			Score:        sug.Score,
			Reason:       sug.Reason,
		})
	}
	return result
}
