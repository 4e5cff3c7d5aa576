package shopping

import (
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"mealplanner/entities"
	"mealplanner/pkg/cost"
	"mealplanner/pkg/matching"
	"mealplanner/pkg/units"
)

// TaxRate applies to the shopping list subtotal.
const TaxRate = 0.12

// RecipeInput is one recipe's ingredient rows with a serving multiplier.
// Rows are expected with their Ingredient preloaded; a nil Ingredient is a
// dangling reference and degrades to a free-text line.
type RecipeInput struct {
	Recipe     *entities.Recipe
	Multiplier float64
}

// Options tunes one aggregation pass. All inputs are snapshots; Aggregate
// itself reads nothing beyond its arguments and the static unit tables.
type Options struct {
	PantryIDs     map[uuid.UUID]bool // staples the user already has
	UseUpIDs      map[uuid.UUID]bool // ingredients to surface first
	IncludePantry bool               // force pantry staples into the output
}

// Line is one aggregated shopping entry in the ingredient's base unit.
type Line struct {
	IngredientID *uuid.UUID
	Name         string
	Quantity     float64
	Unit         units.Unit
	Category     string
	CostPerUnit  float64
	MinPurchase  float64
	Cost         float64
	UseUp        bool
}

// Totals carries the currency-rounded list totals.
type Totals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

type accumulator struct {
	line     Line
	freeText bool
}

// Aggregate consolidates recipe ingredients into a deduplicated shopping
// list. Quantities convert into each ingredient's base unit before summing;
// accumulated totals below the ingredient's minimum purchase are raised to
// it, and EA quantities round up to whole units. Ordering is stable:
// use-up flag first, then category, then name.
func Aggregate(recipes []RecipeInput, opts Options) ([]Line, Totals, error) {
	byKey := make(map[string]*accumulator)
	var order []string

	for _, input := range recipes {
		if input.Recipe == nil {
			continue
		}
		multiplier := input.Multiplier
		if multiplier <= 0 {
			multiplier = 1
		}

		for _, ri := range input.Recipe.Ingredients {
			ing := ri.Ingredient
			qty := ri.Quantity * multiplier

			if ing == nil {
				// Dangling reference: carry the raw line through with no
				// cost contribution instead of aborting the run.
				if strings.TrimSpace(ri.RawText) == "" {
					continue
				}
				name := matching.NormalizeName(ri.RawText)
				if strings.EqualFold(name, "water") {
					continue
				}
				key := "name:" + strings.ToLower(name)
				acc, ok := byKey[key]
				if !ok {
					acc = &accumulator{
						line: Line{
							Name:        name,
							Unit:        units.Unit(strings.ToUpper(ri.Unit)),
							Category:    "Other",
							MinPurchase: 1,
						},
						freeText: true,
					}
					byKey[key] = acc
					order = append(order, key)
				}
				acc.line.Quantity += qty
				continue
			}

			if opts.PantryIDs[ing.ID] && !opts.IncludePantry {
				continue
			}
			if strings.EqualFold(ing.Name, "water") {
				continue
			}

			baseQty, err := cost.ConvertToBaseUnit(ing, qty, units.Unit(ri.Unit))
			if err != nil {
				return nil, Totals{}, err
			}

			key := "id:" + ing.ID.String()
			acc, ok := byKey[key]
			if !ok {
				baseUnit := units.Unit(strings.ToUpper(ing.BaseUnit))
				if baseUnit == "" {
					baseUnit = units.EA
				}
				id := ing.ID
				acc = &accumulator{
					line: Line{
						IngredientID: &id,
						Name:         ing.Name,
						Unit:         baseUnit,
						Category:     ing.Category,
						CostPerUnit:  ing.Cost,
						MinPurchase:  minPurchase(ing),
						UseUp:        opts.UseUpIDs[ing.ID],
					},
				}
				byKey[key] = acc
				order = append(order, key)
			}
			acc.line.Quantity += baseQty
		}
	}

	lines := make([]Line, 0, len(order))
	subtotal := decimal.Zero
	for _, key := range order {
		acc := byKey[key]
		line := acc.line

		if line.Quantity < line.MinPurchase {
			line.Quantity = line.MinPurchase
		}
		if line.Unit == units.EA {
			line.Quantity = math.Ceil(line.Quantity)
		}

		if !acc.freeText && line.CostPerUnit > 0 {
			lineCost := decimal.NewFromFloat(line.Quantity).
				Mul(decimal.NewFromFloat(line.CostPerUnit)).
				Round(2)
			line.Cost = lineCost.InexactFloat64()
			subtotal = subtotal.Add(lineCost)
		}

		lines = append(lines, line)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].UseUp != lines[j].UseUp {
			return lines[i].UseUp
		}
		if lines[i].Category != lines[j].Category {
			return lines[i].Category < lines[j].Category
		}
		return lines[i].Name < lines[j].Name
	})

	tax := subtotal.Mul(decimal.NewFromFloat(TaxRate)).Round(2)
	totals := Totals{
		Subtotal: subtotal.Round(2).InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Total:    subtotal.Add(tax).Round(2).InexactFloat64(),
	}
	return lines, totals, nil
}

func minPurchase(ing *entities.Ingredient) float64 {
	if ing.MinPurchase > 0 {
		return ing.MinPurchase
	}
	return 1
}
