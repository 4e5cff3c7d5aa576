package cost

import (
	"fmt"
	"math"
	"strings"

	"mealplanner/domain"
	"mealplanner/entities"
	"mealplanner/pkg/units"
)

// formula is one of the five conversion strategies. Each variant carries
// only the fields its formula needs, so a missing field is a construction
// error instead of a runtime surprise.
type formula interface {
	toBase(qty float64, from, base units.Unit) (float64, error)
}

type weightFormula struct {
	pieceWeightG *float64
	name         string // average-weight fallback key when PieceWeightG is unset
}

type volumeFormula struct{}

type portionFormula struct {
	portionML *float64
	portionG  *float64
}

type packageFormula struct {
	pkgCount float64
}

type countFormula struct{}

// formulaFor builds the formula variant for an ingredient. The CostFormula
// value is whitelist-validated upstream, so an unrecognized value here is an
// invariant violation and surfaces as a hard error.
func formulaFor(ing *entities.Ingredient) (formula, error) {
	switch strings.ToUpper(ing.CostFormula) {
	case entities.FormulaWeight:
		return weightFormula{pieceWeightG: ing.PieceWeightG, name: ing.Name}, nil
	case entities.FormulaVolume:
		return volumeFormula{}, nil
	case entities.FormulaPortion:
		return portionFormula{portionML: ing.PortionML, portionG: ing.PortionG}, nil
	case entities.FormulaPackage:
		if ing.PkgCount == nil || *ing.PkgCount <= 0 {
			return nil, fmt.Errorf("%w: PACKAGE formula without pkg_count on %q", domain.ErrFormulaFieldMissing, ing.Name)
		}
		return packageFormula{pkgCount: *ing.PkgCount}, nil
	case entities.FormulaCount, "":
		return countFormula{}, nil
	default:
		return nil, fmt.Errorf("%w: %q on %q", domain.ErrUnknownCostFormula, ing.CostFormula, ing.Name)
	}
}

// ConvertToBaseUnit converts a recipe quantity from its original unit into
// the ingredient's base unit using the ingredient's cost formula. Quantities
// the formula cannot interpret pass through unchanged; arithmetic that goes
// negative or non-finite is an error, never clamped.
func ConvertToBaseUnit(ing *entities.Ingredient, qty float64, from units.Unit) (float64, error) {
	base := units.Unit(strings.ToUpper(ing.BaseUnit))
	if base == "" {
		base = units.EA
	}
	if !units.Valid(base) {
		return 0, fmt.Errorf("%w: %q on %q", domain.ErrUnknownBaseUnit, ing.BaseUnit, ing.Name)
	}
	if from == "" {
		from = units.EA
	}
	from = units.Unit(strings.ToUpper(string(from)))
	if !units.Valid(from) {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownBaseUnit, from)
	}

	f, err := formulaFor(ing)
	if err != nil {
		return 0, err
	}

	// Matching units need no conversion, except under PACKAGE where EA on
	// both sides still means pieces versus packages.
	if from == base {
		if _, isPackage := f.(packageFormula); !isPackage {
			return checkAmount(qty, ing.Name)
		}
	}

	out, err := f.toBase(qty, from, base)
	if err != nil {
		return 0, err
	}
	return checkAmount(out, ing.Name)
}

// CalculateIngredientCost prices a recipe quantity against the ingredient's
// per-base-unit cost. The result is full precision; currency rounding is a
// presentation concern.
func CalculateIngredientCost(ing *entities.Ingredient, qty float64, from units.Unit) (float64, error) {
	if ing == nil || ing.Cost <= 0 {
		return 0, nil
	}
	baseQty, err := ConvertToBaseUnit(ing, qty, from)
	if err != nil {
		return 0, err
	}
	return checkAmount(baseQty*ing.Cost, ing.Name)
}

func (f weightFormula) toBase(qty float64, from, base units.Unit) (float64, error) {
	if fromFactor, ok := units.WeightFactorG(from); ok {
		if baseFactor, ok := units.WeightFactorG(base); ok {
			return qty * fromFactor / baseFactor, nil
		}
		return qty, nil
	}
	// Count-style units (EA, CLOVE, ...) convert through the per-piece weight.
	if !from.IsVolume() {
		pieceWeight := 0.0
		if f.pieceWeightG != nil {
			pieceWeight = *f.pieceWeightG
		} else if avg, ok := AveragePieceWeight(f.name); ok {
			pieceWeight = avg
		}
		if pieceWeight > 0 {
			if baseFactor, ok := units.WeightFactorG(base); ok {
				return qty * pieceWeight / baseFactor, nil
			}
		}
	}
	return qty, nil
}

func (volumeFormula) toBase(qty float64, from, base units.Unit) (float64, error) {
	if fromFactor, ok := units.VolumeFactorML(from); ok {
		if baseFactor, ok := units.VolumeFactorML(base); ok {
			return qty * fromFactor / baseFactor, nil
		}
	}
	return qty, nil
}

func (f portionFormula) toBase(qty float64, from, base units.Unit) (float64, error) {
	if fromFactor, ok := units.VolumeFactorML(from); ok && f.portionML != nil && *f.portionML > 0 {
		return qty * fromFactor / *f.portionML, nil
	}
	if fromFactor, ok := units.WeightFactorG(from); ok && f.portionG != nil && *f.portionG > 0 {
		return qty * fromFactor / *f.portionG, nil
	}
	// Already a portion count.
	return qty, nil
}

func (f packageFormula) toBase(qty float64, from, base units.Unit) (float64, error) {
	if !from.IsWeight() && !from.IsVolume() {
		return qty / f.pkgCount, nil
	}
	return qty, nil
}

func (countFormula) toBase(qty float64, from, base units.Unit) (float64, error) {
	return qty, nil
}

func checkAmount(v float64, name string) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("%w: %v for %q", domain.ErrCostComputation, v, name)
	}
	return v, nil
}
