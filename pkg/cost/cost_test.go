package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealplanner/domain"
	"mealplanner/entities"
	"mealplanner/pkg/units"
)

func ptr(v float64) *float64 { return &v }

func TestWeightFormulaPiecesToKilograms(t *testing.T) {
	ing := &entities.Ingredient{
		Name:         "Chicken Breast",
		CostFormula:  entities.FormulaWeight,
		BaseUnit:     "KG",
		Cost:         10,
		PieceWeightG: ptr(250),
	}

	qty, err := ConvertToBaseUnit(ing, 2, units.EA)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, qty, 1e-9)

	total, err := CalculateIngredientCost(ing, 2, units.EA)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, total, 1e-9)
}

func TestWeightFormulaDirectConversion(t *testing.T) {
	ing := &entities.Ingredient{
		Name:        "Ground Beef",
		CostFormula: entities.FormulaWeight,
		BaseUnit:    "KG",
		Cost:        8,
	}

	qty, err := ConvertToBaseUnit(ing, 500, units.G)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, qty, 1e-9)

	qty, err = ConvertToBaseUnit(ing, 1, units.LB)
	require.NoError(t, err)
	assert.InDelta(t, 0.453592, qty, 1e-6)
}

func TestWeightFormulaAverageFallback(t *testing.T) {
	// No PieceWeightG set; the average table supplies 50 g per egg.
	ing := &entities.Ingredient{
		Name:        "Egg",
		CostFormula: entities.FormulaWeight,
		BaseUnit:    "KG",
		Cost:        4,
	}

	qty, err := ConvertToBaseUnit(ing, 4, units.EA)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, qty, 1e-9)
}

func TestVolumeFormula(t *testing.T) {
	ing := &entities.Ingredient{
		Name:        "Olive Oil",
		CostFormula: entities.FormulaVolume,
		BaseUnit:    "L",
		Cost:        12,
	}

	qty, err := ConvertToBaseUnit(ing, 2, units.TBSP)
	require.NoError(t, err)
	assert.InDelta(t, 0.029574, qty, 1e-5)

	total, err := CalculateIngredientCost(ing, 1, units.CUP)
	require.NoError(t, err)
	assert.InDelta(t, 0.236588*12, total, 1e-5)
}

func TestPortionFormula(t *testing.T) {
	ing := &entities.Ingredient{
		Name:        "Greek Yogurt",
		CostFormula: entities.FormulaPortion,
		BaseUnit:    "EA",
		Cost:        1.25,
		PortionML:   ptr(170),
	}

	qty, err := ConvertToBaseUnit(ing, 340, units.ML)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, qty, 1e-9)

	// Already a portion count passes through.
	qty, err = ConvertToBaseUnit(ing, 3, units.EA)
	require.NoError(t, err)
	assert.Equal(t, 3.0, qty)
}

func TestPackageFormula(t *testing.T) {
	ing := &entities.Ingredient{
		Name:        "Corn Tortillas",
		CostFormula: entities.FormulaPackage,
		BaseUnit:    "EA",
		Cost:        4.20,
		PkgCount:    ptr(12),
	}

	// 3 tortillas out of a 12-pack.
	qty, err := ConvertToBaseUnit(ing, 3, units.EA)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, qty, 1e-9)

	total, err := CalculateIngredientCost(ing, 3, units.EA)
	require.NoError(t, err)
	assert.InDelta(t, 1.05, total, 1e-9)
}

func TestPackageFormulaRequiresPkgCount(t *testing.T) {
	ing := &entities.Ingredient{
		Name:        "Corn Tortillas",
		CostFormula: entities.FormulaPackage,
		BaseUnit:    "EA",
		Cost:        4.20,
	}
	_, err := ConvertToBaseUnit(ing, 3, units.EA)
	assert.ErrorIs(t, err, domain.ErrFormulaFieldMissing)
}

func TestCountFormula(t *testing.T) {
	ing := &entities.Ingredient{
		Name:        "Avocado",
		CostFormula: entities.FormulaCount,
		BaseUnit:    "EA",
		Cost:        1.50,
	}

	total, err := CalculateIngredientCost(ing, 3, units.EA)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, total, 1e-9)
}

func TestUnknownFormulaIsHardError(t *testing.T) {
	ing := &entities.Ingredient{
		Name:        "Mystery",
		CostFormula: "BARTER",
		BaseUnit:    "EA",
		Cost:        1,
	}
	_, err := ConvertToBaseUnit(ing, 1, units.EA)
	assert.ErrorIs(t, err, domain.ErrUnknownCostFormula)
}

func TestUnknownBaseUnitIsHardError(t *testing.T) {
	ing := &entities.Ingredient{
		Name:        "Saffron",
		CostFormula: entities.FormulaWeight,
		BaseUnit:    "FURLONG",
		Cost:        100,
	}
	_, err := ConvertToBaseUnit(ing, 1, units.G)
	assert.ErrorIs(t, err, domain.ErrUnknownBaseUnit)

	_, err = ConvertToBaseUnit(&entities.Ingredient{
		Name:        "Flour",
		CostFormula: entities.FormulaWeight,
		BaseUnit:    "KG",
	}, 1, units.Unit("BUSHEL"))
	assert.ErrorIs(t, err, domain.ErrUnknownBaseUnit)
}

func TestNegativeQuantityNeverClamped(t *testing.T) {
	ing := &entities.Ingredient{
		Name:        "Flour",
		CostFormula: entities.FormulaWeight,
		BaseUnit:    "KG",
		Cost:        2,
	}
	_, err := ConvertToBaseUnit(ing, -1, units.G)
	assert.ErrorIs(t, err, domain.ErrCostComputation)
}

func TestZeroCostIngredientPricesToZero(t *testing.T) {
	ing := &entities.Ingredient{
		Name:        "Water",
		CostFormula: entities.FormulaVolume,
		BaseUnit:    "L",
	}
	total, err := CalculateIngredientCost(ing, 2, units.CUP)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)

	total, err = CalculateIngredientCost(nil, 2, units.CUP)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestAveragePieceWeightSpecificBeforeGeneric(t *testing.T) {
	green, ok := AveragePieceWeight("Green Onion")
	require.True(t, ok)
	plain, ok := AveragePieceWeight("Onion")
	require.True(t, ok)
	assert.NotEqual(t, green, plain)

	_, ok = AveragePieceWeight("Dragon Fruit")
	assert.False(t, ok)
}
