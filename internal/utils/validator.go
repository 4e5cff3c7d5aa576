package utils

import (
	"github.com/go-playground/validator/v10"

	"mealplanner/domain"
	"mealplanner/entities"
)

var Validate *validator.Validate

// InitValidator builds the shared validator and registers the struct-level
// rule for ingredient requests: the field(s) tied to the selected cost
// formula must be present and positive.
func InitValidator() {
	Validate = validator.New()
	Validate.RegisterStructValidation(ingredientFormulaValidation, domain.UpsertIngredientRequest{})
}

func ingredientFormulaValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(domain.UpsertIngredientRequest)

	switch req.CostFormula {
	case entities.FormulaPortion:
		if req.PortionML == nil && req.PortionG == nil {
			sl.ReportError(req.PortionML, "PortionML", "portion_ml", "portionfields", "")
		}
	case entities.FormulaPackage:
		if req.PkgCount == nil || *req.PkgCount <= 0 {
			sl.ReportError(req.PkgCount, "PkgCount", "pkg_count", "pkgcount", "")
		}
	}
}
