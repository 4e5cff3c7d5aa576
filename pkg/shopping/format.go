package shopping

import (
	"fmt"

	"mealplanner/pkg/parsing"
	"mealplanner/pkg/units"
)

// FormatQuantity renders a quantity with a secondary unit in parentheses so
// the list reads naturally at the store: pounds alongside kilograms, litres
// alongside cups, small volumes alongside spoons.
func FormatQuantity(qty float64, unit units.Unit) string {
	primary := parsing.FloatToFraction(qty)

	switch unit {
	case units.KG:
		lb, _, ok := units.Convert(qty, units.KG, units.LB)
		if ok {
			return fmt.Sprintf("%s kg (%.1f lb)", primary, lb)
		}
	case units.LB:
		kg, _, ok := units.Convert(qty, units.LB, units.KG)
		if ok {
			return fmt.Sprintf("%s lb (%.2f kg)", primary, kg)
		}
	case units.L:
		cups, _, ok := units.Convert(qty, units.L, units.CUP)
		if ok {
			return fmt.Sprintf("%s L (%s cups)", primary, parsing.FloatToFraction(cups))
		}
	case units.ML:
		if qty >= 60 {
			cups, _, ok := units.Convert(qty, units.ML, units.CUP)
			if ok {
				return fmt.Sprintf("%s ml (%s cups)", primary, parsing.FloatToFraction(cups))
			}
		} else {
			tbsp, _, ok := units.Convert(qty, units.ML, units.TBSP)
			if ok {
				return fmt.Sprintf("%s ml (%s tbsp)", primary, parsing.FloatToFraction(tbsp))
			}
		}
	case units.G:
		if qty >= 1000 {
			kg, _, ok := units.Convert(qty, units.G, units.KG)
			if ok {
				return fmt.Sprintf("%s kg", parsing.FloatToFraction(kg))
			}
		}
	}

	if unit == units.EA {
		return primary
	}
	return fmt.Sprintf("%s %s", primary, unitLabel(unit))
}

func unitLabel(unit units.Unit) string {
	switch unit {
	case units.G:
		return "g"
	case units.KG:
		return "kg"
	case units.OZ:
		return "oz"
	case units.LB:
		return "lb"
	case units.ML:
		return "ml"
	case units.L:
		return "L"
	case units.CUP:
		return "cup"
	case units.TBSP:
		return "tbsp"
	case units.TSP:
		return "tsp"
	case units.CLOVE:
		return "clove"
	case units.HEAD:
		return "head"
	case units.CAN:
		return "can"
	default:
		return string(unit)
	}
}
