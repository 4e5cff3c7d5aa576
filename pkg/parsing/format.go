package parsing

import (
	"strconv"
	"strings"

	"mealplanner/pkg/units"
)

// FloatToFraction renders a decimal quantity as a cook-friendly fraction
// string ("1.5" -> "1 1/2"), falling back to a trimmed decimal when the
// value is not near a common fraction. Presentation-only; the core keeps
// full-precision floats.
func FloatToFraction(value float64) string {
	if value == 0 {
		return "0"
	}
	whole := int(value)
	if value == float64(whole) {
		return strconv.Itoa(whole)
	}
	decimal := value - float64(whole)
	if label, ok := units.CommonFractionLabel(decimal); ok {
		if whole > 0 {
			return strconv.Itoa(whole) + " " + label
		}
		return label
	}
	s := strconv.FormatFloat(value, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
