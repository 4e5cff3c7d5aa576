package cost

import (
	"strings"
)

// averageWeights lists typical per-piece weights in grams for common
// ingredients, used when a WEIGHT-formula ingredient has no explicit
// PieceWeightG and to prefill new catalog entries. Lookup order is fixed so
// substring matches are deterministic.
var averageWeights = []struct {
	Key   string
	Grams float64
}{
	// Vegetables
	{"RED ONION", 225},
	{"YELLOW ONION", 225},
	{"WHITE ONION", 225},
	{"GREEN ONION", 30},
	{"SCALLION", 30},
	{"ONION", 225},
	{"TOMATO", 150},
	{"CARROT", 70},
	{"CELERY", 45},
	{"RUSSET POTATO", 225},
	{"YELLOW POTATO", 170},
	{"RED POTATO", 170},
	{"SWEET POTATO", 200},
	{"POTATO", 225},
	{"BELL PEPPER", 150},
	{"RED PEPPER", 150},
	{"YELLOW PEPPER", 150},
	{"GREEN PEPPER", 150},
	{"JALAPENO", 15},
	{"CUCUMBER", 300},
	{"ZUCCHINI", 200},
	{"MUSHROOM", 18},
	{"GARLIC", 5},
	{"GINGER", 30},
	{"BROCCOLI", 600},
	{"CAULIFLOWER", 900},
	{"CABBAGE", 900},
	{"ROMAINE", 300},
	{"LETTUCE", 300},
	{"SPINACH", 30},
	{"KALE", 30},
	{"AVOCADO", 200},
	{"CORN", 200},

	// Fruits
	{"LEMON", 85},
	{"LIME", 65},
	{"ORANGE", 180},
	{"APPLE", 180},
	{"BANANA", 120},

	// Proteins
	{"EGG", 50},
	{"CHICKEN BREAST", 225},
	{"CHICKEN THIGH", 115},
	{"BACON", 30},
	{"SAUSAGE", 100},

	// Dairy
	{"BUTTER", 14},

	// Bakery
	{"TORTILLA", 45},
	{"BREAD", 30},
	{"BUN", 60},
}

// AveragePieceWeight looks up a typical per-piece weight in grams for an
// ingredient name, exact key first, then substring.
func AveragePieceWeight(name string) (float64, bool) {
	if name == "" {
		return 0, false
	}
	upper := strings.ToUpper(name)
	for _, aw := range averageWeights {
		if aw.Key == upper {
			return aw.Grams, true
		}
	}
	for _, aw := range averageWeights {
		if strings.Contains(upper, aw.Key) {
			return aw.Grams, true
		}
	}
	return 0, false
}
