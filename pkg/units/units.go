package units

import (
	"strings"
)

// Unit is a canonical measurement unit. The set is closed: values outside
// the constants below never enter the core.
type Unit string

const (
	EA Unit = "EA" // discrete/each sentinel

	// Weight family, metric base G.
	G  Unit = "G"
	KG Unit = "KG"
	OZ Unit = "OZ"
	LB Unit = "LB"

	// Volume family, metric base ML.
	ML   Unit = "ML"
	L    Unit = "L"
	CUP  Unit = "CUP"
	TBSP Unit = "TBSP"
	TSP  Unit = "TSP"

	// Countable units with no metric factor; they convert only through
	// COUNT- or PACKAGE-style formulas.
	CLOVE Unit = "CLOVE"
	HEAD  Unit = "HEAD"
	CAN   Unit = "CAN"
)

// aliases maps lowercase parse tokens, including plural forms, to canonical
// units. Loaded once, read-only after init.
var aliases = map[string]Unit{
	"pound": LB, "pounds": LB, "lb": LB, "lbs": LB,
	"ounce": OZ, "ounces": OZ, "oz": OZ,
	"cup": CUP, "cups": CUP, "c": CUP,
	"tablespoon": TBSP, "tablespoons": TBSP, "tbsp": TBSP, "tbs": TBSP, "tb": TBSP,
	"teaspoon": TSP, "teaspoons": TSP, "tsp": TSP, "ts": TSP,
	"gram": G, "grams": G, "g": G,
	"kilogram": KG, "kilograms": KG, "kg": KG,
	"milliliter": ML, "milliliters": ML, "ml": ML,
	"liter": L, "liters": L, "l": L,
	"clove": CLOVE, "cloves": CLOVE,
	"head": HEAD, "heads": HEAD,
	"slice": EA, "slices": EA,
	"piece": EA, "pieces": EA,
	"can": CAN, "cans": CAN,
	"package": EA, "packages": EA, "pkg": EA,
	"bunch": EA, "bunches": EA,
	"stalk": EA, "stalks": EA,
	"sprig": EA, "sprigs": EA,
	"pinch": EA, "pinches": EA,
	"dash": EA, "dashes": EA,
	"each": EA, "ea": EA,
}

var volumeToML = map[Unit]float64{
	ML:   1,
	L:    1000,
	CUP:  236.588,
	TBSP: 14.787,
	TSP:  4.929,
}

var weightToG = map[Unit]float64{
	G:  1,
	KG: 1000,
	OZ: 28.3495,
	LB: 453.592,
}

var valid = map[Unit]bool{
	EA: true, G: true, KG: true, OZ: true, LB: true,
	ML: true, L: true, CUP: true, TBSP: true, TSP: true,
	CLOVE: true, HEAD: true, CAN: true,
}

// Parse resolves a free-text token against the alias set, case-insensitively
// and with a trailing dot stripped ("Tbsp." -> TBSP).
func Parse(token string) (Unit, bool) {
	u, ok := aliases[strings.TrimSuffix(strings.ToLower(strings.TrimSpace(token)), ".")]
	return u, ok
}

// Valid reports whether u belongs to the closed unit enumeration.
func Valid(u Unit) bool {
	return valid[u]
}

func (u Unit) IsWeight() bool {
	_, ok := weightToG[u]
	return ok
}

func (u Unit) IsVolume() bool {
	_, ok := volumeToML[u]
	return ok
}

// WeightFactorG returns the grams-per-unit factor for weight units.
func WeightFactorG(u Unit) (float64, bool) {
	f, ok := weightToG[u]
	return f, ok
}

// VolumeFactorML returns the millilitres-per-unit factor for volume units.
func VolumeFactorML(u Unit) (float64, bool) {
	f, ok := volumeToML[u]
	return f, ok
}

// Convert moves a quantity between two units of the same family. The two
// families are never cross-converted; when the conversion is impossible the
// original quantity and unit are returned with ok=false.
func Convert(qty float64, from, to Unit) (float64, Unit, bool) {
	if from == to {
		return qty, to, true
	}
	if ff, ok := weightToG[from]; ok {
		if tf, ok := weightToG[to]; ok {
			return qty * ff / tf, to, true
		}
		return qty, from, false
	}
	if ff, ok := volumeToML[from]; ok {
		if tf, ok := volumeToML[to]; ok {
			return qty * ff / tf, to, true
		}
		return qty, from, false
	}
	return qty, from, false
}
