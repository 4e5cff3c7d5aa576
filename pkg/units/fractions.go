package units

// Unicode vulgar-fraction glyphs and their decimal values. Unrecognized
// glyphs pass through the parser unchanged.
var fractionGlyphs = map[rune]float64{
	'½': 0.5,       // ½
	'⅓': 1.0 / 3.0, // ⅓
	'⅔': 2.0 / 3.0, // ⅔
	'¼': 0.25,      // ¼
	'¾': 0.75,      // ¾
	'⅕': 0.2,       // ⅕
	'⅖': 0.4,       // ⅖
	'⅗': 0.6,       // ⅗
	'⅘': 0.8,       // ⅘
	'⅙': 1.0 / 6.0, // ⅙
	'⅚': 5.0 / 6.0, // ⅚
	'⅛': 0.125,     // ⅛
	'⅜': 0.375,     // ⅜
	'⅝': 0.625,     // ⅝
	'⅞': 0.875,     // ⅞
}

// fractionRunes fixes the replacement order so text normalization is
// deterministic.
var fractionRunes = []rune{
	'½', '⅓', '⅔', '¼', '¾',
	'⅕', '⅖', '⅗', '⅘', '⅙',
	'⅚', '⅛', '⅜', '⅝', '⅞',
}

// FractionValue returns the decimal value of a vulgar-fraction glyph.
func FractionValue(r rune) (float64, bool) {
	v, ok := fractionGlyphs[r]
	return v, ok
}

// FractionRunes returns the glyph set in a stable order.
func FractionRunes() []rune {
	out := make([]rune, len(fractionRunes))
	copy(out, fractionRunes)
	return out
}

// CommonFractions maps decimal values to display fraction strings, used
// when rendering quantities like 1.5 as "1 1/2".
var commonFractions = []struct {
	Value float64
	Label string
}{
	{0.125, "1/8"},
	{0.25, "1/4"},
	{1.0 / 3.0, "1/3"},
	{0.375, "3/8"},
	{0.5, "1/2"},
	{0.625, "5/8"},
	{2.0 / 3.0, "2/3"},
	{0.75, "3/4"},
	{0.875, "7/8"},
}

// CommonFractionLabel finds the display fraction for a decimal part within
// tolerance, ok=false when none is close enough.
func CommonFractionLabel(decimal float64) (string, bool) {
	for _, cf := range commonFractions {
		diff := decimal - cf.Value
		if diff < 0 {
			diff = -diff
		}
		if diff < 0.02 {
			return cf.Label, true
		}
	}
	return "", false
}
