package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"mealplanner/pkg/units"
)

// Parsed is the structured result of one free-text ingredient line.
// QuantityFound/UnitFound distinguish a parsed value from the sentinel
// defaults (quantity 1, unit EA); callers needing strict parsing check them.
type Parsed struct {
	Quantity      float64
	Unit          units.Unit
	Name          string
	QuantityFound bool
	UnitFound     bool
}

var (
	wsRe = regexp.MustCompile(`[\s\x{00a0}\x{2000}-\x{200b}]+`)

	parenRe   = regexp.MustCompile(`\s*\([^)]*\)?`)
	bracketRe = regexp.MustCompile(`\s*\[[^\]]*\]?`)
	braceRe   = regexp.MustCompile(`\s*\{[^}]*\}?`)

	leadingJunkRe = regexp.MustCompile(`^[/\-\s]+`)
	leftoverBrRe  = regexp.MustCompile(`[(){}\[\]]+`)
	commaTailRe   = regexp.MustCompile(`,\s*(.*)$`)
	mixedNumberRe = regexp.MustCompile(`^(\d+)\s+(\d+)\s*/\s*(\d+)$`)
	simpleFracRe  = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)$`)
	leadingQtyRe  = regexp.MustCompile(`^(\d+\s+\d+\s*/\s*\d+|\d+\s*/\s*\d+|\d+\.?\d*)\s*`)
	trailingCutRe = regexp.MustCompile(`,.*$`)
	glyphPatterns = buildGlyphPatterns()
)

func buildGlyphPatterns() map[rune]*regexp.Regexp {
	out := make(map[rune]*regexp.Regexp, len(units.FractionRunes()))
	for _, r := range units.FractionRunes() {
		out[r] = regexp.MustCompile(`(\d+)\s*` + regexp.QuoteMeta(string(r)))
	}
	return out
}

// noteKeywords flag comma-separated tails that are preparation notes rather
// than part of the ingredient name ("chicken, diced" vs "boneless, skinless").
var noteKeywords = []string{
	"optional", "divided", "or more", "or less", "to taste",
	"for serving", "for garnish", "at room temp", "softened",
	"melted", "chopped", "diced", "minced", "sliced", "cubed",
	"sifted", "packed", "beaten", "room temperature", "thawed",
	"drained", "rinsed", "peeled", "seeded", "cored", "trimmed",
	"cut into", "plus more", "as needed", "torn", "shredded",
}

// NormalizeFractions rewrites Unicode vulgar-fraction glyphs to decimal
// form, merging mixed numbers like "1½" into "1.5". Whitespace, including
// non-breaking spaces, collapses to single spaces first.
func NormalizeFractions(text string) string {
	text = wsRe.ReplaceAllString(text, " ")
	for _, r := range units.FractionRunes() {
		if !strings.ContainsRune(text, r) {
			continue
		}
		value, _ := units.FractionValue(r)
		pattern := glyphPatterns[r]
		if m := pattern.FindStringSubmatch(text); m != nil {
			whole, err := strconv.ParseFloat(m[1], 64)
			if err == nil {
				text = pattern.ReplaceAllString(text, formatFloat(whole+value))
				continue
			}
		}
		text = strings.ReplaceAll(text, string(r), formatFloat(value))
	}
	return text
}

// ParseFraction converts a quantity token to its decimal value. Accepted
// forms: plain integers and decimals ("2", "1.5"), simple fractions ("1/2"),
// and mixed numbers ("1 1/2"), plus the vulgar-fraction glyphs. A zero
// denominator or non-numeric part yields ok=false, never a panic.
func ParseFraction(token string) (float64, bool) {
	s := strings.TrimSpace(token)
	if s == "" {
		return 0, false
	}
	s = NormalizeFractions(s)

	if m := mixedNumberRe.FindStringSubmatch(s); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		num, _ := strconv.ParseFloat(m[2], 64)
		den, _ := strconv.ParseFloat(m[3], 64)
		if den == 0 {
			return 0, false
		}
		return whole + num/den, true
	}

	if m := simpleFracRe.FindStringSubmatch(s); m != nil {
		num, _ := strconv.ParseFloat(m[1], 64)
		den, _ := strconv.ParseFloat(m[2], 64)
		if den == 0 {
			return 0, false
		}
		return num / den, true
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseIngredient parses a line like "2 cups flour" into its quantity, unit
// and name. Missing quantity defaults to 1, unknown unit to EA; both cases
// are flagged on the result rather than reported as errors. The same input
// always yields the same result; no state is consulted beyond the static
// alias tables.
func ParseIngredient(text string) (Parsed, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Parsed{}, false
	}

	text = NormalizeFractions(text)

	// Strip bracketed asides; run a few passes for nested brackets.
	for i := 0; i < 3; i++ {
		text = parenRe.ReplaceAllString(text, "")
		text = bracketRe.ReplaceAllString(text, "")
		text = braceRe.ReplaceAllString(text, "")
	}
	text = leadingJunkRe.ReplaceAllString(text, "")
	text = leftoverBrRe.ReplaceAllString(text, "")

	// Drop comma tails only when they read as preparation notes; commas
	// inside names like "boneless, skinless" stay.
	if m := commaTailRe.FindStringSubmatch(text); m != nil {
		tail := strings.ToLower(m[1])
		for _, kw := range noteKeywords {
			if strings.Contains(tail, kw) {
				text = trailingCutRe.ReplaceAllString(text, "")
				break
			}
		}
	}

	result := Parsed{Quantity: 1, Unit: units.EA}

	if m := leadingQtyRe.FindStringSubmatch(text); m != nil && strings.TrimSpace(m[1]) != "" {
		if qty, ok := ParseFraction(m[1]); ok {
			result.Quantity = qty
			result.QuantityFound = true
			text = strings.TrimSpace(text[len(m[0]):])
		}
	}

	text = stripLeadingFractionJunk(text)

	words := strings.Fields(text)
	if len(words) > 0 {
		if u, ok := units.Parse(words[0]); ok {
			result.Unit = u
			result.UnitFound = true
			words = words[1:]
		}
	}

	result.Name = titleWords(words)
	return result, true
}

// stripLeadingFractionJunk removes stray fraction remnants ("1/2 " left in
// front of the first letter) after the quantity has been consumed.
func stripLeadingFractionJunk(text string) string {
	for _, r := range units.FractionRunes() {
		text = strings.ReplaceAll(text, string(r), "")
	}
	letterAt := -1
	for i, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			letterAt = i
			break
		}
	}
	if letterAt > 0 {
		prefix := text[:letterAt]
		if strings.Trim(prefix, "0123456789 /") == "" {
			text = text[letterAt:]
		}
	}
	return strings.TrimSpace(text)
}

func titleWords(words []string) string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		out = append(out, strings.ToUpper(w[:1])+w[1:])
	}
	return strings.Join(out, " ")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
