package importer

import (
	"encoding/json"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"mealplanner/domain"
)

var yieldDigitsRe = regexp.MustCompile(`\d+`)

// Extract scans an HTML document for schema.org Recipe data embedded in
// ld+json script tags. The first Recipe node wins; documents without one
// yield domain.ErrNoRecipeData.
func Extract(r io.Reader) (domain.ImportedRecipe, error) {
	tokenizer := html.NewTokenizer(r)

	var inLDScript bool
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return domain.ImportedRecipe{}, domain.ErrNoRecipeData
		case html.StartTagToken:
			token := tokenizer.Token()
			inLDScript = token.Data == "script" && isLDJSON(token)
		case html.TextToken:
			if !inLDScript {
				continue
			}
			if node, ok := findRecipeNode(tokenizer.Token().Data); ok {
				return buildRecipe(node), nil
			}
		case html.EndTagToken:
			inLDScript = false
		}
	}
}

func isLDJSON(token html.Token) bool {
	for _, attr := range token.Attr {
		if attr.Key == "type" && strings.EqualFold(strings.TrimSpace(attr.Val), "application/ld+json") {
			return true
		}
	}
	return false
}

// findRecipeNode parses one script payload and hunts for an object whose
// @type is (or includes) Recipe. Payloads come as a single object, a
// top-level array, or an object wrapping a @graph array.
func findRecipeNode(payload string) (map[string]interface{}, bool) {
	var data interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(payload)), &data); err != nil {
		return nil, false
	}
	return scanForRecipe(data)
}

func scanForRecipe(data interface{}) (map[string]interface{}, bool) {
	switch v := data.(type) {
	case map[string]interface{}:
		if isRecipeType(v["@type"]) {
			return v, true
		}
		if graph, ok := v["@graph"]; ok {
			return scanForRecipe(graph)
		}
	case []interface{}:
		for _, item := range v {
			if node, ok := scanForRecipe(item); ok {
				return node, true
			}
		}
	}
	return nil, false
}

func isRecipeType(typeField interface{}) bool {
	switch t := typeField.(type) {
	case string:
		return strings.EqualFold(t, "Recipe")
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.EqualFold(s, "Recipe") {
				return true
			}
		}
	}
	return false
}

func buildRecipe(node map[string]interface{}) domain.ImportedRecipe {
	return domain.ImportedRecipe{
		Name:            stringField(node["name"]),
		IngredientLines: stringList(node["recipeIngredient"]),
		Instructions:    extractInstructions(node["recipeInstructions"]),
		Servings:        extractYield(node["recipeYield"]),
		ImageURL:        extractImage(node["image"]),
	}
}

func stringField(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func stringList(v interface{}) []string {
	var out []string
	switch items := v.(type) {
	case []interface{}:
		for _, item := range items {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case string:
		if strings.TrimSpace(items) != "" {
			out = append(out, strings.TrimSpace(items))
		}
	}
	return out
}

// extractInstructions flattens the recipeInstructions shapes seen in the
// wild: plain text, a list of strings, HowToStep objects, and HowToSection
// wrappers with nested itemListElement steps.
func extractInstructions(v interface{}) string {
	var steps []string
	collectSteps(v, &steps)
	return strings.Join(steps, "\n")
}

func collectSteps(v interface{}, steps *[]string) {
	switch node := v.(type) {
	case string:
		if trimmed := strings.TrimSpace(node); trimmed != "" {
			*steps = append(*steps, trimmed)
		}
	case []interface{}:
		for _, item := range node {
			collectSteps(item, steps)
		}
	case map[string]interface{}:
		if text := stringField(node["text"]); text != "" {
			*steps = append(*steps, text)
			return
		}
		if nested, ok := node["itemListElement"]; ok {
			collectSteps(nested, steps)
		}
	}
}

func extractYield(v interface{}) int {
	switch y := v.(type) {
	case float64:
		return int(y)
	case string:
		if match := yieldDigitsRe.FindString(y); match != "" {
			n, _ := strconv.Atoi(match)
			return n
		}
	case []interface{}:
		for _, item := range y {
			if n := extractYield(item); n > 0 {
				return n
			}
		}
	}
	return 0
}

func extractImage(v interface{}) string {
	switch img := v.(type) {
	case string:
		return img
	case []interface{}:
		if len(img) > 0 {
			return extractImage(img[0])
		}
	case map[string]interface{}:
		return stringField(img["url"])
	}
	return ""
}
