// FILE: pkg/discovery/facet/generator.go
// PURPOSE: Derive follow-up refinement prompts from a result set

package facet

import (
	"fmt"
	"sort"
	"strings"

	"shopchat-be/pkg/store"
)

// MaxFacets bounds the prompts shown under a result set.
const MaxFacets = 4

// themeVocabulary are the themes a result set can be refined by. Matching
// is plain substring against title and description.
var themeVocabulary = []string{
	"wireless", "portable", "waterproof", "rechargeable",
	"limited edition", "eco", "vintage", "pro",
}

// Generate derives refinement prompts from the candidates. It is pure:
// same candidates in, same prompts out. Always ends with the favorites
// prompt and never exceeds MaxFacets.
func Generate(candidates []store.Candidate) []string {
	var facets []string

	if f, ok := priceSplitFacet(candidates); ok {
		facets = append(facets, f...)
	}
	if f, ok := budgetFacet(candidates); ok {
		facets = append(facets, f)
	}
	if f, ok := themeFacet(candidates); ok {
		facets = append(facets, f)
	}
	if f, ok := brandFacet(candidates); ok {
		facets = append(facets, f)
	}

	facets = append(facets, "Save your favorites")
	if len(facets) > MaxFacets {
		facets = facets[:MaxFacets]
	}
	return facets
}

// priceSplitFacet offers a split around the median price when both sides
// of the $50 line are populated.
func priceSplitFacet(candidates []store.Candidate) ([]string, bool) {
	var prices []float64
	var under, over int
	for _, c := range candidates {
		if c.Price <= 0 {
			continue
		}
		prices = append(prices, c.Price)
		if c.Price < 50 {
			under++
		} else {
			over++
		}
	}
	if under == 0 || over == 0 {
		return nil, false
	}
	return []string{fmt.Sprintf("Show me options under $%.0f", median(prices))}, true
}

func median(prices []float64) float64 {
	sort.Float64s(prices)
	mid := len(prices) / 2
	if len(prices)%2 == 0 {
		return (prices[mid-1] + prices[mid]) / 2
	}
	return prices[mid]
}

// budgetFacet fires when most of the set is affordable.
func budgetFacet(candidates []store.Candidate) (string, bool) {
	var under int
	for _, c := range candidates {
		if c.Price > 0 && c.Price < 100 {
			under++
		}
	}
	if under <= 3 {
		return "", false
	}
	return "Show budget-friendly picks under $100", true
}

// themeFacet proposes the most frequent vocabulary theme appearing in the
// candidates' text.
func themeFacet(candidates []store.Candidate) (string, bool) {
	counts := make(map[string]int)
	for _, c := range candidates {
		text := strings.ToLower(c.Title + " " + c.Description)
		for _, theme := range themeVocabulary {
			if strings.Contains(text, theme) {
				counts[theme]++
			}
		}
	}

	best, bestCount := "", 0
	for _, theme := range themeVocabulary { // fixed order keeps ties deterministic
		if counts[theme] > bestCount {
			best, bestCount = theme, counts[theme]
		}
	}
	if bestCount == 0 {
		return "", false
	}
	return fmt.Sprintf("More %s options", best), true
}

// brandFacet proposes narrowing to the most common brand when the set
// spans more than one.
func brandFacet(candidates []store.Candidate) (string, bool) {
	counts := make(map[string]int)
	for _, c := range candidates {
		if c.Brand != "" {
			counts[c.Brand]++
		}
	}
	if len(counts) <= 1 {
		return "", false
	}

	brands := make([]string, 0, len(counts))
	for b := range counts {
		brands = append(brands, b)
	}
	sort.Slice(brands, func(i, j int) bool {
		if counts[brands[i]] != counts[brands[j]] {
			return counts[brands[i]] > counts[brands[j]]
		}
		return brands[i] < brands[j]
	})
	return fmt.Sprintf("Only show %s products", brands[0]), true
}
