package retrieval

import "shopchat-be/pkg/discovery/intent"

// synonymTable expands generic search terms. Brand tokens are deliberately
// absent: a brand must never expand into a rival brand's terms.
var synonymTable = map[string][]string{
	"gaming":     {"console", "game"},
	"console":    {"gaming"},
	"shoes":      {"sneakers", "trainers"},
	"sneakers":   {"shoes"},
	"laptop":     {"notebook", "computer"},
	"phone":      {"smartphone"},
	"headphones": {"earbuds", "headset"},
	"backpack":   {"bag", "rucksack"},
	"hoodie":     {"sweatshirt"},
	"makeup":     {"cosmetics"},
	"bike":       {"bicycle"},
}

// expandKeywords widens a generic token set with fixed synonyms. Tokens that
// are recognized brands are passed through untouched.
func expandKeywords(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	var out []string

	add := func(t string) {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}

	for _, token := range tokens {
		add(token)
		if _, isBrand := intent.LookupBrand(token); isBrand {
			continue
		}
		for _, syn := range synonymTable[token] {
			add(syn)
		}
	}
	return out
}
