package intent

import "strings"

// Brand is a recognized brand token with its display form and the broad
// category its products fall into.
type Brand struct {
	Display  string
	Category string
}

// knownBrands maps lowercase brand tokens to brand info. The table is
// deliberately small; anything outside it is treated as a generic keyword.
var knownBrands = map[string]Brand{
	"xbox":        {Display: "Xbox", Category: "gaming"},
	"playstation": {Display: "PlayStation", Category: "gaming"},
	"nintendo":    {Display: "Nintendo", Category: "gaming"},
	"nike":        {Display: "Nike", Category: "sports"},
	"adidas":      {Display: "Adidas", Category: "sports"},
	"puma":        {Display: "Puma", Category: "sports"},
	"apple":       {Display: "Apple", Category: "electronics"},
	"samsung":     {Display: "Samsung", Category: "electronics"},
	"sony":        {Display: "Sony", Category: "electronics"},
	"lego":        {Display: "LEGO", Category: "toys"},
	"barbie":      {Display: "Barbie", Category: "toys"},
	"vans":        {Display: "Vans", Category: "fashion"},
	"converse":    {Display: "Converse", Category: "fashion"},
	"levis":       {Display: "Levi's", Category: "fashion"},
	"sephora":     {Display: "Sephora", Category: "beauty"},
}

// categoryTerms maps generic product terms to their broad category. Used by
// the heuristic fallback when the LLM call fails.
var categoryTerms = map[string]string{
	"console":    "gaming",
	"game":       "gaming",
	"games":      "gaming",
	"gaming":     "gaming",
	"controller": "gaming",
	"headset":    "gaming",
	"laptop":     "electronics",
	"phone":      "electronics",
	"tablet":     "electronics",
	"headphones": "electronics",
	"earbuds":    "electronics",
	"camera":     "electronics",
	"shoes":      "fashion",
	"sneakers":   "fashion",
	"hoodie":     "fashion",
	"shirt":      "fashion",
	"jeans":      "fashion",
	"jacket":     "fashion",
	"backpack":   "school",
	"notebook":   "school",
	"skateboard": "sports",
	"bike":       "sports",
	"ball":       "sports",
	"makeup":     "beauty",
	"perfume":    "beauty",
	"book":       "books",
	"books":      "books",
	"doll":       "toys",
	"puzzle":     "toys",
	"guitar":     "music",
	"speaker":    "music",
}

// LookupBrand resolves a single token against the brand table.
func LookupBrand(token string) (Brand, bool) {
	b, ok := knownBrands[strings.ToLower(token)]
	return b, ok
}

// BrandTokens returns the subset of tokens that are recognized brands,
// preserving order.
func BrandTokens(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		if _, ok := LookupBrand(t); ok {
			out = append(out, t)
		}
	}
	return out
}
