package worker

import "strings"

// categoryPatterns maps catalog categories to the keywords that imply
// them. CATEGORIZE never calls the LLM; matching is pure pattern
// membership.
var categoryPatterns = map[string][]string{
	"gaming":      {"console", "game", "gaming", "controller", "playstation", "xbox", "nintendo"},
	"electronics": {"laptop", "phone", "tablet", "headphones", "earbuds", "speaker", "camera", "charger"},
	"fashion":     {"hoodie", "shirt", "jeans", "jacket", "dress", "sneakers", "shoes"},
	"sports":      {"ball", "fitness", "workout", "running", "yoga", "skateboard", "bike"},
	"beauty":      {"makeup", "skincare", "lipstick", "mascara", "cosmetics"},
	"toys":        {"lego", "doll", "puzzle", "plush", "figure"},
	"books":       {"book", "novel", "comic", "manga"},
	"music":       {"guitar", "keyboard", "vinyl", "microphone"},
	"outdoor":     {"tent", "camping", "hiking", "backpack"},
	"school":      {"notebook", "pencil", "calculator", "binder"},
	"home":        {"lamp", "poster", "pillow", "desk"},
}

// matchCategories returns every category whose pattern set intersects the
// product text. The result order is unspecified.
func matchCategories(title, description string) []string {
	text := strings.ToLower(title + " " + description)

	var matched []string
	for category, patterns := range categoryPatterns {
		for _, p := range patterns {
			if strings.Contains(text, p) {
				matched = append(matched, category)
				break
			}
		}
	}
	return matched
}
