package intent

import "strings"

// Browsing-query detection as a declarative rule table: the first matching
// rule wins, later rules are not consulted. This replaces a pile of
// overlapping string checks so precedence is auditable.

type browseRule struct {
	patterns []string // lowercase substrings; any match fires the rule
	browsing bool
}

var browseRules = []browseRule{
	// Explicit product requests beat everything.
	{patterns: []string{"do you have", "i want a", "i want an", "where can i buy"}, browsing: false},
	// Open-ended discovery phrasing.
	{patterns: []string{"recommend", "suggest", "what should", "any ideas", "gift for", "present for"}, browsing: true},
	{patterns: []string{"show me", "browse", "what's popular", "whats popular", "trending", "something cool", "surprise me"}, browsing: true},
	{patterns: []string{"help me find", "not sure what"}, browsing: true},
}

// IsBrowsing reports whether the message reads like open-ended browsing
// rather than a specific product request. The extracted query's
// ProductDetected flag overrides this at the orchestration layer.
func IsBrowsing(message string) bool {
	lower := strings.ToLower(message)
	for _, rule := range browseRules {
		for _, p := range rule.patterns {
			if strings.Contains(lower, p) {
				return rule.browsing
			}
		}
	}
	return false
}
