package retrieval

import (
	"strconv"
	"strings"

	"shopchat-be/internal/constant"
)

// AgeRangeForAge maps a free-text age hint ("14", "14 years old") to a
// canonical age range. Returns "" when the hint is absent or out of band.
func AgeRangeForAge(age string) string {
	for _, field := range strings.Fields(age) {
		n, err := strconv.Atoi(field)
		if err != nil {
			continue
		}
		switch {
		case n >= 10 && n <= 12:
			return constant.AgeRange10to12
		case n >= 13 && n <= 15:
			return constant.AgeRange13to15
		case n >= 16 && n <= 18:
			return constant.AgeRange16to18
		case n >= 19 && n <= 21:
			return constant.AgeRange19to21
		}
	}
	return ""
}

// NormalizeGender maps a free-text gender hint to a canonical value.
// Unknown hints map to UNISEX so browsing still works.
func NormalizeGender(gender string) string {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "male", "m", "boy", "man", "guy":
		return constant.GenderMale
	case "female", "f", "girl", "woman":
		return constant.GenderFemale
	default:
		return constant.GenderUnisex
	}
}
