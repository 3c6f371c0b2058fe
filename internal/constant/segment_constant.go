package constant

// Canonical age ranges. AgeRangeFallback is used whenever the classifier
// returns an empty or invalid set.
const (
	AgeRange10to12 = "AGE_10_12"
	AgeRange13to15 = "AGE_13_15"
	AgeRange16to18 = "AGE_16_18"
	AgeRange19to21 = "AGE_19_21"

	AgeRangeFallback = AgeRange13to15
)

var AgeRanges = []string{
	AgeRange10to12,
	AgeRange13to15,
	AgeRange16to18,
	AgeRange19to21,
}

// Canonical genders. GenderFallback is used when the classifier returns
// anything else.
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
	GenderUnisex = "UNISEX"

	GenderFallback = GenderUnisex
)

var Genders = []string{GenderMale, GenderFemale, GenderUnisex}

// SegmentCategoryVocabulary is the closed set of categories the classifier
// may suggest. Anything outside it is filtered out.
var SegmentCategoryVocabulary = []string{
	"gaming",
	"electronics",
	"fashion",
	"sports",
	"beauty",
	"toys",
	"books",
	"music",
	"outdoor",
	"school",
	"accessories",
	"home",
}

// Fallback classification confidence when the LLM output cannot be used.
const FallbackConfidence = 0.3
