// FILE: pkg/segmentation/classifier.go
// PURPOSE: Classify a product into demographic segments via the LLM

package segmentation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"shopchat-be/internal/constant"
	"shopchat-be/internal/entity"
	"shopchat-be/pkg/llm"
)

// Classification is the validated output of a segmentation run. Every
// field is guaranteed canonical: callers never re-validate.
type Classification struct {
	AgeRanges           []string `json:"ageRanges"`
	Gender              string   `json:"gender"`
	Confidence          float64  `json:"confidence"`
	SuggestedCategories []string `json:"suggestedCategories"`
	Reasoning           string   `json:"reasoning"`
}

// Classifier turns product attributes into a demographic classification.
// It never returns an error: any LLM or parse failure yields the fixed
// low-confidence fallback so the ingestion pipeline keeps moving.
type Classifier struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewClassifier(provider llm.LLMProvider, logger *log.Logger) *Classifier {
	return &Classifier{
		provider: provider,
		logger:   logger,
	}
}

// Classify runs the segmentation prompt for the product and validates the
// response into canonical values.
func (c *Classifier) Classify(ctx context.Context, product *entity.Product) *Classification {
	price := ""
	if product.Price > 0 {
		price = fmt.Sprintf("$%.2f", product.Price)
	}
	prompt := fmt.Sprintf(constant.SegmentationPromptV1,
		product.Title, product.Description, product.Brand, product.Category, price)

	response, err := c.provider.Generate(ctx, prompt,
		llm.WithTemperature(0.2),
		llm.WithMaxTokens(300),
	)
	if err != nil {
		c.logger.Printf("[WARN] Segmentation call failed for %q, using fallback: %v", product.Title, err)
		return Fallback("classifier unavailable")
	}

	classification, err := parseClassification(response)
	if err != nil {
		c.logger.Printf("[WARN] Segmentation parse failed for %q, using fallback: %v", product.Title, err)
		return Fallback("unparseable classifier output")
	}

	validate(classification)
	return classification
}

// Fallback is the classification used when the LLM output is unusable.
func Fallback(reason string) *Classification {
	return &Classification{
		AgeRanges:  []string{constant.AgeRangeFallback},
		Gender:     constant.GenderFallback,
		Confidence: constant.FallbackConfidence,
		Reasoning:  "fallback: " + reason,
	}
}

func parseClassification(response string) (*Classification, error) {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	jsonStart := strings.Index(response, "{")
	jsonEnd := strings.LastIndex(response, "}")
	if jsonStart >= 0 && jsonEnd > jsonStart {
		response = response[jsonStart : jsonEnd+1]
	}

	var classification Classification
	if err := json.Unmarshal([]byte(response), &classification); err != nil {
		return nil, fmt.Errorf("unmarshal classification: %w", err)
	}
	return &classification, nil
}

// validate forces every field into the canonical vocabulary in place.
func validate(c *Classification) {
	var ranges []string
	for _, r := range c.AgeRanges {
		r = strings.ToUpper(strings.TrimSpace(r))
		if contains(constant.AgeRanges, r) && !contains(ranges, r) {
			ranges = append(ranges, r)
		}
	}
	if len(ranges) == 0 {
		ranges = []string{constant.AgeRangeFallback}
	}
	c.AgeRanges = ranges

	gender := strings.ToUpper(strings.TrimSpace(c.Gender))
	if !contains(constant.Genders, gender) {
		gender = constant.GenderFallback
	}
	c.Gender = gender

	if c.Confidence < 0 {
		c.Confidence = 0
	}
	if c.Confidence > 1 {
		c.Confidence = 1
	}

	var categories []string
	for _, cat := range c.SuggestedCategories {
		cat = strings.ToLower(strings.TrimSpace(cat))
		if contains(constant.SegmentCategoryVocabulary, cat) && !contains(categories, cat) {
			categories = append(categories, cat)
		}
	}
	c.SuggestedCategories = categories
}

func contains(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}
