package segmentation

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"shopchat-be/internal/constant"
	"shopchat-be/internal/entity"
	"shopchat-be/pkg/llm"
)

type fakeProvider struct {
	response string
	err      error
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func testClassifier(response string, err error) *Classifier {
	return NewClassifier(&fakeProvider{response: response, err: err}, log.New(os.Stderr, "", 0))
}

func TestClassifyParsesValidResponse(t *testing.T) {
	response := "```json\n" + `{
		"ageRanges": ["AGE_13_15", "AGE_16_18"],
		"gender": "UNISEX",
		"confidence": 0.85,
		"suggestedCategories": ["sports", "fashion"],
		"reasoning": "Popular sneaker across teen age groups."
	}` + "\n```"
	c := testClassifier(response, nil)

	product := &entity.Product{Title: "Nike Air Max 270", Brand: "Nike", Category: "shoes", Price: 150}
	got := c.Classify(context.Background(), product)

	if len(got.AgeRanges) != 2 {
		t.Fatalf("AgeRanges = %v", got.AgeRanges)
	}
	if got.Gender != constant.GenderUnisex {
		t.Errorf("Gender = %q", got.Gender)
	}
	if got.Confidence != 0.85 {
		t.Errorf("Confidence = %v", got.Confidence)
	}
	if len(got.SuggestedCategories) != 2 {
		t.Errorf("SuggestedCategories = %v", got.SuggestedCategories)
	}
}

func TestClassifyFallbackOnProviderError(t *testing.T) {
	c := testClassifier("", errors.New("model offline"))

	got := c.Classify(context.Background(), &entity.Product{Title: "Anything"})

	if len(got.AgeRanges) != 1 || got.AgeRanges[0] != constant.AgeRangeFallback {
		t.Errorf("AgeRanges = %v, want [%s]", got.AgeRanges, constant.AgeRangeFallback)
	}
	if got.Gender != constant.GenderFallback {
		t.Errorf("Gender = %q, want %s", got.Gender, constant.GenderFallback)
	}
	if got.Confidence != constant.FallbackConfidence {
		t.Errorf("Confidence = %v, want %v", got.Confidence, constant.FallbackConfidence)
	}
}

func TestClassifyFallbackOnGarbage(t *testing.T) {
	c := testClassifier("I think this product is for teenagers.", nil)

	got := c.Classify(context.Background(), &entity.Product{Title: "Anything"})

	if got.Confidence != constant.FallbackConfidence {
		t.Errorf("Confidence = %v, want fallback", got.Confidence)
	}
}

func TestValidateRejectsUnknownValues(t *testing.T) {
	response := `{
		"ageRanges": ["AGE_13_15", "ADULTS", "AGE_13_15"],
		"gender": "ANY",
		"confidence": 1.7,
		"suggestedCategories": ["gaming", "crypto"],
		"reasoning": "x"
	}`
	c := testClassifier(response, nil)

	got := c.Classify(context.Background(), &entity.Product{Title: "Anything"})

	if len(got.AgeRanges) != 1 || got.AgeRanges[0] != constant.AgeRange13to15 {
		t.Errorf("AgeRanges = %v, want deduped canonical [AGE_13_15]", got.AgeRanges)
	}
	if got.Gender != constant.GenderFallback {
		t.Errorf("Gender = %q, want fallback for unknown value", got.Gender)
	}
	if got.Confidence != 1 {
		t.Errorf("Confidence = %v, want clamped to 1", got.Confidence)
	}
	if len(got.SuggestedCategories) != 1 || got.SuggestedCategories[0] != "gaming" {
		t.Errorf("SuggestedCategories = %v, want [gaming]", got.SuggestedCategories)
	}
}

func TestValidateEmptyAgeRangesGetsFallback(t *testing.T) {
	response := `{"ageRanges": [], "gender": "MALE", "confidence": -0.2}`
	c := testClassifier(response, nil)

	got := c.Classify(context.Background(), &entity.Product{Title: "Anything"})

	if len(got.AgeRanges) != 1 || got.AgeRanges[0] != constant.AgeRangeFallback {
		t.Errorf("AgeRanges = %v", got.AgeRanges)
	}
	if got.Gender != constant.GenderMale {
		t.Errorf("Gender = %q, want MALE preserved", got.Gender)
	}
	if got.Confidence != 0 {
		t.Errorf("Confidence = %v, want clamped to 0", got.Confidence)
	}
}
