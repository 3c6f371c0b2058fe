package intent

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

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

func testLogger() *log.Logger {
	return log.New(os.Stderr, "", 0)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    []string
	}{
		{
			name:    "strips stopwords and punctuation",
			message: "I want an Xbox, please!",
			want:    []string{"xbox"},
		},
		{
			name:    "keeps alphanumerics",
			message: "ps5 controller for my brother",
			want:    []string{"ps5", "controller", "brother"},
		},
		{
			name:    "empty message",
			message: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.message)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.message, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtractParsesFencedJSON(t *testing.T) {
	provider := &fakeProvider{
		response: "```json\n{\"productDetected\": true, \"productName\": \"Xbox Series X\", \"brand\": \"Xbox\", \"category\": \"gaming\", \"keywords\": [\"xbox\", \"console\"], \"intent\": \"buy\"}\n```",
	}
	e := NewExtractor(provider, testLogger())

	q := e.Extract(context.Background(), "I want an xbox")

	if !q.ProductDetected {
		t.Error("expected ProductDetected")
	}
	if q.ProductName != "Xbox Series X" {
		t.Errorf("ProductName = %q", q.ProductName)
	}
	if q.Brand != "Xbox" {
		t.Errorf("Brand = %q", q.Brand)
	}
	if q.Intent != IntentBuy {
		t.Errorf("Intent = %q", q.Intent)
	}
}

func TestExtractFallsBackOnProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection refused")}
	e := NewExtractor(provider, testLogger())

	q := e.Extract(context.Background(), "I want an xbox")

	if !q.ProductDetected {
		t.Error("heuristic should detect xbox as a product")
	}
	if q.Brand != "Xbox" {
		t.Errorf("Brand = %q, want Xbox", q.Brand)
	}
	if q.Category != "gaming" {
		t.Errorf("Category = %q, want gaming", q.Category)
	}
	if q.Intent != IntentBuy {
		t.Errorf("Intent = %q, want buy", q.Intent)
	}
}

func TestExtractFallsBackOnGarbageResponse(t *testing.T) {
	provider := &fakeProvider{response: "sorry, I can't help with that"}
	e := NewExtractor(provider, testLogger())

	q := e.Extract(context.Background(), "recommend something cool")

	if q.ProductDetected {
		t.Error("browsing message should not detect a product")
	}
	if q.Intent != IntentBrowse {
		t.Errorf("Intent = %q, want browse", q.Intent)
	}
}

func TestNormalizeBackfillsBrandFromTable(t *testing.T) {
	// Model returns empty brand but the message names one.
	provider := &fakeProvider{
		response: `{"productDetected": true, "productName": "sneakers", "brand": "", "category": "", "keywords": ["sneakers"], "intent": "buy"}`,
	}
	e := NewExtractor(provider, testLogger())

	q := e.Extract(context.Background(), "do you have nike sneakers")

	if q.Brand != "Nike" {
		t.Errorf("Brand = %q, want Nike", q.Brand)
	}
	if q.Category != "sports" {
		t.Errorf("Category = %q, want sports", q.Category)
	}
}
