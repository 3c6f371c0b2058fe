package relevance

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"shopchat-be/pkg/discovery/intent"
	"shopchat-be/pkg/llm"
	"shopchat-be/pkg/store"
)

type fakeProvider struct {
	answers map[string]string // keyed by candidate title substring
	err     error
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return "", f.err
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	for needle, answer := range f.answers {
		if strings.Contains(strings.ToLower(prompt), strings.ToLower(needle)) {
			return answer, nil
		}
	}
	return "YES", nil
}

func testLogger() *log.Logger {
	return log.New(os.Stderr, "", 0)
}

func TestPruneByBrandDropsCompetitors(t *testing.T) {
	query := &intent.Query{ProductDetected: true, Brand: "Xbox"}
	candidates := []store.Candidate{
		{Title: "Xbox Series X Console", Brand: "Xbox"},
		{Title: "PlayStation 5", Brand: "Sony"},
		{Title: "Wireless controller for Xbox", Brand: ""},
	}

	got := PruneByBrand(query, candidates)

	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	for _, c := range got {
		if c.Title == "PlayStation 5" {
			t.Error("competitor product survived brand prune")
		}
	}
}

func TestPruneByBrandNoBrandIsNoop(t *testing.T) {
	candidates := []store.Candidate{{Title: "A"}, {Title: "B"}}
	got := PruneByBrand(&intent.Query{}, candidates)
	if len(got) != 2 {
		t.Errorf("got %d candidates, want 2", len(got))
	}
}

func TestApplyDropsNoAnswers(t *testing.T) {
	provider := &fakeProvider{answers: map[string]string{"Baseball": "NO"}}
	f := NewFilter(provider, testLogger())

	query := &intent.Query{ProductDetected: true, ProductName: "sneakers", Keywords: []string{"sneakers"}}
	candidates := []store.Candidate{
		{Title: "Running Sneakers"},
		{Title: "Baseball Bat"},
	}

	got := f.Apply(context.Background(), query, candidates)

	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if got[0].Title != "Running Sneakers" {
		t.Errorf("kept %q, want Running Sneakers", got[0].Title)
	}
}

func TestApplyFailsOpenOnProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("model down")}
	f := NewFilter(provider, testLogger())

	query := &intent.Query{ProductDetected: true, ProductName: "sneakers"}
	candidates := []store.Candidate{{Title: "Running Sneakers"}, {Title: "Baseball Bat"}}

	got := f.Apply(context.Background(), query, candidates)

	if len(got) != 2 {
		t.Errorf("got %d candidates, want 2 (validator failure keeps everything)", len(got))
	}
}

func TestApplySkipsValidationForBrowsing(t *testing.T) {
	provider := &fakeProvider{err: errors.New("should not be called")}
	f := NewFilter(provider, testLogger())

	query := &intent.Query{ProductDetected: false}
	candidates := []store.Candidate{{Title: "A"}, {Title: "B"}}

	got := f.Apply(context.Background(), query, candidates)
	if len(got) != 2 {
		t.Errorf("got %d candidates, want 2", len(got))
	}
}
