package retrieval

import (
	"context"
	"log"
	"os"
	"testing"

	"shopchat-be/internal/entity"
	"shopchat-be/pkg/cache"
	"shopchat-be/pkg/discovery/intent"
	"shopchat-be/pkg/store"

	"github.com/google/uuid"
)

type fakeFinder struct {
	keywordResults []*entity.Product
	keywordTokens  []string
	keywordAll     bool

	segmentResults     []*entity.Product
	demographicResults []*entity.Product
	popularResults     []*entity.Product
	recentResults      []*entity.Product

	calls []string
}

func (f *fakeFinder) SearchByKeywords(ctx context.Context, tokens []string, requireAll bool, limit int) ([]*entity.Product, error) {
	f.calls = append(f.calls, "keywords")
	f.keywordTokens = tokens
	f.keywordAll = requireAll
	return f.keywordResults, nil
}

func (f *fakeFinder) FindBySegmentProfile(ctx context.Context, ageRange, gender string, minConfidence float64, includeUnisex bool, limit int) ([]*entity.Product, error) {
	if minConfidence > 0 {
		f.calls = append(f.calls, "segment")
		return f.segmentResults, nil
	}
	f.calls = append(f.calls, "demographic")
	return f.demographicResults, nil
}

func (f *fakeFinder) FindPopular(ctx context.Context, minRating float64, minRatings, limit int) ([]*entity.Product, error) {
	f.calls = append(f.calls, "popular")
	return f.popularResults, nil
}

func (f *fakeFinder) FindRecent(ctx context.Context, limit int) ([]*entity.Product, error) {
	f.calls = append(f.calls, "recent")
	return f.recentResults, nil
}

type fakeTagger struct{}

func (fakeTagger) TopSegmentNameByProduct(ctx context.Context, productIds []uuid.UUID) (map[uuid.UUID]string, error) {
	return map[uuid.UUID]string{}, nil
}

func newTestEngine(finder *fakeFinder) *Engine {
	return NewEngine(finder, fakeTagger{}, cache.NewMemoryStore(), log.New(os.Stderr, "", 0), DefaultConfig())
}

func products(titles ...string) []*entity.Product {
	out := make([]*entity.Product, 0, len(titles))
	for _, title := range titles {
		out = append(out, &entity.Product{Id: uuid.New(), Title: title, Rating: 4.2, RatingsTotal: 120})
	}
	return out
}

func TestSpecificSearchUsesBrandAND(t *testing.T) {
	finder := &fakeFinder{keywordResults: products("Xbox Series X")}
	e := newTestEngine(finder)

	query := &intent.Query{
		ProductDetected: true,
		Brand:           "Xbox",
		Keywords:        []string{"xbox", "console"},
	}
	session := &store.Session{ID: "s1"}

	got, err := e.Execute(context.Background(), session, query, "I want an xbox")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if !finder.keywordAll {
		t.Error("brand search must require every brand token (AND)")
	}
	if len(finder.keywordTokens) != 1 || finder.keywordTokens[0] != "xbox" {
		t.Errorf("brand tokens = %v, want [xbox]", finder.keywordTokens)
	}
	if got[0].Provenance != store.ProvenanceLocal {
		t.Errorf("Provenance = %q, want local", got[0].Provenance)
	}
}

func TestSpecificSearchEmptyResultIsValid(t *testing.T) {
	finder := &fakeFinder{}
	e := newTestEngine(finder)

	query := &intent.Query{ProductDetected: true, Keywords: []string{"hoverboard"}}
	got, err := e.Execute(context.Background(), &store.Session{ID: "s1"}, query, "do you have a hoverboard")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %d candidates, want 0", len(got))
	}
}

func TestBrowseCascadeStopsAtFirstSufficientStrategy(t *testing.T) {
	finder := &fakeFinder{
		segmentResults: products("A", "B", "C"),
		popularResults: products("X"),
	}
	e := newTestEngine(finder)

	query := &intent.Query{}
	got, err := e.Execute(context.Background(), &store.Session{ID: "s1", Age: "14"}, query, "recommend something")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d candidates, want 3", len(got))
	}
	if len(finder.calls) != 1 || finder.calls[0] != "segment" {
		t.Errorf("calls = %v, want [segment]", finder.calls)
	}
}

func TestBrowseCascadeFallsThroughToRecent(t *testing.T) {
	finder := &fakeFinder{
		recentResults: products("New Thing"),
	}
	e := newTestEngine(finder)

	got, err := e.Execute(context.Background(), &store.Session{ID: "s1"}, &intent.Query{}, "show me stuff")
	if err != nil {
		t.Fatal(err)
	}
	// The last strategy returns what it has even below the threshold.
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	want := []string{"segment", "demographic", "popular", "recent"}
	if len(finder.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", finder.calls, want)
	}
}

func TestExecuteCachesResults(t *testing.T) {
	finder := &fakeFinder{segmentResults: products("A", "B", "C")}
	e := newTestEngine(finder)
	session := &store.Session{ID: "s1", Age: "14"}

	if _, err := e.Execute(context.Background(), session, &intent.Query{}, "recommend something"); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Execute(context.Background(), session, &intent.Query{}, "recommend something"); err != nil {
		t.Fatal(err)
	}

	if len(finder.calls) != 1 {
		t.Errorf("finder called %d times, want 1 (second hit served from cache)", len(finder.calls))
	}
}

func TestEnrichDropsUntitledProducts(t *testing.T) {
	untitled := &entity.Product{Id: uuid.New(), Title: ""}
	finder := &fakeFinder{keywordResults: append(products("Real"), untitled)}
	e := newTestEngine(finder)

	got, err := e.Execute(context.Background(), &store.Session{ID: "s1"}, &intent.Query{ProductDetected: true, Keywords: []string{"real"}}, "real")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
}
