package supplement

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"shopchat-be/pkg/cache"
	"shopchat-be/pkg/discovery/intent"
	"shopchat-be/pkg/marketplace"
	"shopchat-be/pkg/store"
)

type fakeMarketplace struct {
	response *marketplace.SearchResponse
	err      error
	calls    int
}

func (f *fakeMarketplace) Search(ctx context.Context, term string, opts marketplace.SearchOptions) (*marketplace.SearchResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func testLogger() *log.Logger {
	return log.New(os.Stderr, "", 0)
}

func TestFetchMapsListingsToCandidates(t *testing.T) {
	provider := &fakeMarketplace{
		response: &marketplace.SearchResponse{
			Products: []marketplace.Listing{
				{Title: "Xbox Series X", Asin: "B08H75RTZ8", Price: "$499.99", PriceValue: 499.99, Rating: 4.8, RatingsTotal: 12000},
			},
		},
	}
	c := NewClient(provider, cache.NewMemoryStore(), testLogger(), 10)

	query := &intent.Query{ProductDetected: true, ProductName: "Xbox Series X", Brand: "Xbox"}
	got := c.Fetch(context.Background(), query)

	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	cand := got[0]
	if cand.Provenance != store.ProvenanceMarketplace {
		t.Errorf("Provenance = %q, want marketplace", cand.Provenance)
	}
	if cand.ID != "ext-B08H75RTZ8" {
		t.Errorf("ID = %q", cand.ID)
	}
	if cand.PriceFormatted != "$499.99" {
		t.Errorf("PriceFormatted = %q", cand.PriceFormatted)
	}
}

func TestFetchCachesByNormalizedTerm(t *testing.T) {
	provider := &fakeMarketplace{
		response: &marketplace.SearchResponse{
			Products: []marketplace.Listing{{Title: "Thing", Asin: "A1"}},
		},
	}
	c := NewClient(provider, cache.NewMemoryStore(), testLogger(), 10)

	q1 := &intent.Query{ProductName: "Xbox Console"}
	q2 := &intent.Query{ProductName: "  xbox   console "}

	c.Fetch(context.Background(), q1)
	c.Fetch(context.Background(), q2)

	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1 (second term normalizes to the same key)", provider.calls)
	}
}

func TestFetchFormatsCachedResponsePerQuery(t *testing.T) {
	provider := &fakeMarketplace{
		response: &marketplace.SearchResponse{
			Products: []marketplace.Listing{{Title: "Switch OLED", Asin: "A1"}},
		},
	}
	c := NewClient(provider, cache.NewMemoryStore(), testLogger(), 10)

	branded := c.Fetch(context.Background(), &intent.Query{ProductName: "switch", Brand: "Nintendo"})
	plain := c.Fetch(context.Background(), &intent.Query{ProductName: "switch"})

	if provider.calls != 1 {
		t.Fatalf("provider called %d times, want 1", provider.calls)
	}
	if branded[0].Reason != "Fresh Nintendo result from the marketplace" {
		t.Errorf("branded Reason = %q", branded[0].Reason)
	}
	// The cache holds the raw response, so the hit is formatted for the
	// second query, not the one that populated the cache.
	if plain[0].Reason != "Found on the marketplace" {
		t.Errorf("cached-hit Reason = %q", plain[0].Reason)
	}
	if plain[0].Brand != "" {
		t.Errorf("cached-hit Brand = %q, want empty", plain[0].Brand)
	}
}

func TestFetchDegradesToEmptyOnError(t *testing.T) {
	for _, err := range []error{
		marketplace.ErrTimeout,
		marketplace.ErrRateLimited,
		marketplace.ErrUnauthorized,
		fmt.Errorf("wrapped: %w", marketplace.ErrTimeout),
	} {
		provider := &fakeMarketplace{err: err}
		c := NewClient(provider, cache.NewMemoryStore(), testLogger(), 10)

		got := c.Fetch(context.Background(), &intent.Query{ProductName: "anything"})
		if len(got) != 0 {
			t.Errorf("error %v: got %d candidates, want 0", err, len(got))
		}
	}
}

func TestFetchEmptyTermIsNoop(t *testing.T) {
	provider := &fakeMarketplace{}
	c := NewClient(provider, cache.NewMemoryStore(), testLogger(), 10)

	got := c.Fetch(context.Background(), &intent.Query{})
	if got != nil {
		t.Errorf("got %v, want nil", got)
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times, want 0", provider.calls)
	}
}

func TestMergeCapsAtLimit(t *testing.T) {
	locals := []store.Candidate{{ID: "l1"}, {ID: "l2"}}
	external := []store.Candidate{{ID: "e1"}, {ID: "e2"}, {ID: "e3"}}

	got := Merge(locals, external, 4)

	if len(got) != 4 {
		t.Fatalf("got %d candidates, want 4", len(got))
	}
	if got[0].ID != "l1" || got[1].ID != "l2" {
		t.Error("locals must lead the merged list")
	}
}
