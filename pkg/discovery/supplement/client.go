// FILE: pkg/discovery/supplement/client.go
// PURPOSE: Fill thin local result sets with external marketplace listings

package supplement

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"shopchat-be/pkg/cache"
	"shopchat-be/pkg/discovery/intent"
	"shopchat-be/pkg/marketplace"
	"shopchat-be/pkg/store"
)

const (
	// supplementScore is the fixed relevance bonus for external listings:
	// they matched the live marketplace search, so they rank above stale
	// low-score locals but below strong local matches.
	supplementScore = 70

	searchCacheTTL = time.Hour
)

// Client wraps the marketplace provider with a cache-first lookup. All
// provider failures degrade to zero supplemental candidates; the chat
// pipeline proceeds with whatever local results it has.
type Client struct {
	provider marketplace.SearchProvider
	cache    cache.Store
	logger   *log.Logger
	maxItems int
}

func NewClient(provider marketplace.SearchProvider, cacheStore cache.Store, logger *log.Logger, maxItems int) *Client {
	if maxItems <= 0 {
		maxItems = 10
	}
	return &Client{
		provider: provider,
		cache:    cacheStore,
		logger:   logger,
		maxItems: maxItems,
	}
}

// Fetch returns external candidates for the query's search term. Results
// are cached for an hour keyed on the normalized term; an expired entry
// simply misses and triggers a fresh provider call.
func (c *Client) Fetch(ctx context.Context, query *intent.Query) []store.Candidate {
	term := query.SearchTerm()
	if term == "" {
		return nil
	}
	key := cacheKey(term)

	var cached marketplace.SearchResponse
	if found, err := c.cache.Get(ctx, key, &cached); err == nil && found {
		c.logger.Printf("[DEBUG] Marketplace cache hit: %s", key)
		return toCandidates(cached.Products, query)
	}

	resp, err := c.provider.Search(ctx, term, marketplace.SearchOptions{
		Category: query.Category,
		MaxItems: c.maxItems,
	})
	if err != nil {
		switch {
		case errors.Is(err, marketplace.ErrRateLimited):
			c.logger.Printf("[WARN] Marketplace rate limited for %q", term)
		case errors.Is(err, marketplace.ErrTimeout):
			c.logger.Printf("[WARN] Marketplace timeout for %q", term)
		case errors.Is(err, marketplace.ErrUnauthorized):
			c.logger.Printf("[ERROR] Marketplace rejected credentials")
		default:
			c.logger.Printf("[ERROR] Marketplace search failed for %q: %v", term, err)
		}
		return nil
	}

	// The raw response goes into the cache; formatting happens per query so
	// a cache hit still reflects the asking query's brand context.
	if err := c.cache.Set(ctx, key, resp, searchCacheTTL); err != nil {
		c.logger.Printf("[WARN] Failed to cache marketplace results: %v", err)
	}
	return toCandidates(resp.Products, query)
}

// Merge appends supplemental candidates after the locals and truncates the
// combined list to limit. Locals always win the head of the list.
func Merge(locals, supplemental []store.Candidate, limit int) []store.Candidate {
	merged := make([]store.Candidate, 0, len(locals)+len(supplemental))
	merged = append(merged, locals...)
	merged = append(merged, supplemental...)
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

func toCandidates(listings []marketplace.Listing, query *intent.Query) []store.Candidate {
	candidates := make([]store.Candidate, 0, len(listings))
	for _, l := range listings {
		reason := "Found on the marketplace"
		if query.Brand != "" {
			reason = "Fresh " + query.Brand + " result from the marketplace"
		}
		candidates = append(candidates, store.Candidate{
			ID:             "ext-" + l.Asin,
			Title:          l.Title,
			Brand:          query.Brand,
			Price:          l.PriceValue,
			PriceFormatted: l.Price,
			ImageURL:       l.Image,
			ProductURL:     l.Link,
			Rating:         l.Rating,
			RatingsTotal:   l.RatingsTotal,
			MatchScore:     supplementScore,
			Reason:         reason,
			Provenance:     store.ProvenanceMarketplace,
		})
	}
	return candidates
}

func cacheKey(term string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(term)), " ")
	return "marketplace:" + normalized
}
