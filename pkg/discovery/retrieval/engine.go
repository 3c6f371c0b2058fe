package retrieval

import (
	"context"
	"crypto/md5"
	"fmt"
	"log"
	"math"
	"time"

	"shopchat-be/internal/constant"
	"shopchat-be/internal/entity"
	"shopchat-be/pkg/cache"
	"shopchat-be/pkg/discovery/intent"
	"shopchat-be/pkg/store"

	"github.com/google/uuid"
)

// ProductFinder is the narrow view of the catalog store the engine needs.
type ProductFinder interface {
	SearchByKeywords(ctx context.Context, tokens []string, requireAll bool, limit int) ([]*entity.Product, error)
	FindBySegmentProfile(ctx context.Context, ageRange, gender string, minConfidence float64, includeUnisex bool, limit int) ([]*entity.Product, error)
	FindPopular(ctx context.Context, minRating float64, minRatings, limit int) ([]*entity.Product, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.Product, error)
}

// SegmentTagger resolves each product's primary segment name.
type SegmentTagger interface {
	TopSegmentNameByProduct(ctx context.Context, productIds []uuid.UUID) (map[uuid.UUID]string, error)
}

// Config encapsulates retrieval parameters
type Config struct {
	Limit                int
	MinStrategyResults   int
	SegmentMinConfidence float64
	PopularMinRating     float64
	PopularMinRatings    int
	CacheTTL             time.Duration
}

// DefaultConfig returns default retrieval configuration
func DefaultConfig() Config {
	return Config{
		Limit:                8,
		MinStrategyResults:   3,
		SegmentMinConfidence: 0.7,
		PopularMinRating:     4.0,
		PopularMinRatings:    100,
		CacheTTL:             5 * time.Minute,
	}
}

// Retrieval strategies, in browsing priority order.
const (
	strategyBrand       = "brand"
	strategyKeyword     = "keyword"
	strategySegment     = "segment"
	strategyDemographic = "demographic"
	strategyPopular     = "popular"
	strategyRecent      = "recent"
)

var strategyBonus = map[string]float64{
	strategyBrand:       25,
	strategyKeyword:     15,
	strategySegment:     20,
	strategyDemographic: 15,
	strategyPopular:     10,
	strategyRecent:      5,
}

// Engine produces ranked local candidates from the catalog store.
type Engine struct {
	products ProductFinder
	segments SegmentTagger
	cache    cache.Store
	logger   *log.Logger
	config   Config
}

func NewEngine(products ProductFinder, segments SegmentTagger, cacheStore cache.Store, logger *log.Logger, config Config) *Engine {
	return &Engine{
		products: products,
		segments: segments,
		cache:    cacheStore,
		logger:   logger,
		config:   config,
	}
}

// Execute runs the retrieval mode implied by the extracted query and caches
// the outcome per (message, age, gender, segment) to absorb session bursts.
func (e *Engine) Execute(ctx context.Context, session *store.Session, query *intent.Query, message string) ([]store.Candidate, error) {
	key := e.cacheKey(session, message)

	var cached []store.Candidate
	if found, err := e.cache.Get(ctx, key, &cached); err == nil && found {
		e.logger.Printf("[DEBUG] Retrieval cache hit: %s", key)
		return cached, nil
	}

	var candidates []store.Candidate
	var err error
	if query.ProductDetected {
		candidates, err = e.searchSpecific(ctx, query)
	} else {
		candidates, err = e.browse(ctx, session)
	}
	if err != nil {
		return nil, err
	}

	if err := e.cache.Set(ctx, key, candidates, e.config.CacheTTL); err != nil {
		e.logger.Printf("[WARN] Failed to cache retrieval results: %v", err)
	}
	return candidates, nil
}

// searchSpecific handles specific-product mode: keyword search only. When
// the keyword set carries recognized brand tokens, every brand token must
// match (AND) so one brand's search never surfaces a competitor. An empty
// result is a valid outcome that triggers external supplementation.
func (e *Engine) searchSpecific(ctx context.Context, query *intent.Query) ([]store.Candidate, error) {
	tokens := query.Keywords
	brandTokens := intent.BrandTokens(tokens)

	var products []*entity.Product
	var err error
	strategy := strategyKeyword

	if len(brandTokens) > 0 {
		strategy = strategyBrand
		products, err = e.products.SearchByKeywords(ctx, brandTokens, true, e.config.Limit)
	} else {
		products, err = e.products.SearchByKeywords(ctx, expandKeywords(tokens), false, e.config.Limit)
	}
	if err != nil {
		// Store failure degrades to "no local results"; the caller falls
		// back to external supplementation.
		e.logger.Printf("[ERROR] Keyword search failed: %v", err)
		return []store.Candidate{}, nil
	}

	e.logger.Printf("[DEBUG] Specific search (%s): %d products", strategy, len(products))
	return e.enrich(ctx, products, strategy, query)
}

// browse handles browsing mode: strategies are tried in fixed priority
// order, stopping at the first that yields enough results.
func (e *Engine) browse(ctx context.Context, session *store.Session) ([]store.Candidate, error) {
	ageRange := AgeRangeForAge(session.Age)
	if ageRange == "" {
		ageRange = constant.AgeRangeFallback
	}
	gender := NormalizeGender(session.Gender)

	minResults := e.config.MinStrategyResults
	if e.config.Limit < minResults {
		minResults = e.config.Limit
	}

	type attempt struct {
		name string
		run  func() ([]*entity.Product, error)
	}

	attempts := []attempt{
		{strategySegment, func() ([]*entity.Product, error) {
			return e.products.FindBySegmentProfile(ctx, ageRange, gender, e.config.SegmentMinConfidence, true, e.config.Limit)
		}},
		{strategyDemographic, func() ([]*entity.Product, error) {
			return e.products.FindBySegmentProfile(ctx, ageRange, gender, 0, true, e.config.Limit)
		}},
		{strategyPopular, func() ([]*entity.Product, error) {
			return e.products.FindPopular(ctx, e.config.PopularMinRating, e.config.PopularMinRatings, e.config.Limit)
		}},
		{strategyRecent, func() ([]*entity.Product, error) {
			return e.products.FindRecent(ctx, e.config.Limit)
		}},
	}

	for i, a := range attempts {
		products, err := a.run()
		if err != nil {
			// A failed strategy counts as empty; try the next one.
			e.logger.Printf("[WARN] Browse strategy %s failed: %v", a.name, err)
			continue
		}

		isLast := i == len(attempts)-1
		if len(products) >= minResults || (isLast && len(products) > 0) {
			e.logger.Printf("[DEBUG] Browse strategy %s: %d products", a.name, len(products))
			return e.enrich(ctx, products, a.name, nil)
		}
	}

	return []store.Candidate{}, nil
}

// enrich converts products to candidates with score, reason, formatted
// price and primary segment. Products without a title are dropped.
func (e *Engine) enrich(ctx context.Context, products []*entity.Product, strategy string, query *intent.Query) ([]store.Candidate, error) {
	if len(products) > e.config.Limit {
		products = products[:e.config.Limit]
	}

	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.Id)
	}

	segmentNames, err := e.segments.TopSegmentNameByProduct(ctx, ids)
	if err != nil {
		e.logger.Printf("[WARN] Failed to resolve primary segments: %v", err)
		segmentNames = map[uuid.UUID]string{}
	}

	candidates := make([]store.Candidate, 0, len(products))
	for _, p := range products {
		if p.Title == "" {
			continue
		}
		candidates = append(candidates, store.Candidate{
			ID:             p.Id.String(),
			Title:          p.Title,
			Description:    p.Description,
			Brand:          p.Brand,
			Price:          p.Price,
			PriceFormatted: FormatPrice(p.Price),
			ImageURL:       p.ImageUrl,
			ProductURL:     p.ProductUrl,
			Rating:         p.Rating,
			RatingsTotal:   p.RatingsTotal,
			MatchScore:     matchScore(p, strategy),
			Reason:         reasonFor(p, strategy, query),
			PrimarySegment: segmentNames[p.Id],
			Provenance:     store.ProvenanceLocal,
		})
	}
	return candidates, nil
}

// matchScore is a weighted sum of rating, review volume and a
// strategy-specific bonus, rounded to an integer.
func matchScore(p *entity.Product, strategy string) int {
	reviews := float64(p.RatingsTotal)
	if reviews > 500 {
		reviews = 500
	}
	score := p.Rating*10 + reviews/10 + strategyBonus[strategy]
	return int(math.Round(score))
}

func reasonFor(p *entity.Product, strategy string, query *intent.Query) string {
	switch strategy {
	case strategyBrand:
		if query != nil && query.Brand != "" {
			return fmt.Sprintf("Matches your %s search", query.Brand)
		}
		return "Matches the brand you asked for"
	case strategyKeyword:
		return "Matches what you're looking for"
	case strategySegment:
		return "Popular with shoppers like you"
	case strategyDemographic:
		return "Picked for your age group"
	case strategyPopular:
		return fmt.Sprintf("Highly rated (%.1f from %d reviews)", p.Rating, p.RatingsTotal)
	default:
		return "New in the catalog"
	}
}

// FormatPrice renders a price for display. Zero prices render empty rather
// than as a misleading "$0.00".
func FormatPrice(price float64) string {
	if price <= 0 {
		return ""
	}
	return fmt.Sprintf("$%.2f", price)
}

func (e *Engine) cacheKey(session *store.Session, message string) string {
	sum := md5.Sum([]byte(message))
	return fmt.Sprintf("search:%x|%s|%s|%s", sum, session.Age, session.Gender, AgeRangeForAge(session.Age))
}
