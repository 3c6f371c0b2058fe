package marketplace

import (
	"context"
	"errors"
)

// Typed marketplace failures. The supplementation layer maps all of them to
// an empty supplemental result set.
var (
	ErrTimeout      = errors.New("marketplace: request timed out")
	ErrUnauthorized = errors.New("marketplace: unauthorized")
	ErrRateLimited  = errors.New("marketplace: rate limited")
)

// Listing is a single external product result with only the fields the
// pipeline consumes.
type Listing struct {
	Title        string  `json:"title"`
	Asin         string  `json:"asin"`
	Link         string  `json:"link"`
	Image        string  `json:"image"`
	Price        string  `json:"price"` // raw display price, e.g. "$59.99"
	PriceValue   float64 `json:"price_value"`
	Rating       float64 `json:"rating"`
	RatingsTotal int     `json:"ratings_total"`
}

// SearchResponse is one page of external listings.
type SearchResponse struct {
	Products     []Listing `json:"products"`
	TotalResults int       `json:"total_results"`
	Page         int       `json:"page"`
}

// SearchOptions narrows a marketplace search.
type SearchOptions struct {
	Category string
	MaxItems int
}

// SearchProvider is the external marketplace collaborator.
type SearchProvider interface {
	Search(ctx context.Context, term string, opts SearchOptions) (*SearchResponse, error)
}
