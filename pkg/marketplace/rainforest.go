package marketplace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultEndpoint = "https://api.rainforestapi.com/request"

// RainforestClient searches Amazon through the Rainforest API.
type RainforestClient struct {
	APIKey       string
	AmazonDomain string
	Endpoint     string
	Client       *http.Client
}

var _ SearchProvider = &RainforestClient{}

func NewRainforestClient(apiKey, amazonDomain string, timeout time.Duration) *RainforestClient {
	if amazonDomain == "" {
		amazonDomain = "amazon.com"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RainforestClient{
		APIKey:       apiKey,
		AmazonDomain: amazonDomain,
		Endpoint:     defaultEndpoint,
		Client:       &http.Client{Timeout: timeout},
	}
}

// --- Response structs (internal, only safe fields) ---

type rainforestPrice struct {
	Raw   string  `json:"raw"`
	Value float64 `json:"value"`
}

type rainforestItem struct {
	Title        string            `json:"title"`
	Asin         string            `json:"asin"`
	Link         string            `json:"link"`
	Image        string            `json:"image"`
	Price        *rainforestPrice  `json:"price"`
	Prices       []rainforestPrice `json:"prices"`
	Rating       float64           `json:"rating"`
	RatingsTotal int               `json:"ratings_total"`
}

type rainforestResponse struct {
	SearchResults []rainforestItem `json:"search_results"`
	Pagination    struct {
		CurrentPage  int `json:"current_page"`
		TotalResults int `json:"total_results"`
	} `json:"pagination"`
}

func (c *RainforestClient) Search(ctx context.Context, term string, opts SearchOptions) (*SearchResponse, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("rainforest search: %w", ErrUnauthorized)
	}

	// 1. Build request URL
	params := url.Values{}
	params.Set("api_key", c.APIKey)
	params.Set("type", "search")
	params.Set("amazon_domain", c.AmazonDomain)
	params.Set("search_term", term)
	if opts.Category != "" {
		params.Set("category_id", opts.Category)
	}

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "shopchat-be/1.0")

	// 2. Send request
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rainforest request failed: %w", mapTransportError(err))
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if typedErr := mapStatusError(resp.StatusCode); typedErr != nil {
		return nil, fmt.Errorf("rainforest error: status %d: %w", resp.StatusCode, typedErr)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rainforest error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	// 3. Parse response
	var raw rainforestResponse
	if err := json.Unmarshal(bodyBytes, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	maxItems := opts.MaxItems
	if maxItems <= 0 {
		maxItems = 10
	}

	results := raw.SearchResults
	if len(results) > maxItems {
		results = results[:maxItems]
	}

	listings := make([]Listing, 0, len(results))
	for _, item := range results {
		listings = append(listings, cleanListing(item))
	}

	page := raw.Pagination.CurrentPage
	if page == 0 {
		page = 1
	}
	total := raw.Pagination.TotalResults
	if total == 0 {
		total = len(listings)
	}

	return &SearchResponse{
		Products:     listings,
		TotalResults: total,
		Page:         page,
	}, nil
}

// cleanListing normalizes a raw item into the safe field set. Price falls
// back from price.raw to prices[0].raw; link falls back to the ASIN detail
// page when absent.
func cleanListing(item rainforestItem) Listing {
	title := item.Title
	if title == "" {
		title = "(no title)"
	}

	link := item.Link
	if link == "" && item.Asin != "" {
		link = "https://www.amazon.com/dp/" + item.Asin
	}

	var priceRaw string
	var priceValue float64
	if item.Price != nil && item.Price.Raw != "" {
		priceRaw = item.Price.Raw
		priceValue = item.Price.Value
	} else if len(item.Prices) > 0 {
		priceRaw = item.Prices[0].Raw
		priceValue = item.Prices[0].Value
	}
	if priceValue == 0 && priceRaw != "" {
		priceValue = parsePriceRaw(priceRaw)
	}

	return Listing{
		Title:        title,
		Asin:         item.Asin,
		Link:         link,
		Image:        item.Image,
		Price:        priceRaw,
		PriceValue:   priceValue,
		Rating:       item.Rating,
		RatingsTotal: item.RatingsTotal,
	}
}

// parsePriceRaw extracts a numeric value from a display price like "$1,299.99".
func parsePriceRaw(raw string) float64 {
	var sb strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			sb.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

func mapStatusError(status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return ErrTimeout
	default:
		return nil
	}
}

func mapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return err
}
