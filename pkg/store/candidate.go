package store

// Provenance values for candidates returned to the chat layer.
const (
	ProvenanceLocal       = "local"
	ProvenanceMarketplace = "marketplace"
)

// Candidate is a product enriched with ranking and provenance metadata.
// Every candidate handed to a user must carry a non-empty Title and
// a Provenance tag.
type Candidate struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	Brand          string  `json:"brand,omitempty"`
	Price          float64 `json:"price"`
	PriceFormatted string  `json:"price_formatted"`
	ImageURL       string  `json:"image_url,omitempty"`
	ProductURL     string  `json:"product_url,omitempty"`
	Rating         float64 `json:"rating"`
	RatingsTotal   int     `json:"ratings_total"`

	MatchScore     int    `json:"match_score"`
	Reason         string `json:"reason"`
	PrimarySegment string `json:"primary_segment,omitempty"`
	Provenance     string `json:"provenance"`
}
