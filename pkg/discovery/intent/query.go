package intent

// Query is the structured result of intent extraction. It is produced per
// message and never persisted.
type Query struct {
	ProductDetected bool     `json:"productDetected"`
	ProductName     string   `json:"productName"`
	Brand           string   `json:"brand"`
	Category        string   `json:"category"`
	Keywords        []string `json:"keywords"`
	Intent          string   `json:"intent"` // buy | browse | compare | ask
}

const (
	IntentBuy     = "buy"
	IntentBrowse  = "browse"
	IntentCompare = "compare"
	IntentAsk     = "ask"
)

// SearchTerm returns the best external search term for the query: the
// product name when present, otherwise the joined keywords.
func (q *Query) SearchTerm() string {
	if q.ProductName != "" {
		return q.ProductName
	}
	if q.Brand != "" {
		return q.Brand
	}
	return joinKeywords(q.Keywords)
}

func joinKeywords(keywords []string) string {
	out := ""
	for i, k := range keywords {
		if i > 0 {
			out += " "
		}
		out += k
	}
	return out
}
