// FILE: pkg/discovery/intent/extractor.go
// PURPOSE: Turn a raw chat message into a structured product query

package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"shopchat-be/internal/constant"
	"shopchat-be/pkg/llm"
)

// Extractor asks the LLM to classify a message into a Query and falls back
// to a keyword heuristic when the call or the parse fails. Extract never
// returns an error to the caller.
type Extractor struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewExtractor(provider llm.LLMProvider, logger *log.Logger) *Extractor {
	return &Extractor{
		provider: provider,
		logger:   logger,
	}
}

// Extract classifies the message. The result is always well-typed;
// a degraded heuristic result carries ProductDetected=false unless the
// keyword tables say otherwise.
func (e *Extractor) Extract(ctx context.Context, message string) *Query {
	prompt := fmt.Sprintf(constant.IntentExtractionPromptV1, message)

	response, err := e.provider.Generate(ctx, prompt,
		llm.WithTemperature(0.1), // Low for consistent classification
		llm.WithMaxTokens(250),
	)
	if err != nil {
		e.logger.Printf("[WARN] Intent extraction call failed, using heuristic: %v", err)
		return e.heuristicExtract(message)
	}

	query, err := parseQueryResponse(response)
	if err != nil {
		e.logger.Printf("[WARN] Intent extraction parse failed, using heuristic: %v", err)
		return e.heuristicExtract(message)
	}

	normalizeQuery(query, message)
	return query
}

// parseQueryResponse extracts the query JSON from the LLM response
func parseQueryResponse(response string) (*Query, error) {
	// Clean response
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	// Try to extract JSON from response (might be wrapped in text)
	jsonStart := strings.Index(response, "{")
	jsonEnd := strings.LastIndex(response, "}")
	if jsonStart >= 0 && jsonEnd > jsonStart {
		response = response[jsonStart : jsonEnd+1]
	}

	var query Query
	if err := json.Unmarshal([]byte(response), &query); err != nil {
		return nil, fmt.Errorf("unmarshal query: %w", err)
	}
	return &query, nil
}

// normalizeQuery lowercases keywords and backfills fields the model left
// empty but the message clearly carries.
func normalizeQuery(q *Query, message string) {
	for i, k := range q.Keywords {
		q.Keywords[i] = strings.ToLower(strings.TrimSpace(k))
	}
	if len(q.Keywords) == 0 {
		q.Keywords = Tokenize(message)
	}

	// Trust the brand table over the model for brand spelling/category.
	for _, token := range Tokenize(message) {
		if b, ok := LookupBrand(token); ok {
			if q.Brand == "" || strings.EqualFold(q.Brand, token) {
				q.Brand = b.Display
			}
			if q.Category == "" {
				q.Category = b.Category
			}
			break
		}
	}

	if q.Intent == "" {
		q.Intent = IntentBrowse
	}
}

// heuristicExtract is the degraded path: keyword membership against the
// fixed brand and category tables.
func (e *Extractor) heuristicExtract(message string) *Query {
	tokens := Tokenize(message)
	query := &Query{
		Keywords: tokens,
		Intent:   IntentBrowse,
	}

	for _, token := range tokens {
		if b, ok := LookupBrand(token); ok {
			query.ProductDetected = true
			query.Brand = b.Display
			query.ProductName = b.Display
			if query.Category == "" {
				query.Category = b.Category
			}
			continue
		}
		if category, ok := categoryTerms[token]; ok {
			query.ProductDetected = true
			if query.ProductName == "" {
				query.ProductName = token
			}
			if query.Category == "" {
				query.Category = category
			}
		}
	}

	if query.ProductDetected {
		query.Intent = IntentBuy
	}
	return query
}

// Tokenize lowercases the message and splits it into alphanumeric tokens,
// dropping common stopwords.
func Tokenize(message string) []string {
	var stopwords = map[string]bool{
		"i": true, "a": true, "an": true, "the": true, "want": true,
		"need": true, "for": true, "to": true, "me": true, "my": true,
		"some": true, "buy": true, "get": true, "please": true, "and": true,
		"or": true, "of": true, "is": true, "it": true, "in": true,
		"im": true, "looking": true,
	}

	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return ' '
	}, strings.ToLower(message))

	var tokens []string
	for _, t := range strings.Fields(cleaned) {
		if !stopwords[t] {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
