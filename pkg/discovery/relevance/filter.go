// FILE: pkg/discovery/relevance/filter.go
// PURPOSE: Prune retrieved candidates that do not answer the user's query

package relevance

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"shopchat-be/internal/constant"
	"shopchat-be/pkg/discovery/intent"
	"shopchat-be/pkg/llm"
	"shopchat-be/pkg/store"
)

// Filter removes candidates unrelated to the extracted query. It is
// fail-open throughout: an LLM error keeps the candidate, because showing
// a marginal product beats showing nothing when the validator is down.
type Filter struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewFilter(provider llm.LLMProvider, logger *log.Logger) *Filter {
	return &Filter{
		provider: provider,
		logger:   logger,
	}
}

// Apply runs the brand prune and then validates the survivors against the
// query concurrently. Order of the input is preserved in the output.
func (f *Filter) Apply(ctx context.Context, query *intent.Query, candidates []store.Candidate) []store.Candidate {
	if len(candidates) == 0 {
		return candidates
	}

	pruned := PruneByBrand(query, candidates)
	if len(pruned) == 0 {
		return pruned
	}

	if !query.ProductDetected {
		// Browsing results came from profile strategies, not the message;
		// per-candidate validation against the message would be noise.
		return pruned
	}

	keep := make([]bool, len(pruned))
	var wg sync.WaitGroup
	for i := range pruned {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			keep[i] = f.validate(ctx, query, &pruned[i])
		}(i)
	}
	wg.Wait()

	out := make([]store.Candidate, 0, len(pruned))
	for i, c := range pruned {
		if keep[i] {
			out = append(out, c)
		}
	}
	f.logger.Printf("[DEBUG] Relevance filter: %d -> %d candidates", len(candidates), len(out))
	return out
}

// PruneByBrand drops candidates that do not mention the requested brand in
// title, brand or description. With no brand in the query it is a no-op.
// Pruning everything is valid; the caller falls back to supplementation.
func PruneByBrand(query *intent.Query, candidates []store.Candidate) []store.Candidate {
	if query == nil || query.Brand == "" {
		return candidates
	}

	brand := strings.ToLower(query.Brand)
	out := make([]store.Candidate, 0, len(candidates))
	for _, c := range candidates {
		haystack := strings.ToLower(c.Title + " " + c.Brand + " " + c.Description)
		if strings.Contains(haystack, brand) {
			out = append(out, c)
		}
	}
	return out
}

// validate asks the LLM a single YES/NO question about one candidate.
func (f *Filter) validate(ctx context.Context, query *intent.Query, c *store.Candidate) bool {
	prompt := fmt.Sprintf(constant.RelevanceCheckPromptV1, query.SearchTerm(), c.Title, c.Brand, c.Description)

	response, err := f.provider.Generate(ctx, prompt,
		llm.WithTemperature(0.0),
		llm.WithMaxTokens(5),
	)
	if err != nil {
		f.logger.Printf("[WARN] Relevance check failed for %q, keeping candidate: %v", c.Title, err)
		return true
	}

	answer := strings.ToUpper(strings.TrimSpace(response))
	return !strings.HasPrefix(answer, "NO")
}
