package handler

import (
	"context"
	"fmt"

	contractx "github.com/foodiespot/assistant/agent/contract"
	"github.com/foodiespot/assistant/agent/extract"
	"github.com/foodiespot/assistant/agent/knowledge"
	promptx "github.com/foodiespot/assistant/agent/prompt"
)

// Search fulfills search_restaurant: a restaurant matches when ANY populated
// criterion substring-matches its attribute. Under-specified criteria broaden
// results, they never narrow them.
type Search struct {
	oracle   contractx.Oracle
	template string
	store    *knowledge.Store
}

var _ contractx.Handler = (*Search)(nil)

func NewSearch(oracle contractx.Oracle, template string, store *knowledge.Store) *Search {
	return &Search{oracle: oracle, template: template, store: store}
}

func (h *Search) Intent() contractx.Intent {
	return contractx.IntentSearchRestaurant
}

func (h *Search) Process(ctx context.Context, userMessage string) (*contractx.FulfillmentResult, error) {
	prompt := promptx.Render(h.template, map[string]string{"user_message": userMessage})
	out, err := h.oracle.Generate(ctx, prompt, extractOptions(extractMaxTokensWide))
	if err != nil {
		return nil, err
	}

	var q contractx.SearchQuery
	if err := extract.Decode(out, searchQuerySchema, &q); err != nil {
		return &contractx.FulfillmentResult{
			Kind:    contractx.KindSearch,
			Message: "Could not extract search criteria from your query.",
		}, nil
	}

	results := h.store.Filter(q.Cuisine, q.Location, q.Ambience)
	if len(results) == 0 {
		return &contractx.FulfillmentResult{
			Kind:    contractx.KindSearch,
			Message: "Sorry, no restaurants match your criteria.",
			Search:  &contractx.SearchResult{},
		}, nil
	}

	matches := make([]contractx.SearchMatch, 0, len(results))
	for _, r := range results {
		matches = append(matches, contractx.SearchMatch{
			Name:     r.Name,
			Cuisine:  r.Cuisine,
			Location: r.Location,
			Ambience: r.Ambience,
		})
	}

	return &contractx.FulfillmentResult{
		Kind:    contractx.KindSearch,
		Message: fmt.Sprintf("Found %d restaurants matching your criteria.", len(matches)),
		Search:  &contractx.SearchResult{Restaurants: matches},
	}, nil
}
