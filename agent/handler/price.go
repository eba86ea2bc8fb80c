package handler

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/foodiespot/assistant/agent/contract"
	"github.com/foodiespot/assistant/agent/extract"
	"github.com/foodiespot/assistant/agent/knowledge"
	promptx "github.com/foodiespot/assistant/agent/prompt"
)

// PricePolicy resolves a dish-name match that is ambiguous across
// restaurants. The policy is explicit and configurable rather than silently
// positional.
type PricePolicy string

const (
	// PolicyFirstMatch returns the first hit in knowledge-store scan order.
	PolicyFirstMatch PricePolicy = "first-match"
	// PolicyLowestPrice returns the cheapest hit.
	PolicyLowestPrice PricePolicy = "lowest-price"
)

// ParsePricePolicy maps a config string to a policy; empty selects the
// default first-match.
func ParsePricePolicy(s string) (PricePolicy, error) {
	switch PricePolicy(strings.TrimSpace(strings.ToLower(s))) {
	case "", PolicyFirstMatch:
		return PolicyFirstMatch, nil
	case PolicyLowestPrice:
		return PolicyLowestPrice, nil
	}
	return "", fmt.Errorf("%w: unknown price policy %q", contractx.ErrValidation, s)
}

// Price fulfills fetch_price: case-insensitive substring scan of dish names
// across all menus, optionally restricted to one restaurant.
type Price struct {
	oracle   contractx.Oracle
	template string
	store    *knowledge.Store
	policy   PricePolicy
}

var _ contractx.Handler = (*Price)(nil)

func NewPrice(oracle contractx.Oracle, template string, store *knowledge.Store, policy PricePolicy) *Price {
	if policy == "" {
		policy = PolicyFirstMatch
	}
	return &Price{oracle: oracle, template: template, store: store, policy: policy}
}

func (h *Price) Intent() contractx.Intent {
	return contractx.IntentFetchPrice
}

func (h *Price) Process(ctx context.Context, userMessage string) (*contractx.FulfillmentResult, error) {
	prompt := promptx.Render(h.template, map[string]string{"user_message": userMessage})
	out, err := h.oracle.Generate(ctx, prompt, extractOptions(extractMaxTokensShort))
	if err != nil {
		return nil, err
	}

	var q contractx.PriceQuery
	if err := extract.Decode(out, priceQuerySchema, &q); err != nil {
		return &contractx.FulfillmentResult{
			Kind:    contractx.KindPrice,
			Message: "Could not extract the dish details from your message. Please tell me which dish you mean.",
		}, nil
	}

	if strings.TrimSpace(q.DishName) == "" {
		var known []string
		if q.RestaurantName != "" {
			known = append(known, fmt.Sprintf("restaurant name (%s)", q.RestaurantName))
		}
		return &contractx.FulfillmentResult{
			Kind:    contractx.KindPrice,
			Message: extract.AskFor([]string{"dish name"}, "look up the price", known),
		}, nil
	}

	found := h.store.FindDishes(q.DishName, q.RestaurantName)
	if len(found) == 0 {
		return &contractx.FulfillmentResult{
			Kind:    contractx.KindPrice,
			Message: fmt.Sprintf("Dish %q was not found in any restaurant.", strings.TrimSpace(q.DishName)),
		}, nil
	}

	pick := resolveAmbiguity(found, h.policy)
	return &contractx.FulfillmentResult{
		Kind:    contractx.KindPrice,
		Message: fmt.Sprintf("%s costs %.2f at %s.", pick.DishName, pick.Price, pick.RestaurantName),
		Price: &contractx.PriceResult{
			DishName:       pick.DishName,
			Price:          pick.Price,
			RestaurantName: pick.RestaurantName,
		},
	}, nil
}

func resolveAmbiguity(found []knowledge.DishMatch, policy PricePolicy) knowledge.DishMatch {
	if policy == PolicyLowestPrice {
		pick := found[0]
		for _, m := range found[1:] {
			if m.Price < pick.Price {
				pick = m
			}
		}
		return pick
	}
	return found[0]
}
