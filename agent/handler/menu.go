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

// Menu fulfills fetch_menu: restaurant name -> id -> menu listing.
type Menu struct {
	oracle   contractx.Oracle
	template string
	store    *knowledge.Store
}

var _ contractx.Handler = (*Menu)(nil)

func NewMenu(oracle contractx.Oracle, template string, store *knowledge.Store) *Menu {
	return &Menu{oracle: oracle, template: template, store: store}
}

func (h *Menu) Intent() contractx.Intent {
	return contractx.IntentFetchMenu
}

func (h *Menu) Process(ctx context.Context, userMessage string) (*contractx.FulfillmentResult, error) {
	prompt := promptx.Render(h.template, map[string]string{"user_message": userMessage})
	out, err := h.oracle.Generate(ctx, prompt, extractOptions(extractMaxTokensShort))
	if err != nil {
		return nil, err
	}

	var q contractx.MenuQuery
	if err := extract.Decode(out, menuQuerySchema, &q); err != nil {
		return &contractx.FulfillmentResult{
			Kind:    contractx.KindMenu,
			Message: "Could not extract the restaurant details from your message. Please tell me which restaurant's menu you want.",
		}, nil
	}

	if strings.TrimSpace(q.RestaurantName) == "" {
		return &contractx.FulfillmentResult{
			Kind:    contractx.KindMenu,
			Message: extract.AskFor([]string{"restaurant name"}, "fetch the menu", nil),
		}, nil
	}

	restaurant, ok := h.store.RestaurantByName(q.RestaurantName)
	if !ok {
		return &contractx.FulfillmentResult{
			Kind:    contractx.KindMenu,
			Message: fmt.Sprintf("Restaurant %q was not found.", strings.TrimSpace(q.RestaurantName)),
		}, nil
	}

	dishes, ok := h.store.MenuFor(restaurant.ID)
	if !ok {
		return &contractx.FulfillmentResult{
			Kind:    contractx.KindMenu,
			Message: fmt.Sprintf("No menu is on file for %s.", restaurant.Name),
		}, nil
	}

	menuDishes := make([]contractx.MenuDish, 0, len(dishes))
	for _, d := range dishes {
		menuDishes = append(menuDishes, contractx.MenuDish{Name: d.Name, Price: d.Price})
	}

	return &contractx.FulfillmentResult{
		Kind:    contractx.KindMenu,
		Message: fmt.Sprintf("Here is the menu for %s (%d dishes).", restaurant.Name, len(menuDishes)),
		Menu: &contractx.MenuResult{
			RestaurantName: restaurant.Name,
			Dishes:         menuDishes,
		},
	}, nil
}
