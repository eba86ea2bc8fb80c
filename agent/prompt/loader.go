package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/classify_intent.txt
	classifyRaw string

	//go:embed template/fetch_menu.txt
	fetchMenuRaw string

	//go:embed template/fetch_price.txt
	fetchPriceRaw string

	//go:embed template/search_restaurant.txt
	searchRaw string

	//go:embed template/check_availability.txt
	availabilityRaw string

	//go:embed template/reserve_restaurant.txt
	reserveRaw string

	//go:embed template/respond.txt
	respondRaw string
)

// Set holds loaded prompt content.
type Set struct {
	ClassifyIntent    string
	FetchMenu         string
	FetchPrice        string
	SearchRestaurant  string
	CheckAvailability string
	ReserveRestaurant string
	Respond           string
}

// LoadSet returns the embedded prompts, trimmed. Safe to call concurrently.
func LoadSet() Set {
	return Set{
		ClassifyIntent:    strings.TrimSpace(classifyRaw),
		FetchMenu:         strings.TrimSpace(fetchMenuRaw),
		FetchPrice:        strings.TrimSpace(fetchPriceRaw),
		SearchRestaurant:  strings.TrimSpace(searchRaw),
		CheckAvailability: strings.TrimSpace(availabilityRaw),
		ReserveRestaurant: strings.TrimSpace(reserveRaw),
		Respond:           strings.TrimSpace(respondRaw),
	}
}

// Render substitutes {name} placeholders. Placeholders without a value are
// left intact so a missing variable is visible in the logged prompt.
func Render(template string, vars map[string]string) string {
	if len(vars) == 0 {
		return template
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
