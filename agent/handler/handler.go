// Package handler implements the five fulfillment handlers. Each follows the
// shared protocol: oracle-based extraction, completeness validation, field
// normalization, then a knowledge-store query or ledger mutation. User-facing
// problems are results; only handler-internal faults surface as errors.
package handler

import (
	contractx "github.com/foodiespot/assistant/agent/contract"
	"github.com/foodiespot/assistant/agent/extract"
)

const (
	extractMaxTokensShort = 30
	extractMaxTokensWide  = 50
)

// Extraction always decodes deterministically.
func extractOptions(maxNewTokens int) contractx.GenerateOptions {
	return contractx.GenerateOptions{
		MaxNewTokens: maxNewTokens,
		DoSample:     false,
	}
}

var (
	menuQuerySchema = extract.ObjectSchema(map[string]string{
		"restaurant_name": "string",
	})
	priceQuerySchema = extract.ObjectSchema(map[string]string{
		"dish_name":       "string",
		"restaurant_name": "string",
	})
	searchQuerySchema = extract.ObjectSchema(map[string]string{
		"cuisine":     "string",
		"location":    "string",
		"ambience":    "string",
		"food_choice": "string",
		"price_range": "string",
	})
	slotQuerySchema = extract.ObjectSchema(map[string]string{
		"restaurant_name": "string",
		"date_time":       "string",
		"num_people":      "integer",
	})
)
