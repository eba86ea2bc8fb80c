package handler

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/foodiespot/assistant/agent/contract"
	"github.com/foodiespot/assistant/agent/extract"
	promptx "github.com/foodiespot/assistant/agent/prompt"
)

// extractSlot runs the shared extract-and-validate steps for the two
// slot-based handlers. It returns either a complete, normalized query or a
// ready user-facing result; an error means the oracle call itself failed.
func extractSlot(
	ctx context.Context,
	oracle contractx.Oracle,
	template string,
	userMessage string,
	kind contractx.FulfillmentKind,
	action string,
) (*contractx.SlotQuery, *contractx.FulfillmentResult, error) {
	prompt := promptx.Render(template, map[string]string{"user_message": userMessage})
	out, err := oracle.Generate(ctx, prompt, extractOptions(extractMaxTokensShort))
	if err != nil {
		return nil, nil, err
	}

	var q contractx.SlotQuery
	if err := extract.Decode(out, slotQuerySchema, &q); err != nil {
		return nil, &contractx.FulfillmentResult{
			Kind: kind,
			Message: fmt.Sprintf(
				"Could not extract the details to %s. Please provide the restaurant name, date and time, and number of people.",
				action,
			),
		}, nil
	}

	q.RestaurantName = strings.TrimSpace(q.RestaurantName)
	q.DateTime = strings.TrimSpace(q.DateTime)

	missing := extract.Missing(
		extract.Field{Name: "restaurant name", Present: q.RestaurantName != ""},
		extract.Field{Name: "date and time", Present: q.DateTime != ""},
		extract.Field{Name: "number of people", Present: q.NumPeople > 0},
	)
	if len(missing) > 0 {
		var known []string
		if q.RestaurantName != "" {
			known = append(known, fmt.Sprintf("restaurant name (%s)", q.RestaurantName))
		}
		if q.DateTime != "" {
			known = append(known, fmt.Sprintf("date and time (%s)", q.DateTime))
		}
		if q.NumPeople > 0 {
			known = append(known, fmt.Sprintf("number of people (%d)", q.NumPeople))
		}
		return nil, &contractx.FulfillmentResult{
			Kind:    kind,
			Message: extract.AskFor(missing, action, known),
		}, nil
	}

	// Format normalization comes after completeness validation: a malformed
	// date is a distinct outcome from a missing one.
	normalized, err := extract.NormalizeDateTime(q.DateTime)
	if err != nil {
		return nil, &contractx.FulfillmentResult{
			Kind:    kind,
			Message: "Invalid date format. Please use YYYY-MM-DD HH:MM.",
		}, nil
	}
	q.DateTime = normalized

	return &q, nil, nil
}
