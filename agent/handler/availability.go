package handler

import (
	"context"
	"fmt"

	contractx "github.com/foodiespot/assistant/agent/contract"
	ledgerx "github.com/foodiespot/assistant/agent/ledger"
)

// Availability fulfills check_availability: a read-only verdict against the
// reservation ledger. It never reserves.
type Availability struct {
	oracle   contractx.Oracle
	template string
	ledger   *ledgerx.Ledger
}

var _ contractx.Handler = (*Availability)(nil)

func NewAvailability(oracle contractx.Oracle, template string, ledger *ledgerx.Ledger) *Availability {
	return &Availability{oracle: oracle, template: template, ledger: ledger}
}

func (h *Availability) Intent() contractx.Intent {
	return contractx.IntentCheckAvail
}

func (h *Availability) Process(ctx context.Context, userMessage string) (*contractx.FulfillmentResult, error) {
	q, failed, err := extractSlot(ctx, h.oracle, h.template, userMessage, contractx.KindAvailability, "check availability")
	if err != nil {
		return nil, err
	}
	if failed != nil {
		return failed, nil
	}

	available := h.ledger.Available(q.RestaurantName, q.DateTime, q.NumPeople)

	message := fmt.Sprintf("Yes! %s has %d seats available on %s.", q.RestaurantName, q.NumPeople, q.DateTime)
	if !available {
		message = fmt.Sprintf("Sorry, %s does not have %d seats available on %s.", q.RestaurantName, q.NumPeople, q.DateTime)
	}

	return &contractx.FulfillmentResult{
		Kind:    contractx.KindAvailability,
		Message: message,
		Availability: &contractx.AvailabilityResult{
			RestaurantName: q.RestaurantName,
			DateTime:       q.DateTime,
			NumPeople:      q.NumPeople,
			Available:      available,
		},
	}, nil
}
