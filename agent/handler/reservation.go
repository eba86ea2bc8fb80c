package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/foodiespot/assistant/agent/contract"
	ledgerx "github.com/foodiespot/assistant/agent/ledger"
)

// Reservation fulfills reserve_restaurant. The capacity re-check, booking id
// assignment, append and persist are one atomic unit inside the ledger.
type Reservation struct {
	oracle   contractx.Oracle
	template string
	ledger   *ledgerx.Ledger
}

var _ contractx.Handler = (*Reservation)(nil)

func NewReservation(oracle contractx.Oracle, template string, ledger *ledgerx.Ledger) *Reservation {
	return &Reservation{oracle: oracle, template: template, ledger: ledger}
}

func (h *Reservation) Intent() contractx.Intent {
	return contractx.IntentReserve
}

func (h *Reservation) Process(ctx context.Context, userMessage string) (*contractx.FulfillmentResult, error) {
	q, failed, err := extractSlot(ctx, h.oracle, h.template, userMessage, contractx.KindReservation, "proceed with the reservation")
	if err != nil {
		return nil, err
	}
	if failed != nil {
		return failed, nil
	}

	res, err := h.ledger.Reserve(q.RestaurantName, q.DateTime, q.NumPeople)
	switch {
	case errors.Is(err, ledgerx.ErrCapacityExceeded):
		// Normal business outcome, not a fault.
		return &contractx.FulfillmentResult{
			Kind: contractx.KindReservation,
			Message: fmt.Sprintf("Sorry, %s does not have %d seats available on %s.",
				q.RestaurantName, q.NumPeople, q.DateTime),
		}, nil
	case errors.Is(err, ledgerx.ErrPersistence):
		log.Error().Err(err).
			Str("restaurant", q.RestaurantName).
			Str("date_time", q.DateTime).
			Msg("reservation persist failed")
		return &contractx.FulfillmentResult{
			Kind:    contractx.KindReservation,
			Message: "Your reservation could not be saved due to a storage error. Nothing was booked, please try again.",
		}, nil
	case err != nil:
		return nil, err
	}

	return &contractx.FulfillmentResult{
		Kind: contractx.KindReservation,
		Message: fmt.Sprintf("Table booked at %s for %d people on %s. Your booking id is %d.",
			res.Restaurant, res.NumPeople, res.DateTime, res.BookingID),
		Reservation: &contractx.ReservationResult{
			BookingID:      res.BookingID,
			RestaurantName: res.Restaurant,
			DateTime:       res.DateTime,
			NumPeople:      res.NumPeople,
		},
	}, nil
}
