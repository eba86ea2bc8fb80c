package handler

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	contractx "github.com/foodiespot/assistant/agent/contract"
	ledgerx "github.com/foodiespot/assistant/agent/ledger"
)

func TestReservationProcess(t *testing.T) {
	t.Parallel()

	ledger := testLedger(t)
	oracle := &fakeOracle{output: completeSlotJSON}
	h := NewReservation(oracle, testTemplate, ledger)

	result, err := h.Process(context.Background(), "book Luna Bistro for 4 on march 1st at 7pm")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.Kind != contractx.KindReservation {
		t.Fatalf("unexpected kind: %s", result.Kind)
	}
	if result.Reservation == nil || result.Reservation.BookingID != 1 {
		t.Fatalf("unexpected payload: %#v", result.Reservation)
	}
	if result.Message != "Table booked at Luna Bistro for 4 people on 2024-03-01 19:00. Your booking id is 1." {
		t.Fatalf("unexpected message: %s", result.Message)
	}

	all := ledger.All()
	if len(all) != 1 || all[0].Restaurant != "Luna Bistro" || all[0].NumPeople != 4 {
		t.Fatalf("reservation not recorded: %#v", all)
	}
}

func TestReservationProcessCapacityRejected(t *testing.T) {
	t.Parallel()

	ledger := testLedger(t)
	for i := 0; i < 12; i++ {
		if _, err := ledger.Reserve("Luna Bistro", "2024-03-01 19:00", 4); err != nil {
			t.Fatalf("seed reservation %d: %v", i+1, err)
		}
	}

	oracle := &fakeOracle{output: completeSlotJSON}
	h := NewReservation(oracle, testTemplate, ledger)

	result, err := h.Process(context.Background(), "one more table for 4 please")
	if err != nil {
		t.Fatalf("capacity rejection must be a user-facing result, got error %v", err)
	}
	if result.Reservation != nil {
		t.Fatalf("rejected booking must carry no payload: %#v", result.Reservation)
	}
	if result.Message != "Sorry, Luna Bistro does not have 4 seats available on 2024-03-01 19:00." {
		t.Fatalf("unexpected message: %s", result.Message)
	}
	if ledger.Len() != 12 {
		t.Fatalf("rejected booking must not be recorded, have %d", ledger.Len())
	}
}

func TestReservationProcessPersistenceFailure(t *testing.T) {
	t.Parallel()

	ledger := ledgerx.Open(filepath.Join(t.TempDir(), "missing-dir", "reservations.json"), 50)
	oracle := &fakeOracle{output: completeSlotJSON}
	h := NewReservation(oracle, testTemplate, ledger)

	result, err := h.Process(context.Background(), "book a table")
	if err != nil {
		t.Fatalf("persistence failure must be a user-facing result, got error %v", err)
	}
	if !strings.Contains(result.Message, "storage error") {
		t.Fatalf("unexpected message: %s", result.Message)
	}
	if ledger.Len() != 0 {
		t.Fatalf("failed booking must be rolled back, have %d", ledger.Len())
	}
}

func TestReservationProcessMissingFields(t *testing.T) {
	t.Parallel()

	oracle := &fakeOracle{output: `{"restaurant_name": null, "date_time": "2024-03-01 19:00", "num_people": 4}`}
	h := NewReservation(oracle, testTemplate, testLedger(t))

	result, err := h.Process(context.Background(), "book a table for 4 at 7pm")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !strings.Contains(result.Message, "Please provide the restaurant name") {
		t.Fatalf("expected missing field listed, got: %s", result.Message)
	}
	if !strings.Contains(result.Message, "number of people (4)") {
		t.Fatalf("expected known fields echoed, got: %s", result.Message)
	}
}

func TestReservationProcessExtractionFailure(t *testing.T) {
	t.Parallel()

	oracle := &fakeOracle{output: "sorry, no structured data"}
	h := NewReservation(oracle, testTemplate, testLedger(t))

	result, err := h.Process(context.Background(), "book it")
	if err != nil {
		t.Fatalf("extraction failure must be a user-facing result, got error %v", err)
	}
	if !strings.Contains(result.Message, "Could not extract the details") {
		t.Fatalf("unexpected message: %s", result.Message)
	}
}
