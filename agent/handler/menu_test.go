package handler

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/foodiespot/assistant/agent/contract"
)

func TestMenuProcess(t *testing.T) {
	t.Parallel()

	oracle := &fakeOracle{output: `{"restaurant_name": "Luna Bistro"}`}
	h := NewMenu(oracle, testTemplate, testStore(t))

	result, err := h.Process(context.Background(), "show me the menu of Luna Bistro")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.Kind != contractx.KindMenu {
		t.Fatalf("unexpected kind: %s", result.Kind)
	}
	if result.Menu == nil || result.Menu.RestaurantName != "Luna Bistro" {
		t.Fatalf("unexpected payload: %#v", result.Menu)
	}
	if len(result.Menu.Dishes) != 2 {
		t.Fatalf("expected 2 dishes, got %#v", result.Menu.Dishes)
	}
	if result.Message != "Here is the menu for Luna Bistro (2 dishes)." {
		t.Fatalf("unexpected message: %s", result.Message)
	}
	if oracle.gotOpts.DoSample {
		t.Fatal("extraction must be deterministic")
	}
}

func TestMenuProcessUnknownRestaurant(t *testing.T) {
	t.Parallel()

	oracle := &fakeOracle{output: `{"restaurant_name": "Ghost Kitchen"}`}
	h := NewMenu(oracle, testTemplate, testStore(t))

	result, err := h.Process(context.Background(), "menu for Ghost Kitchen")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.Menu != nil {
		t.Fatalf("expected no payload, got %#v", result.Menu)
	}
	if result.Message != `Restaurant "Ghost Kitchen" was not found.` {
		t.Fatalf("unexpected message: %s", result.Message)
	}
}

func TestMenuProcessMissingName(t *testing.T) {
	t.Parallel()

	oracle := &fakeOracle{output: `{"restaurant_name": null}`}
	h := NewMenu(oracle, testTemplate, testStore(t))

	result, err := h.Process(context.Background(), "what's on the menu?")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !strings.Contains(result.Message, "Please provide the restaurant name") {
		t.Fatalf("expected a follow-up ask, got: %s", result.Message)
	}
}

func TestMenuProcessExtractionFailure(t *testing.T) {
	t.Parallel()

	oracle := &fakeOracle{output: "I could not determine the restaurant."}
	h := NewMenu(oracle, testTemplate, testStore(t))

	result, err := h.Process(context.Background(), "menu please")
	if err != nil {
		t.Fatalf("extraction failure must be a user-facing result, got error %v", err)
	}
	if !strings.Contains(result.Message, "Could not extract") {
		t.Fatalf("unexpected message: %s", result.Message)
	}
}

func TestMenuProcessOracleError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("timeout")
	h := NewMenu(&fakeOracle{err: wantErr}, testTemplate, testStore(t))

	if _, err := h.Process(context.Background(), "menu please"); !errors.Is(err, wantErr) {
		t.Fatalf("expected oracle error to propagate, got %v", err)
	}
}
