package handler

import (
	"context"
	"path/filepath"
	"testing"

	contractx "github.com/foodiespot/assistant/agent/contract"
	"github.com/foodiespot/assistant/agent/knowledge"
	ledgerx "github.com/foodiespot/assistant/agent/ledger"
)

const testTemplate = "Extract fields from: {user_message}"

// fakeOracle returns one scripted output for every Generate call.
type fakeOracle struct {
	output string
	err    error

	gotPrompt string
	gotOpts   contractx.GenerateOptions
}

func (f *fakeOracle) Generate(ctx context.Context, prompt string, opts contractx.GenerateOptions) (string, error) {
	f.gotPrompt = prompt
	f.gotOpts = opts
	return f.output, f.err
}

type knowledgeSource struct {
	restaurants []knowledge.Restaurant
	menus       []knowledge.Menu
}

func (s knowledgeSource) Restaurants(_ context.Context) ([]knowledge.Restaurant, error) {
	return s.restaurants, nil
}

func (s knowledgeSource) Menus(_ context.Context) ([]knowledge.Menu, error) {
	return s.menus, nil
}

func testStore(t *testing.T) *knowledge.Store {
	t.Helper()

	store, err := knowledge.NewStore(context.Background(), knowledgeSource{
		restaurants: []knowledge.Restaurant{
			{ID: 1, Name: "Luna Bistro", Cuisine: "Italian", Location: "Downtown", Ambience: "Romantic"},
			{ID: 2, Name: "Ocean Grill", Cuisine: "Seafood", Location: "Harbor", Ambience: "Casual"},
		},
		menus: []knowledge.Menu{
			{RestaurantID: 1, Dishes: []knowledge.Dish{
				{Name: "Margherita Pizza", Price: 12.50},
				{Name: "Curly Fries", Price: 5.00},
			}},
			{RestaurantID: 2, Dishes: []knowledge.Dish{
				{Name: "Grilled Salmon", Price: 22.00},
				{Name: "Truffle Fries", Price: 7.50},
			}},
		},
	})
	if err != nil {
		t.Fatalf("build test store: %v", err)
	}
	return store
}

func testLedger(t *testing.T) *ledgerx.Ledger {
	t.Helper()
	return ledgerx.Open(filepath.Join(t.TempDir(), "reservations.json"), 50)
}
