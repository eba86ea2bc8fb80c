package handler

import (
	contractx "github.com/foodiespot/assistant/agent/contract"
	"github.com/foodiespot/assistant/agent/knowledge"
	ledgerx "github.com/foodiespot/assistant/agent/ledger"
	promptx "github.com/foodiespot/assistant/agent/prompt"
)

// Factory builds a fresh handler for one request. Handlers hold only the
// injected collaborators, so per-request instantiation is cheap.
type Factory func() contractx.Handler

// Deps are the collaborators shared by all handler factories.
type Deps struct {
	Oracle      contractx.Oracle
	Prompts     promptx.Set
	Store       *knowledge.Store
	Ledger      *ledgerx.Ledger
	PricePolicy PricePolicy
}

// Registry maps routable intents to handler factories. general_response has
// no handler on purpose: it is the dispatcher's fallback path.
type Registry struct {
	factories map[contractx.Intent]Factory
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{
		factories: map[contractx.Intent]Factory{
			contractx.IntentFetchMenu: func() contractx.Handler {
				return NewMenu(deps.Oracle, deps.Prompts.FetchMenu, deps.Store)
			},
			contractx.IntentFetchPrice: func() contractx.Handler {
				return NewPrice(deps.Oracle, deps.Prompts.FetchPrice, deps.Store, deps.PricePolicy)
			},
			contractx.IntentSearchRestaurant: func() contractx.Handler {
				return NewSearch(deps.Oracle, deps.Prompts.SearchRestaurant, deps.Store)
			},
			contractx.IntentCheckAvail: func() contractx.Handler {
				return NewAvailability(deps.Oracle, deps.Prompts.CheckAvailability, deps.Ledger)
			},
			contractx.IntentReserve: func() contractx.Handler {
				return NewReservation(deps.Oracle, deps.Prompts.ReserveRestaurant, deps.Ledger)
			},
		},
	}
}

// Lookup returns the factory for intent, if registered.
func (r *Registry) Lookup(intent contractx.Intent) (Factory, bool) {
	f, ok := r.factories[intent]
	return f, ok
}
