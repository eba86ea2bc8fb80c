package contract

// Intent is the routing key assigned to a user request. The set is closed on
// purpose: the dispatcher only ever routes to intents it has a handler for,
// anything else falls back to IntentGeneralResponse.
type Intent string

const (
	IntentFetchMenu        Intent = "fetch_menu"
	IntentFetchPrice       Intent = "fetch_price"
	IntentSearchRestaurant Intent = "search_restaurant"
	IntentCheckAvail       Intent = "check_availability"
	IntentReserve          Intent = "reserve_restaurant"
	IntentGeneralResponse  Intent = "general_response"
)

// KnownIntent reports whether the token names one of the routable intents.
func KnownIntent(s string) bool {
	switch Intent(s) {
	case IntentFetchMenu, IntentFetchPrice, IntentSearchRestaurant,
		IntentCheckAvail, IntentReserve, IntentGeneralResponse:
		return true
	}
	return false
}

// ClassificationResult is produced once per request and discarded after dispatch.
type ClassificationResult struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// Turn is one entry of the caller-owned conversation transcript.
type Turn struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

/* --------------------------- extraction queries -------------------------- */

// MenuQuery is the extraction shape for fetch_menu.
type MenuQuery struct {
	RestaurantName string `json:"restaurant_name"`
}

// PriceQuery is the extraction shape for fetch_price. RestaurantName is
// optional; when present it restricts the dish scan to that restaurant.
type PriceQuery struct {
	DishName       string `json:"dish_name"`
	RestaurantName string `json:"restaurant_name,omitempty"`
}

// SearchQuery is the extraction shape for search_restaurant. All criteria are
// optional; FoodChoice and PriceRange are extracted but not filtered on.
type SearchQuery struct {
	Cuisine    string `json:"cuisine,omitempty"`
	Location   string `json:"location,omitempty"`
	Ambience   string `json:"ambience,omitempty"`
	FoodChoice string `json:"food_choice,omitempty"`
	PriceRange string `json:"price_range,omitempty"`
}

// SlotQuery is the extraction shape shared by check_availability and
// reserve_restaurant: a restaurant/time-slot plus party size.
type SlotQuery struct {
	RestaurantName string `json:"restaurant_name"`
	DateTime       string `json:"date_time"`
	NumPeople      int    `json:"num_people"`
}

/* --------------------------- fulfillment results ------------------------- */

// FulfillmentKind tags the variant carried by a FulfillmentResult.
type FulfillmentKind string

const (
	KindMenu         FulfillmentKind = "menu"
	KindPrice        FulfillmentKind = "price"
	KindSearch       FulfillmentKind = "search"
	KindAvailability FulfillmentKind = "availability"
	KindReservation  FulfillmentKind = "reservation"
)

// FulfillmentResult is the only artifact a handler passes to the synthesizer.
// Exactly one payload pointer matching Kind is set; Message is always set and
// is safe to show the user verbatim.
type FulfillmentResult struct {
	Kind    FulfillmentKind `json:"kind"`
	Message string          `json:"message"`

	Menu         *MenuResult         `json:"menu,omitempty"`
	Price        *PriceResult        `json:"price,omitempty"`
	Search       *SearchResult       `json:"search,omitempty"`
	Availability *AvailabilityResult `json:"availability,omitempty"`
	Reservation  *ReservationResult  `json:"reservation,omitempty"`
}

type MenuDish struct {
	Name  string  `json:"dish_name"`
	Price float64 `json:"price"`
}

type MenuResult struct {
	RestaurantName string     `json:"restaurant_name"`
	Dishes         []MenuDish `json:"menu"`
}

type PriceResult struct {
	DishName       string  `json:"dish_name"`
	Price          float64 `json:"price"`
	RestaurantName string  `json:"restaurant_name"`
}

type SearchMatch struct {
	Name     string `json:"name"`
	Cuisine  string `json:"cuisine"`
	Location string `json:"location"`
	Ambience string `json:"ambience"`
}

type SearchResult struct {
	Restaurants []SearchMatch `json:"restaurants"`
}

type AvailabilityResult struct {
	RestaurantName string `json:"restaurant_name"`
	DateTime       string `json:"date_time"`
	NumPeople      int    `json:"num_people"`
	Available      bool   `json:"available"`
}

type ReservationResult struct {
	BookingID      int    `json:"booking_id"`
	RestaurantName string `json:"restaurant_name"`
	DateTime       string `json:"date_time"`
	NumPeople      int    `json:"num_people"`
}
