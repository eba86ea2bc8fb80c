// Package knowledge owns the read-only restaurant and menu reference data.
// Data is loaded once at process start from a Source and never mutated after.
package knowledge

import (
	"context"
	"fmt"
	"strings"
)

// Restaurant is an immutable reference record.
type Restaurant struct {
	ID       int    `json:"restaurant_id"`
	Name     string `json:"name"`
	Cuisine  string `json:"cuisine"`
	Location string `json:"location"`
	Ambience string `json:"ambience"`
}

// Dish is one ordered menu entry.
type Dish struct {
	Name  string  `json:"dish_name"`
	Price float64 `json:"price"`
}

// Menu is the ordered dish list of one restaurant.
type Menu struct {
	RestaurantID int    `json:"restaurant_id"`
	Dishes       []Dish `json:"menu"`
}

// Source supplies the reference collections. Implementations: FileSource
// (default) and PostgresSource.
type Source interface {
	Restaurants(ctx context.Context) ([]Restaurant, error)
	Menus(ctx context.Context) ([]Menu, error)
}

// Store holds the loaded reference data and implements the lookups the
// handlers need. It is safe for concurrent use: all fields are read-only
// after NewStore returns.
type Store struct {
	restaurants []Restaurant
	menus       []Menu
	nameByID    map[int]string
}

func NewStore(ctx context.Context, src Source) (*Store, error) {
	restaurants, err := src.Restaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("load restaurants: %w", err)
	}
	menus, err := src.Menus(ctx)
	if err != nil {
		return nil, fmt.Errorf("load menus: %w", err)
	}

	nameByID := make(map[int]string, len(restaurants))
	for _, r := range restaurants {
		nameByID[r.ID] = r.Name
	}

	return &Store{
		restaurants: restaurants,
		menus:       menus,
		nameByID:    nameByID,
	}, nil
}

// RestaurantByName matches the name exactly, case-insensitively.
func (s *Store) RestaurantByName(name string) (Restaurant, bool) {
	for _, r := range s.restaurants {
		if strings.EqualFold(r.Name, strings.TrimSpace(name)) {
			return r, true
		}
	}
	return Restaurant{}, false
}

// MenuFor returns the ordered dish list for a restaurant id.
func (s *Store) MenuFor(restaurantID int) ([]Dish, bool) {
	for _, m := range s.menus {
		if m.RestaurantID == restaurantID {
			return m.Dishes, true
		}
	}
	return nil, false
}

// DishMatch is one hit of a dish-name scan.
type DishMatch struct {
	RestaurantName string
	DishName       string
	Price          float64
}

// FindDishes scans all menus in load order for dishes whose name contains
// dishName, case-insensitively. restaurantName, when non-empty, restricts the
// scan to that restaurant (exact case-insensitive name match).
func (s *Store) FindDishes(dishName, restaurantName string) []DishMatch {
	needle := strings.ToLower(strings.TrimSpace(dishName))
	var found []DishMatch
	for _, m := range s.menus {
		owner := s.nameByID[m.RestaurantID]
		if restaurantName != "" && !strings.EqualFold(owner, strings.TrimSpace(restaurantName)) {
			continue
		}
		for _, d := range m.Dishes {
			if strings.Contains(strings.ToLower(d.Name), needle) {
				found = append(found, DishMatch{
					RestaurantName: owner,
					DishName:       d.Name,
					Price:          d.Price,
				})
			}
		}
	}
	return found
}

// Filter returns restaurants matching ANY populated criterion by
// case-insensitive substring. Under-specified criteria broaden results on
// purpose.
func (s *Store) Filter(cuisine, location, ambience string) []Restaurant {
	var results []Restaurant
	for _, r := range s.restaurants {
		if matchCriterion(cuisine, r.Cuisine) ||
			matchCriterion(location, r.Location) ||
			matchCriterion(ambience, r.Ambience) {
			results = append(results, r)
		}
	}
	return results
}

func matchCriterion(criterion, attribute string) bool {
	criterion = strings.TrimSpace(criterion)
	if criterion == "" {
		return false
	}
	return strings.Contains(strings.ToLower(attribute), strings.ToLower(criterion))
}
