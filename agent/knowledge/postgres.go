package knowledge

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// PostgresSource loads the reference collections from Postgres. Load-once
// semantics are the same as FileSource; the tables are treated as read-only.
type PostgresSource struct {
	db *bun.DB
}

var _ Source = (*PostgresSource)(nil)

type restaurantRow struct {
	bun.BaseModel `bun:"table:restaurants"`

	ID       int    `bun:"restaurant_id,pk"`
	Name     string `bun:"name"`
	Cuisine  string `bun:"cuisine"`
	Location string `bun:"location"`
	Ambience string `bun:"ambience"`
}

type menuItemRow struct {
	bun.BaseModel `bun:"table:menu_items"`

	RestaurantID int     `bun:"restaurant_id"`
	Position     int     `bun:"position"`
	DishName     string  `bun:"dish_name"`
	Price        float64 `bun:"price"`
}

func NewPostgresSource(dsn string) *PostgresSource {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return &PostgresSource{db: bun.NewDB(sqldb, pgdialect.New())}
}

func (p *PostgresSource) Close() error {
	return p.db.Close()
}

func (p *PostgresSource) Restaurants(ctx context.Context) ([]Restaurant, error) {
	var rows []restaurantRow
	if err := p.db.NewSelect().Model(&rows).Order("restaurant_id").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select restaurants: %w", err)
	}

	restaurants := make([]Restaurant, 0, len(rows))
	for _, r := range rows {
		restaurants = append(restaurants, Restaurant{
			ID:       r.ID,
			Name:     r.Name,
			Cuisine:  r.Cuisine,
			Location: r.Location,
			Ambience: r.Ambience,
		})
	}
	return restaurants, nil
}

func (p *PostgresSource) Menus(ctx context.Context) ([]Menu, error) {
	var rows []menuItemRow
	if err := p.db.NewSelect().Model(&rows).Order("restaurant_id", "position").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select menu items: %w", err)
	}

	byRestaurant := make(map[int][]Dish)
	order := make([]int, 0)
	for _, r := range rows {
		if _, seen := byRestaurant[r.RestaurantID]; !seen {
			order = append(order, r.RestaurantID)
		}
		byRestaurant[r.RestaurantID] = append(byRestaurant[r.RestaurantID], Dish{
			Name:  r.DishName,
			Price: r.Price,
		})
	}
	sort.Ints(order)

	menus := make([]Menu, 0, len(order))
	for _, id := range order {
		menus = append(menus, Menu{RestaurantID: id, Dishes: byRestaurant[id]})
	}
	return menus, nil
}
