package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileSource reads the reference collections from JSON files. Unreadable
// files are an error: reference data is required at startup.
type FileSource struct {
	RestaurantPath string
	MenuPath       string
}

var _ Source = FileSource{}

func (f FileSource) Restaurants(_ context.Context) ([]Restaurant, error) {
	var restaurants []Restaurant
	if err := readJSONFile(f.RestaurantPath, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (f FileSource) Menus(_ context.Context) ([]Menu, error) {
	var menus []Menu
	if err := readJSONFile(f.MenuPath, &menus); err != nil {
		return nil, err
	}
	return menus, nil
}

func readJSONFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
