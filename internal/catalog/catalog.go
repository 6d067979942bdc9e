package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// MenuItem represents a single meal on the menu
type MenuItem struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Price           decimal.Decimal `json:"price"`
	Image           string          `json:"image"`
	Calories        int             `json:"calories,omitempty"`
	PrepTimeMinutes int             `json:"prep_time_minutes,omitempty"`
	DietaryTags     []string        `json:"dietary_tags,omitempty"`
	IsNew           bool            `json:"is_new,omitempty"`
}

// Catalog is the immutable menu loaded at startup
type Catalog struct {
	items []MenuItem
	byID  map[string]MenuItem
}

// Load reads the menu from a JSON file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file: %w", err)
	}

	var items []MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse menu file: %w", err)
	}

	return New(items)
}

// New builds a catalog from the given items, validating them first
func New(items []MenuItem) (*Catalog, error) {
	byID := make(map[string]MenuItem, len(items))
	for i, item := range items {
		if item.ID == "" {
			return nil, fmt.Errorf("menu item at index %d has no id", i)
		}
		if item.Name == "" {
			return nil, fmt.Errorf("menu item %s has no name", item.ID)
		}
		if item.Price.IsNegative() {
			return nil, fmt.Errorf("menu item %s has a negative price", item.ID)
		}
		if _, exists := byID[item.ID]; exists {
			return nil, fmt.Errorf("duplicate menu item id: %s", item.ID)
		}
		byID[item.ID] = item
	}

	return &Catalog{items: items, byID: byID}, nil
}

// Items returns all menu items in their original order
func (c *Catalog) Items() []MenuItem {
	out := make([]MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

// Get looks up a menu item by id
func (c *Catalog) Get(id string) (MenuItem, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// Len returns the number of menu items
func (c *Catalog) Len() int {
	return len(c.items)
}
