package model

import "time"

// Category is a named grouping with an icon and color used to classify
// shopping items.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// ShoppingItem is a single purchasable entry within a list. Category holds
// the denormalized category display name; CategoryID is the reference it
// was resolved from (may be empty for items created before a category was
// picked).
type ShoppingItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	Unit        string    `json:"unit,omitempty"`
	CategoryID  string    `json:"category_id,omitempty"`
	Category    string    `json:"category"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ShoppingList is a named, ordered collection of shopping items.
// IsShared and SharedWith are persisted but carry no behavior.
type ShoppingList struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Items      []ShoppingItem `json:"items"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	IsShared   bool           `json:"is_shared"`
	SharedWith []string       `json:"shared_with,omitempty"`
}
