package list

import (
	"strconv"
	"strings"

	"github.com/dukerupert/listkeep/internal/model"
)

// FallbackColor is the neutral gray used when an item's category no longer
// resolves to a known category.
const FallbackColor = "#9E9E9E"

// CategoryName resolves a category id to its display name for
// denormalized storage on an item. Falls back to "Other" when the id does
// not resolve.
func CategoryName(categoryID string, categories []model.Category) string {
	for _, c := range categories {
		if c.ID == categoryID {
			return c.Name
		}
	}
	return "Other"
}

// CategoryColor resolves a category name back to its display color for
// rendering. Unknown names get the neutral gray.
func CategoryColor(name string, categories []model.Category) string {
	for _, c := range categories {
		if c.Name == name {
			return c.Color
		}
	}
	return FallbackColor
}

// ParseQuantity parses a free-text quantity into a positive integer.
// Non-numeric or non-positive input is coerced to 1; this silent coercion
// matches the product's add-item behavior and is intentional.
func ParseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// SeparateItems partitions items into pending and completed sequences,
// preserving each sub-sequence's original relative order.
func SeparateItems(items []model.ShoppingItem) (pending, completed []model.ShoppingItem) {
	pending = []model.ShoppingItem{}
	completed = []model.ShoppingItem{}
	for _, item := range items {
		if item.IsCompleted {
			completed = append(completed, item)
		} else {
			pending = append(pending, item)
		}
	}
	return pending, completed
}
