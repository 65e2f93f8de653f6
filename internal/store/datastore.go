package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dukerupert/listkeep/internal/model"
)

// Collection keys in the kv table. Each key holds one whole collection as
// a JSON array; writes always replace the full value.
const (
	keyShoppingLists = "shopping_lists"
	keyCategories    = "categories"
)

var defaultCategories = []model.Category{
	{ID: "1", Name: "Fruits & Vegetables", Icon: "fruit-grapes", Color: "#4CAF50"},
	{ID: "2", Name: "Dairy & Eggs", Icon: "cow", Color: "#2196F3"},
	{ID: "3", Name: "Meat & Seafood", Icon: "fish", Color: "#F44336"},
	{ID: "4", Name: "Bakery", Icon: "bread-slice", Color: "#FF9800"},
	{ID: "5", Name: "Beverages", Icon: "cup", Color: "#9C27B0"},
	{ID: "6", Name: "Pantry", Icon: "package-variant-closed", Color: "#795548"},
	{ID: "7", Name: "Frozen", Icon: "snowflake", Color: "#00BCD4"},
	{ID: "8", Name: "Household", Icon: "home", Color: "#607D8B"},
	{ID: "9", Name: "Personal Care", Icon: "face-woman", Color: "#E91E63"},
	{ID: "10", Name: "Other", Icon: "shopping", Color: "#9E9E9E"},
}

// DefaultCategories returns a copy of the seed set installed on first
// category read.
func DefaultCategories() []model.Category {
	out := make([]model.Category, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}

// DataStore persists the shopping list and category collections as whole
// JSON documents in the kv table. Timestamps round-trip through RFC 3339
// text and come back as time values.
type DataStore struct {
	db     *sql.DB
	logger *slog.Logger
	mu     sync.Mutex // guards first-read category seeding
}

func NewDataStore(db *sql.DB, logger *slog.Logger) *DataStore {
	return &DataStore{db: db, logger: logger}
}

func (s *DataStore) getValue(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *DataStore) setValue(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// GetShoppingLists reads the persisted list collection. An absent key or a
// malformed payload yields an empty collection, not an error; the next
// save rewrites the key.
func (s *DataStore) GetShoppingLists() ([]model.ShoppingList, error) {
	raw, ok, err := s.getValue(keyShoppingLists)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.ShoppingList{}, nil
	}

	var lists []model.ShoppingList
	if err := json.Unmarshal([]byte(raw), &lists); err != nil {
		s.logger.Error("decode shopping lists", "error", err)
		return []model.ShoppingList{}, nil
	}
	if lists == nil {
		lists = []model.ShoppingList{}
	}
	return lists, nil
}

// SaveShoppingLists replaces the entire persisted list collection.
func (s *DataStore) SaveShoppingLists(lists []model.ShoppingList) error {
	data, err := json.Marshal(lists)
	if err != nil {
		return fmt.Errorf("encode shopping lists: %w", err)
	}
	return s.setValue(keyShoppingLists, string(data))
}

// GetCategories reads the persisted category collection, seeding the
// default set on first read. Seeding holds the store mutex, so a read
// started after seeding completes observes the seeded data.
func (s *DataStore) GetCategories() ([]model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.getValue(keyCategories)
	if err != nil {
		return nil, err
	}
	if !ok {
		if err := s.saveCategoriesLocked(defaultCategories); err != nil {
			return nil, err
		}
		return DefaultCategories(), nil
	}

	var categories []model.Category
	if err := json.Unmarshal([]byte(raw), &categories); err != nil {
		s.logger.Error("decode categories", "error", err)
		return DefaultCategories(), nil
	}
	return categories, nil
}

// SaveCategories replaces the entire persisted category collection.
func (s *DataStore) SaveCategories(categories []model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveCategoriesLocked(categories)
}

func (s *DataStore) saveCategoriesLocked(categories []model.Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}
	return s.setValue(keyCategories, string(data))
}
