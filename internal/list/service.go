package list

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/listkeep/internal/model"
	"github.com/dukerupert/listkeep/internal/store"
)

// Service implements list- and item-level mutations as read-modify-write
// cycles over the whole persisted list collection. A single mutex
// serializes all mutations so two concurrent writers cannot clobber each
// other at collection granularity.
//
// Mutations return (nil, nil) or (false, nil) when the target list or item
// does not exist; the persisted collections are left untouched in that
// case. Store failures are returned, never swallowed.
type Service struct {
	store  *store.DataStore
	logger *slog.Logger
	mu     sync.Mutex
}

func NewService(ds *store.DataStore, logger *slog.Logger) *Service {
	return &Service{store: ds, logger: logger}
}

// NewItem holds the caller-supplied fields for an item creation.
type NewItem struct {
	Name       string
	Quantity   int
	Unit       string
	CategoryID string
	Category   string
}

// ItemUpdate holds partial item fields; nil means "leave unchanged".
type ItemUpdate struct {
	Name        *string
	Quantity    *int
	Unit        *string
	CategoryID  *string
	Category    *string
	IsCompleted *bool
}

// ListUpdate holds partial list fields; nil means "leave unchanged".
type ListUpdate struct {
	Name *string
}

// Lists returns all shopping lists.
func (s *Service) Lists() ([]model.ShoppingList, error) {
	return s.store.GetShoppingLists()
}

// GetList returns the list with the given id, or nil if absent.
func (s *Service) GetList(listID string) (*model.ShoppingList, error) {
	lists, err := s.store.GetShoppingLists()
	if err != nil {
		return nil, err
	}
	for i := range lists {
		if lists[i].ID == listID {
			return &lists[i], nil
		}
	}
	return nil, nil
}

// CreateList appends a new empty list to the collection and persists it.
func (s *Service) CreateList(name string) (*model.ShoppingList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.store.GetShoppingLists()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	list := model.ShoppingList{
		ID:        uuid.NewString(),
		Name:      name,
		Items:     []model.ShoppingItem{},
		CreatedAt: now,
		UpdatedAt: now,
		IsShared:  false,
	}

	lists = append(lists, list)
	if err := s.store.SaveShoppingLists(lists); err != nil {
		return nil, err
	}
	return &list, nil
}

// UpdateList merges partial fields over the list and bumps its updatedAt.
func (s *Service) UpdateList(listID string, upd ListUpdate) (*model.ShoppingList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.store.GetShoppingLists()
	if err != nil {
		return nil, err
	}

	i := findList(lists, listID)
	if i == -1 {
		return nil, nil
	}

	if upd.Name != nil {
		lists[i].Name = *upd.Name
	}
	lists[i].UpdatedAt = time.Now().UTC()

	if err := s.store.SaveShoppingLists(lists); err != nil {
		return nil, err
	}
	return &lists[i], nil
}

// DeleteList removes the list with the given id. Returns false if no list
// matched; nothing is written in that case.
func (s *Service) DeleteList(listID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.store.GetShoppingLists()
	if err != nil {
		return false, err
	}

	i := findList(lists, listID)
	if i == -1 {
		return false, nil
	}

	lists = append(lists[:i], lists[i+1:]...)
	if err := s.store.SaveShoppingLists(lists); err != nil {
		return false, err
	}
	return true, nil
}

// AddItem appends a new item to the target list and bumps the list's
// updatedAt. Returns (nil, nil) if the list does not exist.
func (s *Service) AddItem(listID string, in NewItem) (*model.ShoppingItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.store.GetShoppingLists()
	if err != nil {
		return nil, err
	}

	i := findList(lists, listID)
	if i == -1 {
		return nil, nil
	}

	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}

	now := time.Now().UTC()
	item := model.ShoppingItem{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Quantity:    qty,
		Unit:        in.Unit,
		CategoryID:  in.CategoryID,
		Category:    in.Category,
		IsCompleted: false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	lists[i].Items = append(lists[i].Items, item)
	lists[i].UpdatedAt = now

	if err := s.store.SaveShoppingLists(lists); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem merges partial fields over an item, bumping both the item's
// and the parent list's updatedAt. Returns (nil, nil) if either the list
// or the item does not exist.
func (s *Service) UpdateItem(listID, itemID string, upd ItemUpdate) (*model.ShoppingItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.store.GetShoppingLists()
	if err != nil {
		return nil, err
	}

	i := findList(lists, listID)
	if i == -1 {
		return nil, nil
	}
	j := findItem(lists[i].Items, itemID)
	if j == -1 {
		return nil, nil
	}

	item := &lists[i].Items[j]
	if upd.Name != nil {
		item.Name = *upd.Name
	}
	if upd.Quantity != nil {
		item.Quantity = *upd.Quantity
	}
	if upd.Unit != nil {
		item.Unit = *upd.Unit
	}
	if upd.CategoryID != nil {
		item.CategoryID = *upd.CategoryID
	}
	if upd.Category != nil {
		item.Category = *upd.Category
	}
	if upd.IsCompleted != nil {
		item.IsCompleted = *upd.IsCompleted
	}

	now := time.Now().UTC()
	item.UpdatedAt = now
	lists[i].UpdatedAt = now

	if err := s.store.SaveShoppingLists(lists); err != nil {
		return nil, err
	}
	return item, nil
}

// ToggleItem flips an item's completion flag.
func (s *Service) ToggleItem(listID, itemID string) (*model.ShoppingItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.store.GetShoppingLists()
	if err != nil {
		return nil, err
	}

	i := findList(lists, listID)
	if i == -1 {
		return nil, nil
	}
	j := findItem(lists[i].Items, itemID)
	if j == -1 {
		return nil, nil
	}

	item := &lists[i].Items[j]
	item.IsCompleted = !item.IsCompleted

	now := time.Now().UTC()
	item.UpdatedAt = now
	lists[i].UpdatedAt = now

	if err := s.store.SaveShoppingLists(lists); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an item from its list and bumps the list's updatedAt.
// Returns false if the list or item does not exist; nothing is written in
// that case.
func (s *Service) DeleteItem(listID, itemID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.store.GetShoppingLists()
	if err != nil {
		return false, err
	}

	i := findList(lists, listID)
	if i == -1 {
		return false, nil
	}
	j := findItem(lists[i].Items, itemID)
	if j == -1 {
		return false, nil
	}

	lists[i].Items = append(lists[i].Items[:j], lists[i].Items[j+1:]...)
	lists[i].UpdatedAt = time.Now().UTC()

	if err := s.store.SaveShoppingLists(lists); err != nil {
		return false, err
	}
	return true, nil
}

func findList(lists []model.ShoppingList, id string) int {
	for i := range lists {
		if lists[i].ID == id {
			return i
		}
	}
	return -1
}

func findItem(items []model.ShoppingItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
