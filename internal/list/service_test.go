package list

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dukerupert/listkeep/internal/database"
	"github.com/dukerupert/listkeep/internal/store"
)

func setupService(t *testing.T) (*Service, *store.DataStore, *sql.DB) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	ds := store.NewDataStore(db, slog.Default())
	return NewService(ds, slog.Default()), ds, db
}

func rawLists(t *testing.T, db *sql.DB) string {
	t.Helper()
	var raw string
	err := db.QueryRow(`SELECT value FROM kv WHERE key = 'shopping_lists'`).Scan(&raw)
	if err == sql.ErrNoRows {
		return ""
	}
	if err != nil {
		t.Fatalf("read raw lists: %v", err)
	}
	return raw
}

func TestCreateList(t *testing.T) {
	svc, _, _ := setupService(t)

	list, err := svc.CreateList("Groceries")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	if list.ID == "" {
		t.Error("expected generated id")
	}
	if list.Name != "Groceries" {
		t.Errorf("name = %q, want Groceries", list.Name)
	}
	if len(list.Items) != 0 {
		t.Errorf("expected empty items, got %d", len(list.Items))
	}
	if list.IsShared {
		t.Error("is_shared should be false")
	}
	if list.CreatedAt.IsZero() || list.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}

	lists, err := svc.Lists()
	if err != nil {
		t.Fatalf("lists: %v", err)
	}
	if len(lists) != 1 {
		t.Fatalf("expected 1 persisted list, got %d", len(lists))
	}
}

func TestCreateListUniqueIDs(t *testing.T) {
	svc, _, _ := setupService(t)

	a, _ := svc.CreateList("A")
	b, _ := svc.CreateList("B")
	if a.ID == b.ID {
		t.Errorf("ids should differ, both %q", a.ID)
	}
}

func TestUpdateList(t *testing.T) {
	svc, _, _ := setupService(t)

	list, _ := svc.CreateList("Old Name")
	name := "New Name"

	updated, err := svc.UpdateList(list.ID, ListUpdate{Name: &name})
	if err != nil {
		t.Fatalf("update list: %v", err)
	}
	if updated == nil {
		t.Fatal("expected updated list, got nil")
	}
	if updated.Name != "New Name" {
		t.Errorf("name = %q, want New Name", updated.Name)
	}
	if updated.UpdatedAt.Before(list.UpdatedAt) {
		t.Error("updated_at should not go backwards")
	}
}

func TestUpdateListNotFound(t *testing.T) {
	svc, _, db := setupService(t)

	svc.CreateList("Groceries")
	before := rawLists(t, db)

	name := "x"
	got, err := svc.UpdateList("missing", ListUpdate{Name: &name})
	if err != nil {
		t.Fatalf("update list: %v", err)
	}
	if got != nil {
		t.Error("expected nil for missing list")
	}
	if rawLists(t, db) != before {
		t.Error("persisted collection changed on not-found update")
	}
}

func TestDeleteList(t *testing.T) {
	svc, _, _ := setupService(t)

	list, _ := svc.CreateList("Groceries")
	svc.CreateList("Hardware")

	deleted, err := svc.DeleteList(list.ID)
	if err != nil {
		t.Fatalf("delete list: %v", err)
	}
	if !deleted {
		t.Fatal("expected deleted = true")
	}

	lists, _ := svc.Lists()
	if len(lists) != 1 {
		t.Fatalf("expected 1 remaining list, got %d", len(lists))
	}
	if lists[0].Name != "Hardware" {
		t.Errorf("remaining list = %q, want Hardware", lists[0].Name)
	}

	deleted, err = svc.DeleteList(list.ID)
	if err != nil {
		t.Fatalf("delete again: %v", err)
	}
	if deleted {
		t.Error("second delete should report not found")
	}
}

func TestAddItemUpdatesParentTimestamp(t *testing.T) {
	svc, _, _ := setupService(t)

	list, _ := svc.CreateList("Groceries")
	t0 := list.UpdatedAt

	// Coarse clocks can land two operations on the same instant.
	time.Sleep(5 * time.Millisecond)

	item, err := svc.AddItem(list.ID, NewItem{Name: "Milk", Quantity: 2, Category: "Dairy & Eggs", CategoryID: "2"})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if item == nil {
		t.Fatal("expected item, got nil")
	}
	if item.IsCompleted {
		t.Error("new item should not be completed")
	}

	got, err := svc.GetList(list.ID)
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got.Items))
	}
	if !got.UpdatedAt.After(t0) {
		t.Errorf("list updated_at = %v, want after %v", got.UpdatedAt, t0)
	}
}

func TestAddItemQuantityFloor(t *testing.T) {
	svc, _, _ := setupService(t)

	list, _ := svc.CreateList("Groceries")
	item, err := svc.AddItem(list.ID, NewItem{Name: "Milk", Quantity: 0})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if item.Quantity != 1 {
		t.Errorf("quantity = %d, want 1", item.Quantity)
	}
}

func TestAddItemListNotFound(t *testing.T) {
	svc, _, db := setupService(t)

	svc.CreateList("Groceries")
	before := rawLists(t, db)

	item, err := svc.AddItem("missing", NewItem{Name: "Milk"})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if item != nil {
		t.Error("expected nil for missing list")
	}
	if rawLists(t, db) != before {
		t.Error("persisted collection changed on not-found add")
	}
}

func TestUpdateItem(t *testing.T) {
	svc, _, _ := setupService(t)

	list, _ := svc.CreateList("Groceries")
	item, _ := svc.AddItem(list.ID, NewItem{Name: "Milk", Quantity: 1})

	time.Sleep(5 * time.Millisecond)

	name := "Whole Milk"
	qty := 2
	updated, err := svc.UpdateItem(list.ID, item.ID, ItemUpdate{Name: &name, Quantity: &qty})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if updated == nil {
		t.Fatal("expected updated item, got nil")
	}
	if updated.Name != "Whole Milk" || updated.Quantity != 2 {
		t.Errorf("item = %+v, want Whole Milk x2", updated)
	}
	if !updated.UpdatedAt.After(item.UpdatedAt) {
		t.Error("item updated_at should advance")
	}

	got, _ := svc.GetList(list.ID)
	if !got.UpdatedAt.After(item.UpdatedAt) {
		t.Error("parent list updated_at should advance on item update")
	}
}

func TestUpdateItemNotFound(t *testing.T) {
	svc, _, db := setupService(t)

	list, _ := svc.CreateList("Groceries")
	svc.AddItem(list.ID, NewItem{Name: "Milk"})
	before := rawLists(t, db)

	name := "x"

	got, err := svc.UpdateItem(list.ID, "missing-item", ItemUpdate{Name: &name})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if got != nil {
		t.Error("expected nil for missing item")
	}

	got, err = svc.UpdateItem("missing-list", "missing-item", ItemUpdate{Name: &name})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if got != nil {
		t.Error("expected nil for missing list")
	}

	if rawLists(t, db) != before {
		t.Error("persisted collection changed on not-found update")
	}
}

func TestDeleteItemNotFound(t *testing.T) {
	svc, _, db := setupService(t)

	list, _ := svc.CreateList("Groceries")
	svc.AddItem(list.ID, NewItem{Name: "Milk"})
	before := rawLists(t, db)

	deleted, err := svc.DeleteItem(list.ID, "missing-item")
	if err != nil {
		t.Fatalf("delete item: %v", err)
	}
	if deleted {
		t.Error("expected not found")
	}

	deleted, err = svc.DeleteItem("missing-list", "missing-item")
	if err != nil {
		t.Fatalf("delete item: %v", err)
	}
	if deleted {
		t.Error("expected not found for missing list")
	}

	if rawLists(t, db) != before {
		t.Error("persisted collection changed on not-found delete")
	}
}

func TestEndToEndScenario(t *testing.T) {
	svc, ds, _ := setupService(t)

	categories, err := ds.GetCategories()
	if err != nil {
		t.Fatalf("get categories: %v", err)
	}

	list, err := svc.CreateList("Groceries")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	// Find the Dairy & Eggs category id the way the add-item form does.
	var dairyID string
	for _, c := range categories {
		if c.Name == "Dairy & Eggs" {
			dairyID = c.ID
		}
	}
	if dairyID == "" {
		t.Fatal("Dairy & Eggs not in seed set")
	}

	time.Sleep(5 * time.Millisecond)

	item, err := svc.AddItem(list.ID, NewItem{
		Name:       "Milk",
		Quantity:   ParseQuantity("2"),
		CategoryID: dairyID,
		Category:   CategoryName(dairyID, categories),
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if item.Name != "Milk" || item.Quantity != 2 || item.Category != "Dairy & Eggs" || item.IsCompleted {
		t.Fatalf("item = %+v, want Milk x2 Dairy & Eggs pending", item)
	}

	got, _ := svc.GetList(list.ID)
	if len(got.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got.Items))
	}
	beforeToggle := got.UpdatedAt

	time.Sleep(5 * time.Millisecond)

	toggled, err := svc.ToggleItem(list.ID, item.ID)
	if err != nil {
		t.Fatalf("toggle item: %v", err)
	}
	if !toggled.IsCompleted {
		t.Error("expected completed after toggle")
	}

	got, _ = svc.GetList(list.ID)
	if !got.UpdatedAt.After(beforeToggle) {
		t.Error("list updated_at should advance on toggle")
	}

	deleted, err := svc.DeleteItem(list.ID, item.ID)
	if err != nil {
		t.Fatalf("delete item: %v", err)
	}
	if !deleted {
		t.Fatal("expected deleted")
	}

	got, _ = svc.GetList(list.ID)
	if len(got.Items) != 0 {
		t.Fatalf("expected 0 items, got %d", len(got.Items))
	}
}

func TestConcurrentAddItems(t *testing.T) {
	svc, _, _ := setupService(t)

	created, err := svc.CreateList("Groceries")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	// Concurrent read-modify-write cycles must not lose items.
	const workers = 32
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if _, err := svc.AddItem(created.ID, NewItem{Name: fmt.Sprintf("item-%d", n)}); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("add item: %v", err)
	}

	got, err := svc.GetList(created.ID)
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	if len(got.Items) != workers {
		t.Fatalf("expected %d items, got %d", workers, len(got.Items))
	}

	seen := map[string]bool{}
	for _, item := range got.Items {
		if seen[item.Name] {
			t.Errorf("item %q persisted twice", item.Name)
		}
		seen[item.Name] = true
	}
}

func TestConcurrentMixedMutations(t *testing.T) {
	svc, _, _ := setupService(t)

	created, err := svc.CreateList("Groceries")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	item, err := svc.AddItem(created.ID, NewItem{Name: "Milk"})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			switch n % 3 {
			case 0:
				svc.AddItem(created.ID, NewItem{Name: fmt.Sprintf("extra-%d", n)})
			case 1:
				svc.ToggleItem(created.ID, item.ID)
			case 2:
				svc.CreateList(fmt.Sprintf("list-%d", n))
			}
		}(i)
	}
	wg.Wait()

	got, err := svc.GetList(created.ID)
	if err != nil {
		t.Fatalf("get list: %v", err)
	}
	// 1 original + 6 adds (n = 0,3,6,9,12,15).
	if len(got.Items) != 7 {
		t.Errorf("expected 7 items, got %d", len(got.Items))
	}

	lists, err := svc.Lists()
	if err != nil {
		t.Fatalf("lists: %v", err)
	}
	// 1 original + 5 creates (n = 2,5,8,11,14).
	if len(lists) != 6 {
		t.Errorf("expected 6 lists, got %d", len(lists))
	}
}

func TestCategoryFallbackOnUnknownID(t *testing.T) {
	svc, ds, _ := setupService(t)

	categories, _ := ds.GetCategories()
	list, _ := svc.CreateList("Groceries")

	item, err := svc.AddItem(list.ID, NewItem{
		Name:       "Mystery",
		Quantity:   1,
		CategoryID: "does-not-exist",
		Category:   CategoryName("does-not-exist", categories),
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if item.Category != "Other" {
		t.Errorf("category = %q, want Other", item.Category)
	}
}
