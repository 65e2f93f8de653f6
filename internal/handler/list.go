package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/listkeep/internal/list"
	"github.com/dukerupert/listkeep/internal/model"
	"github.com/dukerupert/listkeep/internal/push"
	"github.com/dukerupert/listkeep/internal/store"
	"github.com/dukerupert/listkeep/internal/websocket"
)

type ListHandler struct {
	service  *list.Service
	data     *store.DataStore
	hub      *websocket.Hub
	notifier *push.Notifier
	logger   *slog.Logger
}

func NewListHandler(svc *list.Service, ds *store.DataStore, hub *websocket.Hub, notifier *push.Notifier, logger *slog.Logger) *ListHandler {
	return &ListHandler{service: svc, data: ds, hub: hub, notifier: notifier, logger: logger}
}

type listRequest struct {
	Name string `json:"name"`
}

type itemRequest struct {
	Name       string `json:"name"`
	Quantity   string `json:"quantity"`
	Unit       string `json:"unit"`
	CategoryID string `json:"category_id"`
	Category   string `json:"category"`
}

type itemUpdateRequest struct {
	Name        *string `json:"name"`
	Quantity    *int    `json:"quantity"`
	Unit        *string `json:"unit"`
	CategoryID  *string `json:"category_id"`
	Category    *string `json:"category"`
	IsCompleted *bool   `json:"is_completed"`
}

// ListLists handles GET /api/lists
func (h *ListHandler) ListLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.service.Lists()
	if err != nil {
		h.logger.Error("list shopping lists", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load lists"})
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

// CreateList handles POST /api/lists
func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	created, err := h.service.CreateList(req.Name)
	if err != nil {
		h.logger.Error("create list", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create list"})
		return
	}

	h.hub.Broadcast(websocket.NewMessage("list", "created", created.ID, ""))
	writeJSON(w, http.StatusCreated, created)
}

// GetList handles GET /api/lists/{id}
func (h *ListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.GetList(r.PathValue("id"))
	if err != nil {
		h.logger.Error("get list", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load list"})
		return
	}
	if found == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "list not found"})
		return
	}
	writeJSON(w, http.StatusOK, found)
}

// UpdateList handles PUT /api/lists/{id}
func (h *ListHandler) UpdateList(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	updated, err := h.service.UpdateList(r.PathValue("id"), list.ListUpdate{Name: &req.Name})
	if err != nil {
		h.logger.Error("update list", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update list"})
		return
	}
	if updated == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "list not found"})
		return
	}

	h.hub.Broadcast(websocket.NewMessage("list", "updated", updated.ID, ""))
	writeJSON(w, http.StatusOK, updated)
}

// DeleteList handles DELETE /api/lists/{id}
func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	deleted, err := h.service.DeleteList(id)
	if err != nil {
		h.logger.Error("delete list", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete list"})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "list not found"})
		return
	}

	h.hub.Broadcast(websocket.NewMessage("list", "deleted", id, ""))
	w.WriteHeader(http.StatusNoContent)
}

// PartitionedList handles GET /api/lists/{id}/partitioned
func (h *ListHandler) PartitionedList(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.GetList(r.PathValue("id"))
	if err != nil {
		h.logger.Error("get list", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load list"})
		return
	}
	if found == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "list not found"})
		return
	}

	pending, completed := list.SeparateItems(found.Items)
	writeJSON(w, http.StatusOK, map[string][]model.ShoppingItem{
		"pending":   pending,
		"completed": completed,
	})
}

// CreateItem handles POST /api/lists/{list_id}/items
func (h *ListHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("list_id")

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	// Auto-categorize when the client provides neither a category nor an id.
	if req.Category == "" && req.CategoryID == "" {
		req.Category = list.Categorize(req.Name)
	} else if req.Category == "" {
		categories, err := h.data.GetCategories()
		if err != nil {
			h.logger.Error("get categories", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load categories"})
			return
		}
		req.Category = list.CategoryName(req.CategoryID, categories)
	}

	item, err := h.service.AddItem(listID, list.NewItem{
		Name:       req.Name,
		Quantity:   list.ParseQuantity(req.Quantity),
		Unit:       req.Unit,
		CategoryID: req.CategoryID,
		Category:   req.Category,
	})
	if err != nil {
		h.logger.Error("add item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to add item"})
		return
	}
	if item == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "list not found"})
		return
	}

	h.hub.Broadcast(websocket.NewMessage("item", "created", item.ID, listID))
	if h.notifier != nil {
		if parent, err := h.service.GetList(listID); err == nil && parent != nil {
			go h.notifier.NotifyItemAdded(item.Name, parent.Name)
		}
	}

	writeJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PUT /api/lists/{list_id}/items/{id}
func (h *ListHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("list_id")
	itemID := r.PathValue("id")

	var req itemUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name cannot be empty"})
			return
		}
		req.Name = &trimmed
	}

	item, err := h.service.UpdateItem(listID, itemID, list.ItemUpdate{
		Name:        req.Name,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		CategoryID:  req.CategoryID,
		Category:    req.Category,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		h.logger.Error("update item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update item"})
		return
	}
	if item == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	h.hub.Broadcast(websocket.NewMessage("item", "updated", item.ID, listID))
	writeJSON(w, http.StatusOK, item)
}

// ToggleItem handles POST /api/lists/{list_id}/items/{id}/toggle
func (h *ListHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("list_id")
	itemID := r.PathValue("id")

	item, err := h.service.ToggleItem(listID, itemID)
	if err != nil {
		h.logger.Error("toggle item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to toggle item"})
		return
	}
	if item == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	h.hub.Broadcast(websocket.NewMessage("item", "toggled", item.ID, listID))
	writeJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /api/lists/{list_id}/items/{id}
func (h *ListHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	listID := r.PathValue("list_id")
	itemID := r.PathValue("id")

	deleted, err := h.service.DeleteItem(listID, itemID)
	if err != nil {
		h.logger.Error("delete item", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete item"})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return
	}

	h.hub.Broadcast(websocket.NewMessage("item", "deleted", itemID, listID))
	w.WriteHeader(http.StatusNoContent)
}
