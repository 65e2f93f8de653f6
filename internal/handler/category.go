package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/listkeep/internal/model"
	"github.com/dukerupert/listkeep/internal/store"
)

type CategoryHandler struct {
	data   *store.DataStore
	logger *slog.Logger
}

func NewCategoryHandler(ds *store.DataStore, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{data: ds, logger: logger}
}

// ListCategories handles GET /api/categories. The first read seeds the
// default set.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.data.GetCategories()
	if err != nil {
		h.logger.Error("get categories", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load categories"})
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// ReplaceCategories handles PUT /api/categories, replacing the whole set.
func (h *CategoryHandler) ReplaceCategories(w http.ResponseWriter, r *http.Request) {
	var categories []model.Category
	if err := json.NewDecoder(r.Body).Decode(&categories); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	for _, c := range categories {
		if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Name) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "every category needs an id and a name"})
			return
		}
	}

	if err := h.data.SaveCategories(categories); err != nil {
		h.logger.Error("save categories", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save categories"})
		return
	}
	writeJSON(w, http.StatusOK, categories)
}
