package handler

import (
	"net/http"
	"strings"

	"github.com/dukerupert/listkeep/internal/foodfacts"
)

type FoodHandler struct {
	client *foodfacts.Client
}

func NewFoodHandler(client *foodfacts.Client) *FoodHandler {
	return &FoodHandler{client: client}
}

// Search handles GET /api/food/search?q=
func (h *FoodHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results := h.client.SearchFood(r.Context(), query)
	writeJSON(w, http.StatusOK, results)
}

// Details handles GET /api/food/{id}
func (h *FoodHandler) Details(w http.ResponseWriter, r *http.Request) {
	details := h.client.GetFoodDetails(r.Context(), r.PathValue("id"))
	if details == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "food not found"})
		return
	}
	writeJSON(w, http.StatusOK, details)
}

// Health handles GET /api/food/health?name=
func (h *FoodHandler) Health(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	writeJSON(w, http.StatusOK, h.client.HealthInfo(name))
}

// Status handles GET /api/food/status
func (h *FoodHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.client.APIStatus())
}
