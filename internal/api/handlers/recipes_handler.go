package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/crea-eci/azzurra/internal/models"
)

// RecipeSearchService finds recipe versions by name or similarity.
type RecipeSearchService interface {
	FindByName(ctx context.Context, name string) []models.RecipeVersion
	FindSimilar(ctx context.Context, queryText string, limit int) []models.RecipeVersion
}

// RecipesHandler serves direct recipe lookups for the browsing UI.
type RecipesHandler struct {
	service RecipeSearchService
}

// NewRecipesHandler creates a recipes handler.
func NewRecipesHandler(service RecipeSearchService) *RecipesHandler {
	return &RecipesHandler{service: service}
}

// RecipeSearchRequest is the body for POST /v1/recipes/search. When
// Semantic is set the query runs through the embedding index; otherwise
// it is an exact-name lookup.
type RecipeSearchRequest struct {
	Query    string `json:"query"`
	TopK     int    `json:"topK"`
	Semantic bool   `json:"semantic"`
}

// RecipeSearchResponse is the search reply.
type RecipeSearchResponse struct {
	Results []models.RecipeVersion `json:"results"`
}

const maxSearchTopK = 20

// Search handles POST /v1/recipes/search.
func (h *RecipesHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req RecipeSearchRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		RespondBadRequest(w, "Invalid request body")

		return
	}

	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		RespondBadRequest(w, "query is required")

		return
	}

	topK := req.TopK
	if topK <= 0 {
		topK = 5
	}

	if topK > maxSearchTopK {
		topK = maxSearchTopK
	}

	var results []models.RecipeVersion
	if req.Semantic {
		results = h.service.FindSimilar(r.Context(), req.Query, topK)
	} else {
		results = h.service.FindByName(r.Context(), req.Query)
	}

	if results == nil {
		results = []models.RecipeVersion{}
	}

	RespondSuccess(w, http.StatusOK, RecipeSearchResponse{Results: results})
}
