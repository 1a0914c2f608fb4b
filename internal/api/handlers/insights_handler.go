package handlers

import (
	"context"
	"net/http"

	"github.com/crea-eci/azzurra/internal/models"
)

// InsightsService derives fun facts from the recipe archive.
type InsightsService interface {
	FunFacts(ctx context.Context) ([]models.FunFact, error)
}

// InsightsHandler serves archive curiosities for the dashboard.
type InsightsHandler struct {
	service InsightsService
}

// NewInsightsHandler creates an insights handler.
func NewInsightsHandler(service InsightsService) *InsightsHandler {
	return &InsightsHandler{service: service}
}

// FunFacts handles GET /v1/fun-facts.
func (h *InsightsHandler) FunFacts(w http.ResponseWriter, r *http.Request) {
	facts, err := h.service.FunFacts(r.Context())
	if err != nil {
		RespondInternalServerError(w, "Failed to compute fun facts")

		return
	}

	RespondSuccess(w, http.StatusOK, facts)
}
