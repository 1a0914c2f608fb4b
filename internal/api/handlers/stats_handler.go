package handlers

import (
	"context"
	"net/http"

	"github.com/crea-eci/azzurra/internal/models"
)

// StatsService composes the dashboard and analytics aggregates.
type StatsService interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
	ConversationAnalytics(ctx context.Context) (*models.ConversationAnalytics, error)
}

// StatsHandler serves the dashboard and admin analytics aggregates.
type StatsHandler struct {
	service StatsService
}

// NewStatsHandler creates a stats handler.
func NewStatsHandler(service StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Dashboard handles GET /v1/stats.
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Dashboard(r.Context())
	if err != nil {
		RespondInternalServerError(w, "Failed to compute dashboard stats")

		return
	}

	RespondSuccess(w, http.StatusOK, stats)
}

// ConversationAnalytics handles GET /v1/analytics/conversations.
func (h *StatsHandler) ConversationAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.service.ConversationAnalytics(r.Context())
	if err != nil {
		RespondInternalServerError(w, "Failed to compute conversation analytics")

		return
	}

	RespondSuccess(w, http.StatusOK, analytics)
}
