package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/crea-eci/azzurra/internal/models"
	"github.com/crea-eci/azzurra/internal/service"
)

// ExperiencesService validates and stores session feedback.
type ExperiencesService interface {
	Create(ctx context.Context, req *models.CreateExperienceRequest) (*models.Experience, error)
	List(ctx context.Context, limit, offset int) ([]models.Experience, int64, error)
}

// ExperiencesHandler handles session-feedback requests.
type ExperiencesHandler struct {
	service ExperiencesService
}

// NewExperiencesHandler creates an experiences handler.
func NewExperiencesHandler(service ExperiencesService) *ExperiencesHandler {
	return &ExperiencesHandler{service: service}
}

// Create handles POST /v1/experiences.
func (h *ExperiencesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateExperienceRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		RespondBadRequest(w, "Invalid request body")

		return
	}

	exp, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingProfile),
			errors.Is(err, service.ErrInvalidDuration),
			errors.Is(err, service.ErrInvalidRating),
			errors.Is(err, service.ErrInvalidMode):
			RespondBadRequest(w, err.Error())
		default:
			RespondInternalServerError(w, "Failed to save experience")
		}

		return
	}

	RespondSuccess(w, http.StatusCreated, exp)
}

// List handles GET /v1/experiences with limit/offset paging.
func (h *ExperiencesHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r.URL.Query().Get("limit"))
	offset := parseIntParam(r.URL.Query().Get("offset"))

	experiences, total, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		RespondInternalServerError(w, "Failed to list experiences")

		return
	}

	RespondList(w, http.StatusOK, experiences, ListMeta{
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// parseIntParam returns the query param as a non-negative int; default 0.
func parseIntParam(s string) int {
	if s == "" {
		return 0
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}

	return n
}
