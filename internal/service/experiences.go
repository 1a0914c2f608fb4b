package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/crea-eci/azzurra/internal/models"
)

// Experience validation errors. Handlers map them to 400.
var (
	ErrMissingProfile  = errors.New("profile is required")
	ErrInvalidDuration = errors.New("durationSeconds must be positive")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrInvalidMode     = errors.New("interactionMode must be avatar or chat")
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// ExperiencesRepo is the persistence surface for session feedback.
type ExperiencesRepo interface {
	Insert(ctx context.Context, req *models.CreateExperienceRequest) (*models.Experience, error)
	List(ctx context.Context, limit, offset int) ([]models.Experience, int64, error)
}

// ExperiencesService validates and stores end-of-session feedback.
type ExperiencesService struct {
	repo   ExperiencesRepo
	logger *slog.Logger
}

// ExperiencesServiceParams configures ExperiencesService.
type ExperiencesServiceParams struct {
	Repo   ExperiencesRepo
	Logger *slog.Logger
}

// NewExperiencesService creates an ExperiencesService.
func NewExperiencesService(p ExperiencesServiceParams) *ExperiencesService {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ExperiencesService{repo: p.Repo, logger: logger}
}

// Create validates and persists one experience record.
func (s *ExperiencesService) Create(ctx context.Context, req *models.CreateExperienceRequest) (*models.Experience, error) {
	if err := validateExperience(req); err != nil {
		return nil, err
	}

	exp, err := s.repo.Insert(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create experience: %w", err)
	}

	s.logger.Info("experience recorded",
		"id", exp.ID,
		"mode", exp.InteractionMode,
		"duration_seconds", exp.DurationSeconds,
		"rated", exp.Rating != nil)

	return exp, nil
}

// List returns experiences newest-first with the total count. Limit is
// clamped to [1, 100] and defaults to 50; negative offsets become 0.
func (s *ExperiencesService) List(ctx context.Context, limit, offset int) ([]models.Experience, int64, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	if limit > maxListLimit {
		limit = maxListLimit
	}

	if offset < 0 {
		offset = 0
	}

	return s.repo.List(ctx, limit, offset)
}

func validateExperience(req *models.CreateExperienceRequest) error {
	if len(req.Profile) == 0 || string(req.Profile) == "null" {
		return ErrMissingProfile
	}

	if req.DurationSeconds <= 0 {
		return ErrInvalidDuration
	}

	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return ErrInvalidRating
	}

	switch req.InteractionMode {
	case "", "avatar", "chat":
		return nil
	default:
		return ErrInvalidMode
	}
}
