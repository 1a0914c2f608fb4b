package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crea-eci/azzurra/internal/models"
)

// ExperiencesRepository handles the append-only session-feedback table.
type ExperiencesRepository struct {
	db *pgxpool.Pool
}

// NewExperiencesRepository creates an experiences repository.
func NewExperiencesRepository(db *pgxpool.Pool) *ExperiencesRepository {
	return &ExperiencesRepository{db: db}
}

// Insert stores one experience record and returns it with id and
// created_at filled in. Records are never updated or deleted afterwards.
func (r *ExperiencesRepository) Insert(ctx context.Context, req *models.CreateExperienceRequest) (*models.Experience, error) {
	recordedAt := time.Now()
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}

	mode := req.InteractionMode
	if mode == "" {
		mode = "avatar"
	}

	var exp models.Experience

	err := r.db.QueryRow(ctx, `
		INSERT INTO experiences
			(recorded_at, duration_seconds, interaction_mode, profile, output, feedback, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, recorded_at, duration_seconds, interaction_mode,
			profile, output, feedback, rating, created_at`,
		recordedAt, req.DurationSeconds, mode, req.Profile, req.Output, req.Feedback, req.Rating,
	).Scan(
		&exp.ID, &exp.RecordedAt, &exp.DurationSeconds, &exp.InteractionMode,
		&exp.Profile, &exp.Output, &exp.Feedback, &exp.Rating, &exp.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert experience: %w", err)
	}

	return &exp, nil
}

// List returns experiences newest-first with limit/offset paging, plus
// the total count for the pagination envelope.
func (r *ExperiencesRepository) List(ctx context.Context, limit, offset int) ([]models.Experience, int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, recorded_at, duration_seconds, interaction_mode,
			profile, output, feedback, rating, created_at
		FROM experiences
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list experiences: %w", err)
	}
	defer rows.Close()

	experiences := []models.Experience{}

	for rows.Next() {
		var exp models.Experience

		err := rows.Scan(
			&exp.ID, &exp.RecordedAt, &exp.DurationSeconds, &exp.InteractionMode,
			&exp.Profile, &exp.Output, &exp.Feedback, &exp.Rating, &exp.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan experience: %w", err)
		}

		experiences = append(experiences, exp)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating experiences: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM experiences`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count experiences: %w", err)
	}

	return experiences, total, nil
}

// Overview returns the single-row aggregate for the dashboard header.
func (r *ExperiencesRepository) Overview(ctx context.Context) (*models.OverviewStats, error) {
	var s models.OverviewStats

	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			AVG(duration_seconds),
			MIN(duration_seconds),
			MAX(duration_seconds),
			COUNT(DISTINCT profile->>'region'),
			COUNT(*) FILTER (WHERE feedback IS NOT NULL AND feedback != '')
		FROM experiences`,
	).Scan(&s.TotalExperiences, &s.AvgDuration, &s.MinDuration, &s.MaxDuration,
		&s.UniqueRegions, &s.WithFeedback)
	if err != nil {
		return nil, fmt.Errorf("experiences overview: %w", err)
	}

	return &s, nil
}

// CountByProfileField groups experiences by a JSON profile field
// (e.g. "experience", "region", "dietaryPref") and returns the buckets
// largest-first, capped at limit when limit > 0.
func (r *ExperiencesRepository) CountByProfileField(ctx context.Context, field string, limit int) ([]models.BucketCount, error) {
	query := `
		SELECT profile->>$1, COUNT(*)
		FROM experiences
		WHERE profile->>$1 IS NOT NULL
		GROUP BY profile->>$1
		ORDER BY COUNT(*) DESC`

	args := []any{field}
	if limit > 0 {
		query += ` LIMIT $2`

		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count experiences by %s: %w", field, err)
	}
	defer rows.Close()

	return scanBucketCounts(rows, field)
}

// RatedCountByProfileField is CountByProfileField with the per-bucket
// average rating, for the admin analytics breakdowns.
func (r *ExperiencesRepository) RatedCountByProfileField(ctx context.Context, field string) ([]models.RatedBucketCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT profile->>$1, COUNT(*), AVG(rating)
		FROM experiences
		WHERE profile->>$1 IS NOT NULL
		GROUP BY profile->>$1
		ORDER BY COUNT(*) DESC`, field)
	if err != nil {
		return nil, fmt.Errorf("rated count by %s: %w", field, err)
	}
	defer rows.Close()

	var out []models.RatedBucketCount

	for rows.Next() {
		var b models.RatedBucketCount
		if err := rows.Scan(&b.Label, &b.Count, &b.AvgRating); err != nil {
			return nil, fmt.Errorf("scan rated bucket: %w", err)
		}

		out = append(out, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rated buckets: %w", err)
	}

	return out, nil
}

// ModeStats aggregates sessions per interaction mode. Rows with no mode
// recorded count as "avatar" (the column default predates the chat mode).
func (r *ExperiencesRepository) ModeStats(ctx context.Context) ([]models.ModeStats, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			COALESCE(interaction_mode, 'avatar'),
			COUNT(*),
			AVG(duration_seconds),
			AVG(rating),
			COUNT(*) FILTER (WHERE rating >= 4),
			COUNT(*) FILTER (WHERE feedback IS NOT NULL AND feedback != '')
		FROM experiences
		GROUP BY COALESCE(interaction_mode, 'avatar')
		ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("mode stats: %w", err)
	}
	defer rows.Close()

	var out []models.ModeStats

	for rows.Next() {
		var m models.ModeStats

		err := rows.Scan(&m.Mode, &m.TotalSessions, &m.AvgDuration, &m.AvgRating,
			&m.HighRatings, &m.WithFeedback)
		if err != nil {
			return nil, fmt.Errorf("scan mode stats: %w", err)
		}

		out = append(out, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mode stats: %w", err)
	}

	return out, nil
}

// ModeTrend returns weekly session counts per mode over the given window.
func (r *ExperiencesRepository) ModeTrend(ctx context.Context, since time.Time) ([]models.ModeTrendPoint, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			DATE_TRUNC('week', recorded_at),
			COALESCE(interaction_mode, 'avatar'),
			COUNT(*),
			AVG(rating)
		FROM experiences
		WHERE recorded_at >= $1
		GROUP BY DATE_TRUNC('week', recorded_at), COALESCE(interaction_mode, 'avatar')
		ORDER BY DATE_TRUNC('week', recorded_at) DESC, COALESCE(interaction_mode, 'avatar')`,
		since)
	if err != nil {
		return nil, fmt.Errorf("mode trend: %w", err)
	}
	defer rows.Close()

	var out []models.ModeTrendPoint

	for rows.Next() {
		var p models.ModeTrendPoint
		if err := rows.Scan(&p.Week, &p.Mode, &p.Sessions, &p.AvgRating); err != nil {
			return nil, fmt.Errorf("scan mode trend point: %w", err)
		}

		out = append(out, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mode trend: %w", err)
	}

	return out, nil
}

// ConversationStats returns the general aggregate for the admin view.
func (r *ExperiencesRepository) ConversationStats(ctx context.Context) (*models.ConversationStats, error) {
	var s models.ConversationStats

	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			AVG(duration_seconds),
			AVG(rating),
			COUNT(*) FILTER (WHERE rating >= 4),
			COUNT(*) FILTER (WHERE rating <= 2),
			COUNT(*) FILTER (WHERE feedback IS NOT NULL AND feedback != '')
		FROM experiences`,
	).Scan(&s.TotalConversations, &s.AvgDuration, &s.AvgRating,
		&s.PositiveRatings, &s.NegativeRatings, &s.WithComments)
	if err != nil {
		return nil, fmt.Errorf("conversation stats: %w", err)
	}

	return &s, nil
}

// RatingDistribution returns counts per rating value (1..5).
func (r *ExperiencesRepository) RatingDistribution(ctx context.Context) ([]models.BucketCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT rating::text, COUNT(*)
		FROM experiences
		WHERE rating IS NOT NULL
		GROUP BY rating
		ORDER BY rating`)
	if err != nil {
		return nil, fmt.Errorf("rating distribution: %w", err)
	}
	defer rows.Close()

	return scanBucketCounts(rows, "rating")
}

// HourlyDistribution returns session counts per hour of day.
func (r *ExperiencesRepository) HourlyDistribution(ctx context.Context) ([]models.BucketCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT EXTRACT(HOUR FROM recorded_at)::int::text, COUNT(*)
		FROM experiences
		GROUP BY EXTRACT(HOUR FROM recorded_at)
		ORDER BY EXTRACT(HOUR FROM recorded_at)`)
	if err != nil {
		return nil, fmt.Errorf("hourly distribution: %w", err)
	}
	defer rows.Close()

	return scanBucketCounts(rows, "hour")
}

// DailyTrend returns per-day counts and average rating since the given time.
func (r *ExperiencesRepository) DailyTrend(ctx context.Context, since time.Time) ([]models.DailyTrendPoint, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DATE(recorded_at), COUNT(*), AVG(rating)
		FROM experiences
		WHERE recorded_at >= $1
		GROUP BY DATE(recorded_at)
		ORDER BY DATE(recorded_at) DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("daily trend: %w", err)
	}
	defer rows.Close()

	var out []models.DailyTrendPoint

	for rows.Next() {
		var p models.DailyTrendPoint
		if err := rows.Scan(&p.Date, &p.Count, &p.AvgRating); err != nil {
			return nil, fmt.Errorf("scan daily trend point: %w", err)
		}

		out = append(out, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily trend: %w", err)
	}

	return out, nil
}

// AddRatingColumn is the one-shot migration adding the rating column.
func (r *ExperiencesRepository) AddRatingColumn(ctx context.Context) error {
	_, err := r.db.Exec(ctx,
		`ALTER TABLE experiences ADD COLUMN IF NOT EXISTS rating INTEGER`)
	if err != nil {
		return fmt.Errorf("add rating column: %w", err)
	}

	return nil
}
