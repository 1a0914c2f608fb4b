package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/crea-eci/azzurra/internal/models"
)

// Trend windows for the dashboard and analytics views.
const (
	modeTrendWindow  = 12 * 7 * 24 * time.Hour
	dailyTrendWindow = 30 * 24 * time.Hour
)

const topRegionsLimit = 10

// StatsRepo is the aggregate-query surface over the experiences table.
type StatsRepo interface {
	Overview(ctx context.Context) (*models.OverviewStats, error)
	CountByProfileField(ctx context.Context, field string, limit int) ([]models.BucketCount, error)
	RatedCountByProfileField(ctx context.Context, field string) ([]models.RatedBucketCount, error)
	ModeStats(ctx context.Context) ([]models.ModeStats, error)
	ModeTrend(ctx context.Context, since time.Time) ([]models.ModeTrendPoint, error)
	ConversationStats(ctx context.Context) (*models.ConversationStats, error)
	RatingDistribution(ctx context.Context) ([]models.BucketCount, error)
	HourlyDistribution(ctx context.Context) ([]models.BucketCount, error)
	DailyTrend(ctx context.Context, since time.Time) ([]models.DailyTrendPoint, error)
}

// StatsService composes the dashboard and analytics aggregates. Each
// composite runs its queries concurrently; the first failure cancels the
// rest and fails the whole request, since a partial dashboard is worse
// than an error.
type StatsService struct {
	repo StatsRepo
	now  func() time.Time
}

// StatsServiceParams configures StatsService. Now defaults to time.Now.
type StatsServiceParams struct {
	Repo StatsRepo
	Now  func() time.Time
}

// NewStatsService creates a StatsService.
func NewStatsService(p StatsServiceParams) *StatsService {
	now := p.Now
	if now == nil {
		now = time.Now
	}

	return &StatsService{repo: p.Repo, now: now}
}

// Dashboard returns the public dashboard aggregate.
func (s *StatsService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.Overview, err = s.repo.Overview(ctx)

		return err
	})
	g.Go(func() (err error) {
		stats.ByExperienceLevel, err = s.repo.CountByProfileField(ctx, "experience", 0)

		return err
	})
	g.Go(func() (err error) {
		stats.ByRegion, err = s.repo.CountByProfileField(ctx, "region", topRegionsLimit)

		return err
	})
	g.Go(func() (err error) {
		stats.ByDietaryPref, err = s.repo.CountByProfileField(ctx, "dietaryPref", 0)

		return err
	})
	g.Go(func() (err error) {
		stats.Modes, err = s.repo.ModeStats(ctx)

		return err
	})
	g.Go(func() (err error) {
		stats.ModeTrend, err = s.repo.ModeTrend(ctx, s.now().Add(-modeTrendWindow))

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	return &stats, nil
}

// ConversationAnalytics returns the admin analytics aggregate.
func (s *StatsService) ConversationAnalytics(ctx context.Context) (*models.ConversationAnalytics, error) {
	var analytics models.ConversationAnalytics

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		analytics.Stats, err = s.repo.ConversationStats(ctx)

		return err
	})
	g.Go(func() (err error) {
		analytics.RatingDistribution, err = s.repo.RatingDistribution(ctx)

		return err
	})
	g.Go(func() (err error) {
		analytics.ByExperienceLevel, err = s.repo.RatedCountByProfileField(ctx, "experience")

		return err
	})
	g.Go(func() (err error) {
		analytics.ByRegion, err = s.repo.RatedCountByProfileField(ctx, "region")

		return err
	})
	g.Go(func() (err error) {
		analytics.HourlyDistribution, err = s.repo.HourlyDistribution(ctx)

		return err
	})
	g.Go(func() (err error) {
		analytics.DailyTrend, err = s.repo.DailyTrend(ctx, s.now().Add(-dailyTrendWindow))

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("conversation analytics: %w", err)
	}

	return &analytics, nil
}
