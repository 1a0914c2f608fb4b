package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crea-eci/azzurra/internal/models"
)

type mockStatsRepo struct {
	overviewFunc                 func(ctx context.Context) (*models.OverviewStats, error)
	countByProfileFieldFunc      func(ctx context.Context, field string, limit int) ([]models.BucketCount, error)
	ratedCountByProfileFieldFunc func(ctx context.Context, field string) ([]models.RatedBucketCount, error)
	modeStatsFunc                func(ctx context.Context) ([]models.ModeStats, error)
	modeTrendFunc                func(ctx context.Context, since time.Time) ([]models.ModeTrendPoint, error)
	conversationStatsFunc        func(ctx context.Context) (*models.ConversationStats, error)
	ratingDistributionFunc       func(ctx context.Context) ([]models.BucketCount, error)
	hourlyDistributionFunc       func(ctx context.Context) ([]models.BucketCount, error)
	dailyTrendFunc               func(ctx context.Context, since time.Time) ([]models.DailyTrendPoint, error)
}

func (m *mockStatsRepo) Overview(ctx context.Context) (*models.OverviewStats, error) {
	return m.overviewFunc(ctx)
}

func (m *mockStatsRepo) CountByProfileField(ctx context.Context, field string, limit int) ([]models.BucketCount, error) {
	return m.countByProfileFieldFunc(ctx, field, limit)
}

func (m *mockStatsRepo) RatedCountByProfileField(ctx context.Context, field string) ([]models.RatedBucketCount, error) {
	return m.ratedCountByProfileFieldFunc(ctx, field)
}

func (m *mockStatsRepo) ModeStats(ctx context.Context) ([]models.ModeStats, error) {
	return m.modeStatsFunc(ctx)
}

func (m *mockStatsRepo) ModeTrend(ctx context.Context, since time.Time) ([]models.ModeTrendPoint, error) {
	return m.modeTrendFunc(ctx, since)
}

func (m *mockStatsRepo) ConversationStats(ctx context.Context) (*models.ConversationStats, error) {
	return m.conversationStatsFunc(ctx)
}

func (m *mockStatsRepo) RatingDistribution(ctx context.Context) ([]models.BucketCount, error) {
	return m.ratingDistributionFunc(ctx)
}

func (m *mockStatsRepo) HourlyDistribution(ctx context.Context) ([]models.BucketCount, error) {
	return m.hourlyDistributionFunc(ctx)
}

func (m *mockStatsRepo) DailyTrend(ctx context.Context, since time.Time) ([]models.DailyTrendPoint, error) {
	return m.dailyTrendFunc(ctx, since)
}

func healthyStatsRepo() *mockStatsRepo {
	return &mockStatsRepo{
		overviewFunc: func(_ context.Context) (*models.OverviewStats, error) {
			return &models.OverviewStats{TotalExperiences: 42}, nil
		},
		countByProfileFieldFunc: func(_ context.Context, field string, _ int) ([]models.BucketCount, error) {
			return []models.BucketCount{{Label: field, Count: 1}}, nil
		},
		ratedCountByProfileFieldFunc: func(_ context.Context, field string) ([]models.RatedBucketCount, error) {
			return []models.RatedBucketCount{{Label: field, Count: 1}}, nil
		},
		modeStatsFunc: func(_ context.Context) ([]models.ModeStats, error) {
			return []models.ModeStats{{Mode: "avatar", TotalSessions: 40}}, nil
		},
		modeTrendFunc: func(_ context.Context, _ time.Time) ([]models.ModeTrendPoint, error) {
			return []models.ModeTrendPoint{}, nil
		},
		conversationStatsFunc: func(_ context.Context) (*models.ConversationStats, error) {
			return &models.ConversationStats{TotalConversations: 42}, nil
		},
		ratingDistributionFunc: func(_ context.Context) ([]models.BucketCount, error) {
			return []models.BucketCount{{Label: "5", Count: 20}}, nil
		},
		hourlyDistributionFunc: func(_ context.Context) ([]models.BucketCount, error) {
			return []models.BucketCount{{Label: "10", Count: 3}}, nil
		},
		dailyTrendFunc: func(_ context.Context, _ time.Time) ([]models.DailyTrendPoint, error) {
			return []models.DailyTrendPoint{}, nil
		},
	}
}

func TestStatsServiceDashboard(t *testing.T) {
	t.Run("composes all sections", func(t *testing.T) {
		svc := NewStatsService(StatsServiceParams{Repo: healthyStatsRepo()})

		stats, err := svc.Dashboard(context.Background())
		require.NoError(t, err)

		assert.Equal(t, int64(42), stats.Overview.TotalExperiences)
		assert.Equal(t, []models.BucketCount{{Label: "experience", Count: 1}}, stats.ByExperienceLevel)
		assert.Equal(t, []models.BucketCount{{Label: "region", Count: 1}}, stats.ByRegion)
		assert.Equal(t, []models.BucketCount{{Label: "dietaryPref", Count: 1}}, stats.ByDietaryPref)
		assert.Len(t, stats.Modes, 1)
	})

	t.Run("uses the trend window from the injected clock", func(t *testing.T) {
		now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

		var gotSince time.Time

		repo := healthyStatsRepo()
		repo.modeTrendFunc = func(_ context.Context, since time.Time) ([]models.ModeTrendPoint, error) {
			gotSince = since

			return nil, nil
		}

		svc := NewStatsService(StatsServiceParams{Repo: repo, Now: func() time.Time { return now }})

		_, err := svc.Dashboard(context.Background())
		require.NoError(t, err)
		assert.Equal(t, now.Add(-modeTrendWindow), gotSince)
	})

	t.Run("fails when any query fails", func(t *testing.T) {
		repo := healthyStatsRepo()
		repo.modeStatsFunc = func(_ context.Context) ([]models.ModeStats, error) {
			return nil, errors.New("connection reset")
		}

		svc := NewStatsService(StatsServiceParams{Repo: repo})

		_, err := svc.Dashboard(context.Background())
		assert.ErrorContains(t, err, "connection reset")
	})
}

func TestStatsServiceConversationAnalytics(t *testing.T) {
	t.Run("composes all sections", func(t *testing.T) {
		svc := NewStatsService(StatsServiceParams{Repo: healthyStatsRepo()})

		analytics, err := svc.ConversationAnalytics(context.Background())
		require.NoError(t, err)

		assert.Equal(t, int64(42), analytics.Stats.TotalConversations)
		assert.Equal(t, []models.BucketCount{{Label: "5", Count: 20}}, analytics.RatingDistribution)
		assert.Equal(t, []models.RatedBucketCount{{Label: "experience", Count: 1}}, analytics.ByExperienceLevel)
		assert.Equal(t, []models.RatedBucketCount{{Label: "region", Count: 1}}, analytics.ByRegion)
		assert.Len(t, analytics.HourlyDistribution, 1)
	})

	t.Run("fails when any query fails", func(t *testing.T) {
		repo := healthyStatsRepo()
		repo.dailyTrendFunc = func(_ context.Context, _ time.Time) ([]models.DailyTrendPoint, error) {
			return nil, errors.New("timeout")
		}

		svc := NewStatsService(StatsServiceParams{Repo: repo})

		_, err := svc.ConversationAnalytics(context.Background())
		assert.ErrorContains(t, err, "timeout")
	})
}
