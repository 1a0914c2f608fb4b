package models

import "time"

// OverviewStats is the single-row aggregate over all experiences.
type OverviewStats struct {
	TotalExperiences int64    `json:"totalExperiences"`
	AvgDuration      *float64 `json:"avgDuration,omitempty"`
	MinDuration      *float64 `json:"minDuration,omitempty"`
	MaxDuration      *float64 `json:"maxDuration,omitempty"`
	UniqueRegions    int64    `json:"uniqueRegions"`
	WithFeedback     int64    `json:"withFeedback"`
}

// BucketCount is one (label, count) row of a grouped aggregate, e.g.
// experiences per region or per experience level.
type BucketCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// RatedBucketCount is a BucketCount with the bucket's average rating.
type RatedBucketCount struct {
	Label     string   `json:"label"`
	Count     int64    `json:"count"`
	AvgRating *float64 `json:"avgRating,omitempty"`
}

// ModeStats aggregates sessions per interaction mode (avatar vs chat).
type ModeStats struct {
	Mode          string   `json:"mode"`
	TotalSessions int64    `json:"totalSessions"`
	AvgDuration   *float64 `json:"avgDuration,omitempty"`
	AvgRating     *float64 `json:"avgRating,omitempty"`
	HighRatings   int64    `json:"highRatings"`
	WithFeedback  int64    `json:"withFeedback"`
}

// ModeTrendPoint is one (week, mode) point of the recent usage trend.
type ModeTrendPoint struct {
	Week      time.Time `json:"week"`
	Mode      string    `json:"mode"`
	Sessions  int64     `json:"sessions"`
	AvgRating *float64  `json:"avgRating,omitempty"`
}

// ConversationStats is the general aggregate for the admin analytics view.
type ConversationStats struct {
	TotalConversations int64    `json:"totalConversations"`
	AvgDuration        *float64 `json:"avgDuration,omitempty"`
	AvgRating          *float64 `json:"avgRating,omitempty"`
	PositiveRatings    int64    `json:"positiveRatings"`
	NegativeRatings    int64    `json:"negativeRatings"`
	WithComments       int64    `json:"withComments"`
}

// DailyTrendPoint is one day of the 30-day conversation trend.
type DailyTrendPoint struct {
	Date      time.Time `json:"date"`
	Count     int64     `json:"count"`
	AvgRating *float64  `json:"avgRating,omitempty"`
}

// DashboardStats is the composite payload of the public dashboard.
type DashboardStats struct {
	Overview          *OverviewStats   `json:"overview"`
	ByExperienceLevel []BucketCount    `json:"byExperienceLevel"`
	ByRegion          []BucketCount    `json:"byRegion"`
	ByDietaryPref     []BucketCount    `json:"byDietaryPref"`
	Modes             []ModeStats      `json:"modes"`
	ModeTrend         []ModeTrendPoint `json:"modeTrend"`
}

// ConversationAnalytics is the composite payload of the admin analytics
// view.
type ConversationAnalytics struct {
	Stats              *ConversationStats `json:"stats"`
	RatingDistribution []BucketCount      `json:"ratingDistribution"`
	ByExperienceLevel  []RatedBucketCount `json:"byExperienceLevel"`
	ByRegion           []RatedBucketCount `json:"byRegion"`
	HourlyDistribution []BucketCount      `json:"hourlyDistribution"`
	DailyTrend         []DailyTrendPoint  `json:"dailyTrend"`
}

// FunFact is one generated curiosity about the recipe archive.
type FunFact struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}
