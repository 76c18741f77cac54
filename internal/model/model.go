// Package model holds the data types shared across the analysis pipeline.
// Everything here is plain data; behavior lives with the stage that owns it.
package model

import "time"

// Window identifies the time range of one interest series.
type Window string

const (
	WindowWeek    Window = "7d"
	WindowMonth   Window = "1m"
	WindowQuarter Window = "3m"
)

// TimeSeriesPoint is one observation of interest in [0,100].
type TimeSeriesPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// SourceSeries is one fetched (or simulated) timeline for a keyword/window
// pair. Simulated marks stand-in data produced after every fetch failed.
type SourceSeries struct {
	Keyword   string            `json:"keyword"`
	Source    string            `json:"source"`
	Window    Window            `json:"window"`
	Points    []TimeSeriesPoint `json:"points"`
	Simulated bool              `json:"simulated,omitempty"`
}

// AggregatedTrend is a keyword's merged growth across its windows. Timeline
// carries the most granular window's points for downstream display.
type AggregatedTrend struct {
	Keyword       string            `json:"keyword"`
	GrowthPercent float64           `json:"growth_percent"`
	Timeline      []TimeSeriesPoint `json:"timeline,omitempty"`
}

// TextItem is one recent article or discussion found for the niche.
type TextItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Summary     string `json:"summary,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	Source      string `json:"source,omitempty"`
}

// Opportunity is one synthesized content recommendation. EstimatedGrowth is
// the generation capability's own 0-100 estimate; PriorityScore is assigned
// later by the ranker and is what ordering follows.
type Opportunity struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Justification   string   `json:"justification"`
	SuggestedTitles []string `json:"suggested_titles"`
	Approach        string   `json:"approach,omitempty"`
	EstimatedGrowth float64  `json:"estimated_growth,omitempty"`
	PriorityScore   int      `json:"priority_score"`
}

// PredictionDetail is the forecast for one keyword.
type PredictionDetail struct {
	Keyword         string    `json:"keyword"`
	CurrentValue    float64   `json:"current_value"`
	PredictedValues []float64 `json:"predicted_values"`
	Explanation     string    `json:"explanation"`
}

// InterventionPoint is one timed recommended action over a keyword subset.
type InterventionPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Keywords  []string  `json:"keywords"`
}

// TrendingKeyword pairs a keyword with its aggregated growth for the
// discovery result.
type TrendingKeyword struct {
	Keyword string  `json:"keyword"`
	Growth  float64 `json:"growth"`
}

// TrendsResult is the outcome of the trend-discovery path.
type TrendsResult struct {
	Niche            string            `json:"niche"`
	Keywords         []string          `json:"keywords"`
	TrendingKeywords []TrendingKeyword `json:"trending_keywords"`
	Opportunities    []Opportunity     `json:"opportunities"`
	RecentArticles   []TextItem        `json:"recent_articles,omitempty"`
}

// PredictionResult is the outcome of the forecast path. Fallback marks a
// result assembled after the pipeline itself failed.
type PredictionResult struct {
	Niche              string              `json:"niche"`
	Keywords           []string            `json:"keywords"`
	Predictions        []PredictionDetail  `json:"predictions"`
	InterventionPoints []InterventionPoint `json:"intervention_points,omitempty"`
	NextActions        []string            `json:"next_actions"`
	ConfidenceScore    int                 `json:"confidence_score"`
	Fallback           bool                `json:"fallback,omitempty"`
}

// CompetitorInsight is the scraped headline structure of one competitor page.
type CompetitorInsight struct {
	URL    string   `json:"url"`
	Titles []string `json:"titles,omitempty"`
	Error  string   `json:"error,omitempty"`
}
