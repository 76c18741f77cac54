// Package engine orchestrates the analysis pipeline: collect signals,
// aggregate trends, forecast, synthesize opportunities and predictions, rank,
// schedule interventions, estimate confidence. One request flows through
// once; there are no retry loops and no state kept between requests.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/Tranv-IA/ContenAI/internal/classify"
	"github.com/Tranv-IA/ContenAI/internal/collector"
	"github.com/Tranv-IA/ContenAI/internal/config"
	"github.com/Tranv-IA/ContenAI/internal/forecast"
	"github.com/Tranv-IA/ContenAI/internal/genai"
	"github.com/Tranv-IA/ContenAI/internal/insight"
	"github.com/Tranv-IA/ContenAI/internal/interest"
	"github.com/Tranv-IA/ContenAI/internal/logger"
	"github.com/Tranv-IA/ContenAI/internal/model"
	"github.com/Tranv-IA/ContenAI/internal/rank"
	"github.com/Tranv-IA/ContenAI/internal/schedule"
	"github.com/Tranv-IA/ContenAI/internal/search"
	"github.com/Tranv-IA/ContenAI/internal/search/factory"
	"github.com/Tranv-IA/ContenAI/internal/storage"
	"github.com/Tranv-IA/ContenAI/internal/synthesis"
	"github.com/Tranv-IA/ContenAI/internal/trend"
)

// MaxKeywords bounds one analysis request.
const MaxKeywords = 7

// Options carries the engine's collaborators. Everything is injected so each
// stage can be tested against fakes.
type Options struct {
	Horizon     int
	MaxArticles int
	Interest    interest.Source
	Searcher    search.Searcher
	Generator   genai.Generator
	Classifier  classify.Classifier
	Store       *storage.Storage // optional
}

// Engine runs the pipeline.
type Engine struct {
	horizon     int
	maxArticles int
	collector   *collector.Collector
	insight     *insight.Extractor
	synth       *synthesis.Synthesizer
	ranker      *rank.Ranker
	store       *storage.Storage
}

// New assembles an engine from explicit collaborators.
func New(opts Options) *Engine {
	horizon := opts.Horizon
	if horizon != 3 && horizon != 6 {
		horizon = forecast.DefaultHorizon
	}
	maxArticles := opts.MaxArticles
	if maxArticles <= 0 {
		maxArticles = 5
	}

	return &Engine{
		horizon:     horizon,
		maxArticles: maxArticles,
		collector:   collector.New(opts.Interest, opts.Searcher, opts.Generator),
		insight:     insight.New(opts.Generator),
		synth:       synthesis.New(opts.Generator, horizon),
		ranker:      rank.New(opts.Classifier),
		store:       opts.Store,
	}
}

// NewFromConfig wires the real external capabilities from configuration.
func NewFromConfig(ctx context.Context, cfg *config.Config, store *storage.Storage) (*Engine, error) {
	gen, err := genai.NewClient(ctx, cfg.LLM, cfg.Concurrency)
	if err != nil {
		return nil, fmt.Errorf("generation capability init failed: %w", err)
	}

	searcher, err := factory.NewSearcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("feed source init failed: %w", err)
	}

	return New(Options{
		Horizon:     cfg.Engine.Horizon,
		MaxArticles: cfg.Engine.MaxArticles,
		Interest:    interest.NewClient(cfg.Interest.BaseURL, cfg.Interest.Timeout),
		Searcher:    searcher,
		Generator:   gen,
		Classifier:  classify.NewClient(cfg.Classifier),
		Store:       store,
	}), nil
}

// GetTrendsForNiche runs the trend-discovery path: collect interest series
// and recent articles, aggregate growth per keyword, synthesize and rank
// content opportunities.
func (e *Engine) GetTrendsForNiche(ctx context.Context, niche string, keywords []string) (*model.TrendsResult, error) {
	if err := validateKeywords(keywords); err != nil {
		return nil, err
	}
	logger.Log.Infof("analyzing niche [%s] with %d keywords", niche, len(keywords))

	// Data fetches fan out in parallel inside the collector; both calls join
	// before any generation happens.
	series := e.collector.CollectSeries(ctx, keywords)
	articles := e.collector.CollectTextItems(ctx, niche, e.maxArticles)

	trends := trend.Aggregate(series)

	titles := make([]string, 0, len(articles))
	for _, a := range articles {
		titles = append(titles, a.Title)
	}

	// Generation calls run serially from here on.
	opportunities := e.synth.Opportunities(ctx, niche, trends, titles)
	opportunities = e.ranker.Rank(ctx, opportunities)

	trending := make([]model.TrendingKeyword, 0, len(trends))
	for _, t := range trends {
		trending = append(trending, model.TrendingKeyword{Keyword: t.Keyword, Growth: t.GrowthPercent})
	}

	return &model.TrendsResult{
		Niche:            niche,
		Keywords:         keywords,
		TrendingKeywords: trending,
		Opportunities:    opportunities,
		RecentArticles:   articles,
	}, nil
}

// PredictTrends runs the forecast path. It always returns a schema-conformant
// result: any failure that escapes the per-stage fallbacks is recovered into
// the labeled fallback result.
func (e *Engine) PredictTrends(ctx context.Context, niche string, keywords []string, historical map[string][]model.TimeSeriesPoint, recentArticles []model.TextItem) (result *model.PredictionResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorf("prediction pipeline failed [%s]: %v", niche, r)
			result = fallbackPrediction(niche, keywords, e.horizon)
		}
	}()

	if len(keywords) > MaxKeywords {
		keywords = keywords[:MaxKeywords]
	}

	raw := make(map[string][]float64, len(keywords))
	current := make(map[string]float64, len(keywords))
	for _, keyword := range keywords {
		points := historical[keyword]
		raw[keyword] = forecast.Project(points, e.horizon)
		if len(points) > 0 {
			current[keyword] = points[len(points)-1].Value
		} else {
			current[keyword] = 50
		}
	}

	confidence := forecast.Confidence(raw)

	titles := make([]string, 0, len(recentArticles))
	for _, a := range recentArticles {
		titles = append(titles, a.Title)
	}
	commentary := e.insight.Commentary(ctx, niche, titles)

	details, nextActions := e.synth.Predictions(ctx, niche, keywords, raw, current, commentary)
	interventions := schedule.Plan(time.Now(), details)

	result = &model.PredictionResult{
		Niche:              niche,
		Keywords:           keywords,
		Predictions:        details,
		InterventionPoints: interventions,
		NextActions:        nextActions,
		ConfidenceScore:    confidence,
	}

	if e.store != nil {
		if err := e.store.SavePredictionRun(result); err != nil {
			logger.Log.Errorf("failed to persist prediction run [%s]: %v", niche, err)
		}
	}

	return result
}

// CollectHistorical fetches the interest series for the given keywords and
// returns the most granular window per keyword. Callers that already hold
// historical data pass it to PredictTrends directly; this is for one-shot
// runs that chain discovery into prediction.
func (e *Engine) CollectHistorical(ctx context.Context, keywords []string) map[string][]model.TimeSeriesPoint {
	series := e.collector.CollectSeries(ctx, keywords)

	granularity := map[model.Window]int{
		model.WindowQuarter: 1,
		model.WindowMonth:   2,
		model.WindowWeek:    3,
	}

	historical := make(map[string][]model.TimeSeriesPoint, len(keywords))
	for keyword, list := range series {
		best := -1
		for _, s := range list {
			if rank := granularity[s.Window]; rank > best && len(s.Points) > 0 {
				best = rank
				historical[keyword] = s.Points
			}
		}
	}
	return historical
}

func validateKeywords(keywords []string) error {
	if len(keywords) == 0 {
		return fmt.Errorf("at least one keyword is required")
	}
	if len(keywords) > MaxKeywords {
		return fmt.Errorf("at most %d keywords are supported, got %d", MaxKeywords, len(keywords))
	}
	return nil
}

// fallbackPrediction is the clearly-labeled result for a total pipeline
// failure: fixed low confidence, default forecasts, generic actions.
func fallbackPrediction(niche string, keywords []string, horizon int) *model.PredictionResult {
	details := make([]model.PredictionDetail, 0, len(keywords))
	for _, keyword := range keywords {
		details = append(details, model.PredictionDetail{
			Keyword:         keyword,
			CurrentValue:    50,
			PredictedValues: forecast.DefaultSequence(horizon),
			Explanation:     "Forecast unavailable; showing the default projection for this keyword.",
		})
	}

	return &model.PredictionResult{
		Niche:       niche,
		Keywords:    keywords,
		Predictions: details,
		NextActions: []string{
			fmt.Sprintf("Retry the analysis for %q later", niche),
			"Review source availability before acting on these numbers",
		},
		ConfidenceScore: 30,
		Fallback:        true,
	}
}
