// Package synthesis turns forecasts and qualitative signals into structured
// opportunity and prediction records. Generated text is parsed strictly
// first; malformed output goes through a heuristic extraction pass so the
// caller always receives a well-shaped, non-empty result.
package synthesis

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/Tranv-IA/ContenAI/internal/genai"
	"github.com/Tranv-IA/ContenAI/internal/logger"
	"github.com/Tranv-IA/ContenAI/internal/model"
)

// Synthesizer drives both generation call sites: opportunity discovery and
// the per-keyword prediction narrative.
type Synthesizer struct {
	gen     genai.Generator
	horizon int
}

// New creates a synthesizer. horizon is the configured forecast length.
func New(gen genai.Generator, horizon int) *Synthesizer {
	if horizon <= 0 {
		horizon = 3
	}
	return &Synthesizer{gen: gen, horizon: horizon}
}

type opportunityWire struct {
	Title           string   `json:"title"`
	Justification   string   `json:"justification"`
	SuggestedTitles []string `json:"suggested_titles"`
	Approach        string   `json:"approach"`
	EstimatedGrowth float64  `json:"estimated_growth"`
}

// Opportunities asks the generation capability for 3-6 content opportunities
// built on the aggregated trends and recent article titles. It never returns
// an empty list and never raises: generation failure yields generic
// opportunities for the niche itself.
func (s *Synthesizer) Opportunities(ctx context.Context, niche string, trends []model.AggregatedTrend, titles []string) []model.Opportunity {
	prompt := buildOpportunityPrompt(niche, trends, titles)

	text, err := s.gen.Generate(ctx, "You are a content strategist. Respond with JSON only.", prompt)
	if err != nil {
		logger.Log.Warnf("opportunity generation failed [%s]: %v", niche, err)
		return fallbackOpportunities(niche, trends)
	}

	var parsed struct {
		Opportunities []opportunityWire `json:"opportunities"`
	}
	if err := json.Unmarshal([]byte(genai.CleanJSON(text)), &parsed); err == nil && len(parsed.Opportunities) > 0 {
		opps := make([]model.Opportunity, 0, len(parsed.Opportunities))
		for _, w := range parsed.Opportunities {
			opps = append(opps, normalizeOpportunity(w, len(opps)+1))
		}
		return opps
	}

	// Structured parse failed: the model answered in prose. Extract what we
	// can rather than dropping the batch.
	logger.Log.Warnf("opportunity output not structured [%s], using heuristic extraction", niche)
	opps := ParseLoose(text)
	if len(opps) == 0 {
		return fallbackOpportunities(niche, trends)
	}
	return opps
}

func buildOpportunityPrompt(niche string, trends []model.AggregatedTrend, titles []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Niche: %s\n\nTrending keywords:\n", niche)
	for _, t := range trends {
		fmt.Fprintf(&sb, "- %s (growth %.1f%%)\n", t.Keyword, t.GrowthPercent)
	}
	if len(titles) > 0 {
		sb.WriteString("\nRecent article titles:\n")
		for _, title := range titles {
			fmt.Fprintf(&sb, "- %s\n", title)
		}
	}

	sb.WriteString(`
Propose 3-6 content opportunities for this niche. Respond with JSON only, no markdown fences:
{
  "opportunities": [
    {
      "title": "short opportunity title",
      "justification": "why this is worth producing now",
      "suggested_titles": ["2-3 concrete article titles"],
      "approach": "optional angle or format",
      "estimated_growth": 75
    }
  ]
}
estimated_growth is an integer 0-100 reflecting expected interest growth.`)

	return sb.String()
}

// normalizeOpportunity applies the defaulting rules right after the first
// parse attempt so downstream stages see a fully-populated record.
func normalizeOpportunity(w opportunityWire, n int) model.Opportunity {
	o := model.Opportunity{
		ID:              uuid.NewString(),
		Title:           strings.TrimSpace(w.Title),
		Justification:   strings.TrimSpace(w.Justification),
		Approach:        strings.TrimSpace(w.Approach),
		EstimatedGrowth: math.Min(100, math.Max(0, w.EstimatedGrowth)),
	}
	if o.Title == "" {
		o.Title = fmt.Sprintf("Opportunity %d", n)
	}
	if o.Justification == "" {
		o.Justification = "Derived from current trend signals for the niche."
	}
	for _, t := range w.SuggestedTitles {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		o.SuggestedTitles = append(o.SuggestedTitles, t)
		if len(o.SuggestedTitles) == 3 {
			break
		}
	}
	if len(o.SuggestedTitles) == 0 {
		o.SuggestedTitles = placeholderTitles(o.Title)
	}
	return o
}

func placeholderTitles(topic string) []string {
	return []string{
		fmt.Sprintf("%s: a practical guide", topic),
		fmt.Sprintf("What to know about %s this year", topic),
	}
}

// fallbackOpportunities covers total generation failure. These reference the
// niche itself rather than a specific keyword.
func fallbackOpportunities(niche string, trends []model.AggregatedTrend) []model.Opportunity {
	topKeyword := niche
	if len(trends) > 0 {
		topKeyword = trends[0].Keyword
	}

	return []model.Opportunity{
		{
			ID:            uuid.NewString(),
			Title:         fmt.Sprintf("Foundational content for %s", niche),
			Justification: fmt.Sprintf("Interest data shows activity around %q; evergreen coverage of the niche captures it without depending on a single angle.", topKeyword),
			SuggestedTitles: []string{
				fmt.Sprintf("The complete beginner's guide to %s", niche),
				fmt.Sprintf("%s in 2025: what actually matters", niche),
			},
			Approach: "Evergreen pillar article with periodic refreshes",
		},
	}
}

type predictionWire struct {
	Keyword         string    `json:"keyword"`
	PredictedValues []float64 `json:"predicted_values"`
	Explanation     string    `json:"explanation"`
}

// Predictions asks for a refined narrative over the raw regression output.
// raw maps keyword to its regression forecast, current to its latest observed
// value. Keywords keep their raw numbers whenever the refined output is
// missing or malformed for them.
func (s *Synthesizer) Predictions(ctx context.Context, niche string, keywords []string, raw map[string][]float64, current map[string]float64, commentary string) ([]model.PredictionDetail, []string) {
	prompt := s.buildPredictionPrompt(niche, keywords, raw, current, commentary)

	refined := map[string]predictionWire{}
	var nextActions []string

	text, err := s.gen.Generate(ctx, "You are a trend forecaster. Respond with JSON only.", prompt)
	if err != nil {
		logger.Log.Warnf("prediction narrative failed [%s]: %v", niche, err)
	} else {
		var parsed struct {
			Predictions []predictionWire `json:"predictions"`
			NextActions []string         `json:"next_actions"`
		}
		if err := json.Unmarshal([]byte(genai.CleanJSON(text)), &parsed); err != nil {
			logger.Log.Warnf("prediction output not structured [%s]: %v", niche, err)
		} else {
			for _, p := range parsed.Predictions {
				refined[p.Keyword] = p
			}
			nextActions = parsed.NextActions
		}
	}

	details := make([]model.PredictionDetail, 0, len(keywords))
	for _, keyword := range keywords {
		values := raw[keyword]
		explanation := defaultExplanation(keyword, values, commentary)

		if p, ok := refined[keyword]; ok {
			if len(p.PredictedValues) == s.horizon && allBounded(p.PredictedValues) {
				values = roundAll(p.PredictedValues)
			}
			if strings.TrimSpace(p.Explanation) != "" {
				explanation = strings.TrimSpace(p.Explanation)
			}
		}
		if len(values) == 0 {
			// Absent data never collapses to an empty forecast.
			values = defaultSequence(s.horizon)
		}

		details = append(details, model.PredictionDetail{
			Keyword:         keyword,
			CurrentValue:    current[keyword],
			PredictedValues: values,
			Explanation:     explanation,
		})
	}

	nextActions = normalizeActions(nextActions, niche)
	return details, nextActions
}

func (s *Synthesizer) buildPredictionPrompt(niche string, keywords []string, raw map[string][]float64, current map[string]float64, commentary string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Niche: %s\n\nRegression forecasts per keyword (current value, then %d projected periods):\n", niche, s.horizon)
	for _, keyword := range keywords {
		fmt.Fprintf(&sb, "- %s: current %.0f, projected %v\n", keyword, current[keyword], raw[keyword])
	}
	fmt.Fprintf(&sb, "\nQualitative commentary:\n%s\n", commentary)

	fmt.Fprintf(&sb, `
Refine these forecasts using the commentary. Respond with JSON only, no markdown fences:
{
  "predictions": [
    {"keyword": "keyword", "predicted_values": [%d numbers 0-100], "explanation": "1-2 sentences"}
  ],
  "next_actions": ["1 to 5 recommended actions, most urgent first"]
}
Keep every keyword. Adjust values only when the commentary justifies it.`, s.horizon)

	return sb.String()
}

func defaultExplanation(keyword string, values []float64, commentary string) string {
	direction := "holding steady"
	if len(values) >= 2 {
		if values[len(values)-1] > values[0] {
			direction = "trending upward"
		} else if values[len(values)-1] < values[0] {
			direction = "trending downward"
		}
	}
	if commentary == "" {
		return fmt.Sprintf("Interest in %q is %s based on its recent interest trajectory.", keyword, direction)
	}
	return fmt.Sprintf("Interest in %q is %s based on its recent interest trajectory. %s", keyword, direction, firstSentence(commentary))
}

func firstSentence(s string) string {
	if i := strings.IndexAny(s, ".!?"); i >= 0 && i < len(s)-1 {
		return s[:i+1]
	}
	return s
}

func normalizeActions(actions []string, niche string) []string {
	cleaned := make([]string, 0, 5)
	for _, a := range actions {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		cleaned = append(cleaned, a)
		if len(cleaned) == 5 {
			break
		}
	}
	if len(cleaned) == 0 {
		cleaned = []string{
			fmt.Sprintf("Refresh existing %s content against the current trending keywords", niche),
			"Prepare one conversion-focused piece for the fastest-growing keyword",
			"Review interest data again in two weeks",
		}
	}
	return cleaned
}

func allBounded(values []float64) bool {
	for _, v := range values {
		if v < 0 || v > 100 {
			return false
		}
	}
	return true
}

func roundAll(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = math.Round(v)
	}
	return out
}

func defaultSequence(horizon int) []float64 {
	values := make([]float64, horizon)
	for i := range values {
		v := 50 + float64(i)*5
		if v > 100 {
			v = 100
		}
		values[i] = v
	}
	return values
}
