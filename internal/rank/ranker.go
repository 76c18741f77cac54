// Package rank orders opportunities by priority using the text-classification
// capability with confidence weighting.
package rank

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/Tranv-IA/ContenAI/internal/classify"
	"github.com/Tranv-IA/ContenAI/internal/logger"
	"github.com/Tranv-IA/ContenAI/internal/model"
)

// Base scores per predicted priority class.
var classScores = map[string]float64{
	"high":   100,
	"medium": 70,
	"low":    30,
}

// Illustrative examples fed to the classifier alongside the real inputs.
var priorityExamples = []classify.Example{
	{Text: "Demand for this topic doubled in the last week and nobody covers it yet", Label: "high"},
	{Text: "A breakout keyword with clear purchase intent and thin competition", Label: "high"},
	{Text: "Steady seasonal interest, established competitors already rank for it", Label: "medium"},
	{Text: "Moderate growth, worth covering once the core topics are done", Label: "medium"},
	{Text: "Interest is flat and the topic is saturated with existing content", Label: "low"},
	{Text: "A niche curiosity with no sign of momentum", Label: "low"},
}

// Ranker scores and reorders opportunities.
type Ranker struct {
	classifier classify.Classifier
}

// New creates a ranker.
func New(c classify.Classifier) *Ranker {
	return &Ranker{classifier: c}
}

// Rank assigns each opportunity a priority score (class base x classifier
// confidence, rounded) and sorts descending, ties keeping input order.
//
// Batches under 3 opportunities skip ranking entirely: the classification
// signal is unreliable on tiny batches. A classifier failure returns the
// input unchanged; ranking never fails the request.
func (r *Ranker) Rank(ctx context.Context, opps []model.Opportunity) []model.Opportunity {
	if len(opps) < 3 {
		return opps
	}

	inputs := make([]string, len(opps))
	for i, o := range opps {
		inputs[i] = fmt.Sprintf("%s. %s", o.Title, o.Justification)
	}

	results, err := r.classifier.Classify(ctx, inputs, priorityExamples)
	if err != nil {
		logger.Log.Warnf("opportunity classification failed, keeping input order: %v", err)
		return opps
	}

	ranked := make([]model.Opportunity, len(opps))
	copy(ranked, opps)
	for i, res := range results {
		base, ok := classScores[res.Label]
		if !ok {
			logger.Log.Debugf("unknown priority class %q, treating as medium", res.Label)
			base = classScores["medium"]
		}
		ranked[i].PriorityScore = int(math.Round(base * res.Confidence))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PriorityScore > ranked[j].PriorityScore
	})

	return ranked
}
