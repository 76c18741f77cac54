// Package schedule converts growth trajectories into timed recommended
// actions anchored to the analysis time.
package schedule

import (
	"sort"
	"time"

	"github.com/Tranv-IA/ContenAI/internal/model"
)

// Plan selects the keywords whose final forecasted value exceeds their
// current value, ranks them by absolute growth descending, and lays out a
// fixed cadence: +7 days conversion content for the top 2, +14 days a
// campaign over the top 3, +30 days expansion across all growing keywords.
// Nothing growing means an empty schedule.
func Plan(now time.Time, details []model.PredictionDetail) []model.InterventionPoint {
	type growing struct {
		keyword string
		delta   float64
	}

	var candidates []growing
	for _, d := range details {
		if len(d.PredictedValues) == 0 {
			continue
		}
		final := d.PredictedValues[len(d.PredictedValues)-1]
		if final > d.CurrentValue {
			candidates = append(candidates, growing{keyword: d.Keyword, delta: final - d.CurrentValue})
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].delta > candidates[j].delta
	})

	keywords := make([]string, len(candidates))
	for i, c := range candidates {
		keywords[i] = c.keyword
	}

	top := func(n int) []string {
		if n > len(keywords) {
			n = len(keywords)
		}
		out := make([]string, n)
		copy(out, keywords[:n])
		return out
	}

	return []model.InterventionPoint{
		{
			Timestamp: now.AddDate(0, 0, 7),
			Action:    "Publish conversion-focused content targeting the fastest-growing keywords",
			Keywords:  top(2),
		},
		{
			Timestamp: now.AddDate(0, 0, 14),
			Action:    "Launch a promotion campaign across channels for the leading keywords",
			Keywords:  top(3),
		},
		{
			Timestamp: now.AddDate(0, 0, 30),
			Action:    "Evaluate product or service expansion around every growing keyword",
			Keywords:  keywords,
		},
	}
}
