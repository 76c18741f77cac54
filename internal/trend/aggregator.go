// Package trend merges the per-window interest series of each keyword into a
// single signed growth percentage plus a display timeline.
package trend

import (
	"sort"

	"github.com/Tranv-IA/ContenAI/internal/logger"
	"github.com/Tranv-IA/ContenAI/internal/model"
)

// windowWeights drive the moving update when a keyword spans several windows;
// the most recent window dominates.
var windowWeights = map[model.Window]float64{
	model.WindowWeek:    0.6,
	model.WindowMonth:   0.3,
	model.WindowQuarter: 0.1,
}

// mergeOrder is least-recent first: the first window seen lands unweighted
// and each later, more recent window folds in with its own weight.
var mergeOrder = []model.Window{model.WindowQuarter, model.WindowMonth, model.WindowWeek}

// granularity ranks windows for timeline display; higher wins.
var granularity = map[model.Window]int{
	model.WindowQuarter: 1,
	model.WindowMonth:   2,
	model.WindowWeek:    3,
}

// Aggregate produces one AggregatedTrend per growing keyword, sorted by
// growth descending. Flat and declining keywords are omitted entirely rather
// than reported with negative growth.
func Aggregate(byKeyword map[string][]model.SourceSeries) []model.AggregatedTrend {
	var trends []model.AggregatedTrend

	for keyword, series := range byKeyword {
		byWindow := make(map[model.Window]model.SourceSeries, len(series))
		for _, s := range series {
			byWindow[s.Window] = s
		}

		var (
			growth   float64
			seen     bool
			timeline []model.TimeSeriesPoint
			bestRank int
		)

		for _, window := range mergeOrder {
			s, ok := byWindow[window]
			if !ok {
				continue
			}
			wg, ok := windowGrowth(s)
			if !ok {
				continue
			}

			if !seen {
				growth = wg
				seen = true
			} else {
				w := windowWeights[window]
				growth = growth*(1-w) + wg*w
			}

			if rank := granularity[window]; rank > bestRank {
				bestRank = rank
				timeline = s.Points
			}
		}

		if !seen {
			logger.Log.Debugf("keyword [%s] has no growing window, omitted", keyword)
			continue
		}

		trends = append(trends, model.AggregatedTrend{
			Keyword:       keyword,
			GrowthPercent: growth,
			Timeline:      timeline,
		})
	}

	sort.Slice(trends, func(i, j int) bool {
		return trends[i].GrowthPercent > trends[j].GrowthPercent
	})

	return trends
}

// windowGrowth computes the percentage change over one window. Only growing
// windows contribute; the near-zero denominator is floored to 1 so a cold
// start cannot blow the ratio up.
func windowGrowth(s model.SourceSeries) (float64, bool) {
	if len(s.Points) < 2 {
		return 0, false
	}
	first := s.Points[0].Value
	last := s.Points[len(s.Points)-1].Value
	if last <= first {
		return 0, false
	}
	if first < 1 {
		first = 1
	}
	return (last - first) / first * 100, true
}
