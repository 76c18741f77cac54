// Package forecast projects near-future interest values per keyword from its
// historical series, and scores how much a prediction batch should be trusted.
package forecast

import (
	"math"

	"github.com/Tranv-IA/ContenAI/internal/model"
)

// DefaultHorizon is the number of projected periods when none is configured.
const DefaultHorizon = 3

// Project fits an ordinary least-squares line over (index, value) pairs and
// extends it horizon steps past the last observation. The index is positional
// order, not wall-clock time, which keeps the forecast shape independent of
// irregular sampling gaps. Every projected value is clamped to [0,100] and
// rounded.
//
// Fewer than 3 points, or a series with no index variance, yields the fixed
// ascending fallback sequence instead of a fit.
func Project(points []model.TimeSeriesPoint, horizon int) []float64 {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	if len(points) < 3 {
		return DefaultSequence(horizon)
	}

	n := float64(len(points))
	var sumX, sumY, sumXY, sumXX float64
	for i, p := range points {
		x := float64(i)
		sumX += x
		sumY += p.Value
		sumXY += x * p.Value
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return DefaultSequence(horizon)
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	values := make([]float64, horizon)
	for step := 0; step < horizon; step++ {
		x := n + float64(step)
		values[step] = clamp(math.Round(intercept + slope*x))
	}
	return values
}

// DefaultSequence is the documented fallback forecast: 50, 55, 60, ...
// extended in steps of 5 to the configured horizon.
func DefaultSequence(horizon int) []float64 {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	values := make([]float64, horizon)
	for i := range values {
		values[i] = clamp(50 + float64(i)*5)
	}
	return values
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
