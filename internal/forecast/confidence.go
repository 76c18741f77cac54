package forecast

import "math"

// Confidence scores a prediction batch from its raw per-keyword forecast
// arrays. Volume raises the score up to a cap of 70, volatility across each
// keyword's forecast pulls it back down, and the result always lands in
// [30,95].
func Confidence(forecasts map[string][]float64) int {
	totalPoints := 0
	penalty := 0.0

	for _, values := range forecasts {
		totalPoints += len(values)
		penalty += variance(values) / 10
	}

	base := math.Min(70, float64(totalPoints)*5)
	score := base - penalty

	if score < 30 {
		score = 30
	}
	if score > 95 {
		score = 95
	}
	return int(math.Round(score))
}

// variance is the mean squared deviation from the mean.
func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(values))
}
