package interest

import (
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/Tranv-IA/ContenAI/internal/model"
)

// windowShape controls how many points a simulated series carries and how far
// apart they sit, roughly matching what the vendor returns per window.
var windowShape = map[model.Window]struct {
	points int
	step   time.Duration
}{
	model.WindowWeek:    {points: 7, step: 24 * time.Hour},
	model.WindowMonth:   {points: 30, step: 24 * time.Hour},
	model.WindowQuarter: {points: 13, step: 7 * 24 * time.Hour},
}

// SimulateSeries produces a stand-in series when every window fetch for a
// keyword failed. It is a bounded random walk in [5,100], seeded from the
// keyword and window so repeated calls return the same shape. No network.
func SimulateSeries(keyword string, window model.Window, now time.Time) model.SourceSeries {
	shape, ok := windowShape[window]
	if !ok {
		shape = windowShape[model.WindowMonth]
	}

	h := fnv.New64a()
	h.Write([]byte(keyword))
	h.Write([]byte(window))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	value := 20 + rng.Float64()*50
	start := now.Add(-time.Duration(shape.points-1) * shape.step)

	points := make([]model.TimeSeriesPoint, shape.points)
	for i := range points {
		value += rng.Float64()*16 - 7 // slight upward drift
		if value < 5 {
			value = 5
		}
		if value > 100 {
			value = 100
		}
		points[i] = model.TimeSeriesPoint{
			Timestamp: start.Add(time.Duration(i) * shape.step),
			Value:     float64(int(value)),
		}
	}

	// A degraded run must still surface trending keywords, so the walk always
	// ends above where it started.
	first, last := points[0].Value, points[len(points)-1].Value
	if last <= first {
		bumped := first + 8 + rng.Float64()*10
		if bumped > 100 {
			bumped = 100
			if first >= bumped {
				points[0].Value = bumped - 10
			}
		}
		points[len(points)-1].Value = float64(int(bumped))
	}

	return model.SourceSeries{
		Keyword:   keyword,
		Source:    "simulated",
		Window:    window,
		Points:    points,
		Simulated: true,
	}
}
