package trend

import (
	"math"
	"testing"
	"time"

	"github.com/Tranv-IA/ContenAI/internal/model"
)

func series(keyword string, window model.Window, values ...float64) model.SourceSeries {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	points := make([]model.TimeSeriesPoint, len(values))
	for i, v := range values {
		points[i] = model.TimeSeriesPoint{Timestamp: start.Add(time.Duration(i) * 24 * time.Hour), Value: v}
	}
	return model.SourceSeries{Keyword: keyword, Source: "interest", Window: window, Points: points}
}

func TestAggregate_SingleWindowGrowth(t *testing.T) {
	trends := Aggregate(map[string][]model.SourceSeries{
		"yoga": {series("yoga", model.WindowWeek, 20, 25, 30)},
	})

	if len(trends) != 1 {
		t.Fatalf("Aggregate() returned %d trends, want 1", len(trends))
	}
	// (30-20)/20*100 = 50
	if math.Abs(trends[0].GrowthPercent-50) > 1e-9 {
		t.Errorf("GrowthPercent = %v, want 50", trends[0].GrowthPercent)
	}
}

func TestAggregate_OmitsDecliningKeywords(t *testing.T) {
	trends := Aggregate(map[string][]model.SourceSeries{
		"fading":  {series("fading", model.WindowWeek, 50, 40, 30)},
		"flat":    {series("flat", model.WindowWeek, 40, 40, 40)},
		"growing": {series("growing", model.WindowWeek, 10, 20, 30)},
	})

	if len(trends) != 1 || trends[0].Keyword != "growing" {
		t.Fatalf("Aggregate() = %+v, want only the growing keyword", trends)
	}
	if trends[0].GrowthPercent <= 0 {
		t.Errorf("GrowthPercent = %v, want positive", trends[0].GrowthPercent)
	}
}

func TestAggregate_WeightedWindowMerge(t *testing.T) {
	trends := Aggregate(map[string][]model.SourceSeries{
		"a": {
			series("a", model.WindowQuarter, 10, 15, 20), // +100%
			series("a", model.WindowMonth, 20, 25, 30),   // +50%
			series("a", model.WindowWeek, 30, 45, 60),    // +100%
		},
	})

	if len(trends) != 1 {
		t.Fatalf("Aggregate() returned %d trends, want 1", len(trends))
	}
	// quarter lands unweighted (100), month folds in at 0.3 (85), week at 0.6 (94).
	if math.Abs(trends[0].GrowthPercent-94) > 1e-9 {
		t.Errorf("GrowthPercent = %v, want 94", trends[0].GrowthPercent)
	}
}

func TestAggregate_FirstWindowUnweighted(t *testing.T) {
	// A keyword appearing only in the least-recent window keeps its raw growth.
	trends := Aggregate(map[string][]model.SourceSeries{
		"a": {series("a", model.WindowQuarter, 10, 20)},
	})
	if len(trends) != 1 || math.Abs(trends[0].GrowthPercent-100) > 1e-9 {
		t.Fatalf("Aggregate() = %+v, want unweighted 100%%", trends)
	}
}

func TestAggregate_FloorsDenominator(t *testing.T) {
	trends := Aggregate(map[string][]model.SourceSeries{
		"cold": {series("cold", model.WindowWeek, 0.5, 5, 10)},
	})
	if len(trends) != 1 {
		t.Fatalf("Aggregate() returned %d trends, want 1", len(trends))
	}
	// Denominator floored to 1: (10-0.5)/1*100 = 950.
	if math.Abs(trends[0].GrowthPercent-950) > 1e-9 {
		t.Errorf("GrowthPercent = %v, want 950", trends[0].GrowthPercent)
	}
}

func TestAggregate_SortsDescendingAndPrefersGranularTimeline(t *testing.T) {
	weekSeries := series("fast", model.WindowWeek, 10, 30)
	trends := Aggregate(map[string][]model.SourceSeries{
		"fast": {series("fast", model.WindowMonth, 10, 12), weekSeries},
		"slow": {series("slow", model.WindowMonth, 10, 11)},
	})

	if len(trends) != 2 {
		t.Fatalf("Aggregate() returned %d trends, want 2", len(trends))
	}
	if trends[0].Keyword != "fast" {
		t.Errorf("trends[0] = %s, want fast first", trends[0].Keyword)
	}
	if len(trends[0].Timeline) != len(weekSeries.Points) {
		t.Errorf("Timeline should come from the week window")
	}
	for i, p := range trends[0].Timeline {
		if p != weekSeries.Points[i] {
			t.Errorf("Timeline[%d] = %+v, want week window point %+v", i, p, weekSeries.Points[i])
		}
	}
}

func TestAggregate_SkipsTooShortSeries(t *testing.T) {
	trends := Aggregate(map[string][]model.SourceSeries{
		"sparse": {series("sparse", model.WindowWeek, 42)},
	})
	if len(trends) != 0 {
		t.Errorf("Aggregate() = %+v, want empty for a one-point series", trends)
	}
}
