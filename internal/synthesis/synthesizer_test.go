package synthesis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Tranv-IA/ContenAI/internal/model"
)

// fakeGenerator returns canned text or an error for every call.
type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	return f.text, f.err
}

func sampleTrends() []model.AggregatedTrend {
	return []model.AggregatedTrend{
		{Keyword: "yoga", GrowthPercent: 80},
		{Keyword: "meditación", GrowthPercent: 40},
	}
}

func TestOpportunities_StructuredResponse(t *testing.T) {
	gen := &fakeGenerator{text: "```json\n" + `{
  "opportunities": [
    {
      "title": "Morning yoga series",
      "justification": "Searches for short routines keep growing.",
      "suggested_titles": ["10-minute sunrise flow", "Yoga before coffee", "Wake up with yoga", "A fourth that gets dropped"],
      "approach": "Video-first series",
      "estimated_growth": 120
    },
    {
      "title": "",
      "justification": ""
    }
  ]
}` + "\n```"}

	s := New(gen, 3)
	opps := s.Opportunities(context.Background(), "yoga", sampleTrends(), nil)
	if len(opps) != 2 {
		t.Fatalf("Opportunities() returned %d, want 2", len(opps))
	}

	first := opps[0]
	if first.Title != "Morning yoga series" {
		t.Errorf("Title = %q", first.Title)
	}
	if len(first.SuggestedTitles) != 3 {
		t.Errorf("SuggestedTitles = %v, want capped at 3", first.SuggestedTitles)
	}
	if first.EstimatedGrowth != 100 {
		t.Errorf("EstimatedGrowth = %v, want clamped to 100", first.EstimatedGrowth)
	}
	if first.ID == "" {
		t.Error("ID should be assigned")
	}

	second := opps[1]
	if second.Title != "Opportunity 2" {
		t.Errorf("empty title should default, got %q", second.Title)
	}
	if second.Justification == "" {
		t.Error("empty justification should default")
	}
	if len(second.SuggestedTitles) == 0 {
		t.Error("missing suggested titles should be filled with placeholders")
	}
}

func TestOpportunities_GenerationFailureFallsBack(t *testing.T) {
	s := New(&fakeGenerator{err: errors.New("rate limited")}, 3)

	opps := s.Opportunities(context.Background(), "yoga", sampleTrends(), nil)
	if len(opps) == 0 {
		t.Fatal("Opportunities() must never return an empty list")
	}
	if !strings.Contains(opps[0].Title, "yoga") {
		t.Errorf("fallback should reference the niche, got %q", opps[0].Title)
	}
	if !strings.Contains(opps[0].Justification, "yoga") {
		t.Errorf("fallback justification should mention the top keyword, got %q", opps[0].Justification)
	}
}

func TestOpportunities_ProseResponseUsesHeuristics(t *testing.T) {
	gen := &fakeGenerator{text: `Opportunity 1: Beginner yoga guides
Entry-level demand keeps climbing.
- Yoga for absolute beginners`}

	s := New(gen, 3)
	opps := s.Opportunities(context.Background(), "yoga", sampleTrends(), nil)
	if len(opps) != 1 {
		t.Fatalf("Opportunities() returned %d, want 1 from heuristic extraction", len(opps))
	}
	if opps[0].Title != "Beginner yoga guides" {
		t.Errorf("Title = %q", opps[0].Title)
	}
}

func TestOpportunities_UnusableProseFallsBack(t *testing.T) {
	s := New(&fakeGenerator{text: "   \n  "}, 3)
	opps := s.Opportunities(context.Background(), "yoga", nil, nil)
	if len(opps) == 0 {
		t.Fatal("blank output should still yield a fallback opportunity")
	}
}

func TestPredictions_RefinedValuesApplied(t *testing.T) {
	gen := &fakeGenerator{text: `{
  "predictions": [
    {"keyword": "yoga", "predicted_values": [72.4, 78.6, 84.1], "explanation": "Seasonal demand supports the climb."}
  ],
  "next_actions": ["Publish the beginner series", "  ", "Update the gear guide"]
}`}
	s := New(gen, 3)

	raw := map[string][]float64{"yoga": {70, 75, 80}, "meditación": {50, 52, 54}}
	current := map[string]float64{"yoga": 65, "meditación": 48}

	details, actions := s.Predictions(context.Background(), "yoga", []string{"yoga", "meditación"}, raw, current, "Interest rises in spring. More later.")
	if len(details) != 2 {
		t.Fatalf("Predictions() returned %d details, want 2", len(details))
	}

	yoga := details[0]
	if yoga.Keyword != "yoga" {
		t.Fatalf("details[0] = %q, want keyword order preserved", yoga.Keyword)
	}
	want := []float64{72, 79, 84}
	for i, v := range yoga.PredictedValues {
		if v != want[i] {
			t.Errorf("PredictedValues = %v, want rounded %v", yoga.PredictedValues, want)
			break
		}
	}
	if yoga.Explanation != "Seasonal demand supports the climb." {
		t.Errorf("Explanation = %q", yoga.Explanation)
	}

	med := details[1]
	if med.PredictedValues[0] != 50 || med.PredictedValues[2] != 54 {
		t.Errorf("unrefined keyword should keep raw values, got %v", med.PredictedValues)
	}
	if !strings.Contains(med.Explanation, "meditación") {
		t.Errorf("default explanation should name the keyword, got %q", med.Explanation)
	}
	if !strings.Contains(med.Explanation, "Interest rises in spring.") {
		t.Errorf("default explanation should carry the first commentary sentence, got %q", med.Explanation)
	}

	if len(actions) != 2 {
		t.Errorf("actions = %v, want blanks dropped", actions)
	}
}

func TestPredictions_RejectsMalformedRefinements(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"wrong length", `{"predictions":[{"keyword":"yoga","predicted_values":[70,75],"explanation":"short"}]}`},
		{"out of bounds", `{"predictions":[{"keyword":"yoga","predicted_values":[70,75,140],"explanation":"spike"}]}`},
	}

	raw := map[string][]float64{"yoga": {60, 62, 64}}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(&fakeGenerator{text: tc.text}, 3)
			details, _ := s.Predictions(context.Background(), "yoga", []string{"yoga"}, raw, map[string]float64{"yoga": 58}, "")
			if details[0].PredictedValues[0] != 60 || details[0].PredictedValues[2] != 64 {
				t.Errorf("malformed refinement should keep raw values, got %v", details[0].PredictedValues)
			}
			// The explanation from a rejected-values record is still usable text.
			if details[0].Explanation == "" {
				t.Error("explanation should never be empty")
			}
		})
	}
}

func TestPredictions_GenerationFailureDefaults(t *testing.T) {
	s := New(&fakeGenerator{err: errors.New("timeout")}, 3)

	details, actions := s.Predictions(context.Background(), "yoga", []string{"yoga"}, map[string][]float64{}, map[string]float64{}, "")
	if len(details) != 1 {
		t.Fatalf("Predictions() returned %d details, want 1", len(details))
	}
	want := []float64{50, 55, 60}
	for i, v := range details[0].PredictedValues {
		if v != want[i] {
			t.Errorf("PredictedValues = %v, want default %v", details[0].PredictedValues, want)
			break
		}
	}
	if len(actions) != 3 {
		t.Errorf("actions = %v, want 3 defaults", actions)
	}
}
