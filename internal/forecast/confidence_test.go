package forecast

import "testing"

func TestConfidence_Bounds(t *testing.T) {
	cases := []struct {
		name      string
		forecasts map[string][]float64
	}{
		{"empty", map[string][]float64{}},
		{"single stable keyword", map[string][]float64{"a": {50, 52, 54}}},
		{"high volume", map[string][]float64{
			"a": {50, 52, 54, 56, 58, 60},
			"b": {40, 42, 44, 46, 48, 50},
			"c": {30, 32, 34, 36, 38, 40},
		}},
		{"extreme volatility", map[string][]float64{
			"a": {0, 100, 0, 100, 0, 100},
			"b": {100, 0, 100, 0, 100, 0},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score := Confidence(tc.forecasts)
			if score < 30 || score > 95 {
				t.Errorf("Confidence() = %d, want within [30,95]", score)
			}
		})
	}
}

func TestConfidence_VolumeRaisesScore(t *testing.T) {
	small := Confidence(map[string][]float64{"a": {50, 50, 50}})
	large := Confidence(map[string][]float64{
		"a": {50, 50, 50, 50, 50, 50},
		"b": {50, 50, 50, 50, 50, 50},
		"c": {50, 50, 50, 50, 50, 50},
	})
	if large <= small {
		t.Errorf("more stable data should score higher: small=%d large=%d", small, large)
	}
	// 18 flat points: base capped at 70, no penalty.
	if large != 70 {
		t.Errorf("Confidence() = %d, want 70 at the volume cap with zero variance", large)
	}
}

func TestConfidence_VolatilityLowersScore(t *testing.T) {
	stable := Confidence(map[string][]float64{"a": {50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50}})
	volatile := Confidence(map[string][]float64{"a": {5, 95, 5, 95, 5, 95, 5, 95, 5, 95, 5, 95, 5, 95}})
	if volatile >= stable {
		t.Errorf("volatile forecasts should score lower: stable=%d volatile=%d", stable, volatile)
	}
	if volatile != 30 {
		t.Errorf("Confidence() = %d, want the floor of 30 under extreme volatility", volatile)
	}
}
