package report

import "testing"

func intp(v int64) *int64 { return &v }

func TestCompare(t *testing.T) {
	cases := []struct {
		name     string
		current  int64
		previous *int64
		trend    Trend
		pct      float64
	}{
		{"growth is favorable", 150, intp(100), TrendFavorable, 50},
		{"deeper loss is unfavorable", -80, intp(-40), TrendUnfavorable, 100},
		{"shrinking income is unfavorable", 100, intp(150), TrendUnfavorable, 33.33},
		{"recovering loss is favorable", -40, intp(-80), TrendFavorable, 50},
		{"loss to gain crosses zero favorably", 50, intp(-100), TrendFavorable, 150},
		{"gain to loss crosses zero unfavorably", -50, intp(100), TrendUnfavorable, 150},
		{"equal positives yield no change", 70, intp(70), TrendNoChange, 0},
		{"equal negatives yield no change", -70, intp(-70), TrendNoChange, 0},
		{"zero current", 0, intp(100), TrendNoCurrentData, 0},
		{"zero current and previous", 0, intp(0), TrendNoCurrentData, 0},
		{"zero previous", 100, intp(0), TrendNoPreviousData, 0},
		{"suppressed previous", 100, nil, TrendNoPreviousData, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Compare(tc.current, tc.previous)
			if got.Trend != tc.trend {
				t.Fatalf("trend = %v, want %v", got.Trend, tc.trend)
			}
			if got.Percentage != tc.pct {
				t.Fatalf("percentage = %v, want %v", got.Percentage, tc.pct)
			}
		})
	}
}

func TestTrendString(t *testing.T) {
	cases := map[Trend]string{
		TrendNoCurrentData:  "no_current_data",
		TrendNoPreviousData: "no_previous_data",
		TrendNoChange:       "no_change",
		TrendFavorable:      "favorable",
		TrendUnfavorable:    "unfavorable",
		Trend(99):           "unknown",
	}
	for trend, want := range cases {
		if got := trend.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", trend, got, want)
		}
	}
}
