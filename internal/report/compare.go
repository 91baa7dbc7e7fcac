package report

import "math"

// Trend is the Comparator's verdict on a period-over-period change.
// Every "no data" branch is an explicit variant rather than a zero value
// the caller has to guess about.
type Trend int

const (
	// TrendNoCurrentData means the current period had no value to compare.
	TrendNoCurrentData Trend = iota
	// TrendNoPreviousData means there was nothing to compare against.
	TrendNoPreviousData
	// TrendNoChange means current and previous are equal.
	TrendNoChange
	// TrendFavorable marks an improvement, sign-aware: a swing from net
	// loss to net gain is favorable regardless of raw magnitudes.
	TrendFavorable
	// TrendUnfavorable marks a deterioration.
	TrendUnfavorable
)

func (t Trend) String() string {
	switch t {
	case TrendNoCurrentData:
		return "no_current_data"
	case TrendNoPreviousData:
		return "no_previous_data"
	case TrendNoChange:
		return "no_change"
	case TrendFavorable:
		return "favorable"
	case TrendUnfavorable:
		return "unfavorable"
	default:
		return "unknown"
	}
}

// Change is the comparison verdict for one scalar. Percentage is the
// absolute percentage change, rounded half-up to two decimals; it is zero
// for the no-data and no-change variants.
type Change struct {
	Trend      Trend
	Percentage float64
}

// Compare judges current against previous, both in cents. A nil previous
// means the previous window was suppressed. Zero values are treated the
// same as absent ones on either side.
func Compare(current int64, previous *int64) Change {
	if current == 0 {
		return Change{Trend: TrendNoCurrentData}
	}
	if previous == nil || *previous == 0 {
		return Change{Trend: TrendNoPreviousData}
	}
	p := *previous

	var trend Trend
	switch {
	case current > 0 && p < 0,
		current > 0 && p > 0 && current > p,
		current < 0 && p < 0 && current > p:
		trend = TrendFavorable
	case current < 0 && p > 0,
		current < 0 && p < 0 && current < p,
		current > 0 && p > 0 && current < p:
		trend = TrendUnfavorable
	default:
		return Change{Trend: TrendNoChange}
	}

	pct := math.Abs(roundHalfUp(float64(current-p) / float64(p) * 100))
	return Change{Trend: trend, Percentage: pct}
}

// roundHalfUp rounds to two decimal places, half-up on the third.
func roundHalfUp(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}
