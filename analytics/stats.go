package analytics

import "math"

// Round2 rounds monetary values to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds rates and percentage changes to 1 decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// PercentChange is the analysis-statistics change rule: when the previous
// value is zero the change is reported as 0 instead of dividing by zero.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// DashboardChange is the dashboard-stats change rule: a move from zero to a
// positive value reads as 100, zero to anything else as 0. This deliberately
// differs from PercentChange; both behaviors are pinned by tests.
func DashboardChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// SavingsRate is savings as a percentage of average income, 0 when there is
// no income to rate against.
func SavingsRate(savings, incomeAvg float64) float64 {
	if incomeAvg == 0 {
		return 0
	}
	return savings / incomeAvg * 100
}

// Cumulative turns a per-month net series into a running total.
func Cumulative(nets []float64) []float64 {
	out := make([]float64, len(nets))
	total := 0.0
	for i, n := range nets {
		total += n
		out[i] = Round2(total)
	}
	return out
}
