// Package analytics holds the date-range and aggregation arithmetic behind
// the analysis and dashboard endpoints. Everything here is pure: handlers
// fetch the sums, analytics does the math.
package analytics

import "time"

// Period tokens accepted by the analysis endpoints.
const (
	PeriodLast3Months  = "last3months"
	PeriodLast6Months  = "last6months"
	PeriodLast12Months = "last12months"
	PeriodThisYear     = "thisyear"

	DefaultPeriod = PeriodLast6Months
)

// Period is a half-open [Start, End) interval aligned to calendar month
// boundaries, spanning Months whole months.
type Period struct {
	Start  time.Time
	End    time.Time
	Months int
}

// Previous returns the equal-length period immediately before p.
func (p Period) Previous() Period {
	return Period{
		Start:  p.Start.AddDate(0, -p.Months, 0),
		End:    p.Start,
		Months: p.Months,
	}
}

// MonthStarts returns the first day of every month in [Start, End).
func (p Period) MonthStarts() []time.Time {
	starts := make([]time.Time, 0, p.Months)
	for m := p.Start; m.Before(p.End); m = m.AddDate(0, 1, 0) {
		starts = append(starts, m)
	}
	return starts
}

// ParsePeriod resolves a period token relative to now. Unknown or empty
// tokens fall back to last6months. End is always the first day of next
// month, so the current month is included in full.
func ParsePeriod(token string, now time.Time) Period {
	end := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())

	switch token {
	case PeriodLast3Months:
		return Period{Start: end.AddDate(0, -3, 0), End: end, Months: 3}
	case PeriodLast12Months:
		return Period{Start: end.AddDate(0, -12, 0), End: end, Months: 12}
	case PeriodThisYear:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		return Period{Start: start, End: end, Months: int(now.Month())}
	default:
		return Period{Start: end.AddDate(0, -6, 0), End: end, Months: 6}
	}
}

// MonthLabel formats a month start for chart axes.
func MonthLabel(monthStart time.Time) string {
	return monthStart.Format("Jan 2006")
}

// CalendarMonth returns the [start, end) interval of the month containing t.
func CalendarMonth(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// WeeklyWindow returns the trailing weeks*7-day [start, end) window ending
// at tomorrow midnight, so expenses recorded today still count.
func WeeklyWindow(now time.Time, weeks int) (time.Time, time.Time) {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return end.AddDate(0, 0, -7*weeks), end
}

// WeekdayOrder lists weekdays Monday first, Sunday last, matching the
// weekly-expenses chart ordering.
var WeekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}
