package statistics

import "github.com/at-ishikawa/readtrack/internal/readinglog"

const daysPerWeek = 7

// TrendOutcome is the direction of a week-over-week change
type TrendOutcome string

const (
	TrendImprovement TrendOutcome = "improvement"
	TrendRegression  TrendOutcome = "regression"
	TrendFlat        TrendOutcome = "flat"
)

// WeeklyTrend compares the pages of the latest 7 days with the 7 days before them
type WeeklyTrend struct {
	// WeekEnd is the latest recorded day, the last day of the current week
	WeekEnd       readinglog.Date
	ThisWeekPages int
	PrevWeekPages int
	Delta         int
	Outcome       TrendOutcome
}

// CalculateWeeklyTrend sums pages of the 7 days ending on the latest recorded day
// and of the 7 days before them. The trend is only available when the previous week has pages.
func CalculateWeeklyTrend(log readinglog.Log) (WeeklyTrend, bool) {
	latest, ok := log.Latest()
	if !ok {
		return WeeklyTrend{}, false
	}

	// windows are (start, end]
	thisWeekStart := latest.AddDays(-daysPerWeek)
	prevWeekStart := latest.AddDays(-2 * daysPerWeek)

	trend := WeeklyTrend{WeekEnd: latest}
	for date, entry := range log {
		switch {
		case date.After(thisWeekStart.Time):
			trend.ThisWeekPages += entry.Pages
		case date.After(prevWeekStart.Time):
			trend.PrevWeekPages += entry.Pages
		}
	}
	if trend.PrevWeekPages <= 0 {
		return WeeklyTrend{}, false
	}

	trend.Delta = trend.ThisWeekPages - trend.PrevWeekPages
	switch {
	case trend.Delta > 0:
		trend.Outcome = TrendImprovement
	case trend.Delta < 0:
		trend.Outcome = TrendRegression
	default:
		trend.Outcome = TrendFlat
	}
	return trend, true
}
