// Package statistics derives reading statistics from a reading log.
// Every function is pure: it reads a log snapshot and never mutates or stores it.
package statistics

import (
	"errors"
	"fmt"

	"github.com/at-ishikawa/readtrack/internal/readinglog"
)

const (
	// DefaultBookLength is the number of pages counted as one book
	DefaultBookLength = 300

	daysPerYear = 365
)

// ErrInvalidBookLength is returned for a book length that is not positive
var ErrInvalidBookLength = errors.New("average book length must be positive")

// Statistics holds the metrics derived from a reading log
type Statistics struct {
	TotalPages   int
	TotalMinutes int
	DaysActive   int // distinct recorded days

	AvgDailyPages   float64
	AvgDailyMinutes float64
	// PagesPerMinute is the lifetime ratio of pages to minutes, not an average of daily ratios
	PagesPerMinute float64

	YearlyProjectionPages float64
	BooksPerYear          float64
	// DaysToFinishBook is nil when nothing has been read yet
	DaysToFinishBook *float64

	Persona Persona
	Pace    Pace
	// WeeklyTrend is nil unless the week before the latest recorded week has pages
	WeeklyTrend *WeeklyTrend

	BookLength int
}

// Compute calculates statistics of the log. bookLength is the number of pages per book.
func Compute(log readinglog.Log, bookLength int) (Statistics, error) {
	if bookLength <= 0 {
		return Statistics{}, fmt.Errorf("%w: got %d", ErrInvalidBookLength, bookLength)
	}

	stats := Statistics{
		DaysActive: len(log),
		BookLength: bookLength,
	}
	for _, entry := range log {
		stats.TotalPages += entry.Pages
		stats.TotalMinutes += entry.Minutes
	}

	stats.AvgDailyPages = divide(float64(stats.TotalPages), float64(stats.DaysActive))
	stats.AvgDailyMinutes = divide(float64(stats.TotalMinutes), float64(stats.DaysActive))
	stats.PagesPerMinute = divide(float64(stats.TotalPages), float64(stats.TotalMinutes))

	stats.YearlyProjectionPages = stats.AvgDailyPages * daysPerYear
	stats.BooksPerYear = stats.YearlyProjectionPages / float64(bookLength)
	if stats.AvgDailyPages > 0 {
		days := float64(bookLength) / stats.AvgDailyPages
		stats.DaysToFinishBook = &days
	}

	stats.Persona = ClassifyPersona(stats.AvgDailyPages)
	stats.Pace = ClassifyPace(stats.BooksPerYear)
	if trend, ok := CalculateWeeklyTrend(log); ok {
		stats.WeeklyTrend = &trend
	}

	return stats, nil
}

// TVEquivalent returns how many pages could be read in the given minutes at the lifetime pace
func (s Statistics) TVEquivalent(minutes int) float64 {
	return s.PagesPerMinute * float64(minutes)
}

// EffortProjection returns the books per year if extraMinutes more were read every day
func (s Statistics) EffortProjection(extraMinutes int) float64 {
	if s.BookLength <= 0 {
		return 0
	}
	dailyPages := s.AvgDailyPages + s.PagesPerMinute*float64(extraMinutes)
	return dailyPages * daysPerYear / float64(s.BookLength)
}

func divide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
