package statistics

import (
	"errors"
	"fmt"

	"github.com/at-ishikawa/readtrack/internal/readinglog"
)

// DefaultHistogramBins is the number of bins used for the distribution of daily pages
const DefaultHistogramBins = 10

// ErrInvalidBins is returned when a histogram is requested with no bins
var ErrInvalidBins = errors.New("number of histogram bins must be positive")

// HistogramBin counts the days whose pages fall in [Lower, Upper).
// The last bin also includes Upper.
type HistogramBin struct {
	Lower float64
	Upper float64
	Days  int
}

// Histogram distributes the daily pages of the log into equal-width bins between the smallest
// and the largest day. When every day has the same pages the range is widened by half a page
// on each side. An empty log has no bins.
func Histogram(log readinglog.Log, bins int) ([]HistogramBin, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBins, bins)
	}
	if len(log) == 0 {
		return nil, nil
	}

	first := true
	var lowest, highest float64
	for _, entry := range log {
		pages := float64(entry.Pages)
		if first || pages < lowest {
			lowest = pages
		}
		if first || pages > highest {
			highest = pages
		}
		first = false
	}
	if lowest == highest {
		lowest -= 0.5
		highest += 0.5
	}

	width := (highest - lowest) / float64(bins)
	result := make([]HistogramBin, bins)
	for i := range result {
		result[i].Lower = lowest + width*float64(i)
		result[i].Upper = lowest + width*float64(i+1)
	}
	result[bins-1].Upper = highest

	for _, entry := range log {
		index := int((float64(entry.Pages) - lowest) / width)
		if index >= bins {
			index = bins - 1
		}
		result[index].Days++
	}
	return result, nil
}
