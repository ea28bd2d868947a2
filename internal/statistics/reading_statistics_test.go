package statistics

import (
	"testing"
	"time"

	"github.com/at-ishikawa/readtrack/internal/readinglog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(month time.Month, d int) readinglog.Date {
	return readinglog.NewDate(2025, month, d)
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name       string
		log        readinglog.Log
		bookLength int

		wantTotalPages       int
		wantTotalMinutes     int
		wantDaysActive       int
		wantAvgDailyPages    float64
		wantAvgDailyMinutes  float64
		wantPagesPerMinute   float64
		wantYearlyProjection float64
		wantBooksPerYear     float64
		wantDaysToFinish     *float64
		wantPersona          Persona
		wantPace             Pace
	}{
		{
			name: "two days",
			log: readinglog.NewLog(
				readinglog.Entry{Date: day(time.January, 1), Pages: 30, Minutes: 20},
				readinglog.Entry{Date: day(time.January, 2), Pages: 10, Minutes: 10},
			),
			bookLength:           300,
			wantTotalPages:       40,
			wantTotalMinutes:     30,
			wantDaysActive:       2,
			wantAvgDailyPages:    20,
			wantAvgDailyMinutes:  15,
			wantPagesPerMinute:   40.0 / 30.0,
			wantYearlyProjection: 7300,
			wantBooksPerYear:     7300.0 / 300.0,
			wantDaysToFinish:     ptr(15.0),
			wantPersona:          PersonaSteady,
			wantPace:             PaceAmazing,
		},
		{
			name:        "empty log",
			log:         readinglog.Log{},
			bookLength:  300,
			wantPersona: PersonaCasual,
			wantPace:    PaceBelowPace,
		},
		{
			name:        "nil log",
			log:         nil,
			bookLength:  300,
			wantPersona: PersonaCasual,
			wantPace:    PaceBelowPace,
		},
		{
			name: "pages without minutes",
			log: readinglog.NewLog(
				readinglog.Entry{Date: day(time.March, 1), Pages: 60},
			),
			bookLength:           200,
			wantTotalPages:       60,
			wantDaysActive:       1,
			wantAvgDailyPages:    60,
			wantPagesPerMinute:   0,
			wantYearlyProjection: 21900,
			wantBooksPerYear:     109.5,
			wantDaysToFinish:     ptr(200.0 / 60.0),
			wantPersona:          PersonaLiterary,
			wantPace:             PaceAmazing,
		},
		{
			name: "days recorded with zero pages",
			log: readinglog.NewLog(
				readinglog.Entry{Date: day(time.March, 1), Minutes: 5},
				readinglog.Entry{Date: day(time.March, 2)},
			),
			bookLength:          300,
			wantTotalMinutes:    5,
			wantDaysActive:      2,
			wantAvgDailyMinutes: 2.5,
			wantPersona:         PersonaCasual,
			wantPace:            PaceBelowPace,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.log, tt.bookLength)
			require.NoError(t, err)

			assert.Equal(t, tt.wantTotalPages, got.TotalPages)
			assert.Equal(t, tt.wantTotalMinutes, got.TotalMinutes)
			assert.Equal(t, tt.wantDaysActive, got.DaysActive)
			assert.InDelta(t, tt.wantAvgDailyPages, got.AvgDailyPages, 1e-9)
			assert.InDelta(t, tt.wantAvgDailyMinutes, got.AvgDailyMinutes, 1e-9)
			assert.InDelta(t, tt.wantPagesPerMinute, got.PagesPerMinute, 1e-9)
			assert.InDelta(t, tt.wantYearlyProjection, got.YearlyProjectionPages, 1e-9)
			assert.InDelta(t, tt.wantBooksPerYear, got.BooksPerYear, 1e-9)
			if tt.wantDaysToFinish == nil {
				assert.Nil(t, got.DaysToFinishBook)
			} else {
				require.NotNil(t, got.DaysToFinishBook)
				assert.InDelta(t, *tt.wantDaysToFinish, *got.DaysToFinishBook, 1e-9)
			}
			assert.Equal(t, tt.wantPersona, got.Persona)
			assert.Equal(t, tt.wantPace, got.Pace)
			assert.Equal(t, tt.bookLength, got.BookLength)
		})
	}
}

func TestCompute_InvalidBookLength(t *testing.T) {
	for _, length := range []int{0, -300} {
		_, err := Compute(readinglog.Log{}, length)
		assert.ErrorIs(t, err, ErrInvalidBookLength)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	log := readinglog.NewLog(
		readinglog.Entry{Date: day(time.January, 1), Pages: 12, Minutes: 30},
		readinglog.Entry{Date: day(time.January, 9), Pages: 50, Minutes: 45},
		readinglog.Entry{Date: day(time.January, 12), Pages: 7, Minutes: 9},
	)

	first, err := Compute(log, DefaultBookLength)
	require.NoError(t, err)
	second, err := Compute(log, DefaultBookLength)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, log, 3)
}

func TestCompute_TotalPagesMatchesEntries(t *testing.T) {
	log := readinglog.Log{}
	want := 0
	for i := 1; i <= 40; i++ {
		pages := (i * 7) % 23
		want += pages
		var err error
		log, err = readinglog.Record(log, day(time.April, 1).AddDays(i), pages, i, readinglog.RecordModeOverwrite)
		require.NoError(t, err)
	}

	got, err := Compute(log, DefaultBookLength)
	require.NoError(t, err)
	assert.Equal(t, want, got.TotalPages)
	assert.Equal(t, 40, got.DaysActive)
}

func TestStatistics_TVEquivalent(t *testing.T) {
	stats := Statistics{PagesPerMinute: 40.0 / 30.0}

	assert.InDelta(t, 40.0, stats.TVEquivalent(30), 1e-9)
	assert.InDelta(t, 80.0, stats.TVEquivalent(60), 1e-9)
	assert.Equal(t, 0.0, Statistics{}.TVEquivalent(30))
}

func TestStatistics_EffortProjection(t *testing.T) {
	stats := Statistics{
		AvgDailyPages:  20,
		PagesPerMinute: 0.5,
		BookLength:     300,
	}

	// (20 + 0.5 * 10) * 365 / 300
	assert.InDelta(t, 25.0*365/300, stats.EffortProjection(10), 1e-9)
	assert.InDelta(t, 20.0*365/300, stats.EffortProjection(0), 1e-9)
	assert.Equal(t, 0.0, Statistics{}.EffortProjection(10))
}

func ptr[T any](v T) *T {
	return &v
}
