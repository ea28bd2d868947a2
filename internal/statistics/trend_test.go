package statistics

import (
	"testing"
	"time"

	"github.com/at-ishikawa/readtrack/internal/readinglog"
	"github.com/stretchr/testify/assert"
)

func TestCalculateWeeklyTrend(t *testing.T) {
	latest := day(time.February, 14)

	tests := []struct {
		name      string
		log       readinglog.Log
		want      WeeklyTrend
		available bool
	}{
		{
			name: "improvement",
			log: readinglog.NewLog(
				readinglog.Entry{Date: latest, Pages: 40},
				readinglog.Entry{Date: latest.AddDays(-6), Pages: 10},
				readinglog.Entry{Date: latest.AddDays(-7), Pages: 20},
				readinglog.Entry{Date: latest.AddDays(-13), Pages: 5},
			),
			want: WeeklyTrend{
				WeekEnd:       latest,
				ThisWeekPages: 50,
				PrevWeekPages: 25,
				Delta:         25,
				Outcome:       TrendImprovement,
			},
			available: true,
		},
		{
			name: "regression",
			log: readinglog.NewLog(
				readinglog.Entry{Date: latest, Pages: 10},
				readinglog.Entry{Date: latest.AddDays(-8), Pages: 30},
			),
			want: WeeklyTrend{
				WeekEnd:       latest,
				ThisWeekPages: 10,
				PrevWeekPages: 30,
				Delta:         -20,
				Outcome:       TrendRegression,
			},
			available: true,
		},
		{
			name: "flat",
			log: readinglog.NewLog(
				readinglog.Entry{Date: latest, Pages: 15},
				readinglog.Entry{Date: latest.AddDays(-10), Pages: 15},
			),
			want: WeeklyTrend{
				WeekEnd:       latest,
				ThisWeekPages: 15,
				PrevWeekPages: 15,
				Delta:         0,
				Outcome:       TrendFlat,
			},
			available: true,
		},
		{
			name: "days older than two weeks are ignored",
			log: readinglog.NewLog(
				readinglog.Entry{Date: latest, Pages: 15},
				readinglog.Entry{Date: latest.AddDays(-7), Pages: 5},
				readinglog.Entry{Date: latest.AddDays(-14), Pages: 500},
			),
			want: WeeklyTrend{
				WeekEnd:       latest,
				ThisWeekPages: 15,
				PrevWeekPages: 5,
				Delta:         10,
				Outcome:       TrendImprovement,
			},
			available: true,
		},
		{
			name: "two days in the same week",
			log: readinglog.NewLog(
				readinglog.Entry{Date: latest, Pages: 15},
				readinglog.Entry{Date: latest.AddDays(-3), Pages: 20},
			),
		},
		{
			name: "previous week recorded with zero pages",
			log: readinglog.NewLog(
				readinglog.Entry{Date: latest, Pages: 15},
				readinglog.Entry{Date: latest.AddDays(-9), Pages: 0, Minutes: 30},
			),
		},
		{
			name: "many days but no previous week",
			log: readinglog.NewLog(
				readinglog.Entry{Date: latest, Pages: 1},
				readinglog.Entry{Date: latest.AddDays(-1), Pages: 1},
				readinglog.Entry{Date: latest.AddDays(-2), Pages: 1},
				readinglog.Entry{Date: latest.AddDays(-3), Pages: 1},
			),
		},
		{
			name: "empty log",
			log:  readinglog.Log{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CalculateWeeklyTrend(tt.log)
			assert.Equal(t, tt.available, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompute_WeeklyTrend(t *testing.T) {
	log := readinglog.NewLog(
		readinglog.Entry{Date: day(time.March, 20), Pages: 10, Minutes: 10},
		readinglog.Entry{Date: day(time.March, 21), Pages: 20, Minutes: 10},
	)
	stats, err := Compute(log, DefaultBookLength)
	assert.NoError(t, err)
	assert.Nil(t, stats.WeeklyTrend)

	log[day(time.March, 12)] = readinglog.Entry{Date: day(time.March, 12), Pages: 50, Minutes: 40}
	stats, err = Compute(log, DefaultBookLength)
	assert.NoError(t, err)
	if assert.NotNil(t, stats.WeeklyTrend) {
		assert.Equal(t, -20, stats.WeeklyTrend.Delta)
		assert.Equal(t, TrendRegression, stats.WeeklyTrend.Outcome)
	}
}
