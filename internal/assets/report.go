package assets

import (
	"fmt"
	"io"
)

// ReportTemplate is the data structure for the reading report template
type ReportTemplate struct {
	User        string
	GeneratedOn string

	TotalPages            int
	TotalMinutes          int
	DaysActive            int
	AvgDailyPages         float64
	AvgDailyMinutes       float64
	PagesPerMinute        float64
	YearlyProjectionPages float64
	BooksPerYear          float64
	BookLength            int
	DaysToFinishBook      *float64

	Persona     string
	PaceMessage string

	TVEquivalents []TVEquivalent
	Effort        EffortProjection
	WeeklyTrend   *WeeklyTrend
	Comparison    []ComparisonRow
	Histogram     []HistogramBin
}

// TVEquivalent is how many pages could be read instead of watching TV for Minutes
type TVEquivalent struct {
	Minutes int
	Pages   float64
}

// EffortProjection is the books per year when reading ExtraMinutes more every day
type EffortProjection struct {
	ExtraMinutes int
	BooksPerYear float64
}

// WeeklyTrend compares the pages of the week ending on WeekEnd with the week before
type WeeklyTrend struct {
	WeekEnd       string
	ThisWeekPages int
	PrevWeekPages int
	Delta         int
	Outcome       string
}

// ComparisonRow is a line of the books per year ranking. IsUser marks the reader's own row.
type ComparisonRow struct {
	Label        string
	BooksPerYear float64
	IsUser       bool
}

// HistogramBin counts the days whose pages fall between Lower and Upper
type HistogramBin struct {
	Lower float64
	Upper float64
	Days  int
}

// WriteReport renders the report with the template at templatePath, or the embedded one
func WriteReport(output io.Writer, templatePath string, templateData ReportTemplate) error {
	tmpl, err := ParseReportTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("ParseReportTemplate() > %w", err)
	}
	if err := tmpl.Execute(output, templateData); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
