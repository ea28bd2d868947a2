package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/at-ishikawa/readtrack/internal/assets"
	"github.com/at-ishikawa/readtrack/internal/readinglog"
	"github.com/at-ishikawa/readtrack/internal/statistics"
)

// tvMinutes are the TV sessions a reading pace is compared with
var tvMinutes = []int{30, 60}

const histogramBarWidth = 30

//go:generate mockgen -source=report.go -destination=../mocks/cli/mock_reference_loader.go -package=mock_cli ReferenceLoader

// ReferenceLoader supplies the populations a reader is compared against
type ReferenceLoader interface {
	Load(ctx context.Context) (statistics.ReferenceTable, error)
}

// ReportOptions selects whose report is built and how
type ReportOptions struct {
	UserID        string
	BookLength    int
	ExtraMinutes  int
	HistogramBins int
}

// ReportCLI builds reading reports and prints them to the terminal
type ReportCLI struct {
	repository   readinglog.Repository
	references   ReferenceLoader
	stdoutWriter io.Writer
	today        func() readinglog.Date

	bold      *color.Color
	highlight *color.Color
}

// NewReportCLI creates a ReportCLI that prints to stdoutWriter
func NewReportCLI(repository readinglog.Repository, references ReferenceLoader, stdoutWriter io.Writer) *ReportCLI {
	return &ReportCLI{
		repository:   repository,
		references:   references,
		stdoutWriter: stdoutWriter,
		today:        readinglog.Today,
		bold:         color.New(color.Bold),
		highlight:    color.New(color.FgCyan, color.Bold),
	}
}

// BuildReport loads the user's log and derives everything the report shows
func (cli *ReportCLI) BuildReport(ctx context.Context, options ReportOptions) (assets.ReportTemplate, error) {
	if err := readinglog.ValidateUserID(options.UserID); err != nil {
		return assets.ReportTemplate{}, err
	}

	log, err := cli.repository.Load(ctx, options.UserID)
	if err != nil {
		return assets.ReportTemplate{}, fmt.Errorf("repository.Load(%s) > %w", options.UserID, err)
	}

	stats, err := statistics.Compute(log, options.BookLength)
	if err != nil {
		return assets.ReportTemplate{}, fmt.Errorf("statistics.Compute() > %w", err)
	}

	bins := options.HistogramBins
	if bins == 0 {
		bins = statistics.DefaultHistogramBins
	}
	histogram, err := statistics.Histogram(log, bins)
	if err != nil {
		return assets.ReportTemplate{}, fmt.Errorf("statistics.Histogram() > %w", err)
	}

	table, err := cli.references.Load(ctx)
	if err != nil {
		return assets.ReportTemplate{}, fmt.Errorf("references.Load() > %w", err)
	}

	report := assets.ReportTemplate{
		User:                  options.UserID,
		GeneratedOn:           cli.today().String(),
		TotalPages:            stats.TotalPages,
		TotalMinutes:          stats.TotalMinutes,
		DaysActive:            stats.DaysActive,
		AvgDailyPages:         stats.AvgDailyPages,
		AvgDailyMinutes:       stats.AvgDailyMinutes,
		PagesPerMinute:        stats.PagesPerMinute,
		YearlyProjectionPages: stats.YearlyProjectionPages,
		BooksPerYear:          stats.BooksPerYear,
		BookLength:            stats.BookLength,
		DaysToFinishBook:      stats.DaysToFinishBook,
		Persona:               string(stats.Persona),
		PaceMessage:           stats.Pace.Message(),
		Effort: assets.EffortProjection{
			ExtraMinutes: options.ExtraMinutes,
			BooksPerYear: stats.EffortProjection(options.ExtraMinutes),
		},
	}
	for _, minutes := range tvMinutes {
		report.TVEquivalents = append(report.TVEquivalents, assets.TVEquivalent{
			Minutes: minutes,
			Pages:   stats.TVEquivalent(minutes),
		})
	}
	if trend := stats.WeeklyTrend; trend != nil {
		report.WeeklyTrend = &assets.WeeklyTrend{
			WeekEnd:       trend.WeekEnd.String(),
			ThisWeekPages: trend.ThisWeekPages,
			PrevWeekPages: trend.PrevWeekPages,
			Delta:         trend.Delta,
			Outcome:       string(trend.Outcome),
		}
	}
	for _, row := range statistics.BuildComparison(stats.BooksPerYear, table) {
		report.Comparison = append(report.Comparison, assets.ComparisonRow{
			Label:        row.Label,
			BooksPerYear: row.BooksPerYear,
			IsUser:       row.IsUser,
		})
	}
	for _, bin := range histogram {
		report.Histogram = append(report.Histogram, assets.HistogramBin{
			Lower: bin.Lower,
			Upper: bin.Upper,
			Days:  bin.Days,
		})
	}
	return report, nil
}

// Run prints the user's report to the terminal
func (cli *ReportCLI) Run(ctx context.Context, options ReportOptions) error {
	report, err := cli.BuildReport(ctx, options)
	if err != nil {
		return err
	}
	if err := cli.printReport(report, paceColor(statistics.ClassifyPace(report.BooksPerYear))); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	return nil
}

func paceColor(pace statistics.Pace) *color.Color {
	switch pace {
	case statistics.PaceAmazing:
		return color.New(color.FgGreen, color.Bold)
	case statistics.PaceOnTrack:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func (cli *ReportCLI) printReport(report assets.ReportTemplate, pace *color.Color) error {
	w := cli.stdoutWriter
	if _, err := cli.bold.Fprintf(w, "Reading statistics for %s\n", report.User); err != nil {
		return err
	}

	daysToFinish := "not available"
	if report.DaysToFinishBook != nil {
		daysToFinish = fmt.Sprintf("%.1f", *report.DaysToFinishBook)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "  Total pages:\t%d\n", report.TotalPages)
	_, _ = fmt.Fprintf(tw, "  Total minutes:\t%d\n", report.TotalMinutes)
	_, _ = fmt.Fprintf(tw, "  Days active:\t%d\n", report.DaysActive)
	_, _ = fmt.Fprintf(tw, "  Pages per day:\t%.1f\n", report.AvgDailyPages)
	_, _ = fmt.Fprintf(tw, "  Minutes per day:\t%.1f\n", report.AvgDailyMinutes)
	_, _ = fmt.Fprintf(tw, "  Pages per minute:\t%.2f\n", report.PagesPerMinute)
	_, _ = fmt.Fprintf(tw, "  Yearly projection:\t%.0f pages\n", report.YearlyProjectionPages)
	_, _ = fmt.Fprintf(tw, "  Books per year:\t%.1f (%d pages per book)\n", report.BooksPerYear, report.BookLength)
	_, _ = fmt.Fprintf(tw, "  Days to finish a book:\t%s\n", daysToFinish)
	if err := tw.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\nPersona: %s\n", report.Persona); err != nil {
		return err
	}
	if _, err := pace.Fprintln(w, report.PaceMessage); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "\nInstead of TV"); err != nil {
		return err
	}
	for _, tv := range report.TVEquivalents {
		if _, err := fmt.Fprintf(w, "  %d minutes of TV could be %.1f pages\n", tv.Minutes, tv.Pages); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\nWhat if you read %d more minutes a day: %.1f books per year\n",
		report.Effort.ExtraMinutes, report.Effort.BooksPerYear); err != nil {
		return err
	}

	if trend := report.WeeklyTrend; trend != nil {
		if _, err := fmt.Fprintf(w, "\nWeekly trend: %d pages this week, %d pages the week before (%+d, %s)\n",
			trend.ThisWeekPages, trend.PrevWeekPages, trend.Delta, trend.Outcome); err != nil {
			return err
		}
	} else if _, err := fmt.Fprintln(w, "\nWeekly trend: not available"); err != nil {
		return err
	}

	if err := cli.printComparison(report.Comparison); err != nil {
		return err
	}
	return cli.printHistogram(report.Histogram)
}

func (cli *ReportCLI) printComparison(rows []assets.ComparisonRow) error {
	w := cli.stdoutWriter
	if _, err := fmt.Fprintln(w, "\nBooks per year"); err != nil {
		return err
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row.Label))
	}
	for _, row := range rows {
		line := fmt.Sprintf("  %-*s  %6.1f", width, row.Label, row.BooksPerYear)
		if row.IsUser {
			if _, err := cli.highlight.Fprintln(w, line); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (cli *ReportCLI) printHistogram(bins []assets.HistogramBin) error {
	w := cli.stdoutWriter
	if _, err := fmt.Fprintln(w, "\nPages per day"); err != nil {
		return err
	}
	if len(bins) == 0 {
		_, err := fmt.Fprintln(w, "  no days recorded yet")
		return err
	}

	mostDays := 0
	for _, bin := range bins {
		mostDays = max(mostDays, bin.Days)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, bin := range bins {
		bar := strings.Repeat("#", bin.Days*histogramBarWidth/mostDays)
		_, _ = fmt.Fprintf(tw, "  %.1f - %.1f\t%s\t%d\n", bin.Lower, bin.Upper, bar, bin.Days)
	}
	return tw.Flush()
}
