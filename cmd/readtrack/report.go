package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/readtrack/internal/cli"
	"github.com/at-ishikawa/readtrack/internal/config"
	"github.com/at-ishikawa/readtrack/internal/readinglog"
	"github.com/at-ishikawa/readtrack/internal/statistics"
)

// reportFlags are shared by the commands that build a report
type reportFlags struct {
	bookLength    int
	extraMinutes  int
	histogramBins int
}

func (f *reportFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntVar(&f.bookLength, "book-length", 0, "pages counted as one book. Defaults to books.average_length")
	flags.IntVar(&f.extraMinutes, "extra-minutes", 0, "extra minutes a day for the what-if projection. Defaults to report.extra_minutes")
	flags.IntVar(&f.histogramBins, "bins", statistics.DefaultHistogramBins, "number of bins of the pages per day histogram")
}

func (f *reportFlags) options(cmd *cobra.Command, cfg *config.Config) (cli.ReportOptions, error) {
	options := cli.ReportOptions{
		UserID:        resolveUserID(cfg),
		BookLength:    cfg.Books.AverageLength,
		ExtraMinutes:  cfg.Report.ExtraMinutes,
		HistogramBins: f.histogramBins,
	}
	if cmd.Flags().Changed("book-length") {
		options.BookLength = f.bookLength
	}
	if cmd.Flags().Changed("extra-minutes") {
		if f.extraMinutes < 0 {
			return cli.ReportOptions{}, fmt.Errorf("%w: --extra-minutes must not be negative, got %d", readinglog.ErrInvalidInput, f.extraMinutes)
		}
		options.ExtraMinutes = f.extraMinutes
	}
	return options, nil
}

func newReportCommand() *cobra.Command {
	var flags reportFlags
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Show reading statistics, projections and how you compare",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			options, err := flags.options(cmd, cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			reportCLI, closeReportCLI, err := newReportCLI(cmd, cfg)
			if err != nil {
				return err
			}
			defer closeReportCLI()

			return reportCLI.Run(ctx, options)
		},
	}
	flags.register(reportCmd)
	return reportCmd
}
