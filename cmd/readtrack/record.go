package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/readtrack/internal/cli"
	"github.com/at-ishikawa/readtrack/internal/readinglog"
)

// RecordModeFlag selects how a new entry is merged into an existing day
type RecordModeFlag readinglog.RecordMode

// Set implements pflag.Value.
func (m *RecordModeFlag) Set(v string) error {
	mode, err := readinglog.ParseRecordMode(v)
	if err != nil {
		return fmt.Errorf("invalid value %q, valid values are %q or %q",
			v, readinglog.RecordModeAccumulate, readinglog.RecordModeOverwrite)
	}
	*m = RecordModeFlag(mode)
	return nil
}

// String implements pflag.Value.
func (m *RecordModeFlag) String() string {
	if m == nil {
		return ""
	}
	return string(*m)
}

// Type implements pflag.Value.
func (m *RecordModeFlag) Type() string {
	return "RecordModeFlag"
}

var (
	_ pflag.Value = (*RecordModeFlag)(nil)
)

func newRecordCommand() *cobra.Command {
	var pages, minutes int
	var date string
	var mode RecordModeFlag

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "Record the pages and minutes read on a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			request := cli.RecordRequest{
				UserID:  resolveUserID(cfg),
				Pages:   pages,
				Minutes: minutes,
				Mode:    readinglog.RecordMode(mode),
			}
			if !cmd.Flags().Changed("mode") {
				if request.Mode, err = readinglog.ParseRecordMode(cfg.Record.DefaultMode); err != nil {
					return fmt.Errorf("readinglog.ParseRecordMode() > %w", err)
				}
			}
			if date != "" {
				if request.Date, err = readinglog.ParseDate(date); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			repository, closeRepository, err := openRepository(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeRepository()
			}()

			return cli.RunRecord(ctx, repository, cmd.OutOrStdout(), request)
		},
	}

	flags := recordCmd.Flags()
	flags.IntVar(&pages, "pages", 0, "pages read")
	flags.IntVar(&minutes, "minutes", 0, "minutes spent reading")
	flags.StringVar(&date, "date", "", "day of the reading in YYYY-MM-DD. Defaults to today")
	flags.Var(&mode, "mode", "how to merge into an existing day. Options: accumulate, overwrite. Defaults to record.default_mode")
	_ = recordCmd.MarkFlagRequired("pages")
	_ = recordCmd.MarkFlagRequired("minutes")
	return recordCmd
}
