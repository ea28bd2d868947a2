package main

import (
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/readtrack/internal/cli"
)

func newExportCommand() *cobra.Command {
	var flags reportFlags
	var generatePDF bool
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the reading report as markdown, and optionally PDF",
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

			_, err = reportCLI.Export(ctx, options, cli.ExportOptions{
				Directory:    cfg.Outputs.ReportDirectory,
				TemplatePath: cfg.Templates.ReportTemplate,
				PDF:          generatePDF,
				PDFTheme:     cfg.Outputs.PDFTheme,
			})
			return err
		},
	}
	flags.register(exportCmd)
	exportCmd.Flags().BoolVar(&generatePDF, "pdf", false, "Also convert the report to PDF")
	return exportCmd
}
