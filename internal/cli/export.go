package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/at-ishikawa/readtrack/internal/assets"
	"github.com/at-ishikawa/readtrack/internal/pdf"
)

// ExportOptions controls where and how a report is written
type ExportOptions struct {
	Directory    string
	TemplatePath string
	PDF          bool
	PDFTheme     string
}

// Export writes the user's report as <directory>/<user>-<date>.md, and converts it to PDF when asked.
// It returns the path of the last file written.
func (cli *ReportCLI) Export(ctx context.Context, options ReportOptions, exportOptions ExportOptions) (string, error) {
	report, err := cli.BuildReport(ctx, options)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(exportOptions.Directory, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", exportOptions.Directory, err)
	}
	markdownPath := filepath.Join(exportOptions.Directory, fmt.Sprintf("%s-%s.md", report.User, report.GeneratedOn))
	if err := writeMarkdown(markdownPath, exportOptions.TemplatePath, report); err != nil {
		return "", err
	}
	slog.Default().Debug("exported a report", slog.String("path", markdownPath))

	outputPath := markdownPath
	if exportOptions.PDF {
		outputPath, err = pdf.ConvertMarkdownToPDF(markdownPath, exportOptions.PDFTheme)
		if err != nil {
			return "", fmt.Errorf("pdf.ConvertMarkdownToPDF(%s) > %w", markdownPath, err)
		}
	}

	if _, err := fmt.Fprintf(cli.stdoutWriter, "Exported: %s\n", outputPath); err != nil {
		return "", fmt.Errorf("failed to write to stdout: %w", err)
	}
	return outputPath, nil
}

func writeMarkdown(path string, templatePath string, report assets.ReportTemplate) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := assets.WriteReport(file, templatePath, report); err != nil {
		return fmt.Errorf("assets.WriteReport() > %w", err)
	}
	return file.Close()
}
