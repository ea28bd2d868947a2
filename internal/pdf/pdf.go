// Package pdf renders markdown reports as PDF documents.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ConvertMarkdownToPDF writes <name>.pdf next to the markdown file and returns its absolute path
func ConvertMarkdownToPDF(markdownPath string, theme string) (string, error) {
	if filepath.Ext(markdownPath) != ".md" {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}

	pdfTheme, err := parseTheme(theme)
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"
	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, pdfTheme)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}

func parseTheme(theme string) (mdtopdf.Theme, error) {
	switch theme {
	case "", ThemeLight:
		return mdtopdf.LIGHT, nil
	case ThemeDark:
		return mdtopdf.DARK, nil
	}
	return mdtopdf.LIGHT, fmt.Errorf("unknown pdf theme %q", theme)
}
