// Package testutil provides shared test helpers for creating config files and reading log fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/readtrack/internal/readinglog"
)

// SetupTestConfig creates a minimal config file using the yaml storage backend and all required directories.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	dirs := []string{"reading_logs", "reports"}
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`user: tester
storage:
  backend: yaml
  directory: %s
outputs:
  report_directory: %s
`,
		filepath.Join(tmpDir, "reading_logs"),
		filepath.Join(tmpDir, "reports"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithPopulations creates the config of SetupTestConfig with its own comparison populations
func SetupTestConfigWithPopulations(t *testing.T, tmpDir string, populations map[string]float64) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte("comparison:\n  populations:\n")...)
	for label, booksPerYear := range populations {
		content = append(content, []byte(fmt.Sprintf("    - label: %s\n      books_per_year: %v\n", label, booksPerYear))...)
	}
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// CreateReadingLog saves the entries as the reading log of userID under the yaml storage directory
func CreateReadingLog(t *testing.T, directory string, userID string, entries ...readinglog.Entry) {
	t.Helper()

	repository := readinglog.NewYAMLRepository(directory)
	require.NoError(t, repository.Save(context.Background(), userID, readinglog.NewLog(entries...)))
}
