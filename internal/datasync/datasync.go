// Package datasync copies reading logs between storage backends, such as YAML files and the database.
package datasync

import (
	"context"
	"fmt"
	"io"

	"github.com/at-ishikawa/readtrack/internal/readinglog"
)

// ImportResult tracks counts of the entries of an import.
type ImportResult struct {
	EntriesNew     int
	EntriesSkipped int
	EntriesUpdated int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Importer reads reading logs from one repository and writes them to another.
type Importer struct {
	source      readinglog.Repository
	destination readinglog.Repository
	writer      io.Writer
}

// NewImporter creates a new Importer.
func NewImporter(source readinglog.Repository, destination readinglog.Repository, writer io.Writer) *Importer {
	return &Importer{
		source:      source,
		destination: destination,
		writer:      writer,
	}
}

// Import merges the user's log of the source into the destination.
// A day missing from the destination is added. A day that differs is replaced only with UpdateExisting.
func (imp *Importer) Import(ctx context.Context, userID string, opts ImportOptions) (*ImportResult, error) {
	if err := readinglog.ValidateUserID(userID); err != nil {
		return nil, err
	}

	sourceLog, err := imp.source.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("source.Load(%s) > %w", userID, err)
	}
	destinationLog, err := imp.destination.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("destination.Load(%s) > %w", userID, err)
	}
	if destinationLog == nil {
		destinationLog = readinglog.Log{}
	}

	var result ImportResult
	for _, entry := range sourceLog.Sorted() {
		existing, ok := destinationLog[entry.Date]
		switch {
		case !ok:
			destinationLog[entry.Date] = entry
			result.EntriesNew++
			fmt.Fprintf(imp.writer, "  [NEW]  %s (%d pages, %d minutes)\n", entry.Date, entry.Pages, entry.Minutes)
		case existing == entry:
			result.EntriesSkipped++
		case !opts.UpdateExisting:
			result.EntriesSkipped++
			fmt.Fprintf(imp.writer, "  [SKIP]  %s (%d pages, %d minutes are kept)\n", entry.Date, existing.Pages, existing.Minutes)
		default:
			destinationLog[entry.Date] = entry
			result.EntriesUpdated++
			fmt.Fprintf(imp.writer, "  [UPDATE]  %s (%d pages, %d minutes)\n", entry.Date, entry.Pages, entry.Minutes)
		}
	}

	if opts.DryRun || result.EntriesNew+result.EntriesUpdated == 0 {
		return &result, nil
	}
	if err := imp.destination.Save(ctx, userID, destinationLog); err != nil {
		return nil, fmt.Errorf("destination.Save(%s) > %w", userID, err)
	}
	return &result, nil
}
