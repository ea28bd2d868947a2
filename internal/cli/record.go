package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/at-ishikawa/readtrack/internal/readinglog"
)

// RecordRequest is one day of reading entered by a user
type RecordRequest struct {
	UserID  string
	Date    readinglog.Date
	Pages   int
	Minutes int
	Mode    readinglog.RecordMode
}

// RunRecord loads the user's log, records the entry and saves the log back
func RunRecord(ctx context.Context, repository readinglog.Repository, output io.Writer, request RecordRequest) error {
	if err := readinglog.ValidateUserID(request.UserID); err != nil {
		return err
	}

	log, err := repository.Load(ctx, request.UserID)
	if err != nil {
		return fmt.Errorf("repository.Load(%s) > %w", request.UserID, err)
	}

	date := readinglog.Today()
	if !request.Date.IsZero() {
		date = readinglog.DateOf(request.Date.Time)
	}
	log, err = readinglog.Record(log, date, request.Pages, request.Minutes, request.Mode)
	if err != nil {
		return fmt.Errorf("readinglog.Record() > %w", err)
	}

	if err := repository.Save(ctx, request.UserID, log); err != nil {
		return fmt.Errorf("repository.Save(%s) > %w", request.UserID, err)
	}
	slog.Default().Debug("recorded a reading entry",
		slog.String("user", request.UserID),
		slog.String("date", date.String()),
		slog.String("mode", string(request.Mode)),
	)

	entry := log[date]
	if _, err := fmt.Fprintf(output, "Saved: %d pages and %d minutes on %s\n", request.Pages, request.Minutes, date); err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	if entry.Pages != request.Pages || entry.Minutes != request.Minutes {
		if _, err := fmt.Fprintf(output, "Day total: %d pages and %d minutes\n", entry.Pages, entry.Minutes); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
	}
	return nil
}
