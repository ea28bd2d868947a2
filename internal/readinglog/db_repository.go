package readinglog

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// dbEntry is a row of the reading_logs table
type dbEntry struct {
	UserID    string    `db:"user_id"`
	ReadOn    time.Time `db:"read_on"`
	Pages     int       `db:"pages"`
	Minutes   int       `db:"minutes"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Load returns all entries recorded by the user.
func (r *DBRepository) Load(ctx context.Context, userID string) (Log, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}

	var rows []dbEntry
	if err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM reading_logs WHERE user_id = ? ORDER BY read_on",
		userID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(reading_logs) > %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			Date:    DateOf(row.ReadOn),
			Pages:   row.Pages,
			Minutes: row.Minutes,
		})
	}
	return NewLog(entries...), nil
}

// Save upserts every entry of the log in a single transaction.
// Days missing from the log are left untouched because the log never deletes a day.
func (r *DBRepository) Save(ctx context.Context, userID string, log Log) error {
	if err := ValidateUserID(userID); err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, entry := range log.Sorted() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO reading_logs (user_id, read_on, pages, minutes)
			VALUES (?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE pages = VALUES(pages), minutes = VALUES(minutes)`,
			userID, entry.Date.String(), entry.Pages, entry.Minutes); err != nil {
			return fmt.Errorf("tx.ExecContext(upsert reading_log %s) > %w", entry.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}
