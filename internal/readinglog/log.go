// Package readinglog provides the date-keyed reading log, the policies for recording a day,
// and repositories that persist a log per user.
package readinglog

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidInput is returned when a value is rejected before the log is mutated
var ErrInvalidInput = errors.New("invalid input")

// Entry is what was read on one calendar day
type Entry struct {
	Date    Date `yaml:"date"`
	Pages   int  `yaml:"pages"`
	Minutes int  `yaml:"minutes"`
}

// Log maps each calendar day to its entry. There is at most one entry per day.
type Log map[Date]Entry

// NewLog builds a log from entries. A later entry for the same day replaces an earlier one.
func NewLog(entries ...Entry) Log {
	log := make(Log, len(entries))
	for _, entry := range entries {
		entry.Date = entry.Date.normalized()
		log[entry.Date] = entry
	}
	return log
}

// validateEntries rejects entries that could not have been produced by Record:
// a missing date, a negative value, or a second entry for the same day
func validateEntries(entries []Entry) error {
	seen := make(map[Date]struct{}, len(entries))
	for i, entry := range entries {
		if entry.Date.IsZero() {
			return fmt.Errorf("%w: entry %d has no date", ErrInvalidInput, i+1)
		}
		date := entry.Date.normalized()
		if entry.Pages < 0 || entry.Minutes < 0 {
			return fmt.Errorf("%w: %s has negative values (%d pages, %d minutes)", ErrInvalidInput, date, entry.Pages, entry.Minutes)
		}
		if _, ok := seen[date]; ok {
			return fmt.Errorf("%w: %s is recorded more than once", ErrInvalidInput, date)
		}
		seen[date] = struct{}{}
	}
	return nil
}

// Sorted returns the entries ordered by date, oldest first
func (log Log) Sorted() []Entry {
	entries := make([]Entry, 0, len(log))
	for _, entry := range log {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date.Time)
	})
	return entries
}

// Latest returns the most recent recorded day
func (log Log) Latest() (Date, bool) {
	var latest Date
	for date := range log {
		if latest.IsZero() || date.After(latest.Time) {
			latest = date
		}
	}
	return latest, !latest.IsZero()
}

// RecordMode decides what happens when a day that already has an entry is recorded again
type RecordMode string

const (
	// RecordModeAccumulate adds the new pages and minutes to the existing entry
	RecordModeAccumulate RecordMode = "accumulate"
	// RecordModeOverwrite replaces the existing entry
	RecordModeOverwrite RecordMode = "overwrite"
)

// ParseRecordMode converts a mode name into a RecordMode
func ParseRecordMode(value string) (RecordMode, error) {
	switch RecordMode(value) {
	case RecordModeAccumulate, RecordModeOverwrite:
		return RecordMode(value), nil
	}
	return "", fmt.Errorf("%w: invalid value %q, valid values are %q or %q", ErrInvalidInput, value, RecordModeAccumulate, RecordModeOverwrite)
}

// Record stores pages and minutes for date according to mode and returns the updated log.
// A zero date means today. A nil log is allocated. Nothing is changed when an input is invalid.
func Record(log Log, date Date, pages, minutes int, mode RecordMode) (Log, error) {
	if pages < 0 {
		return log, fmt.Errorf("%w: pages must not be negative, got %d", ErrInvalidInput, pages)
	}
	if minutes < 0 {
		return log, fmt.Errorf("%w: minutes must not be negative, got %d", ErrInvalidInput, minutes)
	}
	if _, err := ParseRecordMode(string(mode)); err != nil {
		return log, fmt.Errorf("record mode: %w", err)
	}

	if date.IsZero() {
		date = Today()
	}
	date = date.normalized()

	if log == nil {
		log = make(Log)
	}

	entry := Entry{
		Date:    date,
		Pages:   pages,
		Minutes: minutes,
	}
	if existing, ok := log[date]; ok && mode == RecordModeAccumulate {
		entry.Pages += existing.Pages
		entry.Minutes += existing.Minutes
	}
	log[date] = entry
	return log, nil
}
