package readinglog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upsertQuery = "INSERT INTO reading_logs \\(user_id, read_on, pages, minutes\\)"

func TestDBRepository_Load(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	columns := []string{"user_id", "read_on", "pages", "minutes", "created_at", "updated_at"}

	tests := []struct {
		name      string
		userID    string
		setupMock func(mock sqlmock.Sqlmock)
		want      Log
		wantErr   bool
	}{
		{
			name:   "returns entries of the user",
			userID: "alice",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow("alice", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 30, 20, now, now).
					AddRow("alice", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), 10, 10, now, now)
				mock.ExpectQuery("SELECT \\* FROM reading_logs WHERE user_id = \\? ORDER BY read_on").
					WithArgs("alice").
					WillReturnRows(rows)
			},
			want: NewLog(
				Entry{Date: NewDate(2025, time.January, 1), Pages: 30, Minutes: 20},
				Entry{Date: NewDate(2025, time.January, 2), Pages: 10, Minutes: 10},
			),
		},
		{
			name:   "no rows",
			userID: "bob",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM reading_logs WHERE user_id = \\? ORDER BY read_on").
					WithArgs("bob").
					WillReturnRows(sqlmock.NewRows(columns))
			},
			want: Log{},
		},
		{
			name:   "db error",
			userID: "alice",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM reading_logs WHERE user_id = \\? ORDER BY read_on").
					WithArgs("alice").
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
		{
			name:      "invalid user id",
			userID:    "",
			setupMock: func(mock sqlmock.Sqlmock) {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewDBRepository(sqlx.NewDb(db, "mysql"))
			tt.setupMock(mock)

			got, err := repo.Load(context.Background(), tt.userID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_Save(t *testing.T) {
	log := NewLog(
		Entry{Date: NewDate(2025, time.January, 2), Pages: 10, Minutes: 10},
		Entry{Date: NewDate(2025, time.January, 1), Pages: 30, Minutes: 20},
	)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "upserts every entry in a transaction",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(upsertQuery).
					WithArgs("alice", "2025-01-01", 30, 20).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec(upsertQuery).
					WithArgs("alice", "2025-01-02", 10, 10).
					WillReturnResult(sqlmock.NewResult(2, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "rolls back on error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(upsertQuery).
					WithArgs("alice", "2025-01-01", 30, 20).
					WillReturnError(fmt.Errorf("deadlock"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
		{
			name: "begin error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewDBRepository(sqlx.NewDb(db, "mysql"))
			tt.setupMock(mock)

			err = repo.Save(context.Background(), "alice", log)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
