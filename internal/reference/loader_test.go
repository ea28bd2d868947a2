package reference

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/readtrack/internal/config"
	"github.com/at-ishikawa/readtrack/internal/statistics"
)

const remoteTable = `- label: Book club
  books_per_year: 24
- label: Commuters
  books_per_year: 9.5
`

func TestLoader_Load(t *testing.T) {
	tests := []struct {
		name          string
		cfg           config.ComparisonConfig
		handler       func(calls *int32) http.HandlerFunc
		want          statistics.ReferenceTable
		wantCalls     int32
		wantErr       bool
		wantErrIs     error
		wantErrString string
	}{
		{
			name: "default table when nothing is configured",
			want: DefaultTable(),
		},
		{
			name: "configured populations keep their order",
			cfg: config.ComparisonConfig{
				Populations: []config.PopulationConfig{
					{Label: "Office", BooksPerYear: 6},
					{Label: "Book club", BooksPerYear: 24},
				},
			},
			want: statistics.ReferenceTable{
				{Label: "Office", BooksPerYear: 6},
				{Label: "Book club", BooksPerYear: 24},
			},
		},
		{
			name: "remote table takes precedence",
			cfg: config.ComparisonConfig{
				RetryAttempts: 2,
				Populations:   []config.PopulationConfig{{Label: "Office", BooksPerYear: 6}},
			},
			handler: func(calls *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					atomic.AddInt32(calls, 1)
					assert.Equal(t, http.MethodGet, r.Method)
					_, _ = w.Write([]byte(remoteTable))
				}
			},
			want: statistics.ReferenceTable{
				{Label: "Book club", BooksPerYear: 24},
				{Label: "Commuters", BooksPerYear: 9.5},
			},
			wantCalls: 1,
		},
		{
			name: "server errors are retried",
			cfg:  config.ComparisonConfig{RetryAttempts: 3},
			handler: func(calls *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					if atomic.AddInt32(calls, 1) < 3 {
						w.WriteHeader(http.StatusServiceUnavailable)
						return
					}
					_, _ = w.Write([]byte(remoteTable))
				}
			},
			want: statistics.ReferenceTable{
				{Label: "Book club", BooksPerYear: 24},
				{Label: "Commuters", BooksPerYear: 9.5},
			},
			wantCalls: 3,
		},
		{
			name: "rate limiting is retried until attempts run out",
			cfg:  config.ComparisonConfig{RetryAttempts: 1},
			handler: func(calls *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					atomic.AddInt32(calls, 1)
					w.WriteHeader(http.StatusTooManyRequests)
				}
			},
			wantCalls:     2,
			wantErr:       true,
			wantErrString: "response error 429",
		},
		{
			name: "client errors are not retried",
			cfg:  config.ComparisonConfig{RetryAttempts: 3},
			handler: func(calls *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					atomic.AddInt32(calls, 1)
					http.NotFound(w, r)
				}
			},
			wantCalls:     1,
			wantErr:       true,
			wantErrString: "response error 404",
		},
		{
			name: "malformed body is not retried",
			cfg:  config.ComparisonConfig{RetryAttempts: 3},
			handler: func(calls *int32) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					atomic.AddInt32(calls, 1)
					_, _ = w.Write([]byte("label: [[["))
				}
			},
			wantCalls:     1,
			wantErr:       true,
			wantErrIs:     ErrMalformedTable,
			wantErrString: "yaml.Unmarshal",
		},
		{
			name: "negative rate is rejected",
			cfg: config.ComparisonConfig{
				Populations: []config.PopulationConfig{{Label: "Office", BooksPerYear: -1}},
			},
			wantErr:       true,
			wantErrIs:     ErrInvalidTable,
			wantErrString: "negative rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			cfg := tt.cfg
			if tt.handler != nil {
				server := httptest.NewServer(tt.handler(&calls))
				defer server.Close()
				cfg.SourceURL = server.URL + "/populations.yml"
			}

			loader := NewLoader(cfg)
			defer func() {
				_ = loader.Close()
			}()

			got, err := loader.Load(context.Background())
			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(&calls))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrString)
				if tt.wantErrIs != nil {
					assert.ErrorIs(t, err, tt.wantErrIs)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "transport error",
			err:  errors.New("connection refused"),
			want: true,
		},
		{
			name: "server error",
			err:  &statusError{statusCode: http.StatusBadGateway},
			want: true,
		},
		{
			name: "rate limited",
			err:  &statusError{statusCode: http.StatusTooManyRequests},
			want: true,
		},
		{
			name: "client error",
			err:  &statusError{statusCode: http.StatusForbidden},
			want: false,
		},
		{
			name: "malformed document whatever the message says",
			err:  fmt.Errorf("%w: unexpected end of stream", ErrMalformedTable),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()

	require.Len(t, table, 8)
	assert.Equal(t, statistics.Reference{Label: "Average Person (Global)", BooksPerYear: 12}, table[0])
	assert.NoError(t, validate(table))
}
