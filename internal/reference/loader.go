// Package reference supplies the reference populations readers are compared against.
package reference

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"gopkg.in/yaml.v3"
	"resty.dev/v3"

	"github.com/at-ishikawa/readtrack/internal/config"
	"github.com/at-ishikawa/readtrack/internal/statistics"
)

var (
	// ErrInvalidTable is returned for a table with an empty label or a negative rate
	ErrInvalidTable = errors.New("invalid reference table")
	// ErrMalformedTable is returned when a remote document is not a YAML list of populations
	ErrMalformedTable = errors.New("malformed reference table")
)

// DefaultTable returns the populations used when nothing is configured
func DefaultTable() statistics.ReferenceTable {
	return statistics.ReferenceTable{
		{Label: "Average Person (Global)", BooksPerYear: 12},
		{Label: "CEO Average", BooksPerYear: 60},
		{Label: "Bill Gates", BooksPerYear: 50},
		{Label: "UK Average", BooksPerYear: 15},
		{Label: "India Average", BooksPerYear: 16},
		{Label: "Finland Average", BooksPerYear: 16},
		{Label: "France Average", BooksPerYear: 14},
		{Label: "US Average", BooksPerYear: 17},
	}
}

// population is an item of a remote YAML table
type population struct {
	Label        string  `yaml:"label"`
	BooksPerYear float64 `yaml:"books_per_year"`
}

// Loader resolves the reference table from, in order of precedence,
// a remote YAML document, the configured populations, or DefaultTable
type Loader struct {
	httpClient       *resty.Client
	sourceURL        string
	maxRetryAttempts uint
	populations      []config.PopulationConfig
}

// NewLoader creates a Loader from the comparison configuration
func NewLoader(cfg config.ComparisonConfig) *Loader {
	client := resty.New()
	client.SetTimeout(10 * time.Second)
	client.SetHeader("Accept", "application/yaml, text/yaml, text/plain")

	return &Loader{
		httpClient:       client,
		sourceURL:        cfg.SourceURL,
		maxRetryAttempts: cfg.RetryAttempts,
		populations:      cfg.Populations,
	}
}

func (loader *Loader) Close() error {
	return loader.httpClient.Close()
}

// Load returns the reference table
func (loader *Loader) Load(ctx context.Context) (statistics.ReferenceTable, error) {
	var table statistics.ReferenceTable
	switch {
	case loader.sourceURL != "":
		fetched, err := loader.fetchWithRetry(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch reference table from %s > %w", loader.sourceURL, err)
		}
		table = fetched
	case len(loader.populations) > 0:
		table = make(statistics.ReferenceTable, 0, len(loader.populations))
		for _, p := range loader.populations {
			table = append(table, statistics.Reference{
				Label:        p.Label,
				BooksPerYear: p.BooksPerYear,
			})
		}
	default:
		table = DefaultTable()
	}

	if err := validate(table); err != nil {
		return nil, err
	}
	return table, nil
}

func (loader *Loader) fetchWithRetry(ctx context.Context) (statistics.ReferenceTable, error) {
	var result statistics.ReferenceTable
	if err := retry.Do(
		func() error {
			table, err := loader.fetch(ctx)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				slog.Default().Debug("retrying reference table fetch", slog.Any("error", err))
				return err
			}
			result = table
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(loader.maxRetryAttempts+1),
		retry.Delay(50*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, retryConfig *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, retryConfig)
		}),
	); err != nil {
		return nil, err
	}
	return result, nil
}

// statusError is returned for a non-2xx response
type statusError struct {
	statusCode int
	body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.statusCode, e.body)
}

func (loader *Loader) fetch(ctx context.Context) (statistics.ReferenceTable, error) {
	response, err := loader.httpClient.R().
		SetContext(ctx).
		Get(loader.sourceURL)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return nil, &statusError{statusCode: response.StatusCode(), body: strings.TrimSpace(response.String())}
	}

	var populations []population
	if err := yaml.Unmarshal([]byte(response.String()), &populations); err != nil {
		return nil, fmt.Errorf("%w: yaml.Unmarshal > %w", ErrMalformedTable, err)
	}

	table := make(statistics.ReferenceTable, 0, len(populations))
	for _, p := range populations {
		table = append(table, statistics.Reference{
			Label:        p.Label,
			BooksPerYear: p.BooksPerYear,
		})
	}
	return table, nil
}

// isRetryableError reports whether a fetch failure may succeed on a later attempt:
// transport errors, 5xx and 429 responses. Other responses and malformed bodies are final.
func isRetryableError(err error) bool {
	if errors.Is(err, ErrMalformedTable) {
		return false
	}
	var statusErr *statusError
	if errors.As(err, &statusErr) {
		return statusErr.statusCode >= http.StatusInternalServerError ||
			statusErr.statusCode == http.StatusTooManyRequests
	}
	return true
}

func validate(table statistics.ReferenceTable) error {
	for i, reference := range table {
		if strings.TrimSpace(reference.Label) == "" {
			return fmt.Errorf("%w: population %d has no label", ErrInvalidTable, i)
		}
		if reference.BooksPerYear < 0 {
			return fmt.Errorf("%w: %s has a negative rate %v", ErrInvalidTable, reference.Label, reference.BooksPerYear)
		}
	}
	return nil
}
