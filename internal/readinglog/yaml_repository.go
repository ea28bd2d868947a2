package readinglog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// YAMLRepository keeps each user's log in <directory>/<user id>.yml as a list of entries
type YAMLRepository struct {
	directory string
	mu        sync.RWMutex
}

// NewYAMLRepository creates a new YAMLRepository
func NewYAMLRepository(directory string) *YAMLRepository {
	return &YAMLRepository{directory: directory}
}

func (r *YAMLRepository) path(userID string) string {
	return filepath.Join(r.directory, userID+".yml")
}

// Load implements Repository
func (r *YAMLRepository) Load(ctx context.Context, userID string) (Log, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := readYamlFile[[]Entry](r.path(userID))
	if errors.Is(err, os.ErrNotExist) {
		slog.Default().Debug("no reading log yet",
			slog.String("userID", userID),
			slog.String("path", r.path(userID)),
		)
		return make(Log), nil
	}
	if err != nil {
		return nil, fmt.Errorf("readYamlFile(%s) > %w", r.path(userID), err)
	}
	if err := validateEntries(entries); err != nil {
		return nil, fmt.Errorf("%s > %w", r.path(userID), err)
	}
	return NewLog(entries...), nil
}

// Save implements Repository
func (r *YAMLRepository) Save(ctx context.Context, userID string, log Log) error {
	if err := ValidateUserID(userID); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(r.directory, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", r.directory, err)
	}
	if err := writeYamlFile(r.path(userID), log.Sorted()); err != nil {
		return fmt.Errorf("writeYamlFile(%s) > %w", r.path(userID), err)
	}
	return nil
}

func readYamlFile[T any](path string) (T, error) {
	var result T

	file, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("os.Open(%s)> %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(&result); err != nil && !errors.Is(err, io.EOF) {
		return result, fmt.Errorf("yaml.NewDecoder().Decode()> %w", err)
	}
	return result, nil
}

func writeYamlFile[T any](path string, data T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s)> %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	encoder := yaml.NewEncoder(file)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("yaml.Encoder.Encode()> %w", err)
	}
	return encoder.Close()
}
