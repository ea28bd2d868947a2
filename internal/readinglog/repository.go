package readinglog

import (
	"context"
	"fmt"
	"strings"
)

//go:generate mockgen -source=repository.go -destination=../mocks/readinglog/mock_repository.go -package=mock_readinglog

// Repository stores one reading log per user.
// Load returns an empty log for a user that has never recorded anything.
type Repository interface {
	Load(ctx context.Context, userID string) (Log, error)
	Save(ctx context.Context, userID string, log Log) error
}

// ValidateUserID rejects identities that cannot be used as a storage key
func ValidateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is empty", ErrInvalidInput)
	}
	if strings.ContainsAny(userID, `/\`) || strings.Contains(userID, "..") {
		return fmt.Errorf("%w: user id %q must not contain path separators or '..'", ErrInvalidInput, userID)
	}
	return nil
}
