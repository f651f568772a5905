package services

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/coursework-service/internal/repositories"
)

var (
	ErrValidationFailed = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
)

// validationError keeps both the sentinel and the field errors reachable
// through errors.Is and errors.As
func validationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidationFailed, err)
}

// translateRepoError maps repository sentinels onto service sentinels
func translateRepoError(err error, action string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
