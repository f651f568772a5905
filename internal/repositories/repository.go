package repositories

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// Repository aggregates the repository interfaces
type Repository interface {
	// Coursework domain
	Course() CourseRepository
	Assignment() AssignmentRepository

	// Assessment domain
	Assessment() AssessmentRepository
	Attempt() AttemptRepository
	Analytics() AnalyticsRepository

	// User domain (read-only, owned by Casdoor)
	User() UserRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	Shutdown(ctx context.Context) error
}
