package repositories

import (
	"context"

	"github.com/SAP-F-2025/coursework-service/internal/models"
)

// UserRepository reads user profiles; the service does not own user data
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByIDs skips ids that cannot be resolved
	GetByIDs(ctx context.Context, ids []string) ([]*models.User, error)

	HasRole(ctx context.Context, id string, role models.UserRole) (bool, error)
}
