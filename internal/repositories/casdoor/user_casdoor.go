package casdoor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"

	"github.com/SAP-F-2025/coursework-service/internal/cache"
	"github.com/SAP-F-2025/coursework-service/internal/config"
	"github.com/SAP-F-2025/coursework-service/internal/models"
	"github.com/SAP-F-2025/coursework-service/internal/repositories"
)

// userSource is the subset of the Casdoor client the repository calls
type userSource interface {
	GetUserByUserId(userId string) (*casdoorsdk.User, error)
}

type UserCasdoor struct {
	client userSource
	cache  *cache.CacheHelper
}

func NewUserCasdoor(cfg config.CasdoorConfig, cacheManager *cache.CacheManager) repositories.UserRepository {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Organization,
		cfg.Application,
	)

	return newUserCasdoor(client, cacheManager)
}

func newUserCasdoor(client userSource, cacheManager *cache.CacheManager) *UserCasdoor {
	return &UserCasdoor{
		client: client,
		cache:  cacheManager.User,
	}
}

// GetByID retrieves a user by ID, serving from cache when possible
func (u *UserCasdoor) GetByID(ctx context.Context, id string) (*models.User, error) {
	cacheKey := fmt.Sprintf("id:%s", id)

	var cached models.User
	if err := u.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	casdoorUser, err := u.client.GetUserByUserId(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user from Casdoor: %w", err)
	}
	if casdoorUser == nil {
		return nil, fmt.Errorf("user %s: %w", id, repositories.ErrNotFound)
	}

	user := ConvertUser(casdoorUser)

	if err := u.cache.Set(ctx, cacheKey, user, cache.UserCacheConfig.TTL); err != nil {
		slog.WarnContext(ctx, "Failed to cache user", "error", err, "user_id", id)
	}

	return user, nil
}

// GetByIDs retrieves multiple users, skipping ones that cannot be resolved
func (u *UserCasdoor) GetByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	users := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		user, err := u.GetByID(ctx, id)
		if err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				slog.WarnContext(ctx, "Failed to resolve user", "error", err, "user_id", id)
			}
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

// HasRole checks if a user has a specific role
func (u *UserCasdoor) HasRole(ctx context.Context, id string, role models.UserRole) (bool, error) {
	user, err := u.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user.Role == role, nil
}

// ConvertUser maps a Casdoor account onto the service user
func ConvertUser(casdoorUser *casdoorsdk.User) *models.User {
	user := &models.User{
		ID:       casdoorUser.Id,
		FullName: casdoorUser.DisplayName,
		Email:    casdoorUser.Email,
		Role:     primaryRole(casdoorUser),
	}
	if casdoorUser.Avatar != "" {
		avatar := casdoorUser.Avatar
		user.AvatarURL = &avatar
	}
	return user
}

// primaryRole maps Casdoor roles onto one service role; admin wins
func primaryRole(casdoorUser *casdoorsdk.User) models.UserRole {
	var roles []models.UserRole
	for _, r := range casdoorUser.Roles {
		if r == nil {
			continue
		}
		mapped := MapRole(r.Name)
		if !slices.Contains(roles, mapped) {
			roles = append(roles, mapped)
		}
	}

	if casdoorUser.IsAdmin || slices.Contains(roles, models.RoleAdmin) {
		return models.RoleAdmin
	}
	if slices.Contains(roles, models.RoleTeacher) {
		return models.RoleTeacher
	}
	return models.RoleStudent
}

// MapRole maps a Casdoor role name to a service role
func MapRole(name string) models.UserRole {
	switch strings.ToLower(name) {
	case "teacher", "instructor", "ta":
		return models.RoleTeacher
	case "admin", "administrator":
		return models.RoleAdmin
	default:
		return models.RoleStudent
	}
}
