package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/coursework-service/internal/cache"
	"github.com/SAP-F-2025/coursework-service/internal/events"
	"github.com/SAP-F-2025/coursework-service/internal/repositories"
	"github.com/SAP-F-2025/coursework-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	UpcomingWindow   time.Duration
	AnalysisCacheTTL time.Duration
}

// Dependencies are the shared collaborators every service is built from
type Dependencies struct {
	DB             *gorm.DB
	Repo           repositories.Repository
	Logger         *slog.Logger
	Validator      *validator.Validator
	EventPublisher events.EventPublisher
	CacheManager   *cache.CacheManager
}

type serviceManager struct {
	deps   Dependencies
	config ServiceManagerConfig

	courseworkService   CourseworkService
	itemAnalysisService ItemAnalysisService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(deps Dependencies, config ServiceManagerConfig) ServiceManager {
	if deps.CacheManager == nil {
		deps.CacheManager = cache.NewCacheManager(nil)
	}
	return &serviceManager{
		deps:   deps,
		config: config,
	}
}

// NewDefaultServiceManager creates a service manager with default configuration
func NewDefaultServiceManager(deps Dependencies) ServiceManager {
	return NewServiceManager(deps, ServiceManagerConfig{
		UpcomingWindow:   7 * 24 * time.Hour,
		AnalysisCacheTTL: cache.StatsCacheConfig.TTL,
	})
}

func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.deps.Logger.Info("Initializing service manager")

	if err := sm.config.Validate(); err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	d := sm.deps
	sm.courseworkService = NewCourseworkService(d.Repo, d.DB, d.Logger, d.Validator, d.EventPublisher, d.CacheManager, sm.config.UpcomingWindow)
	sm.deps.Logger.Info("Coursework service initialized")

	sm.itemAnalysisService = NewItemAnalysisService(d.Repo, d.DB, d.Logger, d.Validator, d.EventPublisher, d.CacheManager, sm.config.AnalysisCacheTTL)
	sm.deps.Logger.Info("Item analysis service initialized")

	sm.initialized = true
	sm.deps.Logger.Info("Service manager initialized successfully")

	return nil
}

func (sm *serviceManager) Coursework() CourseworkService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.courseworkService
}

func (sm *serviceManager) ItemAnalysis() ItemAnalysisService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.itemAnalysisService
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.deps.Repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.deps.Logger.Info("Shutting down service manager")

	if sm.deps.EventPublisher != nil {
		if err := sm.deps.EventPublisher.Close(); err != nil {
			sm.deps.Logger.Error("Failed to close event publisher", "error", err)
		}
	}

	sm.shutdown = true
	sm.deps.Logger.Info("Service manager shut down completed")

	return nil
}

func (sm *serviceManager) IsInitialized() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.initialized
}

// Validate validates the service manager configuration
func (config *ServiceManagerConfig) Validate() error {
	var errors []string

	if config.UpcomingWindow <= 0 {
		errors = append(errors, "upcoming window must be positive")
	}
	if config.AnalysisCacheTTL < 0 {
		errors = append(errors, "analysis cache TTL cannot be negative")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %v", errors)
	}
	return nil
}
