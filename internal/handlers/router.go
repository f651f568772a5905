package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/coursework-service/internal/config"
	"github.com/SAP-F-2025/coursework-service/internal/models"
	"github.com/SAP-F-2025/coursework-service/internal/repositories"
	"github.com/SAP-F-2025/coursework-service/internal/services"
	"github.com/SAP-F-2025/coursework-service/internal/utils"
)

type HandlerManager struct {
	serviceManager      services.ServiceManager
	courseworkHandler   *CourseworkHandler
	itemAnalysisHandler *ItemAnalysisHandler
	authMiddleware      *CasdoorAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	casdoorConfig config.CasdoorConfig,
	userRepo repositories.UserRepository,
) *HandlerManager {
	return newHandlerManager(serviceManager, logger, NewCasdoorAuthMiddleware(casdoorConfig, userRepo, logger))
}

func newHandlerManager(serviceManager services.ServiceManager, logger utils.Logger, auth *CasdoorAuthMiddleware) *HandlerManager {
	return &HandlerManager{
		serviceManager:      serviceManager,
		courseworkHandler:   NewCourseworkHandler(serviceManager.Coursework(), logger),
		itemAnalysisHandler: NewItemAnalysisHandler(serviceManager.ItemAnalysis(), logger),
		authMiddleware:      auth,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.AuthMiddleware())
	{
		staff := hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher)

		courses := v1.Group("/courses/:course_id")
		{
			courses.GET("/buckets", hm.courseworkHandler.GetMyBuckets)
			courses.GET("/students/:student_id/buckets", hm.courseworkHandler.GetStudentBuckets)
			courses.GET("/students/:student_id/overdue", hm.courseworkHandler.GetStudentOverdue)

			courses.POST("/overdue-reminders", staff, hm.courseworkHandler.SendOverdueReminders)
			courses.DELETE("/cache", staff, hm.courseworkHandler.InvalidateCourseCache)
		}

		assessments := v1.Group("/assessments/:id", staff)
		{
			assessments.GET("/item-analysis", hm.itemAnalysisHandler.GetItemAnalysis)
			assessments.POST("/item-analysis/refresh", hm.itemAnalysisHandler.RefreshItemAnalysis)
			assessments.GET("/item-analysis/export", hm.itemAnalysisHandler.ExportItemAnalysis)
		}
	}
}

// HealthCheck reports whether the database behind the services answers
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"error":   err.Error(),
			"service": "coursework-service",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "coursework-service",
	})
}
