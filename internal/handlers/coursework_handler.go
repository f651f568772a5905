package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/coursework-service/internal/services"
	"github.com/SAP-F-2025/coursework-service/internal/utils"
)

type CourseworkHandler struct {
	BaseHandler
	service services.CourseworkService
}

func NewCourseworkHandler(service services.CourseworkService, logger utils.Logger) *CourseworkHandler {
	return &CourseworkHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetMyBuckets returns the caller's own coursework buckets
// @Summary Get my coursework buckets
// @Tags coursework
// @Produce json
// @Param course_id path uint true "Course ID"
// @Param upcoming_days query int false "Upcoming window in days (1-60)"
// @Success 200 {object} services.CourseworkBucketsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /courses/{course_id}/buckets [get]
func (h *CourseworkHandler) GetMyBuckets(c *gin.Context) {
	courseID := h.parseIDParam(c, "course_id")
	if courseID == 0 {
		return
	}

	userID := h.getUserID(c)
	h.respondBuckets(c, courseID, userID, userID)
}

// GetStudentBuckets returns one student's coursework buckets
// @Summary Get a student's coursework buckets
// @Tags coursework
// @Produce json
// @Param course_id path uint true "Course ID"
// @Param student_id path string true "Student ID"
// @Param upcoming_days query int false "Upcoming window in days (1-60)"
// @Success 200 {object} services.CourseworkBucketsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /courses/{course_id}/students/{student_id}/buckets [get]
func (h *CourseworkHandler) GetStudentBuckets(c *gin.Context) {
	courseID := h.parseIDParam(c, "course_id")
	if courseID == 0 {
		return
	}
	studentID := h.parseStringIDParam(c, "student_id")
	if studentID == "" {
		return
	}

	h.respondBuckets(c, courseID, studentID, h.getUserID(c))
}

func (h *CourseworkHandler) respondBuckets(c *gin.Context, courseID uint, studentID, viewerID string) {
	upcomingDays := h.parseIntQuery(c, "upcoming_days", 0)

	h.LogRequest(c, "Getting coursework buckets", "course_id", courseID, "student_id", studentID)

	resp, err := h.service.GetBuckets(c.Request.Context(), courseID, studentID, viewerID, upcomingDays)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetStudentOverdue lists a student's overdue assignments
// @Summary Get overdue assignments
// @Tags coursework
// @Produce json
// @Param course_id path uint true "Course ID"
// @Param student_id path string true "Student ID"
// @Success 200 {object} services.OverdueResponse
// @Router /courses/{course_id}/students/{student_id}/overdue [get]
func (h *CourseworkHandler) GetStudentOverdue(c *gin.Context) {
	courseID := h.parseIDParam(c, "course_id")
	if courseID == 0 {
		return
	}
	studentID := h.parseStringIDParam(c, "student_id")
	if studentID == "" {
		return
	}

	resp, err := h.service.GetOverdue(c.Request.Context(), courseID, studentID, h.getUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SendOverdueReminders publishes reminders for every student with overdue work
// @Summary Send overdue reminders
// @Tags coursework
// @Produce json
// @Param course_id path uint true "Course ID"
// @Success 202 {object} services.OverdueReminderResponse
// @Router /courses/{course_id}/overdue-reminders [post]
func (h *CourseworkHandler) SendOverdueReminders(c *gin.Context) {
	courseID := h.parseIDParam(c, "course_id")
	if courseID == 0 {
		return
	}

	h.LogRequest(c, "Sending overdue reminders", "course_id", courseID)

	resp, err := h.service.SendOverdueReminders(c.Request.Context(), courseID, h.getUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, resp)
}

// InvalidateCourseCache drops cached course data after an external change
// @Summary Invalidate course cache
// @Tags coursework
// @Param course_id path uint true "Course ID"
// @Success 200 {object} SuccessResponse
// @Router /courses/{course_id}/cache [delete]
func (h *CourseworkHandler) InvalidateCourseCache(c *gin.Context) {
	courseID := h.parseIDParam(c, "course_id")
	if courseID == 0 {
		return
	}

	if err := h.service.InvalidateCourseCache(c.Request.Context(), courseID, h.getUserID(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Course cache invalidated",
	})
}
