package services

import (
	"context"
	"time"

	"github.com/SAP-F-2025/coursework-service/internal/buckets"
	"github.com/SAP-F-2025/coursework-service/internal/itemanalysis"
	"github.com/SAP-F-2025/coursework-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

type BucketQueryRequest = validator.BucketQueryRequest
type OverdueReminderRequest = validator.OverdueReminderRequest
type ItemAnalysisRequest = validator.ItemAnalysisRequest

// AssignmentSummary is an assignment as seen by one student
type AssignmentSummary struct {
	ID              uint       `json:"id"`
	Title           string     `json:"title"`
	DueAt           *time.Time `json:"due_at"`
	PointsPossible  float64    `json:"points_possible"`
	SubmissionState string     `json:"submission_state"`
	Score           *float64   `json:"score,omitempty"`
}

type BucketCounts struct {
	Past        int `json:"past"`
	Overdue     int `json:"overdue"`
	Undated     int `json:"undated"`
	Ungraded    int `json:"ungraded"`
	Unsubmitted int `json:"unsubmitted"`
	Upcoming    int `json:"upcoming"`
	Future      int `json:"future"`
}

type CourseworkBucketsResponse struct {
	CourseID      uint      `json:"course_id"`
	StudentID     string    `json:"student_id"`
	GeneratedAt   time.Time `json:"generated_at"`
	UpcomingUntil time.Time `json:"upcoming_until"`

	Past        []AssignmentSummary `json:"past"`
	Overdue     []AssignmentSummary `json:"overdue"`
	Undated     []AssignmentSummary `json:"undated"`
	Ungraded    []AssignmentSummary `json:"ungraded"`
	Unsubmitted []AssignmentSummary `json:"unsubmitted"`
	Upcoming    []AssignmentSummary `json:"upcoming"`
	Future      []AssignmentSummary `json:"future"`

	Counts BucketCounts       `json:"counts"`
	IDs    buckets.BucketIDs `json:"ids"`
}

type OverdueResponse struct {
	CourseID    uint                `json:"course_id"`
	StudentID   string              `json:"student_id"`
	GeneratedAt time.Time           `json:"generated_at"`
	Assignments []AssignmentSummary `json:"assignments"`
	Count       int                 `json:"count"`
}

type OverdueReminderResponse struct {
	CourseID         uint `json:"course_id"`
	StudentsChecked  int  `json:"students_checked"`
	StudentsNotified int  `json:"students_notified"`
	PublishFailures  int  `json:"publish_failures"`
}

type ItemAnalysisResponse struct {
	AssessmentID uint                     `json:"assessment_id"`
	Title        string                   `json:"title"`
	GeneratedAt  time.Time                `json:"generated_at"`
	Summary      itemanalysis.Summary     `json:"summary"`
	Items        []itemanalysis.ItemStats `json:"items"`

	// LastRefreshedAt is when the analysis was last persisted, if ever
	LastRefreshedAt *time.Time `json:"last_refreshed_at,omitempty"`
}

// ===== SERVICE INTERFACES =====

type CourseworkService interface {
	// GetBuckets sorts a course's assignments into dashboard buckets for one student
	GetBuckets(ctx context.Context, courseID uint, studentID, viewerID string, upcomingDays int) (*CourseworkBucketsResponse, error)

	// GetOverdue lists a student's overdue assignments
	GetOverdue(ctx context.Context, courseID uint, studentID, viewerID string) (*OverdueResponse, error)

	// SendOverdueReminders publishes one reminder per student with overdue work
	SendOverdueReminders(ctx context.Context, courseID uint, viewerID string) (*OverdueReminderResponse, error)

	// InvalidateCourseCache drops the cached course record and enrollments
	InvalidateCourseCache(ctx context.Context, courseID uint, viewerID string) error
}

type ItemAnalysisService interface {
	// GetReport serves the item analysis of an assessment, from cache when fresh
	GetReport(ctx context.Context, assessmentID uint, userID string) (*ItemAnalysisResponse, error)

	// Refresh recomputes, persists and announces the item analysis
	Refresh(ctx context.Context, assessmentID uint, userID string) (*ItemAnalysisResponse, error)

	// ExportXLSX renders the report as a workbook
	ExportXLSX(ctx context.Context, assessmentID uint, userID string) ([]byte, error)
}

type ServiceManager interface {
	Initialize(ctx context.Context) error

	Coursework() CourseworkService
	ItemAnalysis() ItemAnalysisService

	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
	IsInitialized() bool
}
