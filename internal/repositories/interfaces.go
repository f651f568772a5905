package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/coursework-service/internal/models"
)

// All methods accept an optional transaction; nil uses the default connection.

type CourseRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error)

	// GetEnrollments returns every enrollment the user holds in the course
	GetEnrollments(ctx context.Context, tx *gorm.DB, courseID uint, userID string) ([]*models.Enrollment, error)

	// ListActiveStudents returns active student enrollments ordered by user id
	ListActiveStudents(ctx context.Context, tx *gorm.DB, courseID uint) ([]*models.Enrollment, error)
}

type AssignmentRepository interface {
	// ListByCourse returns a course's assignments by position then id
	ListByCourse(ctx context.Context, tx *gorm.DB, courseID uint) ([]*models.Assignment, error)

	// ListSubmissions returns submissions of the given students for the given assignments
	ListSubmissions(ctx context.Context, tx *gorm.DB, assignmentIDs []uint, studentIDs []string) ([]*models.Submission, error)
}

type AssessmentRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Assessment, error)

	// GetQuestions returns the assessment's questions in display order
	GetQuestions(ctx context.Context, tx *gorm.DB, assessmentID uint) ([]*models.AssessmentQuestion, error)
}

type AttemptRepository interface {
	// ListLatestCompleted returns the most recent completed attempt of each
	// student, answers preloaded
	ListLatestCompleted(ctx context.Context, tx *gorm.DB, assessmentID uint) ([]*models.AssessmentAttempt, error)
}

type AnalyticsRepository interface {
	// SaveItemAnalysis replaces the stored analytics of an assessment
	SaveItemAnalysis(ctx context.Context, tx *gorm.DB, summary *models.AssessmentAnalytics, items []*models.QuestionAnalytics) error
	GetAssessmentAnalytics(ctx context.Context, tx *gorm.DB, assessmentID uint) (*models.AssessmentAnalytics, error)
}
