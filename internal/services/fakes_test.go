package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/coursework-service/internal/models"
	"github.com/SAP-F-2025/coursework-service/internal/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeRepository is an in-memory repositories.Repository
type fakeRepository struct {
	courses     map[uint]*models.Course
	enrollments []*models.Enrollment
	assignments []*models.Assignment
	submissions []*models.Submission

	assessments map[uint]*models.Assessment
	questions   map[uint][]*models.AssessmentQuestion
	attempts    map[uint][]*models.AssessmentAttempt

	users map[string]*models.User

	savedSummary *models.AssessmentAnalytics
	savedItems   []*models.QuestionAnalytics
	attemptCalls int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		courses:     make(map[uint]*models.Course),
		assessments: make(map[uint]*models.Assessment),
		questions:   make(map[uint][]*models.AssessmentQuestion),
		attempts:    make(map[uint][]*models.AssessmentAttempt),
		users:       make(map[string]*models.User),
	}
}

func (f *fakeRepository) enroll(courseID uint, userID string, role models.EnrollmentRole, state models.EnrollmentState) {
	f.enrollments = append(f.enrollments, &models.Enrollment{
		ID:       uint(len(f.enrollments) + 1),
		CourseID: courseID,
		UserID:   userID,
		Role:     role,
		State:    state,
	})
}

func (f *fakeRepository) Course() repositories.CourseRepository         { return fakeCourses{f} }
func (f *fakeRepository) Assignment() repositories.AssignmentRepository { return fakeAssignments{f} }
func (f *fakeRepository) Assessment() repositories.AssessmentRepository { return fakeAssessments{f} }
func (f *fakeRepository) Attempt() repositories.AttemptRepository       { return fakeAttempts{f} }
func (f *fakeRepository) Analytics() repositories.AnalyticsRepository   { return fakeAnalytics{f} }
func (f *fakeRepository) User() repositories.UserRepository             { return fakeUsers{f} }

func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(f)
}
func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

type fakeCourses struct{ f *fakeRepository }

func (r fakeCourses) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	if c, ok := r.f.courses[id]; ok {
		return c, nil
	}
	return nil, repositories.ErrNotFound
}

func (r fakeCourses) GetEnrollments(ctx context.Context, tx *gorm.DB, courseID uint, userID string) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range r.f.enrollments {
		if e.CourseID == courseID && e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r fakeCourses) ListActiveStudents(ctx context.Context, tx *gorm.DB, courseID uint) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range r.f.enrollments {
		if e.CourseID == courseID && e.Role == models.EnrollmentStudent && e.IsActive() {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

type fakeAssignments struct{ f *fakeRepository }

func (r fakeAssignments) ListByCourse(ctx context.Context, tx *gorm.DB, courseID uint) ([]*models.Assignment, error) {
	var out []*models.Assignment
	for _, a := range r.f.assignments {
		if a.CourseID == courseID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r fakeAssignments) ListSubmissions(ctx context.Context, tx *gorm.DB, assignmentIDs []uint, studentIDs []string) ([]*models.Submission, error) {
	wantAssignment := make(map[uint]bool)
	for _, id := range assignmentIDs {
		wantAssignment[id] = true
	}
	wantStudent := make(map[string]bool)
	for _, id := range studentIDs {
		wantStudent[id] = true
	}
	var out []*models.Submission
	for _, s := range r.f.submissions {
		if wantAssignment[s.AssignmentID] && wantStudent[s.StudentID] {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeAssessments struct{ f *fakeRepository }

func (r fakeAssessments) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Assessment, error) {
	if a, ok := r.f.assessments[id]; ok {
		return a, nil
	}
	return nil, repositories.ErrNotFound
}

func (r fakeAssessments) GetQuestions(ctx context.Context, tx *gorm.DB, assessmentID uint) ([]*models.AssessmentQuestion, error) {
	return r.f.questions[assessmentID], nil
}

type fakeAttempts struct{ f *fakeRepository }

func (r fakeAttempts) ListLatestCompleted(ctx context.Context, tx *gorm.DB, assessmentID uint) ([]*models.AssessmentAttempt, error) {
	r.f.attemptCalls++
	return r.f.attempts[assessmentID], nil
}

type fakeAnalytics struct{ f *fakeRepository }

func (r fakeAnalytics) SaveItemAnalysis(ctx context.Context, tx *gorm.DB, summary *models.AssessmentAnalytics, items []*models.QuestionAnalytics) error {
	r.f.savedSummary = summary
	r.f.savedItems = items
	return nil
}

func (r fakeAnalytics) GetAssessmentAnalytics(ctx context.Context, tx *gorm.DB, assessmentID uint) (*models.AssessmentAnalytics, error) {
	if r.f.savedSummary == nil || r.f.savedSummary.AssessmentID != assessmentID {
		return nil, repositories.ErrNotFound
	}
	return r.f.savedSummary, nil
}

type fakeUsers struct{ f *fakeRepository }

func (r fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := r.f.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (r fakeUsers) GetByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	var out []*models.User
	for _, id := range ids {
		if u, ok := r.f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r fakeUsers) HasRole(ctx context.Context, id string, role models.UserRole) (bool, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return u.Role == role, nil
}

func timePtr(t time.Time) *time.Time { return &t }

func floatPtr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }
