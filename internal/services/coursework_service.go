package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/coursework-service/internal/buckets"
	"github.com/SAP-F-2025/coursework-service/internal/cache"
	"github.com/SAP-F-2025/coursework-service/internal/events"
	"github.com/SAP-F-2025/coursework-service/internal/models"
	"github.com/SAP-F-2025/coursework-service/internal/repositories"
	"github.com/SAP-F-2025/coursework-service/internal/validator"
)

type courseworkService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
	cacheManager   *cache.CacheManager

	upcomingWindow time.Duration
	now            func() time.Time
}

func NewCourseworkService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher, cacheManager *cache.CacheManager, upcomingWindow time.Duration) CourseworkService {
	if upcomingWindow <= 0 {
		upcomingWindow = buckets.DefaultUpcomingWindow
	}
	return &courseworkService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      validator,
		eventPublisher: publisher,
		cacheManager:   cacheManager,
		upcomingWindow: upcomingWindow,
		now:            time.Now,
	}
}

// courseworkSnapshot is everything needed to bucket one course
type courseworkSnapshot struct {
	perms       *coursePermissions
	assignments []*models.Assignment
	items       []buckets.Item
	byStudent   map[string]map[uint]*models.Submission

	// Overdue matches submissions by item only, so it gets one student's records
	studentSubmissions map[string][]buckets.Submission
}

func (s *courseworkService) GetBuckets(ctx context.Context, courseID uint, studentID, viewerID string, upcomingDays int) (*CourseworkBucketsResponse, error) {
	req := &BucketQueryRequest{CourseID: courseID, StudentID: studentID, UpcomingDays: upcomingDays}
	if err := s.validator.Validate(req); err != nil {
		return nil, validationError(err)
	}

	s.logger.Info("Computing coursework buckets", "course_id", courseID, "student_id", studentID, "viewer_id", viewerID)

	snap, err := s.loadForStudent(ctx, courseID, studentID, viewerID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	limit := now.Add(s.upcomingWindow)
	if upcomingDays > 0 {
		limit = now.Add(time.Duration(upcomingDays) * 24 * time.Hour)
	}

	result := buckets.ByDueDate(buckets.Query{
		Course:        snap.perms,
		Items:         snap.items,
		ActorID:       studentID,
		GraderID:      viewerID,
		Submissions:   snap.studentSubmissions[studentID],
		Now:           now,
		UpcomingLimit: limit,
	})

	summarize := s.summarizer(snap, studentID)
	resp := &CourseworkBucketsResponse{
		CourseID:      courseID,
		StudentID:     studentID,
		GeneratedAt:   now,
		UpcomingUntil: limit,
		Past:          summarize(result.Past),
		Overdue:       summarize(result.Overdue),
		Undated:       summarize(result.Undated),
		Ungraded:      summarize(result.Ungraded),
		Unsubmitted:   summarize(result.Unsubmitted),
		Upcoming:      summarize(result.Upcoming),
		Future:        summarize(result.Future),
		IDs:           result.IDs(),
	}
	resp.Counts = BucketCounts{
		Past:        len(resp.Past),
		Overdue:     len(resp.Overdue),
		Undated:     len(resp.Undated),
		Ungraded:    len(resp.Ungraded),
		Unsubmitted: len(resp.Unsubmitted),
		Upcoming:    len(resp.Upcoming),
		Future:      len(resp.Future),
	}

	return resp, nil
}

func (s *courseworkService) GetOverdue(ctx context.Context, courseID uint, studentID, viewerID string) (*OverdueResponse, error) {
	req := &BucketQueryRequest{CourseID: courseID, StudentID: studentID}
	if err := s.validator.Validate(req); err != nil {
		return nil, validationError(err)
	}

	snap, err := s.loadForStudent(ctx, courseID, studentID, viewerID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	overdue := s.summarizer(snap, studentID)(buckets.Overdue(snap.items, now, studentID, snap.studentSubmissions[studentID]))

	return &OverdueResponse{
		CourseID:    courseID,
		StudentID:   studentID,
		GeneratedAt: now,
		Assignments: overdue,
		Count:       len(overdue),
	}, nil
}

func (s *courseworkService) SendOverdueReminders(ctx context.Context, courseID uint, viewerID string) (*OverdueReminderResponse, error) {
	if err := s.validator.Validate(&OverdueReminderRequest{CourseID: courseID}); err != nil {
		return nil, validationError(err)
	}

	if _, err := s.repo.Course().GetByID(ctx, nil, courseID); err != nil {
		return nil, translateRepoError(err, "get course")
	}

	perms, err := loadCoursePermissions(ctx, s.repo, s.logger, courseID, viewerID)
	if err != nil {
		return nil, err
	}
	if !perms.GrantsRight(viewerID, buckets.RightManageGrades) {
		return nil, fmt.Errorf("%w: user %s cannot manage grades in course %d", ErrForbidden, viewerID, courseID)
	}

	students, err := s.repo.Course().ListActiveStudents(ctx, nil, courseID)
	if err != nil {
		return nil, translateRepoError(err, "list students")
	}

	studentIDs := make([]string, 0, len(students))
	for _, e := range students {
		perms.addEnrollment(e)
		studentIDs = append(studentIDs, e.UserID)
	}

	snap, err := s.loadSnapshot(ctx, courseID, perms, studentIDs)
	if err != nil {
		return nil, err
	}

	emails := s.lookupEmails(ctx, studentIDs)
	now := s.now().UTC()
	resp := &OverdueReminderResponse{CourseID: courseID, StudentsChecked: len(studentIDs)}

	for _, studentID := range studentIDs {
		overdue := buckets.Overdue(snap.items, now, studentID, snap.studentSubmissions[studentID])
		if len(overdue) == 0 {
			continue
		}

		assignmentIDs := make([]uint, len(overdue))
		for i, item := range overdue {
			assignmentIDs[i] = item.ID
		}

		event := events.NewEvent(events.CourseworkOverdueReminder, events.OverdueReminderData{
			CourseID:      courseID,
			StudentID:     studentID,
			StudentEmail:  emails[studentID],
			AssignmentIDs: assignmentIDs,
			RequestedBy:   viewerID,
		})
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish overdue reminder", "course_id", courseID, "student_id", studentID, "error", err)
			resp.PublishFailures++
			continue
		}
		resp.StudentsNotified++
	}

	s.logger.Info("Overdue reminders sent",
		"course_id", courseID,
		"checked", resp.StudentsChecked,
		"notified", resp.StudentsNotified,
		"failures", resp.PublishFailures)

	return resp, nil
}

func (s *courseworkService) InvalidateCourseCache(ctx context.Context, courseID uint, viewerID string) error {
	if err := s.validator.Validate(&OverdueReminderRequest{CourseID: courseID}); err != nil {
		return validationError(err)
	}
	if viewerID == "" {
		return ErrUnauthorized
	}

	perms, err := loadCoursePermissions(ctx, s.repo, s.logger, courseID, viewerID)
	if err != nil {
		return err
	}
	if !perms.GrantsRight(viewerID, buckets.RightManageGrades) {
		return fmt.Errorf("%w: user %s cannot manage course %d", ErrForbidden, viewerID, courseID)
	}

	cache.InvalidateCourseCache(ctx, s.cacheManager, courseID)
	s.logger.Info("Course cache invalidated", "course_id", courseID, "user_id", viewerID)

	return nil
}

// loadForStudent checks the viewer may see the student's coursework and
// loads the course snapshot for that student.
func (s *courseworkService) loadForStudent(ctx context.Context, courseID uint, studentID, viewerID string) (*courseworkSnapshot, error) {
	if viewerID == "" {
		return nil, ErrUnauthorized
	}

	if _, err := s.repo.Course().GetByID(ctx, nil, courseID); err != nil {
		return nil, translateRepoError(err, "get course")
	}

	perms, err := loadCoursePermissions(ctx, s.repo, s.logger, courseID, viewerID, studentID)
	if err != nil {
		return nil, err
	}

	if !perms.GrantsRight(viewerID, buckets.RightRead) {
		return nil, fmt.Errorf("%w: user %s cannot read course %d", ErrForbidden, viewerID, courseID)
	}
	if studentID != viewerID && !perms.GrantsRight(viewerID, buckets.RightGrade) {
		return nil, fmt.Errorf("%w: user %s cannot view coursework of other students", ErrForbidden, viewerID)
	}

	return s.loadSnapshot(ctx, courseID, perms, []string{studentID})
}

func (s *courseworkService) loadSnapshot(ctx context.Context, courseID uint, perms *coursePermissions, studentIDs []string) (*courseworkSnapshot, error) {
	assignments, err := s.repo.Assignment().ListByCourse(ctx, nil, courseID)
	if err != nil {
		return nil, translateRepoError(err, "list assignments")
	}

	assignmentIDs := make([]uint, len(assignments))
	for i, a := range assignments {
		assignmentIDs[i] = a.ID
	}

	submissions, err := s.repo.Assignment().ListSubmissions(ctx, nil, assignmentIDs, studentIDs)
	if err != nil {
		return nil, translateRepoError(err, "list submissions")
	}

	snap := &courseworkSnapshot{
		perms:       perms,
		assignments: assignments,
		items:       make([]buckets.Item, 0, len(assignments)),
		byStudent:   make(map[string]map[uint]*models.Submission),

		studentSubmissions: make(map[string][]buckets.Submission),
	}

	perAssignment := make(map[uint][]buckets.Submission)
	needsGrading := make(map[uint]map[string]int)
	for _, sub := range submissions {
		record := toBucketSubmission(sub)
		perAssignment[sub.AssignmentID] = append(perAssignment[sub.AssignmentID], record)
		snap.studentSubmissions[sub.StudentID] = append(snap.studentSubmissions[sub.StudentID], record)

		if snap.byStudent[sub.StudentID] == nil {
			snap.byStudent[sub.StudentID] = make(map[uint]*models.Submission)
		}
		snap.byStudent[sub.StudentID][sub.AssignmentID] = sub

		if sub.NeedsGrading() {
			if needsGrading[sub.AssignmentID] == nil {
				needsGrading[sub.AssignmentID] = make(map[string]int)
			}
			needsGrading[sub.AssignmentID][sub.StudentID]++
		}
	}

	for _, a := range assignments {
		queue := needsGrading[a.ID]
		snap.items = append(snap.items, buckets.Item{
			ID:                a.ID,
			Title:             a.Title,
			DueAt:             a.DueAt,
			ExpectsSubmission: a.ExpectsSubmission(),
			Rights:            assignmentRights{course: perms, assignment: a},
			Grading: buckets.GradingQueueFunc(func(actorID string) int {
				return queue[actorID]
			}),
			Submissions: perAssignment[a.ID],
		})
	}

	return snap, nil
}

func toBucketSubmission(sub *models.Submission) buckets.Submission {
	return buckets.Submission{
		ID:      sub.ID,
		ItemID:  sub.AssignmentID,
		ActorID: sub.StudentID,
		Graded:  sub.IsGraded(),
		Present: sub.HasSubmission(),
	}
}

// summarizer renders bucket items for one student
func (s *courseworkService) summarizer(snap *courseworkSnapshot, studentID string) func([]buckets.Item) []AssignmentSummary {
	byID := make(map[uint]*models.Assignment, len(snap.assignments))
	for _, a := range snap.assignments {
		byID[a.ID] = a
	}
	subs := snap.byStudent[studentID]

	return func(items []buckets.Item) []AssignmentSummary {
		out := make([]AssignmentSummary, 0, len(items))
		for _, item := range items {
			a := byID[item.ID]
			summary := AssignmentSummary{
				ID:              a.ID,
				Title:           a.Title,
				DueAt:           a.DueAt,
				PointsPossible:  a.PointsPossible,
				SubmissionState: string(models.SubmissionUnsubmitted),
			}
			if sub, ok := subs[a.ID]; ok {
				summary.SubmissionState = string(sub.WorkflowState)
				summary.Score = sub.Score
			}
			out = append(out, summary)
		}
		return out
	}
}

func (s *courseworkService) lookupEmails(ctx context.Context, userIDs []string) map[string]string {
	emails := make(map[string]string, len(userIDs))
	if len(userIDs) == 0 {
		return emails
	}
	users, err := s.repo.User().GetByIDs(ctx, userIDs)
	if err != nil {
		s.logger.Warn("Failed to resolve student emails", "error", err)
		return emails
	}
	for _, u := range users {
		emails[u.ID] = u.Email
	}
	return emails
}
