package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SAP-F-2025/coursework-service/internal/buckets"
	"github.com/SAP-F-2025/coursework-service/internal/models"
	"github.com/SAP-F-2025/coursework-service/internal/repositories"
)

// coursePermissions answers capability checks for the actors of one request
// in one course. It is the course-level buckets.Authorizer.
type coursePermissions struct {
	enrollments map[string][]*models.Enrollment
	admins      map[string]bool
}

func newCoursePermissions() *coursePermissions {
	return &coursePermissions{
		enrollments: make(map[string][]*models.Enrollment),
		admins:      make(map[string]bool),
	}
}

// loadCoursePermissions resolves enrollments and admin status of actorIDs.
// A failed admin lookup counts as not admin.
func loadCoursePermissions(ctx context.Context, repo repositories.Repository, logger *slog.Logger, courseID uint, actorIDs ...string) (*coursePermissions, error) {
	perms := newCoursePermissions()
	for _, actorID := range actorIDs {
		if _, seen := perms.enrollments[actorID]; seen || actorID == "" {
			continue
		}

		enrollments, err := repo.Course().GetEnrollments(ctx, nil, courseID, actorID)
		if err != nil {
			return nil, translateRepoError(err, "load enrollments")
		}
		perms.enrollments[actorID] = enrollments

		isAdmin, err := repo.User().HasRole(ctx, actorID, models.RoleAdmin)
		if err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				logger.Warn("Failed to resolve user role", "user_id", actorID, "error", err)
			}
			isAdmin = false
		}
		perms.admins[actorID] = isAdmin
	}
	return perms, nil
}

func (p *coursePermissions) addEnrollment(e *models.Enrollment) {
	p.enrollments[e.UserID] = append(p.enrollments[e.UserID], e)
}

func (p *coursePermissions) hasActive(actorID string, roles ...models.EnrollmentRole) bool {
	for _, e := range p.enrollments[actorID] {
		if !e.IsActive() {
			continue
		}
		if len(roles) == 0 {
			return true
		}
		for _, r := range roles {
			if e.Role == r {
				return true
			}
		}
	}
	return false
}

func (p *coursePermissions) canGrade(actorID string) bool {
	for _, e := range p.enrollments[actorID] {
		if e.CanGrade() {
			return true
		}
	}
	return false
}

func (p *coursePermissions) GrantsRight(actorID string, right buckets.Right) bool {
	switch right {
	case buckets.RightRead:
		return p.admins[actorID] || p.hasActive(actorID)
	case buckets.RightGrade:
		return p.admins[actorID] || p.canGrade(actorID)
	case buckets.RightManageGrades:
		return p.admins[actorID] || p.hasActive(actorID, models.EnrollmentTeacher)
	case buckets.RightSubmit:
		return p.hasActive(actorID, models.EnrollmentStudent)
	}
	return false
}

// assignmentRights narrows course rights to one assignment: only published
// assignments accept submissions.
type assignmentRights struct {
	course     *coursePermissions
	assignment *models.Assignment
}

func (a assignmentRights) GrantsRight(actorID string, right buckets.Right) bool {
	if right == buckets.RightSubmit && !a.assignment.Published {
		return false
	}
	return a.course.GrantsRight(actorID, right)
}
