package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/coursework-service/internal/models"
	"github.com/SAP-F-2025/coursework-service/internal/repositories"
)

type AssignmentPostgreSQL struct {
	db *gorm.DB
}

func NewAssignmentPostgreSQL(db *gorm.DB) repositories.AssignmentRepository {
	return &AssignmentPostgreSQL{db: db}
}

func (a *AssignmentPostgreSQL) ListByCourse(ctx context.Context, tx *gorm.DB, courseID uint) ([]*models.Assignment, error) {
	var assignments []*models.Assignment
	if err := a.getDB(tx).WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("position ASC, id ASC").
		Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

func (a *AssignmentPostgreSQL) ListSubmissions(ctx context.Context, tx *gorm.DB, assignmentIDs []uint, studentIDs []string) ([]*models.Submission, error) {
	if len(assignmentIDs) == 0 || len(studentIDs) == 0 {
		return []*models.Submission{}, nil
	}

	var submissions []*models.Submission
	if err := a.getDB(tx).WithContext(ctx).
		Where("assignment_id IN ? AND student_id IN ?", assignmentIDs, studentIDs).
		Order("id ASC").
		Find(&submissions).Error; err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

func (a *AssignmentPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return a.db
}
