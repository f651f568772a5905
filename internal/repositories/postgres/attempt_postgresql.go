package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/coursework-service/internal/models"
	"github.com/SAP-F-2025/coursework-service/internal/repositories"
)

type AttemptPostgreSQL struct {
	db *gorm.DB
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{db: db}
}

func (a *AttemptPostgreSQL) ListLatestCompleted(ctx context.Context, tx *gorm.DB, assessmentID uint) ([]*models.AssessmentAttempt, error) {
	var attempts []*models.AssessmentAttempt
	if err := a.getDB(tx).WithContext(ctx).
		Select("DISTINCT ON (student_id) *").
		Where("assessment_id = ? AND status = ?", assessmentID, models.AttemptCompleted).
		Order("student_id ASC, completed_at DESC NULLS LAST, id DESC").
		Preload("Answers").
		Find(&attempts).Error; err != nil {
		return nil, fmt.Errorf("failed to list completed attempts: %w", err)
	}
	return attempts, nil
}

func (a *AttemptPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return a.db
}
