package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/coursework-service/internal/models"
	"github.com/SAP-F-2025/coursework-service/internal/repositories"
)

type AssessmentPostgreSQL struct {
	db *gorm.DB
}

func NewAssessmentPostgreSQL(db *gorm.DB) repositories.AssessmentRepository {
	return &AssessmentPostgreSQL{db: db}
}

func (a *AssessmentPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := a.getDB(tx).WithContext(ctx).First(&assessment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("assessment %d: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return &assessment, nil
}

func (a *AssessmentPostgreSQL) GetQuestions(ctx context.Context, tx *gorm.DB, assessmentID uint) ([]*models.AssessmentQuestion, error) {
	var questions []*models.AssessmentQuestion
	if err := a.getDB(tx).WithContext(ctx).
		Preload("Question").
		Where("assessment_id = ?", assessmentID).
		Order(`"order" ASC, id ASC`).
		Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to get assessment questions: %w", err)
	}
	return questions, nil
}

func (a *AssessmentPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return a.db
}
