package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SAP-F-2025/coursework-service/internal/models"
	"github.com/SAP-F-2025/coursework-service/internal/repositories"
)

type AnalyticsPostgreSQL struct {
	db *gorm.DB
}

func NewAnalyticsPostgreSQL(db *gorm.DB) repositories.AnalyticsRepository {
	return &AnalyticsPostgreSQL{db: db}
}

func (a *AnalyticsPostgreSQL) SaveItemAnalysis(ctx context.Context, tx *gorm.DB, summary *models.AssessmentAnalytics, items []*models.QuestionAnalytics) error {
	db := a.getDB(tx).WithContext(ctx)

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "assessment_id"}},
		UpdateAll: true,
	}).Create(summary).Error; err != nil {
		return fmt.Errorf("failed to save assessment analytics: %w", err)
	}

	// Questions removed from the assessment since the last run go away
	if err := db.Where("assessment_id = ?", summary.AssessmentID).
		Delete(&models.QuestionAnalytics{}).Error; err != nil {
		return fmt.Errorf("failed to clear question analytics: %w", err)
	}

	if len(items) == 0 {
		return nil
	}
	if err := db.Create(items).Error; err != nil {
		return fmt.Errorf("failed to save question analytics: %w", err)
	}
	return nil
}

func (a *AnalyticsPostgreSQL) GetAssessmentAnalytics(ctx context.Context, tx *gorm.DB, assessmentID uint) (*models.AssessmentAnalytics, error) {
	var analytics models.AssessmentAnalytics
	if err := a.getDB(tx).WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		First(&analytics).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("analytics for assessment %d: %w", assessmentID, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get assessment analytics: %w", err)
	}
	return &analytics, nil
}

func (a *AnalyticsPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return a.db
}
