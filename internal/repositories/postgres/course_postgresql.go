package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/coursework-service/internal/cache"
	"github.com/SAP-F-2025/coursework-service/internal/models"
	"github.com/SAP-F-2025/coursework-service/internal/repositories"
)

type CoursePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewCoursePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.CourseRepository {
	return &CoursePostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (c *CoursePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Course, error) {
	db := c.getDB(tx)
	var course models.Course

	err := c.cacheManager.Course.CacheOrExecute(ctx, cache.CourseKey(id), &course, cache.CourseCacheConfig.TTL, func() (interface{}, error) {
		var dbCourse models.Course
		if err := db.WithContext(ctx).First(&dbCourse, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("course %d: %w", id, repositories.ErrNotFound)
			}
			return nil, fmt.Errorf("failed to get course: %w", err)
		}
		return &dbCourse, nil
	})
	if err != nil {
		return nil, err
	}

	return &course, nil
}

func (c *CoursePostgreSQL) GetEnrollments(ctx context.Context, tx *gorm.DB, courseID uint, userID string) ([]*models.Enrollment, error) {
	db := c.getDB(tx)
	var enrollments []*models.Enrollment

	err := c.cacheManager.Course.CacheOrExecute(ctx, cache.EnrollmentsKey(courseID, userID), &enrollments, cache.CourseCacheConfig.TTL, func() (interface{}, error) {
		var dbEnrollments []*models.Enrollment
		if err := db.WithContext(ctx).
			Where("course_id = ? AND user_id = ?", courseID, userID).
			Order("id ASC").
			Find(&dbEnrollments).Error; err != nil {
			return nil, fmt.Errorf("failed to get enrollments: %w", err)
		}
		return dbEnrollments, nil
	})
	if err != nil {
		return nil, err
	}

	return enrollments, nil
}

func (c *CoursePostgreSQL) ListActiveStudents(ctx context.Context, tx *gorm.DB, courseID uint) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	if err := c.getDB(tx).WithContext(ctx).
		Where("course_id = ? AND role = ? AND state = ?", courseID, models.EnrollmentStudent, models.EnrollmentActive).
		Order("user_id ASC").
		Find(&enrollments).Error; err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return enrollments, nil
}

func (c *CoursePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return c.db
}
