package models

import (
	"time"

	"gorm.io/gorm"
)

type AssessmentStatus string

const (
	StatusDraft    AssessmentStatus = "Draft"
	StatusActive   AssessmentStatus = "Active"
	StatusExpired  AssessmentStatus = "Expired"
	StatusArchived AssessmentStatus = "Archived"
)

type Assessment struct {
	ID       uint             `json:"id" gorm:"primaryKey"`
	CourseID uint             `json:"course_id" gorm:"not null;index"`
	Title    string           `json:"title" gorm:"not null;size:200;index"`
	Status   AssessmentStatus `json:"status" gorm:"default:Draft;index"`
	DueDate  *time.Time       `json:"due_date"`

	// Metadata
	CreatedBy string         `json:"created_by" gorm:"not null;index;size:255"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Questions []AssessmentQuestion `json:"questions,omitempty" gorm:"foreignKey:AssessmentID"`
	Attempts  []AssessmentAttempt  `json:"attempts,omitempty" gorm:"foreignKey:AssessmentID"`
}

func (Assessment) TableName() string {
	return "assessments"
}
