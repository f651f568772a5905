package models

import (
	"time"

	"gorm.io/gorm"
)

type EnrollmentRole string

const (
	EnrollmentStudent  EnrollmentRole = "student"
	EnrollmentTeacher  EnrollmentRole = "teacher"
	EnrollmentTA       EnrollmentRole = "ta"
	EnrollmentObserver EnrollmentRole = "observer"
)

type EnrollmentState string

const (
	EnrollmentActive    EnrollmentState = "active"
	EnrollmentCompleted EnrollmentState = "completed"
	EnrollmentInactive  EnrollmentState = "inactive"
)

type Course struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"not null;size:255"`
	Code      string `json:"code" gorm:"size:64;index"`
	Published bool   `json:"published" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Enrollments []Enrollment `json:"enrollments,omitempty" gorm:"foreignKey:CourseID"`
	Assignments []Assignment `json:"assignments,omitempty" gorm:"foreignKey:CourseID"`
}

type Enrollment struct {
	ID       uint            `json:"id" gorm:"primaryKey"`
	CourseID uint            `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_course_user_role"`
	UserID   string          `json:"user_id" gorm:"not null;size:255;uniqueIndex:idx_enrollment_course_user_role;index"`
	Role     EnrollmentRole  `json:"role" gorm:"not null;size:32;uniqueIndex:idx_enrollment_course_user_role"`
	State    EnrollmentState `json:"state" gorm:"not null;size:32;default:active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e Enrollment) IsActive() bool {
	return e.State == EnrollmentActive
}

// CanGrade reports whether the enrollment role grades coursework
func (e Enrollment) CanGrade() bool {
	return e.IsActive() && (e.Role == EnrollmentTeacher || e.Role == EnrollmentTA)
}

func (Course) TableName() string {
	return "courses"
}

func (Enrollment) TableName() string {
	return "enrollments"
}
