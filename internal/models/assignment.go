package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Submission types that never produce a submission record
var nonSubmittableTypes = map[string]bool{
	"":           true,
	"none":       true,
	"not_graded": true,
	"on_paper":   true,
	"wiki_page":  true,
}

type Assignment struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	CourseID        uint       `json:"course_id" gorm:"not null;index"`
	Title           string     `json:"title" gorm:"not null;size:255"`
	Description     *string    `json:"description,omitempty" gorm:"type:text"`
	DueAt           *time.Time `json:"due_at" gorm:"index"`
	SubmissionTypes string     `json:"submission_types" gorm:"size:255"` // comma separated, e.g. "online_upload,online_text_entry"
	Published       bool       `json:"published" gorm:"default:false;index"`
	PointsPossible  float64    `json:"points_possible"`
	Position        int        `json:"position" gorm:"default:0"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Submissions []Submission `json:"submissions,omitempty" gorm:"foreignKey:AssignmentID"`
}

// ExpectsSubmission is false when every submission type is one that is
// handled outside the system.
func (a Assignment) ExpectsSubmission() bool {
	for _, t := range strings.Split(a.SubmissionTypes, ",") {
		if !nonSubmittableTypes[strings.TrimSpace(t)] {
			return true
		}
	}
	return false
}

type SubmissionState string

const (
	SubmissionUnsubmitted   SubmissionState = "unsubmitted"
	SubmissionSubmitted     SubmissionState = "submitted"
	SubmissionPendingReview SubmissionState = "pending_review"
	SubmissionGraded        SubmissionState = "graded"
)

type Submission struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	AssignmentID  uint            `json:"assignment_id" gorm:"not null;uniqueIndex:idx_submission_assignment_student"`
	StudentID     string          `json:"student_id" gorm:"not null;size:255;uniqueIndex:idx_submission_assignment_student;index"`
	WorkflowState SubmissionState `json:"workflow_state" gorm:"not null;size:32;default:unsubmitted;index"`

	SubmittedAt *time.Time `json:"submitted_at"`
	Score       *float64   `json:"score"`
	GradedAt    *time.Time `json:"graded_at"`
	GraderID    *string    `json:"grader_id" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasSubmission reports whether the student handed something in
func (s Submission) HasSubmission() bool {
	return s.SubmittedAt != nil
}

// IsGraded reports whether a grade has been recorded
func (s Submission) IsGraded() bool {
	return s.WorkflowState == SubmissionGraded && s.Score != nil
}

// NeedsGrading is true for handed-in work that has no current grade
func (s Submission) NeedsGrading() bool {
	if !s.HasSubmission() {
		return false
	}
	switch s.WorkflowState {
	case SubmissionSubmitted, SubmissionPendingReview:
		return true
	case SubmissionGraded:
		return s.Score == nil
	}
	return false
}

func (Assignment) TableName() string {
	return "assignments"
}

func (Submission) TableName() string {
	return "submissions"
}
