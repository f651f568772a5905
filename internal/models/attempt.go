package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
	AttemptAbandoned  AttemptStatus = "abandoned"
	AttemptTimeOut    AttemptStatus = "timeout"
)

type AssessmentAttempt struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	AssessmentID  uint          `json:"assessment_id" gorm:"not null;index"`
	StudentID     string        `json:"student_id" gorm:"not null;index;size:255"`
	AttemptNumber int           `json:"attempt_number" gorm:"not null"`
	Status        AttemptStatus `json:"status" gorm:"default:in_progress;index"`

	// Timing
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// Scoring
	Score    float64 `json:"score"`
	MaxScore int     `json:"max_score"`
	IsGraded bool    `json:"is_graded"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Answers []StudentAnswer `json:"answers,omitempty" gorm:"foreignKey:AttemptID"`
}

type StudentAnswer struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	AttemptID  uint `json:"attempt_id" gorm:"not null;index"`
	QuestionID uint `json:"question_id" gorm:"not null;index"`

	// Answer content (polymorphic based on question type)
	Answer datatypes.JSON `json:"answer" gorm:"type:jsonb"`

	// Grading
	Score     float64    `json:"score"`
	IsCorrect *bool      `json:"is_correct"` // null for essay/manual grading
	GradedAt  *time.Time `json:"graded_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AnswerKey reduces the stored answer to a comparable key. A plain value is
// used as is, {"selected": ...} or {"option_id": ...} objects use that
// field, and lists of options are sorted and joined with commas.
func (a StudentAnswer) AnswerKey() string {
	if len(a.Answer) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(a.Answer, &v); err != nil {
		return ""
	}
	return answerKey(v)
}

func answerKey(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool, float64:
		return fmt.Sprint(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if k := answerKey(e); k != "" {
				parts = append(parts, k)
			}
		}
		sort.Strings(parts)
		return strings.Join(parts, ",")
	case map[string]any:
		for _, field := range []string{"selected", "option_id", "value"} {
			if inner, ok := t[field]; ok {
				return answerKey(inner)
			}
		}
	}
	return ""
}

func (AssessmentAttempt) TableName() string {
	return "assessment_attempts"
}

func (StudentAnswer) TableName() string {
	return "student_answers"
}
