package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	Essay          QuestionType = "essay"
	FillInBlank    QuestionType = "fill_blank"
	ShortAnswer    QuestionType = "short_answer"
)

type Question struct {
	ID     uint         `json:"id" gorm:"primaryKey"`
	Type   QuestionType `json:"type" gorm:"not null;index"`
	Text   string       `json:"text" gorm:"type:text;not null"`
	Points int          `json:"points" gorm:"default:10"`

	// Content stored as JSONB, e.g. {"options":[{"id":"a","text":"..."}]}
	Content datatypes.JSON `json:"content" gorm:"type:jsonb"`
	Answer  datatypes.JSON `json:"answer" gorm:"type:jsonb"`

	CreatedBy string    `json:"created_by" gorm:"not null;index;size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AssessmentQuestion places a question in an assessment
type AssessmentQuestion struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	AssessmentID uint `json:"assessment_id" gorm:"not null;index"`
	QuestionID   uint `json:"question_id" gorm:"not null;index"`

	Order  int  `json:"order" gorm:"not null"`
	Points *int `json:"points"` // overrides Question.Points

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Question Question `json:"question" gorm:"foreignKey:QuestionID"`
}

type questionOption struct {
	ID string `json:"id"`
}

// OptionKeys lists the answer option ids of a choice question in display
// order. Questions without options return nil.
func (q Question) OptionKeys() []string {
	if len(q.Content) == 0 {
		return nil
	}
	var content struct {
		Options []questionOption `json:"options"`
	}
	if err := json.Unmarshal(q.Content, &content); err != nil {
		return nil
	}
	keys := make([]string, 0, len(content.Options))
	for _, o := range content.Options {
		if o.ID != "" {
			keys = append(keys, o.ID)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	return keys
}

func (Question) TableName() string {
	return "questions"
}

func (AssessmentQuestion) TableName() string {
	return "assessment_questions"
}
