package models

import (
	"time"

	"gorm.io/datatypes"
)

// AssessmentAnalytics is the persisted summary of the last item analysis run
type AssessmentAnalytics struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	AssessmentID uint `json:"assessment_id" gorm:"not null;uniqueIndex"`

	Respondents int `json:"respondents"`
	Items       int `json:"items"`

	// Score statistics
	AverageScore      float64  `json:"average_score"`
	HighestScore      float64  `json:"highest_score"`
	LowestScore       float64  `json:"lowest_score"`
	Variance          float64  `json:"variance"`
	StandardDeviation float64  `json:"standard_deviation"`
	Reliability       *float64 `json:"reliability"` // Cronbach's alpha, null when undefined

	LastCalculatedAt time.Time `json:"last_calculated_at"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type QuestionAnalytics struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	AssessmentID uint `json:"assessment_id" gorm:"not null;uniqueIndex:idx_question_analytics_assessment_question"`
	QuestionID   uint `json:"question_id" gorm:"not null;uniqueIndex:idx_question_analytics_assessment_question"`

	// Response statistics
	TotalResponses   int `json:"total_responses"`
	CorrectResponses int `json:"correct_responses"`

	// Performance metrics
	DifficultyIndex     float64  `json:"difficulty_index"`
	DiscriminationIndex float64  `json:"discrimination_index"`
	PointBiserial       *float64 `json:"point_biserial"`
	Variance            float64  `json:"variance"`
	StandardDeviation   float64  `json:"standard_deviation"`

	// Tercile breakdown
	TopTercileCorrect    float64 `json:"top_tercile_correct"`
	MiddleTercileCorrect float64 `json:"middle_tercile_correct"`
	BottomTercileCorrect float64 `json:"bottom_tercile_correct"`

	// Answer analysis (for choice questions)
	OptionStats datatypes.JSON `json:"option_stats" gorm:"type:jsonb"` // []itemanalysis.AnswerStats

	LastCalculatedAt time.Time `json:"last_calculated_at"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (AssessmentAnalytics) TableName() string {
	return "assessment_analytics"
}

func (QuestionAnalytics) TableName() string {
	return "question_analytics"
}
