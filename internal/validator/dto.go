package validator

// BucketQueryRequest selects whose coursework buckets to compute
type BucketQueryRequest struct {
	CourseID     uint   `json:"course_id" validate:"required"`
	StudentID    string `json:"student_id" validate:"required,max=255"`
	UpcomingDays int    `json:"upcoming_days" validate:"omitempty,upcoming_days"`
}

// OverdueReminderRequest asks for reminders to every student with overdue work
type OverdueReminderRequest struct {
	CourseID uint `json:"course_id" validate:"required"`
}

// ItemAnalysisRequest selects the assessment to analyze
type ItemAnalysisRequest struct {
	AssessmentID uint `json:"assessment_id" validate:"required"`
}
