package models

// All returns the tables managed by AutoMigrate
func All() []interface{} {
	return []interface{}{
		&Course{},
		&Enrollment{},
		&Assignment{},
		&Submission{},
		&Question{},
		&Assessment{},
		&AssessmentQuestion{},
		&AssessmentAttempt{},
		&StudentAnswer{},
		&AssessmentAnalytics{},
		&QuestionAnalytics{},
	}
}
