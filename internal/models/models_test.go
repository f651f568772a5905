package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestAssignmentExpectsSubmission(t *testing.T) {
	tests := []struct {
		types string
		want  bool
	}{
		{types: "online_upload", want: true},
		{types: "none", want: false},
		{types: "", want: false},
		{types: "on_paper, wiki_page", want: false},
		{types: "on_paper,online_text_entry", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.types, func(t *testing.T) {
			assert.Equal(t, tt.want, Assignment{SubmissionTypes: tt.types}.ExpectsSubmission())
		})
	}
}

func TestSubmissionState(t *testing.T) {
	at := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	score := 7.5

	tests := []struct {
		name         string
		sub          Submission
		graded       bool
		needsGrading bool
	}{
		{name: "placeholder", sub: Submission{WorkflowState: SubmissionUnsubmitted}},
		{name: "submitted", sub: Submission{WorkflowState: SubmissionSubmitted, SubmittedAt: &at}, needsGrading: true},
		{name: "pending review", sub: Submission{WorkflowState: SubmissionPendingReview, SubmittedAt: &at}, needsGrading: true},
		{name: "graded", sub: Submission{WorkflowState: SubmissionGraded, SubmittedAt: &at, Score: &score}, graded: true},
		{name: "grade removed", sub: Submission{WorkflowState: SubmissionGraded, SubmittedAt: &at}, needsGrading: true},
		{name: "graded without hand-in", sub: Submission{WorkflowState: SubmissionGraded, Score: &score}, graded: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.graded, tt.sub.IsGraded())
			assert.Equal(t, tt.needsGrading, tt.sub.NeedsGrading())
		})
	}
}

func TestStudentAnswerKey(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   string
	}{
		{name: "string", answer: `"b"`, want: "b"},
		{name: "number", answer: `3`, want: "3"},
		{name: "boolean", answer: `true`, want: "true"},
		{name: "list sorted", answer: `["c","a"]`, want: "a,c"},
		{name: "selected", answer: `{"selected":"d"}`, want: "d"},
		{name: "option id", answer: `{"option_id":"e"}`, want: "e"},
		{name: "selected list", answer: `{"selected":["b","a"]}`, want: "a,b"},
		{name: "unknown object", answer: `{"text":"essay"}`, want: ""},
		{name: "null", answer: `null`, want: ""},
		{name: "invalid", answer: `{`, want: ""},
		{name: "empty", answer: ``, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StudentAnswer{Answer: datatypes.JSON(tt.answer)}.AnswerKey())
		})
	}
}

func TestQuestionOptionKeys(t *testing.T) {
	q := Question{Content: datatypes.JSON(`{"options":[{"id":"a","text":"one"},{"text":"no id"},{"id":"b"}]}`)}
	assert.Equal(t, []string{"a", "b"}, q.OptionKeys())

	assert.Nil(t, Question{}.OptionKeys())
	assert.Nil(t, Question{Content: datatypes.JSON(`{"options":[]}`)}.OptionKeys())
}

func TestEnrollmentCanGrade(t *testing.T) {
	assert.True(t, Enrollment{Role: EnrollmentTA, State: EnrollmentActive}.CanGrade())
	assert.False(t, Enrollment{Role: EnrollmentTeacher, State: EnrollmentInactive}.CanGrade())
	assert.False(t, Enrollment{Role: EnrollmentStudent, State: EnrollmentActive}.CanGrade())
}
