package validator

import (
	"errors"
	"testing"
)

func TestValidateBucketQuery(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       BucketQueryRequest
		wantField string
	}{
		{name: "valid default window", req: BucketQueryRequest{CourseID: 1, StudentID: "s1"}},
		{name: "valid explicit window", req: BucketQueryRequest{CourseID: 1, StudentID: "s1", UpcomingDays: 14}},
		{name: "missing student", req: BucketQueryRequest{CourseID: 1}, wantField: "student_id"},
		{name: "window too large", req: BucketQueryRequest{CourseID: 1, StudentID: "s1", UpcomingDays: 61}, wantField: "upcoming_days"},
		{name: "negative window", req: BucketQueryRequest{CourseID: 1, StudentID: "s1", UpcomingDays: -1}, wantField: "upcoming_days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if verrs[0].Field != tt.wantField {
				t.Errorf("expected field %s, got %s", tt.wantField, verrs[0].Field)
			}
		})
	}
}

func TestValidateTercile(t *testing.T) {
	v := New()

	type respondent struct {
		ID      string `json:"id" validate:"required"`
		Tercile string `json:"tercile" validate:"omitempty,tercile"`
	}

	if err := v.Validate(&respondent{ID: "s1", Tercile: "top"}); err != nil {
		t.Fatalf("expected top to be accepted, got %v", err)
	}
	if err := v.Validate(&respondent{ID: "s1"}); err != nil {
		t.Fatalf("expected empty tercile to be accepted, got %v", err)
	}

	err := v.Validate(&respondent{ID: "s1", Tercile: "upper"})
	var verrs ValidationErrors
	if !errors.As(err, &verrs) || verrs[0].Rule != "tercile" {
		t.Fatalf("expected tercile rule failure, got %v", err)
	}
	if verrs[0].Message != "must be one of top, middle, bottom" {
		t.Errorf("unexpected message %q", verrs[0].Message)
	}
}

func TestValidationErrorsError(t *testing.T) {
	if got := (ValidationErrors{}).Error(); got != "validation failed" {
		t.Errorf("unexpected message %q", got)
	}
	one := ValidationErrors{{Field: "course_id", Message: "is required"}}
	if got := one.Error(); got != "validation failed: course_id is required" {
		t.Errorf("unexpected message %q", got)
	}
	two := append(one, ValidationError{Field: "student_id", Message: "is required"})
	if got := two.Error(); got != "validation failed: 2 field errors" {
		t.Errorf("unexpected message %q", got)
	}
}
