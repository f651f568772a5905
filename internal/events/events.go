package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventSource  = "coursework-service"
	EventVersion = "1.0"
)

// Event types
const (
	CourseworkOverdueReminder = "coursework.overdue_reminder"
	ItemAnalysisCompleted     = "analytics.item_analysis.completed"
)

// Event is the envelope of every message the service emits
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent stamps an event with a fresh id and the current time
func NewEvent(eventType string, data interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher delivers events to downstream consumers
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// OverdueReminderData is the payload of CourseworkOverdueReminder
type OverdueReminderData struct {
	CourseID      uint   `json:"course_id"`
	StudentID     string `json:"student_id"`
	StudentEmail  string `json:"student_email,omitempty"`
	AssignmentIDs []uint `json:"assignment_ids"`
	RequestedBy   string `json:"requested_by"`
}

// ItemAnalysisCompletedData is the payload of ItemAnalysisCompleted
type ItemAnalysisCompletedData struct {
	AssessmentID uint     `json:"assessment_id"`
	Respondents  int      `json:"respondents"`
	Items        int      `json:"items"`
	Reliability  *float64 `json:"reliability"`
	RequestedBy  string   `json:"requested_by"`
}
