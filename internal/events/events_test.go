package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewEvent(t *testing.T) {
	event := NewEvent(ItemAnalysisCompleted, ItemAnalysisCompletedData{AssessmentID: 4})

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "coursework-service", event.Source)
	assert.Equal(t, "1.0", event.Version)
	assert.False(t, event.Timestamp.IsZero())
	assert.NotEqual(t, event.ID, NewEvent(ItemAnalysisCompleted, nil).ID)
}

func TestWatermillEventPublisher(t *testing.T) {
	channel := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 1}, watermill.NopLogger{})
	publisher := NewWatermillEventPublisher(channel, "coursework.", testLogger())
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := channel.Subscribe(ctx, "coursework."+CourseworkOverdueReminder)
	require.NoError(t, err)

	event := NewEvent(CourseworkOverdueReminder, OverdueReminderData{CourseID: 9, StudentID: "s1", AssignmentIDs: []uint{1, 2}})
	require.NoError(t, publisher.Publish(ctx, event))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, event.ID, msg.UUID)
		assert.Equal(t, CourseworkOverdueReminder, msg.Metadata.Get("event_type"))

		var decoded struct {
			ID   string              `json:"id"`
			Type string              `json:"type"`
			Data OverdueReminderData `json:"data"`
		}
		require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
		assert.Equal(t, event.ID, decoded.ID)
		assert.Equal(t, []uint{1, 2}, decoded.Data.AssignmentIDs)
	case <-ctx.Done():
		t.Fatal("event was not delivered")
	}
}

func TestMockEventPublisher(t *testing.T) {
	mock := NewMockEventPublisher(testLogger())
	ctx := context.Background()

	require.NoError(t, mock.Publish(ctx, NewEvent("a", nil)))
	require.NoError(t, mock.Publish(ctx, NewEvent("b", nil)))
	require.Len(t, mock.GetPublishedEvents(), 2)

	mock.ClearEvents()
	assert.Empty(t, mock.GetPublishedEvents())

	boom := errors.New("broker down")
	mock.FailWith(boom)
	assert.ErrorIs(t, mock.Publish(ctx, NewEvent("c", nil)), boom)
	assert.Empty(t, mock.GetPublishedEvents())
}
