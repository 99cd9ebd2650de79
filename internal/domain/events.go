package domain

import (
	"context"
	"time"
)

type EventType string

const (
	EventJobPosted                EventType = "job_posted"
	EventJobDeleted               EventType = "job_deleted"
	EventApplicationSubmitted     EventType = "application_submitted"
	EventApplicationStatusChanged EventType = "application_status_changed"
	EventMessageSent              EventType = "message_sent"
)

type Event struct {
	Type       EventType   `json:"type"`
	Key        string      `json:"key"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// EventPublisher emits domain events. Publishing never fails the caller.
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}
