package domain

import "context"

// Routing keys for background tasks
const (
	EventJobCreated       = "job.created"
	EventContactSubmitted = "contact.submitted"
)

type JobCreatedEvent struct {
	JobID int64 `json:"job_id"`
}

// EventPublisher hands a task to the background queue.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}
