// Package worker consumes background tasks published by the HTTP layer.
package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/logger"
)

// QueueName is the durable RabbitMQ queue the API's own consumer reads.
const QueueName = "jobboard.api.tasks"

// TaskHandler routes queued events to the usecases that process them.
type TaskHandler struct {
	notificationUC domain.NotificationUsecase
	contactUC      domain.ContactUsecase
}

func NewTaskHandler(notificationUC domain.NotificationUsecase, contactUC domain.ContactUsecase) *TaskHandler {
	return &TaskHandler{notificationUC: notificationUC, contactUC: contactUC}
}

// Bindings lists the routing keys Handle understands.
func (h *TaskHandler) Bindings() []string {
	return []string{domain.EventJobCreated, domain.EventContactSubmitted}
}

// Handle matches queue.Handler.
func (h *TaskHandler) Handle(ctx context.Context, routingKey string, body []byte) error {
	switch routingKey {
	case domain.EventJobCreated:
		var event domain.JobCreatedEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return fmt.Errorf("decode %s: %w", routingKey, err)
		}
		count, err := h.notificationUC.NotifyInterestedUsers(ctx, event.JobID)
		if err != nil {
			return fmt.Errorf("fan out job %d: %w", event.JobID, err)
		}
		logger.Log.Info("Job match notifications sent", "job_id", event.JobID, "recipients", count)
		return nil

	case domain.EventContactSubmitted:
		var req domain.ContactRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return fmt.Errorf("decode %s: %w", routingKey, err)
		}
		return h.contactUC.DeliverContactMessage(ctx, &req)

	default:
		logger.Log.Warn("Dropping task with unknown routing key", "routing_key", routingKey)
		return nil
	}
}
