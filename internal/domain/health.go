package domain

import "context"

type HealthReport struct {
	Status     string            `json:"status"` // "healthy" or "degraded"
	Components map[string]string `json:"components"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthReport
}
