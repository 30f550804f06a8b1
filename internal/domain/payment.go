package domain

import (
	"context"
	"time"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

type Payment struct {
	ID          int64         `json:"id"`
	Reference   string        `json:"reference"`
	UserID      string        `json:"user_id"`
	Plan        PlanName      `json:"plan"`
	AmountCents int64         `json:"amount_cents"`
	Currency    string        `json:"currency"`
	Status      PaymentStatus `json:"status"`
	PaidAt      *time.Time    `json:"paid_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	GetByReference(ctx context.Context, reference string) (*Payment, error)
	// Confirm marks a pending payment successful and grants its plan in one
	// transaction. A payment that is no longer pending is left alone and
	// applied is false.
	Confirm(ctx context.Context, reference string, now time.Time, duration time.Duration) (plan *Plan, applied bool, err error)
	MarkFailed(ctx context.Context, reference string) error
}
