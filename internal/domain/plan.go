package domain

import (
	"context"
	"time"
)

type PlanName string

const (
	PlanFree         PlanName = "Free"
	PlanStarter      PlanName = "Starter"
	PlanProfessional PlanName = "Professional"
	PlanEnterprise   PlanName = "Enterprise"
)

// Purchasable reports whether the plan can be bought at checkout.
func (p PlanName) Purchasable() bool {
	switch p {
	case PlanStarter, PlanProfessional, PlanEnterprise:
		return true
	}
	return false
}

// AccessMode is what a listing does with items past the plan limit.
type AccessMode string

const (
	AccessModeHide AccessMode = "hide"
	AccessModeBlur AccessMode = "blur"
)

// Unlimited as a PlanPolicy limit grants access to every item.
const Unlimited = -1

type PlanPolicy struct {
	Limit int        `json:"limit"`
	Mode  AccessMode `json:"mode"`
}

func (p PlanPolicy) IsUnlimited() bool { return p.Limit == Unlimited }

type PlanPolicies map[PlanName]PlanPolicy

// Plan is a subscription period. Expiry is passive: a plan past EndDate is
// simply no longer active.
type Plan struct {
	ID         int64      `json:"id"`
	UserID     string     `json:"user_id"`
	Name       PlanName   `json:"name"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	IsActive   bool       `json:"is_active"`
	RemindedAt *time.Time `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (p *Plan) ActiveAt(now time.Time) bool {
	if p == nil || !p.IsActive {
		return false
	}
	return p.EndDate == nil || p.EndDate.After(now)
}

// EffectivePlanName returns Free for a missing or lapsed plan.
func EffectivePlanName(p *Plan, now time.Time) PlanName {
	if !p.ActiveAt(now) {
		return PlanFree
	}
	return p.Name
}

// NextPeriod computes the period a confirmed purchase of name grants.
// Buying the currently active plan extends it from its end date; anything
// else starts a fresh period now and replaces the current plan.
func NextPeriod(current *Plan, name PlanName, now time.Time, duration time.Duration) (start, end time.Time, extend bool) {
	if current.ActiveAt(now) && current.Name == name && current.EndDate != nil {
		return current.StartDate, current.EndDate.Add(duration), true
	}
	return now, now.Add(duration), false
}

type CatalogEntry struct {
	Name         PlanName `json:"name"`
	PriceCents   int64    `json:"price_cents"`
	Currency     string   `json:"currency"`
	DurationDays int      `json:"duration_days"`
	CVLimit      int      `json:"cv_limit"` // -1 is unlimited
	Mode         string   `json:"mode"`
}

type CurrentPlan struct {
	Name    PlanName   `json:"name"`
	EndDate *time.Time `json:"end_date,omitempty"`
	Limit   int        `json:"limit"`
	Mode    AccessMode `json:"mode"`
}

// ExpiringPlan joins a plan with its owner's email for reminders.
type ExpiringPlan struct {
	Plan
	Email string
}

type PlanRepository interface {
	// GetCurrent returns the user's most recent active plan or ErrNotFound.
	GetCurrent(ctx context.Context, userID string) (*Plan, error)
	ListExpiring(ctx context.Context, from, to time.Time) ([]ExpiringPlan, error)
	MarkReminded(ctx context.Context, planID int64, at time.Time) error
}

type CheckoutRequest struct {
	Plan PlanName `json:"plan" binding:"required,oneof=Starter Professional Enterprise"`
}

type PaymentWebhookPayload struct {
	Reference   string `json:"reference"`
	Status      string `json:"status"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

type PlanUsecase interface {
	Catalog() []CatalogEntry
	CurrentPlan(ctx context.Context, userID string) (*CurrentPlan, error)
	// EffectivePlan never fails: lookup errors degrade to Free.
	EffectivePlan(ctx context.Context, userID string) PlanName
	Checkout(ctx context.Context, userID string, plan PlanName) (*Payment, error)
	HandleWebhook(ctx context.Context, body []byte, signature string) error
	SendExpiryReminders(ctx context.Context, now time.Time) (int, error)
}
