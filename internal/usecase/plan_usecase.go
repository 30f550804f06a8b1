package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/email"
	"jobboard-backend/pkg/logger"

	"github.com/google/uuid"
)

const planCurrency = "USD"

// planPrices in cents per period
var planPrices = map[domain.PlanName]int64{
	domain.PlanStarter:      2900,
	domain.PlanProfessional: 9900,
	domain.PlanEnterprise:   29900,
}

type PlanConfig struct {
	WebhookSecret    string
	DurationDays     int
	ReminderLeadDays int
	FrontendURL      string
}

type planUsecase struct {
	planRepo       domain.PlanRepository
	paymentRepo    domain.PaymentRepository
	notificationUC domain.NotificationUsecase
	mailer         email.Sender
	policy         domain.AccessEvaluator
	cfg            PlanConfig
}

// NewPlanUsecase wires plans and payments. mailer may be nil.
func NewPlanUsecase(
	planRepo domain.PlanRepository,
	paymentRepo domain.PaymentRepository,
	notificationUC domain.NotificationUsecase,
	mailer email.Sender,
	policy domain.AccessEvaluator,
	cfg PlanConfig,
) domain.PlanUsecase {
	if cfg.DurationDays < 1 {
		cfg.DurationDays = 30
	}
	if cfg.ReminderLeadDays < 1 {
		cfg.ReminderLeadDays = 3
	}
	return &planUsecase{
		planRepo:       planRepo,
		paymentRepo:    paymentRepo,
		notificationUC: notificationUC,
		mailer:         mailer,
		policy:         policy,
		cfg:            cfg,
	}
}

func (u *planUsecase) duration() time.Duration {
	return time.Duration(u.cfg.DurationDays) * 24 * time.Hour
}

func (u *planUsecase) Catalog() []domain.CatalogEntry {
	names := []domain.PlanName{domain.PlanStarter, domain.PlanProfessional, domain.PlanEnterprise}
	out := make([]domain.CatalogEntry, 0, len(names))
	for _, name := range names {
		policy := u.policy.Policy(name)
		out = append(out, domain.CatalogEntry{
			Name:         name,
			PriceCents:   planPrices[name],
			Currency:     planCurrency,
			DurationDays: u.cfg.DurationDays,
			CVLimit:      policy.Limit,
			Mode:         string(policy.Mode),
		})
	}
	return out
}

func (u *planUsecase) current(ctx context.Context, userID string) (*domain.Plan, error) {
	plan, err := u.planRepo.GetCurrent(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return plan, err
}

func (u *planUsecase) CurrentPlan(ctx context.Context, userID string) (*domain.CurrentPlan, error) {
	plan, err := u.current(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now()
	name := domain.EffectivePlanName(plan, now)
	policy := u.policy.Policy(name)
	out := &domain.CurrentPlan{Name: name, Limit: policy.Limit, Mode: policy.Mode}
	if plan.ActiveAt(now) {
		out.EndDate = plan.EndDate
	}
	return out, nil
}

func (u *planUsecase) EffectivePlan(ctx context.Context, userID string) domain.PlanName {
	plan, err := u.current(ctx, userID)
	if err != nil {
		logger.Log.Warn("Plan lookup failed, falling back to Free", "user_id", userID, "error", err)
		return domain.PlanFree
	}
	return domain.EffectivePlanName(plan, time.Now())
}

func (u *planUsecase) Checkout(ctx context.Context, userID string, plan domain.PlanName) (*domain.Payment, error) {
	if !plan.Purchasable() {
		return nil, apperror.BadRequest("Unknown plan")
	}

	now := time.Now()
	payment := &domain.Payment{
		Reference:   uuid.NewString(),
		UserID:      userID,
		Plan:        plan,
		AmountCents: planPrices[plan],
		Currency:    planCurrency,
		Status:      domain.PaymentPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.paymentRepo.Create(ctx, payment); err != nil {
		return nil, apperror.Internal(err)
	}
	return payment, nil
}

// VerifySignature checks a hex HMAC-SHA256 of body, optionally prefixed "sha256=".
func VerifySignature(secret, body []byte, signature string) bool {
	sig, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(signature), "sha256="))
	if err != nil || len(sig) == 0 {
		return false
	}
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hmac.Equal(sig, mac.Sum(nil))
}

func (u *planUsecase) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if u.cfg.WebhookSecret == "" {
		return apperror.Unavailable("Payment webhook is not configured", nil)
	}
	if !VerifySignature([]byte(u.cfg.WebhookSecret), body, signature) {
		return apperror.Unauthorized("Invalid signature")
	}

	var payload domain.PaymentWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil || payload.Reference == "" {
		return apperror.BadRequest("Invalid webhook payload")
	}

	payment, err := u.paymentRepo.GetByReference(ctx, payload.Reference)
	if err != nil {
		return repoError(err, "Payment not found")
	}

	switch payload.Status {
	case string(domain.PaymentSuccess):
		if payload.AmountCents != payment.AmountCents ||
			(payload.Currency != "" && !strings.EqualFold(payload.Currency, payment.Currency)) {
			logger.Log.Warn("Payment amount mismatch", "reference", payment.Reference, "expected", payment.AmountCents, "got", payload.AmountCents)
			return apperror.BadRequest("Payment amount mismatch")
		}
		plan, applied, err := u.paymentRepo.Confirm(ctx, payment.Reference, time.Now(), u.duration())
		if err != nil {
			return apperror.Internal(err)
		}
		if !applied {
			logger.Log.Info("Duplicate payment webhook ignored", "reference", payment.Reference, "status", payment.Status)
			return nil
		}
		logger.Log.Info("Plan activated", "user_id", plan.UserID, "plan", plan.Name, "end_date", plan.EndDate)
		return nil
	case string(domain.PaymentFailed):
		if err := u.paymentRepo.MarkFailed(ctx, payment.Reference); err != nil {
			return apperror.Internal(err)
		}
		logger.Log.Info("Payment failed", "reference", payment.Reference, "user_id", payment.UserID)
		return nil
	default:
		return apperror.BadRequest("Unsupported payment status")
	}
}

// SendExpiryReminders notifies owners of plans ending within the lead time.
// Each plan is reminded once.
func (u *planUsecase) SendExpiryReminders(ctx context.Context, now time.Time) (int, error) {
	to := now.Add(time.Duration(u.cfg.ReminderLeadDays) * 24 * time.Hour)
	plans, err := u.planRepo.ListExpiring(ctx, now, to)
	if err != nil {
		return 0, fmt.Errorf("list expiring plans: %w", err)
	}

	sent := 0
	for _, p := range plans {
		if p.EndDate == nil {
			continue
		}
		planID := p.ID
		note := &domain.Notification{
			RecipientID:   p.UserID,
			RelatedItemID: &planID,
			Kind:          domain.NotificationPlanExpiring,
			Message:       fmt.Sprintf("Your %s plan ends on %s", p.Name, p.EndDate.Format("2 Jan 2006")),
		}
		if err := u.notificationUC.Notify(ctx, note); err != nil {
			logger.Log.Warn("Plan reminder notification failed", "plan_id", p.ID, "error", err)
			continue
		}

		if u.mailer != nil && p.Email != "" {
			msg, err := email.PlanExpiringMessage(p.Email, email.PlanExpiringEmailData{
				PlanName: string(p.Name),
				EndDate:  *p.EndDate,
				RenewURL: u.cfg.FrontendURL + "/plans",
			})
			if err == nil {
				err = u.mailer.Send(ctx, msg)
			}
			if err != nil {
				logger.Log.Warn("Plan reminder email failed", "plan_id", p.ID, "error", err)
			}
		}

		if err := u.planRepo.MarkReminded(ctx, p.ID, now); err != nil {
			logger.Log.Warn("Failed to mark plan reminded", "plan_id", p.ID, "error", err)
		}
		sent++
	}
	return sent, nil
}
