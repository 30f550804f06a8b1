package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type paymentRepo struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) domain.PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	query := `
		INSERT INTO payments (reference, user_id, plan, amount_cents, currency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	return mapErr(r.db.QueryRow(ctx, query,
		p.Reference, p.UserID, p.Plan, p.AmountCents, p.Currency, p.Status, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID))
}

const paymentSelect = `
	SELECT id, reference, user_id, plan, amount_cents, currency, status, paid_at, created_at, updated_at
	FROM payments WHERE reference = $1`

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(&p.ID, &p.Reference, &p.UserID, &p.Plan, &p.AmountCents, &p.Currency, &p.Status, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (r *paymentRepo) GetByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	return scanPayment(r.db.QueryRow(ctx, paymentSelect, reference))
}

// Confirm locks the payment row, so concurrent deliveries of the same
// webhook apply the plan once.
func (r *paymentRepo) Confirm(ctx context.Context, reference string, now time.Time, duration time.Duration) (*domain.Plan, bool, error) {
	var granted *domain.Plan
	err := database.InTx(ctx, r.db, func(tx pgx.Tx) error {
		payment, err := scanPayment(tx.QueryRow(ctx, paymentSelect+` FOR UPDATE`, reference))
		if err != nil {
			return err
		}
		if payment.Status != domain.PaymentPending {
			return nil
		}

		if _, err := tx.Exec(ctx,
			`UPDATE payments SET status = $2, paid_at = $3, updated_at = $3 WHERE id = $1`,
			payment.ID, domain.PaymentSuccess, now,
		); err != nil {
			return fmt.Errorf("mark payment paid: %w", err)
		}

		current, err := currentPlan(ctx, tx, payment.UserID, true)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("load current plan: %w", err)
		}

		start, end, extend := domain.NextPeriod(current, payment.Plan, now, duration)
		if extend {
			// renewal restarts the reminder cycle
			if _, err := tx.Exec(ctx, `UPDATE plans SET end_date = $2, reminded_at = NULL WHERE id = $1`, current.ID, end); err != nil {
				return fmt.Errorf("extend plan: %w", err)
			}
			current.EndDate = &end
			current.RemindedAt = nil
			granted = current
			return nil
		}

		if _, err := tx.Exec(ctx, `UPDATE plans SET is_active = false WHERE user_id = $1 AND is_active = true`, payment.UserID); err != nil {
			return fmt.Errorf("deactivate previous plans: %w", err)
		}

		plan := &domain.Plan{
			UserID:    payment.UserID,
			Name:      payment.Plan,
			StartDate: start,
			EndDate:   &end,
			IsActive:  true,
			CreatedAt: now,
		}
		if err := tx.QueryRow(ctx, `
			INSERT INTO plans (user_id, name, start_date, end_date, is_active, created_at)
			VALUES ($1, $2, $3, $4, true, $5)
			RETURNING id`,
			plan.UserID, plan.Name, plan.StartDate, plan.EndDate, plan.CreatedAt,
		).Scan(&plan.ID); err != nil {
			return fmt.Errorf("insert plan: %w", err)
		}
		granted = plan
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return granted, granted != nil, nil
}

// MarkFailed only touches pending payments; repeats are no-ops.
func (r *paymentRepo) MarkFailed(ctx context.Context, reference string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE payments SET status = $2, updated_at = $3 WHERE reference = $1 AND status = $4`,
		reference, domain.PaymentFailed, time.Now(), domain.PaymentPending,
	)
	return err
}
