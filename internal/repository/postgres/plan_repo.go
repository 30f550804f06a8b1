package postgres

import (
	"context"
	"time"

	"jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type planRepo struct {
	db *pgxpool.Pool
}

func NewPlanRepository(db *pgxpool.Pool) domain.PlanRepository {
	return &planRepo{db: db}
}

const planColumns = `id, user_id, name, start_date, end_date, is_active, reminded_at, created_at`

func scanPlan(row pgx.Row, p *domain.Plan) error {
	return row.Scan(&p.ID, &p.UserID, &p.Name, &p.StartDate, &p.EndDate, &p.IsActive, &p.RemindedAt, &p.CreatedAt)
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func currentPlan(ctx context.Context, q querier, userID string, forUpdate bool) (*domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans
		WHERE user_id = $1 AND is_active = true AND (end_date IS NULL OR end_date > NOW())
		ORDER BY start_date DESC, id DESC
		LIMIT 1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var p domain.Plan
	if err := scanPlan(q.QueryRow(ctx, query, userID), &p); err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (r *planRepo) GetCurrent(ctx context.Context, userID string) (*domain.Plan, error) {
	return currentPlan(ctx, r.db, userID, false)
}

// ListExpiring returns active plans ending in [from, to) that were not
// reminded yet, joined with the owner's email.
func (r *planRepo) ListExpiring(ctx context.Context, from, to time.Time) ([]domain.ExpiringPlan, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.user_id, p.name, p.start_date, p.end_date, p.is_active, p.reminded_at, p.created_at, u.email
		FROM plans p
		JOIN users u ON u.id = p.user_id
		WHERE p.is_active = true
		  AND p.reminded_at IS NULL
		  AND p.end_date >= $1 AND p.end_date < $2
		ORDER BY p.end_date`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ExpiringPlan
	for rows.Next() {
		var ep domain.ExpiringPlan
		if err := rows.Scan(&ep.ID, &ep.UserID, &ep.Name, &ep.StartDate, &ep.EndDate, &ep.IsActive, &ep.RemindedAt, &ep.CreatedAt, &ep.Email); err != nil {
			return nil, err
		}
		out = append(out, ep)
	}
	return out, rows.Err()
}

func (r *planRepo) MarkReminded(ctx context.Context, planID int64, at time.Time) error {
	return affected(r.db.Exec(ctx, `UPDATE plans SET reminded_at = $2 WHERE id = $1`, planID, at))
}
