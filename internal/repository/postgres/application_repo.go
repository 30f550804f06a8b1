package postgres

import (
	"context"
	"time"

	"jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationSelect = `
	SELECT
		a.id, a.job_id, a.candidate_id, a.resume_url, a.cover_letter, a.status,
		a.created_at, a.updated_at,
		j.title, u.email, cp.title
	FROM applications a
	LEFT JOIN jobs j ON j.id = a.job_id
	LEFT JOIN users u ON u.id = a.candidate_id
	LEFT JOIN candidate_profiles cp ON cp.user_id = a.candidate_id`

func scanApplication(row pgx.Row, app *domain.Application) error {
	return row.Scan(
		&app.ID, &app.JobID, &app.CandidateID, &app.ResumeURL, &app.CoverLetter, &app.Status,
		&app.CreatedAt, &app.UpdatedAt,
		&app.JobTitle, &app.CandidateEmail, &app.CandidateTitle,
	)
}

// Create inserts a new application. The (job_id, candidate_id) unique index
// turns a second application into ErrConflict.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (job_id, candidate_id, resume_url, cover_letter, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = domain.ApplicationStatusApplied
	}

	err := r.db.QueryRow(ctx, query,
		app.JobID, app.CandidateID, app.ResumeURL, app.CoverLetter, app.Status, app.CreatedAt, app.UpdatedAt,
	).Scan(&app.ID)
	return mapErr(err)
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	var app domain.Application
	if err := scanApplication(r.db.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id), &app); err != nil {
		return nil, mapErr(err)
	}
	return &app, nil
}

func (r *applicationRepo) list(ctx context.Context, where string, arg interface{}) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, applicationSelect+` WHERE `+where+` ORDER BY a.created_at DESC, a.id DESC`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []domain.Application{}
	for rows.Next() {
		var app domain.Application
		if err := scanApplication(rows, &app); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (r *applicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	return r.list(ctx, "a.job_id = $1", jobID)
}

func (r *applicationRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Application, error) {
	return r.list(ctx, "a.candidate_id = $1", userID)
}

// UpdateStatus updates the status of an application and sets updated_at
func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return affected(r.db.Exec(ctx, `UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1`, id, status, time.Now()))
}

// InterestedCandidates finds distinct candidates with an application to
// another job in category and none to jobID. Disabled accounts and anyone
// already holding a job_match notification for jobID are skipped.
func (r *applicationRepo) InterestedCandidates(ctx context.Context, jobID int64, category string) ([]domain.Recipient, error) {
	query := `
		SELECT DISTINCT u.id, u.email
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN users u ON u.id = a.candidate_id
		WHERE j.category = $2
		  AND a.job_id <> $1
		  AND u.is_disabled = false
		  AND NOT EXISTS (
			SELECT 1 FROM applications own
			WHERE own.job_id = $1 AND own.candidate_id = a.candidate_id
		  )
		  AND NOT EXISTS (
			SELECT 1 FROM notifications n
			WHERE n.recipient_id = a.candidate_id AND n.related_item_id = $1 AND n.kind = $3
		  )`

	rows, err := r.db.Query(ctx, query, jobID, category, domain.NotificationJobMatch)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Recipient
	for rows.Next() {
		var rcp domain.Recipient
		if err := rows.Scan(&rcp.UserID, &rcp.Email); err != nil {
			return nil, err
		}
		out = append(out, rcp)
	}
	return out, rows.Err()
}
