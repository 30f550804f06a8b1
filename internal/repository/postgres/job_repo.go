package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobSelect = `
	SELECT
		j.id, j.recruiter_id, j.title, j.description, j.category, j.location,
		j.salary_min, j.salary_max, j.employment_type, j.status, j.is_hidden,
		j.view_count, j.created_at, j.updated_at,
		cp.company_name, cp.logo_url
	FROM jobs j
	LEFT JOIN company_profiles cp ON cp.user_id = j.recruiter_id`

func scanJob(row pgx.Row, job *domain.Job) error {
	return row.Scan(
		&job.ID, &job.RecruiterID, &job.Title, &job.Description, &job.Category, &job.Location,
		&job.SalaryMin, &job.SalaryMax, &job.EmploymentType, &job.Status, &job.IsHidden,
		&job.ViewCount, &job.CreatedAt, &job.UpdatedAt,
		&job.CompanyName, &job.CompanyLogoURL,
	)
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (recruiter_id, title, description, category, location, salary_min, salary_max, employment_type, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		job.RecruiterID, job.Title, job.Description, job.Category, job.Location,
		job.SalaryMin, job.SalaryMax, job.EmploymentType, job.Status,
		job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
	return mapErr(err)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	var job domain.Job
	if err := scanJob(r.db.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id), &job); err != nil {
		return nil, mapErr(err)
	}
	return &job, nil
}

// Fetch lists jobs newest first. PublicOnly forces the active, not hidden
// filter regardless of the other fields.
func (r *jobRepo) Fetch(ctx context.Context, filter domain.JobFilter) ([]domain.Job, int64, error) {
	var where []string
	var args []interface{}
	add := func(cond string, v interface{}) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if filter.PublicOnly {
		where = append(where, "j.status = 'active'", "j.is_hidden = false")
	} else if filter.Status != "" {
		add("j.status = $%d", filter.Status)
	}
	if filter.Category != "" {
		add("j.category = $%d", strings.ToLower(filter.Category))
	}
	if filter.RecruiterID != "" {
		add("j.recruiter_id = $%d", filter.RecruiterID)
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs j`+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`%s%s ORDER BY j.created_at DESC, j.id DESC LIMIT $%d OFFSET $%d`,
		jobSelect, clause, len(args)+1, len(args)+2)
	rows, err := r.db.Query(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs := []domain.Job{}
	for rows.Next() {
		var job domain.Job
		if err := scanJob(rows, &job); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}
	return jobs, total, rows.Err()
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET
		title = $2,
		description = $3,
		category = $4,
		location = $5,
		salary_min = $6,
		salary_max = $7,
		employment_type = $8,
		updated_at = $9
	WHERE id = $1`
	return affected(r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Category, job.Location,
		job.SalaryMin, job.SalaryMax, job.EmploymentType, job.UpdatedAt,
	))
}

func (r *jobRepo) UpdateStatus(ctx context.Context, id int64, status domain.JobStatus) error {
	return affected(r.db.Exec(ctx, `UPDATE jobs SET status = $2, updated_at = $3 WHERE id = $1`, id, status, time.Now()))
}

func (r *jobRepo) SetHidden(ctx context.Context, id int64, hidden bool) error {
	return affected(r.db.Exec(ctx, `UPDATE jobs SET is_hidden = $2, updated_at = $3 WHERE id = $1`, id, hidden, time.Now()))
}

func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id))
}
