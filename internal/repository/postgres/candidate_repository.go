package postgres

import (
	"context"
	"time"

	"jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	query := `
		SELECT user_id, title, bio, skills, phone, category, resume_url, updated_at
		FROM candidate_profiles WHERE user_id = $1`

	var p domain.CandidateProfile
	var skills []string
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.Title, &p.Bio, pq.Array(&skills), &p.Phone, &p.Category, &p.ResumeURL, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	if skills == nil {
		skills = []string{}
	}
	p.Skills = skills
	return &p, nil
}

// Upsert writes every editable field; resume_url is owned by UpdateResumeURL.
func (r *candidateRepository) Upsert(ctx context.Context, p *domain.CandidateProfile) error {
	query := `
		INSERT INTO candidate_profiles (user_id, title, bio, skills, phone, category, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			title = EXCLUDED.title,
			bio = EXCLUDED.bio,
			skills = EXCLUDED.skills,
			phone = EXCLUDED.phone,
			category = EXCLUDED.category,
			updated_at = EXCLUDED.updated_at`
	_, err := r.db.Exec(ctx, query, p.UserID, p.Title, p.Bio, pq.Array(p.Skills), p.Phone, p.Category, p.UpdatedAt)
	return mapErr(err)
}

func (r *candidateRepository) UpdateResumeURL(ctx context.Context, userID, url string) error {
	query := `
		INSERT INTO candidate_profiles (user_id, resume_url, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET resume_url = EXCLUDED.resume_url, updated_at = EXCLUDED.updated_at`
	_, err := r.db.Exec(ctx, query, userID, url, time.Now())
	return mapErr(err)
}
