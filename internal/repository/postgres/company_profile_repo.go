package postgres

import (
	"context"
	"time"

	"jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type companyProfileRepo struct {
	db *pgxpool.Pool
}

// NewCompanyProfileRepository creates a new company profile repository
func NewCompanyProfileRepository(db *pgxpool.Pool) domain.CompanyProfileRepository {
	return &companyProfileRepo{db: db}
}

const companyProfileSelect = `
	SELECT id, user_id, company_name, website, industry, location, description, logo_url, created_at, updated_at
	FROM company_profiles`

func (r *companyProfileRepo) get(ctx context.Context, where string, arg interface{}) (*domain.CompanyProfile, error) {
	var p domain.CompanyProfile
	err := r.db.QueryRow(ctx, companyProfileSelect+` WHERE `+where, arg).Scan(
		&p.ID, &p.UserID, &p.CompanyName, &p.Website, &p.Industry, &p.Location,
		&p.Description, &p.LogoURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

// GetByUserID retrieves a company profile by the recruiter's user ID
func (r *companyProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.CompanyProfile, error) {
	return r.get(ctx, "user_id = $1", userID)
}

// GetByID retrieves a company profile by its ID (for public page)
func (r *companyProfileRepo) GetByID(ctx context.Context, id int64) (*domain.CompanyProfile, error) {
	return r.get(ctx, "id = $1", id)
}

// Upsert creates or updates a company profile (1 profile per user)
func (r *companyProfileRepo) Upsert(ctx context.Context, profile *domain.CompanyProfile) error {
	now := time.Now()
	profile.UpdatedAt = now

	query := `
		INSERT INTO company_profiles (
			user_id, company_name, website, industry, location, description, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			website = EXCLUDED.website,
			industry = EXCLUDED.industry,
			location = EXCLUDED.location,
			description = EXCLUDED.description,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, logo_url`

	err := r.db.QueryRow(ctx, query,
		profile.UserID, profile.CompanyName, profile.Website, profile.Industry,
		profile.Location, profile.Description, now, now,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.LogoURL)
	return mapErr(err)
}

func (r *companyProfileRepo) UpdateLogo(ctx context.Context, userID, url string) error {
	return affected(r.db.Exec(ctx, `UPDATE company_profiles SET logo_url = $2, updated_at = $3 WHERE user_id = $1`, userID, url, time.Now()))
}
