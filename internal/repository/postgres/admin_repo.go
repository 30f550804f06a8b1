package postgres

import (
	"context"

	"jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type adminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) domain.AdminRepository {
	return &adminRepo{db: db}
}

// GetStats fetches dashboard statistics in one round trip
func (r *adminRepo) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	stats := &domain.AdminStats{UsersByRole: map[string]int64{}}

	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM jobs),
			(SELECT COUNT(*) FROM jobs WHERE status = 'active' AND is_hidden = false),
			(SELECT COUNT(*) FROM applications),
			(SELECT COUNT(*) FROM cvs),
			(SELECT COUNT(*) FROM blog_posts WHERE published = true),
			(SELECT COUNT(*) FROM plans WHERE is_active = true AND (end_date IS NULL OR end_date > NOW()))`
	err := r.db.QueryRow(ctx, query).Scan(
		&stats.TotalUsers, &stats.TotalJobs, &stats.ActiveJobs, &stats.TotalApplications,
		&stats.TotalCVs, &stats.PublishedPosts, &stats.ActivePlans,
	)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var role string
		var count int64
		if err := rows.Scan(&role, &count); err != nil {
			return nil, err
		}
		stats.UsersByRole[role] = count
	}
	return stats, rows.Err()
}
