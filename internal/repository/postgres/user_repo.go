package postgres

import (
	"context"
	"time"

	"jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, email, role, is_disabled, created_at, updated_at`

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	// A concurrent sync for the same subject is a no-op
	query := `INSERT INTO users (id, email, role, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5)
              ON CONFLICT (id) DO NOTHING`
	_, err := r.db.Exec(ctx, query, user.ID, user.Email, user.Role, user.CreatedAt, user.UpdatedAt)
	return mapErr(err)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	var user domain.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.Role, &user.IsDisabled, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (r *userRepo) UpdateRole(ctx context.Context, id string, role string) error {
	return affected(r.db.Exec(ctx, `UPDATE users SET role = $2, updated_at = $3 WHERE id = $1`, id, role, time.Now()))
}

func (r *userRepo) SetDisabled(ctx context.Context, id string, disabled bool) error {
	return affected(r.db.Exec(ctx, `UPDATE users SET is_disabled = $2, updated_at = $3 WHERE id = $1`, id, disabled, time.Now()))
}

// List pages through users, optionally filtered by role
func (r *userRepo) List(ctx context.Context, role string, limit, offset int) ([]domain.User, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE ($1 = '' OR role = $1)`, role).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + userColumns + ` FROM users
              WHERE ($1 = '' OR role = $1)
              ORDER BY created_at DESC
              LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, role, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Role, &u.IsDisabled, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}
