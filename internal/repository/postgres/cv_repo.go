package postgres

import (
	"context"

	"jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type cvRepo struct {
	db *pgxpool.Pool
}

func NewCVRepository(db *pgxpool.Pool) domain.CVRepository {
	return &cvRepo{db: db}
}

const cvColumns = `id, title, category, summary, file_key, file_name, content_type, size_bytes, uploaded_by, view_count, created_at`

func scanCV(row pgx.Row, cv *domain.CV) error {
	return row.Scan(&cv.ID, &cv.Title, &cv.Category, &cv.Summary, &cv.FileKey, &cv.FileName,
		&cv.ContentType, &cv.SizeBytes, &cv.UploadedBy, &cv.ViewCount, &cv.CreatedAt)
}

func (r *cvRepo) Create(ctx context.Context, cv *domain.CV) error {
	query := `
		INSERT INTO cvs (title, category, summary, file_key, file_name, content_type, size_bytes, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	return mapErr(r.db.QueryRow(ctx, query,
		cv.Title, cv.Category, cv.Summary, cv.FileKey, cv.FileName, cv.ContentType, cv.SizeBytes, cv.UploadedBy, cv.CreatedAt,
	).Scan(&cv.ID))
}

func (r *cvRepo) GetByID(ctx context.Context, id int64) (*domain.CV, error) {
	var cv domain.CV
	if err := scanCV(r.db.QueryRow(ctx, `SELECT `+cvColumns+` FROM cvs WHERE id = $1`, id), &cv); err != nil {
		return nil, mapErr(err)
	}
	return &cv, nil
}

func (r *cvRepo) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM cvs WHERE id = $1`, id))
}

func (r *cvRepo) List(ctx context.Context, limit, offset int) ([]domain.CV, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cvs`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `SELECT `+cvColumns+` FROM cvs ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	cvs := []domain.CV{}
	for rows.Next() {
		var cv domain.CV
		if err := scanCV(rows, &cv); err != nil {
			return nil, 0, err
		}
		cvs = append(cvs, cv)
	}
	return cvs, total, rows.Err()
}

// Rank counts the CVs ordered ahead of id under (created_at DESC, id DESC).
func (r *cvRepo) Rank(ctx context.Context, id int64) (int, error) {
	var rank int
	err := r.db.QueryRow(ctx, `
		SELECT (
			SELECT COUNT(*) FROM cvs c
			WHERE (c.created_at, c.id) > (t.created_at, t.id)
		)
		FROM cvs t
		WHERE t.id = $1`, id).Scan(&rank)
	if err != nil {
		return 0, mapErr(err)
	}
	return rank, nil
}
