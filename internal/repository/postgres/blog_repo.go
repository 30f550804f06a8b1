package postgres

import (
	"context"

	"jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type blogRepo struct {
	db *pgxpool.Pool
}

func NewBlogRepository(db *pgxpool.Pool) domain.BlogRepository {
	return &blogRepo{db: db}
}

const blogColumns = `id, author_id, title, slug, excerpt, content, cover_url, published, published_at, view_count, created_at, updated_at`

func scanPost(row pgx.Row, p *domain.BlogPost) error {
	return row.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.CoverURL,
		&p.Published, &p.PublishedAt, &p.ViewCount, &p.CreatedAt, &p.UpdatedAt)
}

func (r *blogRepo) Create(ctx context.Context, p *domain.BlogPost) error {
	query := `
		INSERT INTO blog_posts (author_id, title, slug, excerpt, content, cover_url, published, published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	return mapErr(r.db.QueryRow(ctx, query,
		p.AuthorID, p.Title, p.Slug, p.Excerpt, p.Content, p.CoverURL, p.Published, p.PublishedAt, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID))
}

func (r *blogRepo) Update(ctx context.Context, p *domain.BlogPost) error {
	query := `
		UPDATE blog_posts SET
			title = $2, slug = $3, excerpt = $4, content = $5, cover_url = $6,
			published = $7, published_at = $8, updated_at = $9
		WHERE id = $1`
	return affected(r.db.Exec(ctx, query,
		p.ID, p.Title, p.Slug, p.Excerpt, p.Content, p.CoverURL, p.Published, p.PublishedAt, p.UpdatedAt,
	))
}

func (r *blogRepo) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id))
}

func (r *blogRepo) GetByID(ctx context.Context, id int64) (*domain.BlogPost, error) {
	var p domain.BlogPost
	if err := scanPost(r.db.QueryRow(ctx, `SELECT `+blogColumns+` FROM blog_posts WHERE id = $1`, id), &p); err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (r *blogRepo) GetPublishedBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	var p domain.BlogPost
	err := scanPost(r.db.QueryRow(ctx, `SELECT `+blogColumns+` FROM blog_posts WHERE slug = $1 AND published = true`, slug), &p)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (r *blogRepo) List(ctx context.Context, publishedOnly bool, limit, offset int) ([]domain.BlogPost, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM blog_posts WHERE ($1 = false OR published = true)`, publishedOnly).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+blogColumns+` FROM blog_posts
		WHERE ($1 = false OR published = true)
		ORDER BY COALESCE(published_at, created_at) DESC, id DESC
		LIMIT $2 OFFSET $3`, publishedOnly, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	posts := []domain.BlogPost{}
	for rows.Next() {
		var p domain.BlogPost
		if err := scanPost(rows, &p); err != nil {
			return nil, 0, err
		}
		posts = append(posts, p)
	}
	return posts, total, rows.Err()
}
