package domain

import (
	"context"
	"time"
)

type BlogPost struct {
	ID          int64      `json:"id"`
	AuthorID    string     `json:"author_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	CoverURL    *string    `json:"cover_url"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at"`
	ViewCount   int64      `json:"view_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type BlogPostRequest struct {
	Title     string  `json:"title" binding:"required,min=3,max=200"`
	Slug      string  `json:"slug" binding:"omitempty,max=200,slug"`
	Excerpt   string  `json:"excerpt" binding:"max=500"`
	Content   string  `json:"content" binding:"required"`
	CoverURL  *string `json:"cover_url" binding:"omitempty,url"`
	Published bool    `json:"published"`
}

type BlogRepository interface {
	// Create and Update return ErrConflict on a duplicate slug.
	Create(ctx context.Context, post *BlogPost) error
	Update(ctx context.Context, post *BlogPost) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*BlogPost, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*BlogPost, error)
	List(ctx context.Context, publishedOnly bool, limit, offset int) ([]BlogPost, int64, error)
}

type BlogUsecase interface {
	CreatePost(ctx context.Context, authorID string, req *BlogPostRequest) (*BlogPost, error)
	UpdatePost(ctx context.Context, id int64, req *BlogPostRequest) (*BlogPost, error)
	DeletePost(ctx context.Context, id int64) error
	ListPosts(ctx context.Context, publishedOnly bool, page, pageSize int) ([]BlogPost, int64, error)
	GetPublishedPost(ctx context.Context, slug string, viewer Viewer) (*BlogPost, error)
}
