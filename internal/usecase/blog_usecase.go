package usecase

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type blogUsecase struct {
	blogRepo domain.BlogRepository
	viewUC   domain.ViewUsecase
	validate *validator.Validate
}

func NewBlogUsecase(blogRepo domain.BlogRepository, viewUC domain.ViewUsecase, validate *validator.Validate) domain.BlogUsecase {
	return &blogUsecase{blogRepo: blogRepo, viewUC: viewUC, validate: validate}
}

// Slugify lowercases s and joins its ASCII letter/digit runs with hyphens.
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	slug := b.String()
	if len(slug) > 200 {
		slug = strings.TrimRight(slug[:200], "-")
	}
	return slug
}

func (u *blogUsecase) apply(post *domain.BlogPost, req *domain.BlogPostRequest, now time.Time) {
	post.Title = strings.TrimSpace(req.Title)
	post.Slug = req.Slug
	if post.Slug == "" {
		post.Slug = Slugify(post.Title)
	}
	if post.Slug == "" {
		post.Slug = "post-" + uuid.NewString()[:8]
	}
	post.Excerpt = strings.TrimSpace(req.Excerpt)
	post.Content = req.Content
	post.CoverURL = req.CoverURL
	post.Published = req.Published
	if post.Published && post.PublishedAt == nil {
		post.PublishedAt = &now
	}
	post.UpdatedAt = now
}

func blogWriteError(err error) error {
	if errors.Is(err, domain.ErrConflict) {
		return apperror.Conflict("Slug is already in use")
	}
	return repoError(err, "Post not found")
}

func (u *blogUsecase) CreatePost(ctx context.Context, authorID string, req *domain.BlogPostRequest) (*domain.BlogPost, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Invalid post: " + err.Error())
	}
	now := time.Now()
	post := &domain.BlogPost{AuthorID: authorID, CreatedAt: now}
	u.apply(post, req, now)

	if err := u.blogRepo.Create(ctx, post); err != nil {
		return nil, blogWriteError(err)
	}
	return post, nil
}

func (u *blogUsecase) UpdatePost(ctx context.Context, id int64, req *domain.BlogPostRequest) (*domain.BlogPost, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Invalid post: " + err.Error())
	}
	post, err := u.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Post not found")
	}
	u.apply(post, req, time.Now())

	if err := u.blogRepo.Update(ctx, post); err != nil {
		return nil, blogWriteError(err)
	}
	return post, nil
}

func (u *blogUsecase) DeletePost(ctx context.Context, id int64) error {
	return repoError(u.blogRepo.Delete(ctx, id), "Post not found")
}

func (u *blogUsecase) ListPosts(ctx context.Context, publishedOnly bool, page, pageSize int) ([]domain.BlogPost, int64, error) {
	limit, offset := pageBounds(page, pageSize)
	posts, total, err := u.blogRepo.List(ctx, publishedOnly, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	if posts == nil {
		posts = []domain.BlogPost{}
	}
	return posts, total, nil
}

func (u *blogUsecase) GetPublishedPost(ctx context.Context, slug string, viewer domain.Viewer) (*domain.BlogPost, error) {
	post, err := u.blogRepo.GetPublishedBySlug(ctx, strings.ToLower(slug))
	if err != nil {
		return nil, repoError(err, "Post not found")
	}
	if u.viewUC.RecordViewIfNew(ctx, domain.ContentBlogPost, post.ID, viewer, time.Now()) {
		post.ViewCount++
	}
	return post, nil
}
