package usecase_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"jobboard-backend/internal/domain"
	"jobboard-backend/internal/usecase"
	"jobboard-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello, World! 2026":       "hello-world-2026",
		"  Remote   Go  Jobs  ":    "remote-go-jobs",
		"already-a-slug":           "already-a-slug",
		"***":                      "",
		"Hiring: Senior/Staff Eng": "hiring-senior-staff-eng",
	}
	for in, want := range tests {
		assert.Equal(t, want, usecase.Slugify(in), in)
	}
	assert.LessOrEqual(t, len(usecase.Slugify(strings.Repeat("ab ", 200))), 200)
}

func TestCreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("generates slug and publish time", func(t *testing.T) {
		repo := new(MockBlogRepo)
		uc := usecase.NewBlogUsecase(repo, new(MockViewUsecase), validation.NewForBinding())
		repo.On("Create", ctx, mock.AnythingOfType("*domain.BlogPost")).Return(nil)

		post, err := uc.CreatePost(ctx, "admin-1", &domain.BlogPostRequest{
			Title:     "How to write a great CV",
			Content:   "Start with a summary.",
			Published: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "how-to-write-a-great-cv", post.Slug)
		assert.NotNil(t, post.PublishedAt)
	})

	t.Run("slug conflict", func(t *testing.T) {
		repo := new(MockBlogRepo)
		uc := usecase.NewBlogUsecase(repo, new(MockViewUsecase), validation.NewForBinding())
		repo.On("Create", ctx, mock.Anything).Return(domain.ErrConflict)

		_, err := uc.CreatePost(ctx, "admin-1", &domain.BlogPostRequest{Title: "Duplicate", Content: "x"})
		requireAppError(t, err, http.StatusConflict)
	})

	t.Run("invalid slug rejected", func(t *testing.T) {
		uc := usecase.NewBlogUsecase(new(MockBlogRepo), new(MockViewUsecase), validation.NewForBinding())
		_, err := uc.CreatePost(ctx, "admin-1", &domain.BlogPostRequest{Title: "Title", Slug: "Not A Slug", Content: "x"})
		requireAppError(t, err, http.StatusBadRequest)
	})
}

func TestGetPublishedPostCountsView(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBlogRepo)
	viewUC := new(MockViewUsecase)
	uc := usecase.NewBlogUsecase(repo, viewUC, validation.NewForBinding())
	viewer := domain.Viewer{Address: "198.51.100.4"}

	repo.On("GetPublishedBySlug", ctx, "go-tips").Return(&domain.BlogPost{ID: 3, Slug: "go-tips", ViewCount: 4}, nil)
	viewUC.On("RecordViewIfNew", ctx, domain.ContentBlogPost, int64(3), viewer, mock.AnythingOfType("time.Time")).Return(true)

	post, err := uc.GetPublishedPost(ctx, "Go-Tips", viewer)
	require.NoError(t, err)
	assert.Equal(t, int64(5), post.ViewCount)
}
