package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestRecordViewIfNewWindow(t *testing.T) {
	repo := newMemoryViewRepo()
	uc := usecase.NewViewUsecase(repo, time.Hour)
	ctx := context.Background()
	t0 := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	viewer := domain.Viewer{UserID: "user-1", Address: "10.0.0.1"}

	assert.True(t, uc.RecordViewIfNew(ctx, domain.ContentJob, 1, viewer, t0))
	assert.False(t, uc.RecordViewIfNew(ctx, domain.ContentJob, 1, viewer, t0.Add(30*time.Minute)))
	assert.True(t, uc.RecordViewIfNew(ctx, domain.ContentJob, 1, viewer, t0.Add(61*time.Minute)))

	assert.Equal(t, int64(2), repo.counts[1])
}

func TestRecordViewIfNewAnonymous(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	t.Run("different addresses both count", func(t *testing.T) {
		repo := newMemoryViewRepo()
		uc := usecase.NewViewUsecase(repo, time.Hour)

		assert.True(t, uc.RecordViewIfNew(ctx, domain.ContentBlogPost, 7, domain.Viewer{Address: "1.1.1.1"}, now))
		assert.True(t, uc.RecordViewIfNew(ctx, domain.ContentBlogPost, 7, domain.Viewer{Address: "2.2.2.2"}, now))
		assert.Equal(t, int64(2), repo.counts[7])
	})

	t.Run("mapped IPv6 equals IPv4", func(t *testing.T) {
		repo := newMemoryViewRepo()
		uc := usecase.NewViewUsecase(repo, time.Hour)

		assert.True(t, uc.RecordViewIfNew(ctx, domain.ContentBlogPost, 7, domain.Viewer{Address: "::ffff:1.2.3.4"}, now))
		assert.False(t, uc.RecordViewIfNew(ctx, domain.ContentBlogPost, 7, domain.Viewer{Address: "1.2.3.4"}, now.Add(time.Minute)))
		assert.Equal(t, "1.2.3.4", repo.records[0].NetworkAddress)
	})

	t.Run("signed-in viewer is separate from anonymous on same address", func(t *testing.T) {
		repo := newMemoryViewRepo()
		uc := usecase.NewViewUsecase(repo, time.Hour)

		assert.True(t, uc.RecordViewIfNew(ctx, domain.ContentCV, 3, domain.Viewer{Address: "1.2.3.4"}, now))
		assert.True(t, uc.RecordViewIfNew(ctx, domain.ContentCV, 3, domain.Viewer{UserID: "u", Address: "1.2.3.4"}, now))
	})

	t.Run("same viewer on different content", func(t *testing.T) {
		repo := newMemoryViewRepo()
		uc := usecase.NewViewUsecase(repo, time.Hour)

		assert.True(t, uc.RecordViewIfNew(ctx, domain.ContentJob, 1, domain.Viewer{UserID: "u"}, now))
		assert.True(t, uc.RecordViewIfNew(ctx, domain.ContentJob, 2, domain.Viewer{UserID: "u"}, now))
		assert.True(t, uc.RecordViewIfNew(ctx, domain.ContentBlogPost, 1, domain.Viewer{UserID: "u"}, now))
	})
}

func TestRecordViewIfNewConcurrent(t *testing.T) {
	repo := newMemoryViewRepo()
	uc := usecase.NewViewUsecase(repo, time.Hour)
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uc.RecordViewIfNew(context.Background(), domain.ContentJob, 9, domain.Viewer{UserID: "same"}, now)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), repo.counts[9])
}

func TestRecordViewIfNewSwallowsErrors(t *testing.T) {
	repo := newMemoryViewRepo()
	repo.err = errors.New("connection reset")
	uc := usecase.NewViewUsecase(repo, time.Hour)

	assert.NotPanics(t, func() {
		assert.False(t, uc.RecordViewIfNew(context.Background(), domain.ContentJob, 1, domain.Viewer{UserID: "u"}, time.Now()))
	})
}

func TestRecordViewIfNewUnknownContentType(t *testing.T) {
	repo := newMemoryViewRepo()
	uc := usecase.NewViewUsecase(repo, time.Hour)

	assert.False(t, uc.RecordViewIfNew(context.Background(), domain.ContentType("company"), 1, domain.Viewer{UserID: "u"}, time.Now()))
	assert.Empty(t, repo.records)
}
