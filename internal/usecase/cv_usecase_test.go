package usecase_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/internal/usecase"
	"jobboard-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cvFixture struct {
	repo    *MockCVRepo
	storage *MockStorage
	planUC  *MockPlanUsecase
	viewUC  *MockViewUsecase
	uc      domain.CVUsecase
}

func newCVFixture() *cvFixture {
	f := &cvFixture{
		repo:    new(MockCVRepo),
		storage: new(MockStorage),
		planUC:  new(MockPlanUsecase),
		viewUC:  new(MockViewUsecase),
	}
	policy := usecase.NewAccessPolicy(usecase.DefaultPlanPolicies(5, 10, 50))
	f.uc = usecase.NewCVUsecase(f.repo, f.storage, f.planUC, policy, f.viewUC, validation.NewForBinding())
	return f
}

func sampleCVs(n int) []domain.CV {
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	out := make([]domain.CV, n)
	for i := range out {
		out[i] = domain.CV{
			ID:        int64(n - i),
			Title:     fmt.Sprintf("CV %d", n-i),
			Summary:   "Experienced engineer",
			FileKey:   fmt.Sprintf("cvs/%d.pdf", n-i),
			CreatedAt: base.Add(-time.Duration(i) * time.Hour),
		}
	}
	return out
}

func TestCVListFreeHidesPastLimit(t *testing.T) {
	ctx := context.Background()
	f := newCVFixture()
	actor := domain.Actor{UserID: "rec-1", Role: domain.RoleRecruiter}
	f.planUC.On("EffectivePlan", ctx, "rec-1").Return(domain.PlanFree)
	f.repo.On("List", ctx, 20, 0).Return(sampleCVs(7), int64(7), nil)

	page, err := f.uc.List(ctx, actor, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanFree, page.Plan)
	assert.Equal(t, domain.AccessModeHide, page.Mode)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, int64(5), page.Total)
	for i, item := range page.Items {
		assert.Equal(t, i, item.Rank)
		assert.False(t, item.Locked)
		require.NotNil(t, item.Summary)
	}
}

func TestCVListStarterBlursPastLimit(t *testing.T) {
	ctx := context.Background()
	f := newCVFixture()
	actor := domain.Actor{UserID: "rec-1", Role: domain.RoleRecruiter}
	f.planUC.On("EffectivePlan", ctx, "rec-1").Return(domain.PlanStarter)
	f.repo.On("List", ctx, 20, 0).Return(sampleCVs(12), int64(12), nil)

	page, err := f.uc.List(ctx, actor, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Items, 12)
	assert.Equal(t, int64(12), page.Total)

	locked := 0
	for _, item := range page.Items {
		if item.Locked {
			locked++
			assert.Nil(t, item.Summary)
			assert.GreaterOrEqual(t, item.Rank, 10)
		}
	}
	assert.Equal(t, 2, locked)
}

func TestCVListSecondPageUsesGlobalRank(t *testing.T) {
	ctx := context.Background()
	f := newCVFixture()
	actor := domain.Actor{UserID: "rec-1", Role: domain.RoleRecruiter}
	f.planUC.On("EffectivePlan", ctx, "rec-1").Return(domain.PlanStarter)
	f.repo.On("List", ctx, 8, 8).Return(sampleCVs(12)[8:], int64(12), nil)

	page, err := f.uc.List(ctx, actor, 2, 8)
	require.NoError(t, err)
	require.Len(t, page.Items, 4)
	assert.Equal(t, 8, page.Items[0].Rank)
	assert.False(t, page.Items[1].Locked)
	assert.True(t, page.Items[2].Locked)
	assert.True(t, page.Items[3].Locked)
}

func TestCVListAdminUnlimited(t *testing.T) {
	ctx := context.Background()
	f := newCVFixture()
	actor := domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
	f.repo.On("List", ctx, 100, 0).Return(sampleCVs(60), int64(60), nil)

	page, err := f.uc.List(ctx, actor, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanEnterprise, page.Plan)
	assert.Len(t, page.Items, 60)
	for _, item := range page.Items {
		assert.False(t, item.Locked)
	}
	f.planUC.AssertNotCalled(t, "EffectivePlan", mock.Anything, mock.Anything)
}

func TestCVDownload(t *testing.T) {
	ctx := context.Background()
	actor := domain.Actor{UserID: "rec-1", Role: domain.RoleRecruiter}
	viewer := domain.Viewer{UserID: "rec-1", Address: "203.0.113.7"}

	t.Run("denied past limit", func(t *testing.T) {
		f := newCVFixture()
		f.repo.On("Rank", ctx, int64(3)).Return(7, nil)
		f.planUC.On("EffectivePlan", ctx, "rec-1").Return(domain.PlanFree)

		_, err := f.uc.Download(ctx, actor, 3, viewer)
		requireAppError(t, err, http.StatusForbidden)
		f.storage.AssertNotCalled(t, "PresignGet", mock.Anything, mock.Anything)
		f.viewUC.AssertNotCalled(t, "RecordViewIfNew", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("allowed presigns and records view", func(t *testing.T) {
		f := newCVFixture()
		expires := time.Now().Add(15 * time.Minute)
		f.repo.On("Rank", ctx, int64(9)).Return(2, nil)
		f.planUC.On("EffectivePlan", ctx, "rec-1").Return(domain.PlanFree)
		f.repo.On("GetByID", ctx, int64(9)).Return(&domain.CV{ID: 9, FileKey: "cvs/9.pdf", FileName: "cv.pdf"}, nil)
		f.storage.On("PresignGet", ctx, "cvs/9.pdf").Return("https://s3.local/cvs/9.pdf?sig", expires, nil)
		f.viewUC.On("RecordViewIfNew", ctx, domain.ContentCV, int64(9), viewer, mock.AnythingOfType("time.Time")).Return(true)

		dl, err := f.uc.Download(ctx, actor, 9, viewer)
		require.NoError(t, err)
		assert.Equal(t, "https://s3.local/cvs/9.pdf?sig", dl.URL)
		assert.Equal(t, "cv.pdf", dl.FileName)
		f.viewUC.AssertExpectations(t)
	})

	t.Run("missing cv", func(t *testing.T) {
		f := newCVFixture()
		f.repo.On("Rank", ctx, int64(404)).Return(0, domain.ErrNotFound)

		_, err := f.uc.Download(ctx, actor, 404, viewer)
		requireAppError(t, err, http.StatusNotFound)
	})
}

func TestCVCheckAccess(t *testing.T) {
	ctx := context.Background()
	f := newCVFixture()
	actor := domain.Actor{UserID: "rec-1", Role: domain.RoleRecruiter}
	f.repo.On("Rank", ctx, int64(1)).Return(49, nil)
	f.planUC.On("EffectivePlan", ctx, "rec-1").Return(domain.PlanProfessional)

	access, err := f.uc.CheckAccess(ctx, actor, 1)
	require.NoError(t, err)
	assert.True(t, access.Accessible)
	assert.Equal(t, 49, access.Rank)
	assert.Equal(t, 50, access.Limit)
}
