package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"jobboard-backend/internal/domain"
	"jobboard-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSyncUser(t *testing.T) {
	ctx := context.Background()

	t.Run("creates candidate by default", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(repo)
		repo.On("GetByID", ctx, "u1").Return(nil, domain.ErrNotFound).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID == "u1" && u.Role == domain.RoleCandidate
		})).Return(nil)
		repo.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1", Role: domain.RoleCandidate}, nil).Once()

		user, err := uc.SyncUser(ctx, "u1", "u1@example.com", "")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleCandidate, user.Role)
		repo.AssertExpectations(t)
	})

	t.Run("existing user keeps role", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(repo)
		repo.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1", Role: domain.RoleRecruiter}, nil)

		user, err := uc.SyncUser(ctx, "u1", "u1@example.com", domain.RoleCandidate)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleRecruiter, user.Role)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("admin role cannot be self assigned", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(repo)
		repo.On("GetByID", ctx, "u1").Return(nil, domain.ErrNotFound)

		_, err := uc.SyncUser(ctx, "u1", "u1@example.com", domain.RoleAdmin)
		requireAppError(t, err, http.StatusBadRequest)
	})

	t.Run("disabled user", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(repo)
		repo.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1", IsDisabled: true}, nil)

		_, err := uc.SyncUser(ctx, "u1", "", "")
		requireAppError(t, err, http.StatusForbidden)
	})

	t.Run("missing subject", func(t *testing.T) {
		_, err := usecase.NewAuthUsecase(new(MockUserRepo)).SyncUser(ctx, "", "", "")
		requireAppError(t, err, http.StatusUnauthorized)
	})
}

func TestAdminSelfProtection(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepo)
	uc := usecase.NewAdminUsecase(nil, userRepo, new(MockJobRepo))

	requireAppError(t, uc.UpdateUserRole(ctx, "admin-1", "admin-1", domain.RoleCandidate), http.StatusBadRequest)
	requireAppError(t, uc.SetUserDisabled(ctx, "admin-1", "admin-1", true), http.StatusBadRequest)

	userRepo.On("SetDisabled", ctx, "u2", true).Return(nil)
	require.NoError(t, uc.SetUserDisabled(ctx, "admin-1", "u2", true))

	userRepo.On("UpdateRole", ctx, "missing", domain.RoleRecruiter).Return(domain.ErrNotFound)
	requireAppError(t, uc.UpdateUserRole(ctx, "admin-1", "missing", domain.RoleRecruiter), http.StatusNotFound)
}
