package usecase

import (
	"context"
	"errors"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

func NewAuthUsecase(userRepo domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo}
}

// SyncUser creates the local user on first sign-in. The role is only taken
// on creation; afterwards only admins change it.
func (u *authUsecase) SyncUser(ctx context.Context, id, email, role string) (*domain.User, error) {
	if id == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	existing, err := u.userRepo.GetByID(ctx, id)
	if err == nil {
		if existing.IsDisabled {
			return nil, apperror.Forbidden("Account is disabled")
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	switch role {
	case "":
		role = domain.RoleCandidate
	case domain.RoleCandidate, domain.RoleRecruiter:
	default:
		return nil, apperror.BadRequest("Role must be candidate or recruiter")
	}

	now := time.Now()
	user := &domain.User{ID: id, Email: email, Role: role, CreatedAt: now, UpdatedAt: now}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}

	// a concurrent sync may have won the insert
	return u.GetCurrentUser(ctx, id)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "User not found")
	}
	return user, nil
}
