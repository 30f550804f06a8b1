package usecase

import (
	"context"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/logger"
)

type adminUsecase struct {
	adminRepo domain.AdminRepository
	userRepo  domain.UserRepository
	jobRepo   domain.JobRepository
}

func NewAdminUsecase(adminRepo domain.AdminRepository, userRepo domain.UserRepository, jobRepo domain.JobRepository) domain.AdminUsecase {
	return &adminUsecase{adminRepo: adminRepo, userRepo: userRepo, jobRepo: jobRepo}
}

func (u *adminUsecase) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	stats, err := u.adminRepo.GetStats(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return stats, nil
}

func (u *adminUsecase) ListUsers(ctx context.Context, role string, page, pageSize int) ([]domain.User, int64, error) {
	limit, offset := pageBounds(page, pageSize)
	users, total, err := u.userRepo.List(ctx, role, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return users, total, nil
}

func (u *adminUsecase) UpdateUserRole(ctx context.Context, actorID, userID, role string) error {
	switch role {
	case domain.RoleCandidate, domain.RoleRecruiter, domain.RoleAdmin:
	default:
		return apperror.BadRequest("Invalid role")
	}
	if actorID == userID {
		return apperror.BadRequest("You cannot change your own role")
	}
	if err := u.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return repoError(err, "User not found")
	}
	logger.Log.Info("User role changed", "admin_id", actorID, "user_id", userID, "role", role)
	return nil
}

func (u *adminUsecase) SetUserDisabled(ctx context.Context, actorID, userID string, disabled bool) error {
	if actorID == userID {
		return apperror.BadRequest("You cannot disable your own account")
	}
	if err := u.userRepo.SetDisabled(ctx, userID, disabled); err != nil {
		return repoError(err, "User not found")
	}
	logger.Log.Info("User disabled flag changed", "admin_id", actorID, "user_id", userID, "disabled", disabled)
	return nil
}

func (u *adminUsecase) ListJobs(ctx context.Context, status domain.JobStatus, page, pageSize int) ([]domain.Job, int64, error) {
	if status != "" && !status.Valid() {
		return nil, 0, apperror.BadRequest("Invalid job status")
	}
	limit, offset := pageBounds(page, pageSize)
	jobs, total, err := u.jobRepo.Fetch(ctx, domain.JobFilter{Status: status, Limit: limit, Offset: offset})
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return jobs, total, nil
}

func (u *adminUsecase) SetJobHidden(ctx context.Context, jobID int64, hidden bool) error {
	return repoError(u.jobRepo.SetHidden(ctx, jobID, hidden), "Job not found")
}
