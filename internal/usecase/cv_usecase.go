package usecase

import (
	"context"
	"strings"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/logger"
	"jobboard-backend/pkg/storage"
	"jobboard-backend/pkg/upload"

	"github.com/go-playground/validator/v10"
)

type cvUsecase struct {
	cvRepo   domain.CVRepository
	storage  domain.ObjectStorage
	planUC   domain.PlanUsecase
	policy   domain.AccessEvaluator
	viewUC   domain.ViewUsecase
	validate *validator.Validate
}

func NewCVUsecase(
	cvRepo domain.CVRepository,
	storage domain.ObjectStorage,
	planUC domain.PlanUsecase,
	policy domain.AccessEvaluator,
	viewUC domain.ViewUsecase,
	validate *validator.Validate,
) domain.CVUsecase {
	return &cvUsecase{
		cvRepo:   cvRepo,
		storage:  storage,
		planUC:   planUC,
		policy:   policy,
		viewUC:   viewUC,
		validate: validate,
	}
}

// planFor resolves the caller's effective plan. Admins see everything.
func (u *cvUsecase) planFor(ctx context.Context, actor domain.Actor) domain.PlanName {
	if actor.IsAdmin() {
		return domain.PlanEnterprise
	}
	return u.planUC.EffectivePlan(ctx, actor.UserID)
}

func (u *cvUsecase) Upload(ctx context.Context, adminID string, req *domain.CVUploadRequest, filename string, data []byte) (*domain.CV, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Invalid CV data: " + err.Error())
	}
	if u.storage == nil {
		return nil, apperror.Unavailable("File storage is not configured", nil)
	}

	res, err := upload.Validate(upload.KindDocument, filename, data)
	if err != nil {
		return nil, apperror.BadRequest("Invalid CV file: " + err.Error())
	}

	now := time.Now()
	name := upload.SanitizeFilename(filename)
	key := storage.ObjectKey("cvs", name, res.Extension, now)
	if _, err := u.storage.Put(ctx, key, data, res.ContentType); err != nil {
		return nil, storeError(err, "Failed to store CV")
	}

	cv := &domain.CV{
		Title:       strings.TrimSpace(req.Title),
		Category:    strings.ToLower(strings.TrimSpace(req.Category)),
		Summary:     strings.TrimSpace(req.Summary),
		FileKey:     key,
		FileName:    name + res.Extension,
		ContentType: res.ContentType,
		SizeBytes:   int64(len(data)),
		UploadedBy:  adminID,
		CreatedAt:   now,
	}
	if err := u.cvRepo.Create(ctx, cv); err != nil {
		if delErr := u.storage.Delete(ctx, key); delErr != nil {
			logger.Log.Warn("Failed to clean up orphaned CV file", "key", key, "error", delErr)
		}
		return nil, apperror.Internal(err)
	}
	return cv, nil
}

func (u *cvUsecase) Delete(ctx context.Context, id int64) error {
	cv, err := u.cvRepo.GetByID(ctx, id)
	if err != nil {
		return repoError(err, "CV not found")
	}
	if err := u.cvRepo.Delete(ctx, id); err != nil {
		return repoError(err, "CV not found")
	}
	if u.storage != nil {
		if err := u.storage.Delete(ctx, cv.FileKey); err != nil {
			logger.Log.Warn("Failed to delete CV file", "cv_id", id, "key", cv.FileKey, "error", err)
		}
	}
	return nil
}

// List pages through the repository ranking each item in the full
// newest-first ordering. Items past the plan limit are dropped (hide) or
// returned locked without their summary (blur).
func (u *cvUsecase) List(ctx context.Context, actor domain.Actor, page, pageSize int) (*domain.CVPage, error) {
	plan := u.planFor(ctx, actor)
	policy := u.policy.Policy(plan)
	limit, offset := pageBounds(page, pageSize)

	cvs, total, err := u.cvRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	items := make([]domain.CVListing, 0, len(cvs))
	for i, cv := range cvs {
		rank := offset + i
		listing := domain.CVListing{
			ID:        cv.ID,
			Rank:      rank,
			Title:     cv.Title,
			Category:  cv.Category,
			FileName:  cv.FileName,
			ViewCount: cv.ViewCount,
			CreatedAt: cv.CreatedAt,
		}
		if u.policy.HasAccess(plan, rank) {
			summary := cv.Summary
			listing.Summary = &summary
		} else if policy.Mode == domain.AccessModeHide {
			continue
		} else {
			listing.Locked = true
		}
		items = append(items, listing)
	}

	if policy.Mode == domain.AccessModeHide && !policy.IsUnlimited() && total > int64(policy.Limit) {
		total = int64(max(policy.Limit, 0))
	}

	return &domain.CVPage{
		Items: items,
		Total: total,
		Plan:  plan,
		Limit: policy.Limit,
		Mode:  policy.Mode,
	}, nil
}

func (u *cvUsecase) CheckAccess(ctx context.Context, actor domain.Actor, id int64) (*domain.CVAccess, error) {
	rank, err := u.cvRepo.Rank(ctx, id)
	if err != nil {
		return nil, repoError(err, "CV not found")
	}
	plan := u.planFor(ctx, actor)
	return &domain.CVAccess{
		CVID:       id,
		Accessible: u.policy.HasAccess(plan, rank),
		Rank:       rank,
		Plan:       plan,
		Limit:      u.policy.Policy(plan).Limit,
	}, nil
}

func (u *cvUsecase) Download(ctx context.Context, actor domain.Actor, id int64, viewer domain.Viewer) (*domain.CVDownload, error) {
	access, err := u.CheckAccess(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !access.Accessible {
		return nil, apperror.Forbidden("Upgrade your plan to access this CV")
	}
	if u.storage == nil {
		return nil, apperror.Unavailable("File storage is not configured", nil)
	}

	cv, err := u.cvRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "CV not found")
	}

	url, expiresAt, err := u.storage.PresignGet(ctx, cv.FileKey)
	if err != nil {
		return nil, apperror.Unavailable("Failed to prepare download", err)
	}

	u.viewUC.RecordViewIfNew(ctx, domain.ContentCV, cv.ID, viewer, time.Now())

	return &domain.CVDownload{URL: url, ExpiresAt: expiresAt, FileName: cv.FileName}, nil
}
