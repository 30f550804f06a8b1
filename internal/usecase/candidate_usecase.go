package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/logger"
	"jobboard-backend/pkg/storage"
	"jobboard-backend/pkg/upload"

	"github.com/go-playground/validator/v10"
)

type candidateUsecase struct {
	candidateRepo domain.CandidateRepository
	storage       domain.ObjectStorage
	validate      *validator.Validate
}

func NewCandidateUsecase(candidateRepo domain.CandidateRepository, storage domain.ObjectStorage, validate *validator.Validate) domain.CandidateUsecase {
	return &candidateUsecase{
		candidateRepo: candidateRepo,
		storage:       storage,
		validate:      validate,
	}
}

func (u *candidateUsecase) GetProfile(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	profile, err := u.candidateRepo.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		// not created yet
		return &domain.CandidateProfile{UserID: userID, Skills: []string{}}, nil
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

func (u *candidateUsecase) UpdateProfile(ctx context.Context, userID string, req *domain.CandidateProfileRequest) (*domain.CandidateProfile, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Invalid profile data: " + err.Error())
	}

	profile, err := u.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	// UserID always comes from the token, never the body
	profile.UserID = userID
	profile.Title = strings.TrimSpace(req.Title)
	profile.Bio = strings.TrimSpace(req.Bio)
	profile.Skills = normalizeSkills(req.Skills)
	profile.Phone = strings.TrimSpace(req.Phone)
	profile.Category = strings.ToLower(strings.TrimSpace(req.Category))
	profile.UpdatedAt = time.Now()

	if err := u.candidateRepo.Upsert(ctx, profile); err != nil {
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

// normalizeSkills trims and drops blank and case-insensitive duplicate entries.
func normalizeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func (u *candidateUsecase) UploadResume(ctx context.Context, userID, filename string, data []byte) (*domain.CandidateProfile, error) {
	if u.storage == nil {
		return nil, apperror.Unavailable("File storage is not configured", nil)
	}

	res, err := upload.Validate(upload.KindDocument, filename, data)
	if err != nil {
		return nil, apperror.BadRequest("Invalid resume file: " + err.Error())
	}

	key := storage.ObjectKey("resumes/"+userID, upload.SanitizeFilename(filename), res.Extension, time.Now())
	url, err := u.storage.Put(ctx, key, data, res.ContentType)
	if err != nil {
		return nil, storeError(err, "Failed to store resume")
	}

	profile, err := u.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = time.Now()
		if err := u.candidateRepo.Upsert(ctx, profile); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	if err := u.candidateRepo.UpdateResumeURL(ctx, userID, url); err != nil {
		if delErr := u.storage.Delete(ctx, key); delErr != nil {
			logger.Log.Warn("Failed to clean up orphaned resume", "key", key, "error", delErr)
		}
		return nil, apperror.Internal(err)
	}

	profile.ResumeURL = &url
	return profile, nil
}
