package usecase

import (
	"context"
	"strings"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/storage"
	"jobboard-backend/pkg/upload"

	"github.com/go-playground/validator/v10"
)

const logoMaxDimension = 512

type companyProfileUsecase struct {
	repo     domain.CompanyProfileRepository
	storage  domain.ObjectStorage
	validate *validator.Validate
}

func NewCompanyProfileUsecase(repo domain.CompanyProfileRepository, storage domain.ObjectStorage, validate *validator.Validate) domain.CompanyProfileUsecase {
	return &companyProfileUsecase{repo: repo, storage: storage, validate: validate}
}

func (u *companyProfileUsecase) GetMyProfile(ctx context.Context, userID string) (*domain.CompanyProfile, error) {
	profile, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, repoError(err, "Company profile not found")
	}
	return profile, nil
}

func (u *companyProfileUsecase) SaveProfile(ctx context.Context, userID string, req *domain.CompanyProfileRequest) (*domain.CompanyProfile, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Invalid company profile: " + err.Error())
	}

	profile := &domain.CompanyProfile{
		UserID:      userID,
		CompanyName: strings.TrimSpace(req.CompanyName),
		Website:     req.Website,
		Industry:    req.Industry,
		Location:    req.Location,
		Description: req.Description,
		UpdatedAt:   time.Now(),
	}
	if err := u.repo.Upsert(ctx, profile); err != nil {
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

// UploadLogo downsizes the image to a JPEG thumbnail before storing it.
func (u *companyProfileUsecase) UploadLogo(ctx context.Context, userID, filename string, data []byte) (*domain.CompanyProfile, error) {
	if u.storage == nil {
		return nil, apperror.Unavailable("File storage is not configured", nil)
	}

	profile, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, repoError(err, "Company profile not found. Please create a company profile first.")
	}

	if _, err := upload.Validate(upload.KindImage, filename, data); err != nil {
		return nil, apperror.BadRequest("Invalid logo: " + err.Error())
	}
	thumb, err := upload.CompressImage(data, logoMaxDimension, 85)
	if err != nil {
		return nil, apperror.BadRequest("Logo could not be decoded")
	}

	key := storage.ObjectKey("logos/"+userID, upload.SanitizeFilename(filename), ".jpg", time.Now())
	url, err := u.storage.Put(ctx, key, thumb, "image/jpeg")
	if err != nil {
		return nil, storeError(err, "Failed to store logo")
	}

	if err := u.repo.UpdateLogo(ctx, userID, url); err != nil {
		return nil, repoError(err, "Company profile not found")
	}
	profile.LogoURL = &url
	return profile, nil
}

func (u *companyProfileUsecase) GetPublicProfile(ctx context.Context, id int64) (*domain.PublicCompanyProfile, error) {
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Company not found")
	}
	return &domain.PublicCompanyProfile{
		ID:          p.ID,
		CompanyName: p.CompanyName,
		Website:     p.Website,
		Industry:    p.Industry,
		Location:    p.Location,
		Description: p.Description,
		LogoURL:     p.LogoURL,
	}, nil
}
