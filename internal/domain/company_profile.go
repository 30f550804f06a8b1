package domain

import (
	"context"
	"time"
)

// CompanyProfile represents a recruiter's company profile
type CompanyProfile struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	CompanyName string    `json:"company_name"`
	Website     *string   `json:"website"`
	Industry    *string   `json:"industry"`
	Location    *string   `json:"location"`
	Description *string   `json:"description"`
	LogoURL     *string   `json:"logo_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PublicCompanyProfile is what anonymous visitors see
type PublicCompanyProfile struct {
	ID          int64   `json:"id"`
	CompanyName string  `json:"company_name"`
	Website     *string `json:"website,omitempty"`
	Industry    *string `json:"industry,omitempty"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
}

type CompanyProfileRequest struct {
	CompanyName string  `json:"company_name" binding:"required,min=2,max=120,valid_name"`
	Website     *string `json:"website" binding:"omitempty,url"`
	Industry    *string `json:"industry" binding:"omitempty,max=80"`
	Location    *string `json:"location" binding:"omitempty,max=120"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

type CompanyProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*CompanyProfile, error)
	GetByID(ctx context.Context, id int64) (*CompanyProfile, error)
	Upsert(ctx context.Context, profile *CompanyProfile) error
	UpdateLogo(ctx context.Context, userID, url string) error
}

type CompanyProfileUsecase interface {
	GetMyProfile(ctx context.Context, userID string) (*CompanyProfile, error)
	SaveProfile(ctx context.Context, userID string, req *CompanyProfileRequest) (*CompanyProfile, error)
	UploadLogo(ctx context.Context, userID, filename string, data []byte) (*CompanyProfile, error)
	GetPublicProfile(ctx context.Context, id int64) (*PublicCompanyProfile, error)
}
