package domain

import (
	"context"
	"time"
)

type CandidateProfile struct {
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Bio       string    `json:"bio"`
	Skills    []string  `json:"skills"`
	Phone     string    `json:"phone"`
	Category  string    `json:"category"`
	ResumeURL *string   `json:"resume_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CandidateProfileRequest struct {
	Title    string   `json:"title" binding:"omitempty,min=3,max=100,no_emoji"`
	Bio      string   `json:"bio" binding:"max=500,no_emoji"`
	Skills   []string `json:"skills" binding:"max=30,dive,min=1,max=50"`
	Phone    string   `json:"phone" binding:"valid_phone"`
	Category string   `json:"category" binding:"max=60"`
}

type CandidateRepository interface {
	GetByUserID(ctx context.Context, userID string) (*CandidateProfile, error)
	Upsert(ctx context.Context, profile *CandidateProfile) error
	UpdateResumeURL(ctx context.Context, userID, url string) error
}

type CandidateUsecase interface {
	GetProfile(ctx context.Context, userID string) (*CandidateProfile, error)
	UpdateProfile(ctx context.Context, userID string, req *CandidateProfileRequest) (*CandidateProfile, error)
	UploadResume(ctx context.Context, userID, filename string, data []byte) (*CandidateProfile, error)
}
