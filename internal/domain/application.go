package domain

import (
	"context"
	"time"
)

// Application status constants
const (
	ApplicationStatusApplied  = "applied"
	ApplicationStatusReviewed = "reviewed"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// Application represents a job application from a candidate
type Application struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	CandidateID string    `json:"candidate_id"`
	ResumeURL   *string   `json:"resume_url,omitempty"`
	CoverLetter *string   `json:"cover_letter,omitempty"`
	Status      string    `json:"status"` // applied -> reviewed -> accepted / rejected
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined data for list responses
	JobTitle       *string `json:"job_title,omitempty"`
	CandidateEmail *string `json:"candidate_email,omitempty"`
	CandidateTitle *string `json:"candidate_title,omitempty"`
}

type ApplyRequest struct {
	CoverLetter string `json:"cover_letter" binding:"max=5000"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=reviewed accepted rejected"`
}

// Recipient is a user targeted by a notification.
type Recipient struct {
	UserID string
	Email  string
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	// Create returns ErrConflict when the candidate already applied.
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	GetByJobID(ctx context.Context, jobID int64) ([]Application, error)
	GetByUserID(ctx context.Context, userID string) ([]Application, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	// InterestedCandidates returns distinct candidates who applied to another
	// job in category and have not applied to jobID.
	InterestedCandidates(ctx context.Context, jobID int64, category string) ([]Recipient, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	// Candidate operations
	ApplyToJob(ctx context.Context, userID string, jobID int64, coverLetter string) (*Application, error)
	GetMyApplications(ctx context.Context, userID string) ([]Application, error)

	// Recruiter operations
	ListByJobID(ctx context.Context, actor Actor, jobID int64) ([]Application, error)
	GetApplicationDetail(ctx context.Context, actor Actor, applicationID int64) (*Application, error)
	UpdateApplicationStatus(ctx context.Context, actor Actor, applicationID int64, status string) error
	ExportApplications(ctx context.Context, actor Actor, jobID int64, format string) (*ExportFile, error)
}
