package domain

import (
	"context"
	"time"
)

type JobStatus string

const (
	JobStatusDraft  JobStatus = "draft"
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusDraft, JobStatusActive, JobStatusClosed:
		return true
	}
	return false
}

type Job struct {
	ID             int64     `json:"id"`
	RecruiterID    string    `json:"recruiter_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Location       string    `json:"location"`
	SalaryMin      float64   `json:"salary_min"`
	SalaryMax      float64   `json:"salary_max"`
	EmploymentType string    `json:"employment_type"`
	Status         JobStatus `json:"status"`
	IsHidden       bool      `json:"is_hidden"`
	ViewCount      int64     `json:"view_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Joined from company_profiles
	CompanyName    *string `json:"company_name,omitempty"`
	CompanyLogoURL *string `json:"company_logo_url,omitempty"`
}

// IsPublic reports whether the job is visible on the public board.
func (j *Job) IsPublic() bool {
	return j.Status == JobStatusActive && !j.IsHidden
}

type JobRequest struct {
	Title          string    `json:"title" binding:"required,min=3,max=150,no_emoji"`
	Description    string    `json:"description" binding:"required,max=10000"`
	Category       string    `json:"category" binding:"required,max=60"`
	Location       string    `json:"location" binding:"max=120"`
	SalaryMin      float64   `json:"salary_min" binding:"gte=0"`
	SalaryMax      float64   `json:"salary_max" binding:"gte=0"`
	EmploymentType string    `json:"employment_type" binding:"omitempty,oneof=full_time part_time contract internship"`
	Status         JobStatus `json:"status" binding:"omitempty,oneof=draft active closed"`
}

type JobStatusRequest struct {
	Status JobStatus `json:"status" binding:"required,oneof=draft active closed"`
}

type JobFilter struct {
	Category    string
	Status      JobStatus
	RecruiterID string
	PublicOnly  bool
	Limit       int
	Offset      int
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	Fetch(ctx context.Context, filter JobFilter) ([]Job, int64, error)
	Update(ctx context.Context, job *Job) error
	UpdateStatus(ctx context.Context, id int64, status JobStatus) error
	SetHidden(ctx context.Context, id int64, hidden bool) error
	Delete(ctx context.Context, id int64) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, recruiterID string, req *JobRequest) (*Job, error)
	UpdateJob(ctx context.Context, actor Actor, id int64, req *JobRequest) (*Job, error)
	ChangeStatus(ctx context.Context, actor Actor, id int64, status JobStatus) (*Job, error)
	DeleteJob(ctx context.Context, actor Actor, id int64) error
	GetJob(ctx context.Context, actor Actor, id int64) (*Job, error)
	ListRecruiterJobs(ctx context.Context, recruiterID string, page, pageSize int) ([]Job, int64, error)
	ListPublicJobs(ctx context.Context, category string, page, pageSize int) ([]Job, int64, error)
	GetPublicJob(ctx context.Context, id int64, viewer Viewer) (*Job, error)
}
