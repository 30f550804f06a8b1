package domain

import (
	"context"
	"time"
)

// CV is a résumé in the recruiter-facing repository.
type CV struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Summary     string    `json:"summary"`
	FileKey     string    `json:"-"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedBy  string    `json:"uploaded_by"`
	ViewCount   int64     `json:"view_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// CVListing is a CV as a recruiter sees it in the list. Locked items keep
// their metadata but carry no summary.
type CVListing struct {
	ID        int64     `json:"id"`
	Rank      int       `json:"rank"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Summary   *string   `json:"summary"`
	FileName  string    `json:"file_name"`
	ViewCount int64     `json:"view_count"`
	Locked    bool      `json:"locked"`
	CreatedAt time.Time `json:"created_at"`
}

type CVPage struct {
	Items []CVListing `json:"items"`
	Total int64       `json:"total"`
	Plan  PlanName    `json:"plan"`
	Limit int         `json:"limit"`
	Mode  AccessMode  `json:"mode"`
}

type CVAccess struct {
	CVID       int64    `json:"cv_id"`
	Accessible bool     `json:"accessible"`
	Rank       int      `json:"rank"`
	Plan       PlanName `json:"plan"`
	Limit      int      `json:"limit"`
}

type CVDownload struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	FileName  string    `json:"file_name"`
}

type CVUploadRequest struct {
	Title    string `form:"title" binding:"required,min=3,max=150,no_emoji"`
	Category string `form:"category" binding:"required,max=60"`
	Summary  string `form:"summary" binding:"max=2000"`
}

type CVRepository interface {
	Create(ctx context.Context, cv *CV) error
	GetByID(ctx context.Context, id int64) (*CV, error)
	Delete(ctx context.Context, id int64) error
	// List orders by created_at DESC, id DESC.
	List(ctx context.Context, limit, offset int) ([]CV, int64, error)
	// Rank is the zero-based position of id in the List ordering.
	Rank(ctx context.Context, id int64) (int, error)
}

type CVUsecase interface {
	Upload(ctx context.Context, adminID string, req *CVUploadRequest, filename string, data []byte) (*CV, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, actor Actor, page, pageSize int) (*CVPage, error)
	CheckAccess(ctx context.Context, actor Actor, id int64) (*CVAccess, error)
	Download(ctx context.Context, actor Actor, id int64, viewer Viewer) (*CVDownload, error)
}

// AccessEvaluator decides which ranked items a plan unlocks.
type AccessEvaluator interface {
	Policy(plan PlanName) PlanPolicy
	HasAccess(plan PlanName, rank int) bool
}
