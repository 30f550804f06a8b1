package domain

import "context"

// AdminStats contains dashboard statistics
type AdminStats struct {
	TotalUsers        int64            `json:"totalUsers"`
	UsersByRole       map[string]int64 `json:"usersByRole"`
	TotalJobs         int64            `json:"totalJobs"`
	ActiveJobs        int64            `json:"activeJobs"`
	TotalApplications int64            `json:"totalApplications"`
	TotalCVs          int64            `json:"totalCvs"`
	PublishedPosts    int64            `json:"publishedPosts"`
	ActivePlans       int64            `json:"activePlans"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=candidate recruiter admin"`
}

type SetDisabledRequest struct {
	Disabled bool `json:"disabled"`
}

type SetHiddenRequest struct {
	Hidden bool `json:"hidden"`
}

type AdminRepository interface {
	GetStats(ctx context.Context) (*AdminStats, error)
}

type AdminUsecase interface {
	GetStats(ctx context.Context) (*AdminStats, error)
	ListUsers(ctx context.Context, role string, page, pageSize int) ([]User, int64, error)
	UpdateUserRole(ctx context.Context, actorID, userID, role string) error
	SetUserDisabled(ctx context.Context, actorID, userID string, disabled bool) error
	ListJobs(ctx context.Context, status JobStatus, page, pageSize int) ([]Job, int64, error)
	SetJobHidden(ctx context.Context, jobID int64, hidden bool) error
}
