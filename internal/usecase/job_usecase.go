package usecase

import (
	"context"
	"strings"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type jobUsecase struct {
	jobRepo            domain.JobRepository
	companyProfileRepo domain.CompanyProfileRepository
	viewUC             domain.ViewUsecase
	publisher          domain.EventPublisher
	validate           *validator.Validate
}

func NewJobUsecase(
	jobRepo domain.JobRepository,
	companyProfileRepo domain.CompanyProfileRepository,
	viewUC domain.ViewUsecase,
	publisher domain.EventPublisher,
	validate *validator.Validate,
) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:            jobRepo,
		companyProfileRepo: companyProfileRepo,
		viewUC:             viewUC,
		publisher:          publisher,
		validate:           validate,
	}
}

func (u *jobUsecase) checkRequest(req *domain.JobRequest) error {
	if err := u.validate.Struct(req); err != nil {
		return apperror.BadRequest("Invalid job data: " + err.Error())
	}
	if req.SalaryMax > 0 && req.SalaryMin > req.SalaryMax {
		return apperror.BadRequest("SalaryMin cannot be greater than SalaryMax")
	}
	return nil
}

func (u *jobUsecase) CreateJob(ctx context.Context, recruiterID string, req *domain.JobRequest) (*domain.Job, error) {
	if err := u.checkRequest(req); err != nil {
		return nil, err
	}

	if _, err := u.companyProfileRepo.GetByUserID(ctx, recruiterID); err != nil {
		return nil, repoError(err, "Company profile not found. Please create a company profile first.")
	}

	now := time.Now()
	job := &domain.Job{
		RecruiterID: recruiterID,
		Status:      domain.JobStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	applyJobRequest(job, req)
	if req.Status != "" {
		job.Status = req.Status
	}

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}

	if job.Status == domain.JobStatusActive {
		u.publishJobCreated(ctx, job.ID)
	}
	return job, nil
}

func applyJobRequest(job *domain.Job, req *domain.JobRequest) {
	job.Title = strings.TrimSpace(req.Title)
	job.Description = strings.TrimSpace(req.Description)
	job.Category = strings.ToLower(strings.TrimSpace(req.Category))
	job.Location = strings.TrimSpace(req.Location)
	job.SalaryMin = req.SalaryMin
	job.SalaryMax = req.SalaryMax
	job.EmploymentType = req.EmploymentType
}

// publishJobCreated hands the fan-out to the queue. A failed publish never
// fails the request that created the job.
func (u *jobUsecase) publishJobCreated(ctx context.Context, jobID int64) {
	if u.publisher == nil {
		return
	}
	if err := u.publisher.Publish(ctx, domain.EventJobCreated, domain.JobCreatedEvent{JobID: jobID}); err != nil {
		logger.Log.Error("Failed to queue job fan-out", "job_id", jobID, "error", err)
	}
}

// loadOwned returns the job if actor owns it or is an admin.
func (u *jobUsecase) loadOwned(ctx context.Context, actor domain.Actor, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Job not found")
	}
	if job.RecruiterID != actor.UserID && !actor.IsAdmin() {
		return nil, apperror.Forbidden("You can only manage your own jobs")
	}
	return job, nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, actor domain.Actor, id int64, req *domain.JobRequest) (*domain.Job, error) {
	if err := u.checkRequest(req); err != nil {
		return nil, err
	}
	job, err := u.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	prev := job.Status
	applyJobRequest(job, req)
	if req.Status != "" {
		job.Status = req.Status
	}
	job.UpdatedAt = time.Now()

	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, repoError(err, "Job not found")
	}

	if publishes(prev, job.Status) {
		u.publishJobCreated(ctx, job.ID)
	}
	return job, nil
}

// publishes reports whether a status change makes a job newly public.
func publishes(prev, next domain.JobStatus) bool {
	return prev == domain.JobStatusDraft && next == domain.JobStatusActive
}

func (u *jobUsecase) ChangeStatus(ctx context.Context, actor domain.Actor, id int64, status domain.JobStatus) (*domain.Job, error) {
	if !status.Valid() {
		return nil, apperror.BadRequest("Invalid job status")
	}
	job, err := u.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if job.Status == status {
		return job, nil
	}

	prev := job.Status
	if err := u.jobRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, repoError(err, "Job not found")
	}
	job.Status = status
	job.UpdatedAt = time.Now()

	if publishes(prev, status) {
		u.publishJobCreated(ctx, job.ID)
	}
	return job, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, actor domain.Actor, id int64) error {
	if _, err := u.loadOwned(ctx, actor, id); err != nil {
		return err
	}
	return repoError(u.jobRepo.Delete(ctx, id), "Job not found")
}

func (u *jobUsecase) GetJob(ctx context.Context, actor domain.Actor, id int64) (*domain.Job, error) {
	return u.loadOwned(ctx, actor, id)
}

func (u *jobUsecase) ListRecruiterJobs(ctx context.Context, recruiterID string, page, pageSize int) ([]domain.Job, int64, error) {
	limit, offset := pageBounds(page, pageSize)
	jobs, total, err := u.jobRepo.Fetch(ctx, domain.JobFilter{RecruiterID: recruiterID, Limit: limit, Offset: offset})
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return jobs, total, nil
}

// ListPublicJobs only ever returns active, unhidden jobs.
func (u *jobUsecase) ListPublicJobs(ctx context.Context, category string, page, pageSize int) ([]domain.Job, int64, error) {
	limit, offset := pageBounds(page, pageSize)
	jobs, total, err := u.jobRepo.Fetch(ctx, domain.JobFilter{
		Category:   strings.ToLower(strings.TrimSpace(category)),
		PublicOnly: true,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return jobs, total, nil
}

func (u *jobUsecase) GetPublicJob(ctx context.Context, id int64, viewer domain.Viewer) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Job not found")
	}
	if !job.IsPublic() {
		return nil, apperror.NotFound("Job not found")
	}

	if u.viewUC.RecordViewIfNew(ctx, domain.ContentJob, job.ID, viewer, time.Now()) {
		job.ViewCount++
	}
	return job, nil
}
