package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/logger"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	candidateRepo   domain.CandidateRepository
	notificationUC  domain.NotificationUsecase
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	candidateRepo domain.CandidateRepository,
	notificationUC domain.NotificationUsecase,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		candidateRepo:   candidateRepo,
		notificationUC:  notificationUC,
	}
}

// ApplyToJob applies the candidate's current résumé to an active job
func (uc *applicationUsecase) ApplyToJob(ctx context.Context, userID string, jobID int64, coverLetter string) (*domain.Application, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, repoError(err, "Job not found")
	}
	if !job.IsPublic() {
		return nil, apperror.BadRequest("Cannot apply to inactive job")
	}

	profile, err := uc.candidateRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	if profile == nil || profile.ResumeURL == nil {
		return nil, apperror.BadRequest("Upload your resume before applying")
	}

	app := &domain.Application{
		JobID:       jobID,
		CandidateID: userID,
		ResumeURL:   profile.ResumeURL,
		Status:      domain.ApplicationStatusApplied,
	}
	if cl := strings.TrimSpace(coverLetter); cl != "" {
		app.CoverLetter = &cl
	}

	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, apperror.Conflict("You have already applied to this job")
		}
		return nil, apperror.Internal(err)
	}
	return app, nil
}

func (uc *applicationUsecase) GetMyApplications(ctx context.Context, userID string) ([]domain.Application, error) {
	apps, err := uc.applicationRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if apps == nil {
		apps = []domain.Application{}
	}
	return apps, nil
}

// ownedJob checks the actor may see applications for jobID
func (uc *applicationUsecase) ownedJob(ctx context.Context, actor domain.Actor, jobID int64) (*domain.Job, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, repoError(err, "Job not found")
	}
	if job.RecruiterID != actor.UserID && !actor.IsAdmin() {
		return nil, apperror.Forbidden("You can only view applications for your own jobs")
	}
	return job, nil
}

func (uc *applicationUsecase) ListByJobID(ctx context.Context, actor domain.Actor, jobID int64) ([]domain.Application, error) {
	if _, err := uc.ownedJob(ctx, actor, jobID); err != nil {
		return nil, err
	}
	apps, err := uc.applicationRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if apps == nil {
		apps = []domain.Application{}
	}
	return apps, nil
}

func (uc *applicationUsecase) GetApplicationDetail(ctx context.Context, actor domain.Actor, applicationID int64) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, repoError(err, "Application not found")
	}
	if _, err := uc.ownedJob(ctx, actor, app.JobID); err != nil {
		return nil, err
	}
	return app, nil
}

func (uc *applicationUsecase) UpdateApplicationStatus(ctx context.Context, actor domain.Actor, applicationID int64, status string) error {
	switch status {
	case domain.ApplicationStatusReviewed, domain.ApplicationStatusAccepted, domain.ApplicationStatusRejected:
	default:
		return apperror.BadRequest("Invalid application status")
	}

	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return repoError(err, "Application not found")
	}
	job, err := uc.ownedJob(ctx, actor, app.JobID)
	if err != nil {
		return err
	}
	if app.Status == status {
		return nil
	}

	if err := uc.applicationRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		return repoError(err, "Application not found")
	}

	relatedID := job.ID
	note := &domain.Notification{
		RecipientID:   app.CandidateID,
		RelatedItemID: &relatedID,
		Kind:          domain.NotificationApplicationStatus,
		Message:       fmt.Sprintf("Your application for %s is now %s", job.Title, status),
	}
	if err := uc.notificationUC.Notify(ctx, note); err != nil {
		logger.Log.Warn("Failed to notify candidate of status change", "application_id", applicationID, "error", err)
	}
	return nil
}

func (uc *applicationUsecase) ExportApplications(ctx context.Context, actor domain.Actor, jobID int64, format string) (*domain.ExportFile, error) {
	job, err := uc.ownedJob(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}
	apps, err := uc.applicationRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	base := fmt.Sprintf("applications_job_%d", job.ID)
	switch strings.ToLower(format) {
	case "", "xlsx":
		data, err := renderApplicationsXLSX(job, apps)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		return &domain.ExportFile{
			Filename:    base + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	case "csv":
		data, err := renderApplicationsCSV(apps)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		return &domain.ExportFile{Filename: base + ".csv", ContentType: "text/csv", Data: data}, nil
	default:
		return nil, apperror.BadRequest("Unsupported export format, use xlsx or csv")
	}
}
