package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type applicationFixture struct {
	appRepo       *MockApplicationRepo
	jobRepo       *MockJobRepo
	candidateRepo *MockCandidateRepo
	notifUC       *MockNotificationUsecase
	uc            domain.ApplicationUsecase
}

func newApplicationFixture() *applicationFixture {
	f := &applicationFixture{
		appRepo:       new(MockApplicationRepo),
		jobRepo:       new(MockJobRepo),
		candidateRepo: new(MockCandidateRepo),
		notifUC:       new(MockNotificationUsecase),
	}
	f.uc = usecase.NewApplicationUsecase(f.appRepo, f.jobRepo, f.candidateRepo, f.notifUC)
	return f
}

func TestApplyToJob(t *testing.T) {
	ctx := context.Background()
	resume := "https://cdn.local/resumes/u1/cv.pdf"
	activeJob := &domain.Job{ID: 10, RecruiterID: "rec-1", Title: "Go Developer", Status: domain.JobStatusActive}

	t.Run("success", func(t *testing.T) {
		f := newApplicationFixture()
		f.jobRepo.On("GetByID", ctx, int64(10)).Return(activeJob, nil)
		f.candidateRepo.On("GetByUserID", ctx, "u1").Return(&domain.CandidateProfile{UserID: "u1", ResumeURL: &resume}, nil)
		f.appRepo.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)

		app, err := f.uc.ApplyToJob(ctx, "u1", 10, "  Hello  ")
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusApplied, app.Status)
		require.NotNil(t, app.CoverLetter)
		assert.Equal(t, "Hello", *app.CoverLetter)
		assert.Equal(t, &resume, app.ResumeURL)
	})

	t.Run("duplicate application", func(t *testing.T) {
		f := newApplicationFixture()
		f.jobRepo.On("GetByID", ctx, int64(10)).Return(activeJob, nil)
		f.candidateRepo.On("GetByUserID", ctx, "u1").Return(&domain.CandidateProfile{UserID: "u1", ResumeURL: &resume}, nil)
		f.appRepo.On("Create", ctx, mock.Anything).Return(domain.ErrConflict)

		_, err := f.uc.ApplyToJob(ctx, "u1", 10, "")
		requireAppError(t, err, http.StatusConflict)
	})

	t.Run("inactive job", func(t *testing.T) {
		f := newApplicationFixture()
		f.jobRepo.On("GetByID", ctx, int64(11)).Return(&domain.Job{ID: 11, Status: domain.JobStatusClosed}, nil)

		_, err := f.uc.ApplyToJob(ctx, "u1", 11, "")
		requireAppError(t, err, http.StatusBadRequest)
	})

	t.Run("no resume", func(t *testing.T) {
		f := newApplicationFixture()
		f.jobRepo.On("GetByID", ctx, int64(10)).Return(activeJob, nil)
		f.candidateRepo.On("GetByUserID", ctx, "u2").Return(nil, domain.ErrNotFound)

		_, err := f.uc.ApplyToJob(ctx, "u2", 10, "")
		requireAppError(t, err, http.StatusBadRequest)
	})

	t.Run("missing job", func(t *testing.T) {
		f := newApplicationFixture()
		f.jobRepo.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrNotFound)

		_, err := f.uc.ApplyToJob(ctx, "u1", 99, "")
		requireAppError(t, err, http.StatusNotFound)
	})
}

func TestUpdateApplicationStatus(t *testing.T) {
	ctx := context.Background()
	owner := domain.Actor{UserID: "rec-1", Role: domain.RoleRecruiter}
	job := &domain.Job{ID: 10, RecruiterID: "rec-1", Title: "Go Developer"}

	t.Run("notifies candidate", func(t *testing.T) {
		f := newApplicationFixture()
		f.appRepo.On("GetByID", ctx, int64(5)).Return(&domain.Application{ID: 5, JobID: 10, CandidateID: "u1", Status: domain.ApplicationStatusApplied}, nil)
		f.jobRepo.On("GetByID", ctx, int64(10)).Return(job, nil)
		f.appRepo.On("UpdateStatus", ctx, int64(5), domain.ApplicationStatusAccepted).Return(nil)
		f.notifUC.On("Notify", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.RecipientID == "u1" && n.Kind == domain.NotificationApplicationStatus
		})).Return(errors.New("inbox down"))

		require.NoError(t, f.uc.UpdateApplicationStatus(ctx, owner, 5, domain.ApplicationStatusAccepted))
		f.notifUC.AssertExpectations(t)
	})

	t.Run("other recruiter forbidden", func(t *testing.T) {
		f := newApplicationFixture()
		f.appRepo.On("GetByID", ctx, int64(5)).Return(&domain.Application{ID: 5, JobID: 10, CandidateID: "u1"}, nil)
		f.jobRepo.On("GetByID", ctx, int64(10)).Return(job, nil)

		err := f.uc.UpdateApplicationStatus(ctx, domain.Actor{UserID: "rec-2", Role: domain.RoleRecruiter}, 5, domain.ApplicationStatusRejected)
		requireAppError(t, err, http.StatusForbidden)
		f.appRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid status", func(t *testing.T) {
		f := newApplicationFixture()
		err := f.uc.UpdateApplicationStatus(ctx, owner, 5, "hired")
		requireAppError(t, err, http.StatusBadRequest)
	})
}

func TestExportApplications(t *testing.T) {
	ctx := context.Background()
	owner := domain.Actor{UserID: "rec-1", Role: domain.RoleRecruiter}
	email := "jane@example.com"
	apps := []domain.Application{
		{ID: 1, JobID: 10, CandidateEmail: &email, Status: domain.ApplicationStatusApplied, CreatedAt: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)},
	}

	t.Run("csv", func(t *testing.T) {
		f := newApplicationFixture()
		f.jobRepo.On("GetByID", ctx, int64(10)).Return(&domain.Job{ID: 10, RecruiterID: "rec-1", Title: "Go Developer"}, nil)
		f.appRepo.On("GetByJobID", ctx, int64(10)).Return(apps, nil)

		file, err := f.uc.ExportApplications(ctx, owner, 10, "csv")
		require.NoError(t, err)
		assert.Equal(t, "applications_job_10.csv", file.Filename)
		lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "Application ID,Candidate Email"))
		assert.Contains(t, lines[1], "jane@example.com")
	})

	t.Run("xlsx default", func(t *testing.T) {
		f := newApplicationFixture()
		f.jobRepo.On("GetByID", ctx, int64(10)).Return(&domain.Job{ID: 10, RecruiterID: "rec-1", Title: "Go Developer"}, nil)
		f.appRepo.On("GetByJobID", ctx, int64(10)).Return(apps, nil)

		file, err := f.uc.ExportApplications(ctx, owner, 10, "")
		require.NoError(t, err)
		assert.Equal(t, "applications_job_10.xlsx", file.Filename)
		assert.Equal(t, []byte("PK"), file.Data[:2])
	})

	t.Run("unknown format", func(t *testing.T) {
		f := newApplicationFixture()
		f.jobRepo.On("GetByID", ctx, int64(10)).Return(&domain.Job{ID: 10, RecruiterID: "rec-1"}, nil)
		f.appRepo.On("GetByJobID", ctx, int64(10)).Return(apps, nil)

		_, err := f.uc.ExportApplications(ctx, owner, 10, "pdf")
		requireAppError(t, err, http.StatusBadRequest)
	})
}
