package usecase_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"jobboard-backend/internal/domain"
	"jobboard-backend/internal/usecase"
	"jobboard-backend/pkg/upload"
	"jobboard-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateCandidateProfile(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(repo, nil, validation.NewForBinding())

	repo.On("GetByUserID", ctx, "u1").Return(nil, domain.ErrNotFound)
	repo.On("Upsert", ctx, mock.AnythingOfType("*domain.CandidateProfile")).Return(nil)

	profile, err := uc.UpdateProfile(ctx, "u1", &domain.CandidateProfileRequest{
		Title:    "Backend Engineer",
		Skills:   []string{"Go", " go ", "PostgreSQL "},
		Category: " Engineering ",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.UserID)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, profile.Skills)
	assert.Equal(t, "engineering", profile.Category)
}

func TestUploadResumeWithoutStorage(t *testing.T) {
	uc := usecase.NewCandidateUsecase(new(MockCandidateRepo), nil, validation.NewForBinding())
	_, err := uc.UploadResume(context.Background(), "u1", "cv.pdf", []byte("%PDF-1.4"))
	requireAppError(t, err, http.StatusServiceUnavailable)
}

func TestUploadResumeRejectedByScanner(t *testing.T) {
	ctx := context.Background()
	store := new(MockStorage)
	uc := usecase.NewCandidateUsecase(new(MockCandidateRepo), store, validation.NewForBinding())

	pdf := []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF")
	store.On("Put", ctx, mock.AnythingOfType("string"), pdf, "application/pdf").
		Return("", fmt.Errorf("scan resumes/u1/x.pdf: %w", upload.ErrInfected)).Once()

	_, err := uc.UploadResume(ctx, "u1", "cv.pdf", pdf)
	requireAppError(t, err, http.StatusBadRequest)
	store.AssertExpectations(t)
}
