package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/email"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func requireAppError(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code, appErr.Message)
}


// Mock Repositories

type MockJobRepo struct{ mock.Mock }

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) Fetch(ctx context.Context, filter domain.JobFilter) ([]domain.Job, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}
func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) UpdateStatus(ctx context.Context, id int64, status domain.JobStatus) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *MockJobRepo) SetHidden(ctx context.Context, id int64, hidden bool) error {
	return m.Called(ctx, id, hidden).Error(0)
}
func (m *MockJobRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockApplicationRepo struct{ mock.Mock }

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Application, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *MockApplicationRepo) InterestedCandidates(ctx context.Context, jobID int64, category string) ([]domain.Recipient, error) {
	args := m.Called(ctx, jobID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Recipient), args.Error(1)
}

type MockNotificationRepo struct{ mock.Mock }

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}
func (m *MockNotificationRepo) CreateBatch(ctx context.Context, items []domain.Notification) (int, error) {
	args := m.Called(ctx, items)
	return args.Int(0), args.Error(1)
}
func (m *MockNotificationRepo) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit, offset int) ([]domain.Notification, int64, error) {
	args := m.Called(ctx, recipientID, unreadOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int64), args.Error(2)
}
func (m *MockNotificationRepo) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockNotificationRepo) MarkRead(ctx context.Context, id int64, recipientID string) error {
	return m.Called(ctx, id, recipientID).Error(0)
}
func (m *MockNotificationRepo) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockNotificationRepo) Delete(ctx context.Context, id int64, recipientID string) error {
	return m.Called(ctx, id, recipientID).Error(0)
}
func (m *MockNotificationRepo) DeleteAll(ctx context.Context, recipientID string) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

type MockCandidateRepo struct{ mock.Mock }

func (m *MockCandidateRepo) GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateProfile), args.Error(1)
}
func (m *MockCandidateRepo) Upsert(ctx context.Context, profile *domain.CandidateProfile) error {
	return m.Called(ctx, profile).Error(0)
}
func (m *MockCandidateRepo) UpdateResumeURL(ctx context.Context, userID, url string) error {
	return m.Called(ctx, userID, url).Error(0)
}

type MockCompanyProfileRepo struct{ mock.Mock }

func (m *MockCompanyProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.CompanyProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyProfile), args.Error(1)
}
func (m *MockCompanyProfileRepo) GetByID(ctx context.Context, id int64) (*domain.CompanyProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompanyProfile), args.Error(1)
}
func (m *MockCompanyProfileRepo) Upsert(ctx context.Context, profile *domain.CompanyProfile) error {
	return m.Called(ctx, profile).Error(0)
}
func (m *MockCompanyProfileRepo) UpdateLogo(ctx context.Context, userID, url string) error {
	return m.Called(ctx, userID, url).Error(0)
}

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdateRole(ctx context.Context, id string, role string) error {
	return m.Called(ctx, id, role).Error(0)
}
func (m *MockUserRepo) SetDisabled(ctx context.Context, id string, disabled bool) error {
	return m.Called(ctx, id, disabled).Error(0)
}
func (m *MockUserRepo) List(ctx context.Context, role string, limit, offset int) ([]domain.User, int64, error) {
	args := m.Called(ctx, role, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

type MockPlanRepo struct{ mock.Mock }

func (m *MockPlanRepo) GetCurrent(ctx context.Context, userID string) (*domain.Plan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Plan), args.Error(1)
}
func (m *MockPlanRepo) ListExpiring(ctx context.Context, from, to time.Time) ([]domain.ExpiringPlan, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpiringPlan), args.Error(1)
}
func (m *MockPlanRepo) MarkReminded(ctx context.Context, planID int64, at time.Time) error {
	return m.Called(ctx, planID, at).Error(0)
}

type MockPaymentRepo struct{ mock.Mock }

func (m *MockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	return m.Called(ctx, payment).Error(0)
}
func (m *MockPaymentRepo) GetByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) Confirm(ctx context.Context, reference string, now time.Time, duration time.Duration) (*domain.Plan, bool, error) {
	args := m.Called(ctx, reference, now, duration)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Plan), args.Bool(1), args.Error(2)
}
func (m *MockPaymentRepo) MarkFailed(ctx context.Context, reference string) error {
	return m.Called(ctx, reference).Error(0)
}

type MockCVRepo struct{ mock.Mock }

func (m *MockCVRepo) Create(ctx context.Context, cv *domain.CV) error {
	return m.Called(ctx, cv).Error(0)
}
func (m *MockCVRepo) GetByID(ctx context.Context, id int64) (*domain.CV, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CV), args.Error(1)
}
func (m *MockCVRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockCVRepo) List(ctx context.Context, limit, offset int) ([]domain.CV, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.CV), args.Get(1).(int64), args.Error(2)
}
func (m *MockCVRepo) Rank(ctx context.Context, id int64) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type MockBlogRepo struct{ mock.Mock }

func (m *MockBlogRepo) Create(ctx context.Context, post *domain.BlogPost) error {
	return m.Called(ctx, post).Error(0)
}
func (m *MockBlogRepo) Update(ctx context.Context, post *domain.BlogPost) error {
	return m.Called(ctx, post).Error(0)
}
func (m *MockBlogRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockBlogRepo) GetByID(ctx context.Context, id int64) (*domain.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlogPost), args.Error(1)
}
func (m *MockBlogRepo) GetPublishedBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlogPost), args.Error(1)
}
func (m *MockBlogRepo) List(ctx context.Context, publishedOnly bool, limit, offset int) ([]domain.BlogPost, int64, error) {
	args := m.Called(ctx, publishedOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.BlogPost), args.Get(1).(int64), args.Error(2)
}

// Mock collaborators

type MockStorage struct{ mock.Mock }

func (m *MockStorage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}
func (m *MockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
func (m *MockStorage) PresignGet(ctx context.Context, key string) (string, time.Time, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	return m.Called(ctx, routingKey, payload).Error(0)
}

type MockViewUsecase struct{ mock.Mock }

func (m *MockViewUsecase) RecordViewIfNew(ctx context.Context, contentType domain.ContentType, contentID int64, viewer domain.Viewer, now time.Time) bool {
	return m.Called(ctx, contentType, contentID, viewer, now).Bool(0)
}

type MockPlanUsecase struct {
	mock.Mock
	domain.PlanUsecase
}

func (m *MockPlanUsecase) EffectivePlan(ctx context.Context, userID string) domain.PlanName {
	return m.Called(ctx, userID).Get(0).(domain.PlanName)
}

type MockNotificationUsecase struct {
	mock.Mock
	domain.NotificationUsecase
}

func (m *MockNotificationUsecase) Notify(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) Send(ctx context.Context, msg email.Message) error {
	return m.Called(ctx, msg).Error(0)
}
func (m *MockMailer) IsConfigured() bool { return m.Called().Bool(0) }
func (m *MockMailer) Inbox() string      { return m.Called().String(0) }

// memoryViewRepo applies the window match rules in memory under one lock.
type memoryViewRepo struct {
	mu      sync.Mutex
	records []domain.ViewRecord
	counts  map[int64]int64
	err     error
}

func newMemoryViewRepo() *memoryViewRepo {
	return &memoryViewRepo{counts: map[int64]int64{}}
}

func (r *memoryViewRepo) InsertIfNew(_ context.Context, rec domain.ViewRecord, windowStart time.Time) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.records {
		if existing.ContentType != rec.ContentType || existing.ContentID != rec.ContentID {
			continue
		}
		if existing.ViewedAt.Before(windowStart) {
			continue
		}
		if rec.ViewerID != nil {
			if existing.ViewerID != nil && *existing.ViewerID == *rec.ViewerID {
				return false, nil
			}
			continue
		}
		if existing.ViewerID == nil && existing.NetworkAddress == rec.NetworkAddress {
			return false, nil
		}
	}
	r.records = append(r.records, rec)
	r.counts[rec.ContentID]++
	return true, nil
}
