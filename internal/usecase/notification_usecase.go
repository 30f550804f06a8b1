package usecase

import (
	"context"
	"errors"
	"fmt"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/email"
	"jobboard-backend/pkg/logger"
)

type notificationUsecase struct {
	notificationRepo domain.NotificationRepository
	jobRepo          domain.JobRepository
	applicationRepo  domain.ApplicationRepository
	mailer           email.Sender
	frontendURL      string
}

// NewNotificationUsecase wires the inbox and job fan-out. mailer may be nil,
// in which case fan-out only writes in-app notifications.
func NewNotificationUsecase(
	notificationRepo domain.NotificationRepository,
	jobRepo domain.JobRepository,
	applicationRepo domain.ApplicationRepository,
	mailer email.Sender,
	frontendURL string,
) domain.NotificationUsecase {
	return &notificationUsecase{
		notificationRepo: notificationRepo,
		jobRepo:          jobRepo,
		applicationRepo:  applicationRepo,
		mailer:           mailer,
		frontendURL:      frontendURL,
	}
}

func (u *notificationUsecase) NotifyInterestedUsers(ctx context.Context, jobID int64) (int, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("load job %d: %w", jobID, err)
	}
	if !job.IsPublic() {
		return 0, nil
	}

	candidates, err := u.applicationRepo.InterestedCandidates(ctx, job.ID, job.Category)
	if err != nil {
		return 0, fmt.Errorf("find recipients for job %d: %w", jobID, err)
	}

	seen := make(map[string]bool, len(candidates))
	recipients := make([]domain.Recipient, 0, len(candidates))
	items := make([]domain.Notification, 0, len(candidates))
	message := fmt.Sprintf("New %s job posted: %s", job.Category, job.Title)
	for _, c := range candidates {
		if c.UserID == "" || seen[c.UserID] {
			continue
		}
		seen[c.UserID] = true
		recipients = append(recipients, c)
		relatedID := job.ID
		items = append(items, domain.Notification{
			RecipientID:   c.UserID,
			RelatedItemID: &relatedID,
			Kind:          domain.NotificationJobMatch,
			Message:       message,
		})
	}
	if len(items) == 0 {
		return 0, nil
	}

	created, err := u.notificationRepo.CreateBatch(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("store notifications for job %d: %w", jobID, err)
	}

	// Rows left with ID 0 were stored by an earlier delivery of this event.
	fresh := recipients[:0]
	for i := range items {
		if items[i].ID != 0 {
			fresh = append(fresh, recipients[i])
		}
	}
	u.emailRecipients(ctx, job, fresh)

	logger.Log.Info("Job fan-out completed", "job_id", job.ID, "category", job.Category, "recipients", created)
	return created, nil
}

func (u *notificationUsecase) emailRecipients(ctx context.Context, job *domain.Job, recipients []domain.Recipient) {
	if u.mailer == nil {
		return
	}
	data := email.JobMatchEmailData{
		JobTitle: job.Title,
		Category: job.Category,
		Location: job.Location,
		JobURL:   fmt.Sprintf("%s/jobs/%d", u.frontendURL, job.ID),
	}
	for _, r := range recipients {
		if r.Email == "" {
			continue
		}
		msg, err := email.JobMatchMessage(r.Email, data)
		if err == nil {
			err = u.mailer.Send(ctx, msg)
		}
		if err != nil {
			logger.Log.Warn("Job match email failed", "job_id", job.ID, "user_id", r.UserID, "error", err)
		}
	}
}

func (u *notificationUsecase) Notify(ctx context.Context, n *domain.Notification) error {
	if n.RecipientID == "" || n.Message == "" {
		return fmt.Errorf("notification needs a recipient and a message")
	}
	return u.notificationRepo.Create(ctx, n)
}

func (u *notificationUsecase) List(ctx context.Context, recipientID string, unreadOnly bool, page, pageSize int) ([]domain.Notification, int64, error) {
	limit, offset := pageBounds(page, pageSize)
	items, total, err := u.notificationRepo.ListByRecipient(ctx, recipientID, unreadOnly, limit, offset)
	if err != nil {
		return nil, 0, repoError(err, "Notifications not found")
	}
	if items == nil {
		items = []domain.Notification{}
	}
	return items, total, nil
}

func (u *notificationUsecase) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	count, err := u.notificationRepo.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, repoError(err, "Notifications not found")
	}
	return count, nil
}

func (u *notificationUsecase) MarkRead(ctx context.Context, recipientID string, id int64) error {
	return repoError(u.notificationRepo.MarkRead(ctx, id, recipientID), "Notification not found")
}

func (u *notificationUsecase) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	n, err := u.notificationRepo.MarkAllRead(ctx, recipientID)
	if err != nil {
		return 0, repoError(err, "Notifications not found")
	}
	return n, nil
}

func (u *notificationUsecase) Delete(ctx context.Context, recipientID string, id int64) error {
	return repoError(u.notificationRepo.Delete(ctx, id, recipientID), "Notification not found")
}

func (u *notificationUsecase) DeleteAll(ctx context.Context, recipientID string) (int64, error) {
	n, err := u.notificationRepo.DeleteAll(ctx, recipientID)
	if err != nil {
		return 0, repoError(err, "Notifications not found")
	}
	return n, nil
}
