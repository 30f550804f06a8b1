package domain

import (
	"context"
	"time"
)

type NotificationKind string

const (
	NotificationJobMatch          NotificationKind = "job_match"
	NotificationPlanExpiring      NotificationKind = "plan_expiring"
	NotificationApplicationStatus NotificationKind = "application_status"
)

type Notification struct {
	ID            int64            `json:"id"`
	RecipientID   string           `json:"recipient_id"`
	RelatedItemID *int64           `json:"related_item_id"`
	Kind          NotificationKind `json:"kind"`
	Message       string           `json:"message"`
	IsRead        bool             `json:"is_read"`
	CreatedAt     time.Time        `json:"created_at"`
}

type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	CreateBatch(ctx context.Context, items []Notification) (int, error)
	ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit, offset int) ([]Notification, int64, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	MarkRead(ctx context.Context, id int64, recipientID string) error
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
	Delete(ctx context.Context, id int64, recipientID string) error
	DeleteAll(ctx context.Context, recipientID string) (int64, error)
}

type NotificationUsecase interface {
	// NotifyInterestedUsers fans a newly active job out to candidates who
	// applied in the same category. Inactive jobs notify nobody.
	NotifyInterestedUsers(ctx context.Context, jobID int64) (int, error)
	Notify(ctx context.Context, n *Notification) error

	List(ctx context.Context, recipientID string, unreadOnly bool, page, pageSize int) ([]Notification, int64, error)
	UnreadCount(ctx context.Context, recipientID string) (int64, error)
	MarkRead(ctx context.Context, recipientID string, id int64) error
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
	Delete(ctx context.Context, recipientID string, id int64) error
	DeleteAll(ctx context.Context, recipientID string) (int64, error)
}
