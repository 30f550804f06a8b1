package postgres

import (
	"context"
	"errors"
	"time"

	"jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type notificationRepo struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) domain.NotificationRepository {
	return &notificationRepo{db: db}
}

const notificationInsert = `
	INSERT INTO notifications (recipient_id, related_item_id, kind, message, is_read, created_at)
	VALUES ($1, $2, $3, $4, false, $5)
	RETURNING id`

// notificationInsertOnce skips rows the job_match unique index already holds.
const notificationInsertOnce = `
	INSERT INTO notifications (recipient_id, related_item_id, kind, message, is_read, created_at)
	VALUES ($1, $2, $3, $4, false, $5)
	ON CONFLICT DO NOTHING
	RETURNING id`

func (r *notificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	n.IsRead = false
	return mapErr(r.db.QueryRow(ctx, notificationInsert, n.RecipientID, n.RelatedItemID, n.Kind, n.Message, n.CreatedAt).Scan(&n.ID))
}

// CreateBatch queues one insert per item and sends them in a single round trip.
// Items that already exist keep ID 0 and are not counted.
func (r *notificationRepo) CreateBatch(ctx context.Context, items []domain.Notification) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	now := time.Now()
	batch := &pgx.Batch{}
	for i := range items {
		if items[i].CreatedAt.IsZero() {
			items[i].CreatedAt = now
		}
		n := items[i]
		batch.Queue(notificationInsertOnce, n.RecipientID, n.RelatedItemID, n.Kind, n.Message, n.CreatedAt)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	created := 0
	for i := range items {
		err := br.QueryRow().Scan(&items[i].ID)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (r *notificationRepo) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, limit, offset int) ([]domain.Notification, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND ($2 = false OR is_read = false)`,
		recipientID, unreadOnly,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, recipient_id, related_item_id, kind, message, is_read, created_at
		FROM notifications
		WHERE recipient_id = $1 AND ($2 = false OR is_read = false)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`, recipientID, unreadOnly, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.RelatedItemID, &n.Kind, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, n)
	}
	return items, total, rows.Err()
}

func (r *notificationRepo) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false`, recipientID).Scan(&count)
	return count, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, id int64, recipientID string) error {
	return affected(r.db.Exec(ctx, `UPDATE notifications SET is_read = true WHERE id = $1 AND recipient_id = $2`, id, recipientID))
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = true WHERE recipient_id = $1 AND is_read = false`, recipientID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *notificationRepo) Delete(ctx context.Context, id int64, recipientID string) error {
	return affected(r.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1 AND recipient_id = $2`, id, recipientID))
}

func (r *notificationRepo) DeleteAll(ctx context.Context, recipientID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE recipient_id = $1`, recipientID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
