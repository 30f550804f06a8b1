package postgres

import (
	"context"
	"fmt"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type viewRepo struct {
	db *pgxpool.Pool
}

func NewViewRepository(db *pgxpool.Pool) domain.ViewRepository {
	return &viewRepo{db: db}
}

// counterTables maps content types to the table holding their view_count.
var counterTables = map[domain.ContentType]string{
	domain.ContentJob:      "jobs",
	domain.ContentBlogPost: "blog_posts",
	domain.ContentCV:       "cvs",
}

// InsertIfNew serialises viewers sharing a dedup key on a transaction-scoped
// advisory lock, so the existence check and the insert cannot interleave.
// The counter is bumped in the same transaction with an atomic increment.
func (r *viewRepo) InsertIfNew(ctx context.Context, rec domain.ViewRecord, windowStart time.Time) (bool, error) {
	table, ok := counterTables[rec.ContentType]
	if !ok {
		return false, fmt.Errorf("unknown content type %q", rec.ContentType)
	}

	recorded := false
	err := database.InTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, rec.DedupKey()); err != nil {
			return fmt.Errorf("acquire view lock: %w", err)
		}

		var exists bool
		var err error
		if rec.ViewerID != nil {
			err = tx.QueryRow(ctx, `
				SELECT EXISTS (
					SELECT 1 FROM view_records
					WHERE content_type = $1 AND content_id = $2
					  AND viewer_id = $3 AND viewed_at >= $4
				)`, rec.ContentType, rec.ContentID, *rec.ViewerID, windowStart).Scan(&exists)
		} else {
			err = tx.QueryRow(ctx, `
				SELECT EXISTS (
					SELECT 1 FROM view_records
					WHERE content_type = $1 AND content_id = $2
					  AND viewer_id IS NULL AND network_address = $3 AND viewed_at >= $4
				)`, rec.ContentType, rec.ContentID, rec.NetworkAddress, windowStart).Scan(&exists)
		}
		if err != nil {
			return fmt.Errorf("check recent view: %w", err)
		}
		if exists {
			return nil
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO view_records (content_type, content_id, viewer_id, network_address, viewed_at)
			VALUES ($1, $2, $3, $4, $5)`,
			rec.ContentType, rec.ContentID, rec.ViewerID, rec.NetworkAddress, rec.ViewedAt,
		); err != nil {
			return fmt.Errorf("insert view: %w", err)
		}

		tag, err := tx.Exec(ctx, `UPDATE `+table+` SET view_count = view_count + 1 WHERE id = $1`, rec.ContentID)
		if err != nil {
			return fmt.Errorf("increment %s view_count: %w", table, err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		recorded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return recorded, nil
}
