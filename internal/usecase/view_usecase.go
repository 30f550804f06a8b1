package usecase

import (
	"context"
	"time"

	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/logger"
	"jobboard-backend/pkg/netutil"
)

type viewUsecase struct {
	viewRepo domain.ViewRepository
	window   time.Duration
}

func NewViewUsecase(viewRepo domain.ViewRepository, window time.Duration) domain.ViewUsecase {
	if window <= 0 {
		window = time.Hour
	}
	return &viewUsecase{viewRepo: viewRepo, window: window}
}

func (u *viewUsecase) RecordViewIfNew(ctx context.Context, contentType domain.ContentType, contentID int64, viewer domain.Viewer, now time.Time) bool {
	if !contentType.Valid() {
		logger.Log.Warn("View skipped for unknown content type", "content_type", contentType, "content_id", contentID)
		return false
	}

	rec := domain.ViewRecord{
		ContentType:    contentType,
		ContentID:      contentID,
		NetworkAddress: netutil.NormalizeIP(viewer.Address),
		ViewedAt:       now,
	}
	if viewer.UserID != "" {
		uid := viewer.UserID
		rec.ViewerID = &uid
	}

	recorded, err := u.viewRepo.InsertIfNew(ctx, rec, now.Add(-u.window))
	if err != nil {
		logger.Log.Error("Failed to record view", "content_type", contentType, "content_id", contentID, "error", err)
		return false
	}
	return recorded
}
