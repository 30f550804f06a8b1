package domain

import (
	"context"
	"time"
)

// ContentType names a viewable table.
type ContentType string

const (
	ContentJob      ContentType = "job"
	ContentBlogPost ContentType = "blog_post"
	ContentCV       ContentType = "cv"
)

func (c ContentType) Valid() bool {
	switch c {
	case ContentJob, ContentBlogPost, ContentCV:
		return true
	}
	return false
}

// ViewRecord is append-only.
type ViewRecord struct {
	ContentType    ContentType
	ContentID      int64
	ViewerID       *string
	NetworkAddress string
	ViewedAt       time.Time
}

// DedupKey groups the records that count as the same viewer.
func (r ViewRecord) DedupKey() string {
	if r.ViewerID != nil {
		return string(r.ContentType) + ":" + itoa(r.ContentID) + ":u:" + *r.ViewerID
	}
	return string(r.ContentType) + ":" + itoa(r.ContentID) + ":a:" + r.NetworkAddress
}

type ViewRepository interface {
	// InsertIfNew stores rec and bumps the content's view_count atomically
	// unless a matching record exists at or after windowStart.
	InsertIfNew(ctx context.Context, rec ViewRecord, windowStart time.Time) (bool, error)
}

type ViewUsecase interface {
	// RecordViewIfNew never fails the caller; errors are logged.
	RecordViewIfNew(ctx context.Context, contentType ContentType, contentID int64, viewer Viewer, now time.Time) bool
}
