package domain

import (
	"context"
	"time"
)

// ObjectStorage stores uploaded files.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string) (string, time.Time, error)
}
