package storage

import (
	"context"
	"fmt"
	"time"
)

// Store is the object store surface the API uses.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string) (string, time.Time, error)
}

// Scanner inspects file content before it is stored.
type Scanner interface {
	Scan(ctx context.Context, data []byte) error
}

// ScanningStore refuses to store anything its scanner does not pass.
type ScanningStore struct {
	Store
	scanner Scanner
}

func NewScanningStore(store Store, scanner Scanner) *ScanningStore {
	return &ScanningStore{Store: store, scanner: scanner}
}

func (s *ScanningStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if err := s.scanner.Scan(ctx, data); err != nil {
		return "", fmt.Errorf("scan %s: %w", key, err)
	}
	return s.Store.Put(ctx, key, data, contentType)
}
