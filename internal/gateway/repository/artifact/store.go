// Package artifact exports rendered plan documents to object storage.
// The store is optional; when no endpoint is configured, exports are
// served from the in-memory session store only.
package artifact

import (
	"context"
	"errors"
)

// Store defines operations for exported plan documents.
type Store interface {
	Put(ctx context.Context, planID, filename string, content []byte) error
	Get(ctx context.Context, planID, filename string) ([]byte, error)
	GetURL(ctx context.Context, planID, filename string) (string, error)
}

var ErrNotFound = errors.New("artifact not found")
