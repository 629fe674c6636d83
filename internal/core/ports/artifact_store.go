package ports

import (
	"context"
	"time"

	"starmap/internal/core/domain/model/artifact"
)

// ArtifactStore is durable keyed blob storage with prefix listing. It is the
// only shared state between pipeline invocations, so Create must be atomic.
type ArtifactStore interface {
	// Put stores body under key, replacing any existing object.
	Put(ctx context.Context, key string, body []byte, contentType string) (artifact.Object, error)

	// Create stores body under key only if no object exists there, or if the
	// existing object is older than staleAfter. The check and the write are a
	// single atomic step: of any number of concurrent callers at most one
	// succeeds. Returns an error wrapping errs.ErrObjectAlreadyExists when a
	// fresh object is present. A staleAfter of zero never replaces.
	Create(
		ctx context.Context,
		key string,
		body []byte,
		contentType string,
		staleAfter time.Duration,
	) (artifact.Object, error)

	// List returns up to limit objects whose key starts with prefix, oldest
	// first. A limit of zero or less means no limit.
	List(ctx context.Context, prefix string, limit int) ([]artifact.Object, error)

	// Get returns the object and its body.
	// Returns an error wrapping errs.ErrObjectNotFound when key is absent.
	Get(ctx context.Context, key string) (artifact.Object, []byte, error)

	// Delete removes the object under key.
	// Returns an error wrapping errs.ErrObjectNotFound when key is absent.
	Delete(ctx context.Context, key string) error

	// DeleteExpired removes every object under prefix created before
	// olderThan and reports how many were removed.
	DeleteExpired(ctx context.Context, prefix string, olderThan time.Time) (int64, error)
}
