package queries

import (
	"context"
	"errors"
	"path"
	"strings"

	"starmap/internal/core/domain/model/artifact"
	"starmap/internal/core/ports"
	"starmap/internal/pkg/errs"
	"starmap/internal/pkg/guard"
)

var ErrGetArtifactQueryIsNotConstructed = errors.New(
	"GetArtifactQuery must be created via NewGetArtifactQuery constructor",
)

// GetArtifactQuery fetches one stored poster document by key. Only keys under
// the document prefix are served; claims are internal.
type GetArtifactQuery struct { //nolint:recvcheck //using for validation
	key string

	guard guard.ConstructorGuard
}

// NewGetArtifactQuery rejects keys outside the document prefix and keys that
// are not in clean form, such as "orders/../locks/1.lock".
func NewGetArtifactQuery(key string) (GetArtifactQuery, error) {
	if key == "" {
		return GetArtifactQuery{}, errs.NewValueIsRequiredError("key")
	}
	if path.Clean(key) != key || !strings.HasPrefix(key, artifact.DocumentPrefix) {
		return GetArtifactQuery{}, errs.NewValueIsInvalidError("key")
	}
	return GetArtifactQuery{key: key, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetArtifactQuery) Validate() error {
	return q.guard.Validate(ErrGetArtifactQueryIsNotConstructed)
}

// Key returns the object key.
func (q GetArtifactQuery) Key() string {
	return q.key
}

// GetArtifactQueryHandler serves stored documents.
type GetArtifactQueryHandler struct {
	store ports.ArtifactStore
}

func NewGetArtifactQueryHandler(store ports.ArtifactStore) GetArtifactQueryHandler {
	return GetArtifactQueryHandler{store: store}
}

// Handle returns the object and its body. Returns an error wrapping
// errs.ErrObjectNotFound for unknown keys.
func (h GetArtifactQueryHandler) Handle(ctx context.Context, query GetArtifactQuery) (artifact.Object, []byte, error) {
	if err := query.Validate(); err != nil {
		return artifact.Object{}, nil, err
	}
	return h.store.Get(ctx, query.Key())
}
