package queries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"starmap/internal/core/domain/model/artifact"
	"starmap/internal/core/ports"
	"starmap/internal/pkg/errs"
)

// GetOrderArtifactsQueryHandler reads order state from the artifact store.
type GetOrderArtifactsQueryHandler struct {
	store   ports.ArtifactStore
	lockTTL time.Duration
	now     func() time.Time
}

// NewGetOrderArtifactsQueryHandler creates the handler. lockTTL is used to
// report whether a claim has expired.
func NewGetOrderArtifactsQueryHandler(store ports.ArtifactStore, lockTTL time.Duration) GetOrderArtifactsQueryHandler {
	return GetOrderArtifactsQueryHandler{store: store, lockTTL: lockTTL, now: time.Now}
}

// Handle lists the order's documents oldest first and decodes its claim.
func (h GetOrderArtifactsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderArtifactsQuery,
) (GetOrderArtifactsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderArtifactsQueryResponse{}, err
	}

	objects, err := h.store.List(ctx, artifact.OrderPrefix(query.OrderID()), 0)
	if err != nil {
		return GetOrderArtifactsQueryResponse{}, err
	}

	resp := GetOrderArtifactsQueryResponse{
		OrderID:   query.OrderID(),
		Completed: len(objects) > 0,
		Documents: make([]DocumentView, 0, len(objects)),
	}
	for _, o := range objects {
		resp.Documents = append(resp.Documents, DocumentView{
			Key:       o.Key,
			URL:       o.URL,
			Size:      o.Size,
			SizeLabel: o.SizeLabel(),
			CreatedAt: o.CreatedAt,
		})
	}

	_, body, err := h.store.Get(ctx, artifact.LockKey(query.OrderID()))
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return resp, nil
	case err != nil:
		return GetOrderArtifactsQueryResponse{}, err
	}

	var lock artifact.Lock
	if err = json.Unmarshal(body, &lock); err != nil {
		return GetOrderArtifactsQueryResponse{}, fmt.Errorf("decode claim of order %d: %w", query.OrderID(), err)
	}
	expiresAt := lock.ExpiresAt(h.lockTTL)
	resp.Claim = &ClaimView{
		Owner:     lock.Owner,
		ClaimedAt: lock.ClaimedAt,
		ExpiresAt: expiresAt,
		Expired:   h.now().After(expiresAt),
	}

	return resp, nil
}
