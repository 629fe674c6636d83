// Package queries contains read operations: inspecting stored artifacts and
// claims, and the preview operations that exercise a single collaborator
// without running the pipeline.
// Queries never write to the artifact store.
package queries

import (
	"errors"
	"fmt"
	"time"

	"starmap/internal/pkg/errs"
	"starmap/internal/pkg/guard"
)

var ErrGetOrderArtifactsQueryIsNotConstructed = errors.New(
	"GetOrderArtifactsQuery must be created via NewGetOrderArtifactsQuery constructor",
)

// GetOrderArtifactsQuery asks for everything stored for one order: its poster
// documents and, if present, its processing claim.
//
// Example:
//
//	query, err := queries.NewGetOrderArtifactsQuery(1001)
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
//	for _, doc := range resp.Documents {
//	    fmt.Println(doc.URL, doc.Size)
//	}
type GetOrderArtifactsQuery struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

// NewGetOrderArtifactsQuery validates that orderID is positive.
func NewGetOrderArtifactsQuery(orderID int64) (GetOrderArtifactsQuery, error) {
	if orderID <= 0 {
		return GetOrderArtifactsQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"orderId", fmt.Errorf("%d is not greater than 0", orderID))
	}
	return GetOrderArtifactsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderArtifactsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderArtifactsQueryIsNotConstructed)
}

// OrderID returns the queried order.
func (q GetOrderArtifactsQuery) OrderID() int64 {
	return q.orderID
}

// DocumentView is a stored poster document.
type DocumentView struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Size      int64     `json:"sizeBytes"`
	SizeLabel string    `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// ClaimView is the processing claim of an order.
type ClaimView struct {
	Owner     string    `json:"owner"`
	ClaimedAt time.Time `json:"claimedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	Expired   bool      `json:"expired"`
}

// GetOrderArtifactsQueryResponse is the state of one order in the store.
// Completed is true iff at least one document exists.
type GetOrderArtifactsQueryResponse struct {
	OrderID   int64          `json:"orderId"`
	Completed bool           `json:"completed"`
	Documents []DocumentView `json:"documents"`
	Claim     *ClaimView     `json:"claim,omitempty"`
}
