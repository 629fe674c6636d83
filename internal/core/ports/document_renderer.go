package ports

import (
	"context"

	"starmap/internal/core/domain/model/artifact"
	"starmap/internal/core/domain/model/order"
)

// DocumentRequest is everything printed on the poster.
type DocumentRequest struct {
	Chart    artifact.Chart
	Color    order.Color
	Message  string
	Location string
	Date     order.Date
	Time     order.Time
	Page     artifact.PageSize
}

// DocumentRenderer lays out a poster and produces a print-ready document
// with exactly the requested page size.
type DocumentRenderer interface {
	Render(ctx context.Context, req DocumentRequest) (artifact.Document, error)
}
