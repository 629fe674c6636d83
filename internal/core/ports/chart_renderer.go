package ports

import (
	"context"

	"starmap/internal/core/domain/model/artifact"
	"starmap/internal/core/domain/model/kernel"
	"starmap/internal/core/domain/model/order"
)

// ChartRequest describes the sky to draw.
type ChartRequest struct {
	Coordinates kernel.Coordinates
	Date        order.Date
	Time        order.Time
	// UTCOffset is the whole-hour offset of Date and Time from UTC.
	UTCOffset int
	// Constellation toggles constellation lines.
	Constellation bool
}

// ChartRenderer draws the night sky as seen from a place at a moment.
// Rendering is deterministic: the same request yields the same chart.
type ChartRenderer interface {
	Render(ctx context.Context, req ChartRequest) (artifact.Chart, error)
}
