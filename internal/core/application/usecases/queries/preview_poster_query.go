package queries

import (
	"context"
	"errors"
	"fmt"

	"starmap/internal/core/domain/model/artifact"
	"starmap/internal/core/domain/model/order"
	"starmap/internal/core/ports"
	"starmap/internal/pkg/guard"
)

// PlaceholderChartSVG stands in for a rendered sky when previewing the layout.
const PlaceholderChartSVG = `<svg width="200mm" height="200mm" xmlns="http://www.w3.org/2000/svg">
  <rect width="100%" height="100%" fill="#2d3b62"/>
  <circle cx="50%" cy="50%" r="2" fill="white"/>
  <circle cx="45%" cy="45%" r="1.5" fill="white"/>
  <circle cx="55%" cy="48%" r="1" fill="white"/>
  <circle cx="52%" cy="52%" r="1.2" fill="white"/>
  <circle cx="48%" cy="55%" r="0.8" fill="white"/>
  <text x="50%" y="95%" text-anchor="middle" fill="white" font-size="8">Test Starmap</text>
</svg>`

var ErrPreviewPosterQueryIsNotConstructed = errors.New(
	"PreviewPosterQuery must be created via NewPreviewPosterQuery constructor",
)

// PreviewPosterQuery renders a sample poster with a placeholder chart, to
// check the document renderer and the layout without a real order.
type PreviewPosterQuery struct {
	color order.Color

	guard guard.ConstructorGuard
}

// NewPreviewPosterQuery validates the color; pass order.DefaultColor for the
// standard preview.
func NewPreviewPosterQuery(color order.Color) (PreviewPosterQuery, error) {
	if err := color.Validate(); err != nil {
		return PreviewPosterQuery{}, err
	}
	return PreviewPosterQuery{color: color, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q PreviewPosterQuery) Validate() error {
	return q.guard.Validate(ErrPreviewPosterQueryIsNotConstructed)
}

// PreviewPosterQueryHandler renders the sample poster.
type PreviewPosterQueryHandler struct {
	documents ports.DocumentRenderer
}

func NewPreviewPosterQueryHandler(documents ports.DocumentRenderer) PreviewPosterQueryHandler {
	return PreviewPosterQueryHandler{documents: documents}
}

func (h PreviewPosterQueryHandler) Handle(ctx context.Context, query PreviewPosterQuery) (artifact.Document, error) {
	if err := query.Validate(); err != nil {
		return artifact.Document{}, err
	}

	d, tm, err := order.ParseDateTime("08-12-2025 12:00")
	if err != nil {
		return artifact.Document{}, fmt.Errorf("sample date: %w", err)
	}

	return h.documents.Render(ctx, ports.DocumentRequest{
		Chart:    artifact.Chart{SVG: []byte(PlaceholderChartSVG)},
		Color:    query.color,
		Message:  "Ik hou van jou",
		Location: "Heemraadserf 2, 3991 KA Houten",
		Date:     d,
		Time:     tm,
		Page:     artifact.PosterPageSize(),
	})
}
