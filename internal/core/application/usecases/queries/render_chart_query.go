package queries

import (
	"context"
	"errors"

	"starmap/internal/core/domain/model/artifact"
	"starmap/internal/core/domain/model/kernel"
	"starmap/internal/core/domain/model/order"
	"starmap/internal/core/ports"
	"starmap/internal/pkg/errs"
	"starmap/internal/pkg/guard"
)

// UTC offsets accepted by the chart preview, in whole hours.
const (
	MinUTCOffset = -12
	MaxUTCOffset = 14
)

var ErrRenderChartQueryIsNotConstructed = errors.New(
	"RenderChartQuery must be created via NewRenderChartQuery constructor",
)

// RenderChartQuery draws a chart for explicit parameters, bypassing geocoding.
type RenderChartQuery struct { //nolint:recvcheck //using for validation
	request ports.ChartRequest

	guard guard.ConstructorGuard
}

// NewRenderChartQuery validates every parameter and reports all violations
// together. date is DD.MM.YYYY and clock is HH.MM.SS.
func NewRenderChartQuery(
	latitude, longitude float64,
	date, clock string,
	utcOffset int,
	constellation bool,
) (RenderChartQuery, error) {
	coords, coordsErr := kernel.NewCoordinates(latitude, longitude)
	d, dateErr := order.NewDate(date)
	tm, timeErr := order.NewTime(clock)

	var offsetErr error
	if utcOffset < MinUTCOffset || utcOffset > MaxUTCOffset {
		offsetErr = errs.NewValueIsOutOfRangeError("utcOffset", utcOffset, MinUTCOffset, MaxUTCOffset)
	}

	if err := errors.Join(coordsErr, dateErr, timeErr, offsetErr); err != nil {
		return RenderChartQuery{}, err
	}

	return RenderChartQuery{
		request: ports.ChartRequest{
			Coordinates:   coords,
			Date:          d,
			Time:          tm,
			UTCOffset:     utcOffset,
			Constellation: constellation,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q RenderChartQuery) Validate() error {
	return q.guard.Validate(ErrRenderChartQueryIsNotConstructed)
}

// Request returns the chart parameters.
func (q RenderChartQuery) Request() ports.ChartRequest {
	return q.request
}

// RenderChartQueryHandler forwards to the chart renderer.
type RenderChartQueryHandler struct {
	charts ports.ChartRenderer
}

func NewRenderChartQueryHandler(charts ports.ChartRenderer) RenderChartQueryHandler {
	return RenderChartQueryHandler{charts: charts}
}

func (h RenderChartQueryHandler) Handle(ctx context.Context, query RenderChartQuery) (artifact.Chart, error) {
	if err := query.Validate(); err != nil {
		return artifact.Chart{}, err
	}
	return h.charts.Render(ctx, query.Request())
}
