package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"starmap/internal/core/application/usecases/commands"
	"starmap/internal/core/application/usecases/queries"
	"starmap/internal/core/domain/model/artifact"
	"starmap/internal/core/domain/model/order"
	"starmap/internal/core/domain/services"
	"starmap/internal/core/ports"
	"starmap/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// PreviewFileName is the file name offered for the poster preview.
const PreviewFileName = "test-poster.pdf"

var _ ServerInterface = (*Server)(nil)

type OrderProcessor interface {
	Handle(ctx context.Context, cmd commands.ProcessOrderCommand) (commands.ProcessOrderResult, error)
}

type LockReleaser interface {
	Handle(ctx context.Context, cmd commands.ReleaseLockCommand) error
}

type OrderArtifactsReader interface {
	Handle(ctx context.Context, query queries.GetOrderArtifactsQuery) (queries.GetOrderArtifactsQueryResponse, error)
}

type ArtifactReader interface {
	Handle(ctx context.Context, query queries.GetArtifactQuery) (artifact.Object, []byte, error)
}

type LocationGeocoder interface {
	Handle(ctx context.Context, query queries.GeocodeLocationQuery) (ports.GeocodeResult, error)
}

type ChartPreviewer interface {
	Handle(ctx context.Context, query queries.RenderChartQuery) (artifact.Chart, error)
}

type PosterPreviewer interface {
	Handle(ctx context.Context, query queries.PreviewPosterQuery) (artifact.Document, error)
}

// Handlers are the use cases served over HTTP.
type Handlers struct {
	ProcessOrder   OrderProcessor
	ReleaseLock    LockReleaser
	OrderArtifacts OrderArtifactsReader
	Artifact       ArtifactReader
	Geocode        LocationGeocoder
	RenderChart    ChartPreviewer
	PreviewPoster  PosterPreviewer
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// ProcessShopifyOrder handles POST /api/shopify/order - runs the fulfillment
// pipeline for one webhook delivery.
//
//	@Summary	Process a Shopify order webhook
//	@Tags		orders
//	@Accept		json
//	@Produce	json
//	@Param		X-Shopify-Hmac-Sha256	header		string	true	"base64 HMAC-SHA256 of the body"
//	@Success	200						{object}	WebhookResponse
//	@Failure	400						{object}	WebhookResponse
//	@Failure	401						{object}	WebhookResponse
//	@Failure	500						{object}	WebhookResponse
//	@Router		/api/shopify/order [post]
func (s *Server) ProcessShopifyOrder(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, WebhookResponse{
			Error:   "Could not read request body",
			Details: err.Error(),
		})
	}

	cmd := commands.NewProcessOrderCommand(body, ctx.Request().Header.Get(services.SignatureHeader))

	result, err := s.handlers.ProcessOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(webhookFailure(err))
	}

	return ctx.JSON(http.StatusOK, webhookSuccess(result))
}

func webhookSuccess(result commands.ProcessOrderResult) WebhookResponse {
	switch result.Stage {
	case commands.StageAlreadyDone:
		return WebhookResponse{
			Success: true,
			Message: "Order already processed",
			Status:  string(result.Stage),
			PDFURL:  result.Artifact.URL,
		}
	case commands.StageInProgress:
		return WebhookResponse{
			Success: true,
			Message: "Order is already being processed",
			Status:  string(result.Stage),
		}
	default:
		return WebhookResponse{
			Success: true,
			Message: "Order processed successfully",
			Order: &OrderSummary{
				ID:          result.OrderID,
				Name:        result.OrderName,
				Location:    result.PlaceName,
				Coordinates: result.Coordinates,
			},
			PDFSize:  result.Artifact.SizeLabel(),
			PDFBytes: result.Artifact.Size,
			PDFURL:   result.Artifact.URL,
			Status:   string(result.Stage),
		}
	}
}

// webhookFailure maps a pipeline failure to a status code: authentication
// failures are 401, faults in the delivery itself are 400 and everything
// else is 500.
func webhookFailure(err error) (int, WebhookResponse) {
	var perr *commands.PipelineError
	if !errors.As(err, &perr) {
		return http.StatusInternalServerError, WebhookResponse{
			Error:   "Failed to process order",
			Details: err.Error(),
		}
	}

	resp := WebhookResponse{
		Status:   string(perr.Stage),
		Category: string(perr.Category),
		Details:  perr.Error(),
	}

	switch {
	case perr.Category == commands.AuthenticationFailure:
		resp.Error = "Invalid webhook signature"
		resp.Details = "signature missing or does not match"
		return http.StatusUnauthorized, resp
	case perr.Category == commands.ParseFailure:
		resp.Error = "Could not parse order"
		return http.StatusBadRequest, resp
	case perr.Category == commands.ResolutionFailure && perr.ClientFault:
		resp.Error = "Could not geocode location"
		return http.StatusBadRequest, resp
	case perr.ClientFault:
		resp.Error = "Failed to process order"
		return http.StatusBadRequest, resp
	default:
		resp.Error = "Failed to process order"
		return http.StatusInternalServerError, resp
	}
}

// GetOrderArtifacts handles GET /api/v1/orders/{orderId}/artifacts - lists the
// stored documents and the current claim of an order.
//
//	@Summary	List documents and claim of an order
//	@Tags		operator
//	@Produce	json
//	@Param		orderId	path		int	true	"Shopify order id"
//	@Success	200		{object}	queries.GetOrderArtifactsQueryResponse
//	@Failure	400		{object}	Error
//	@Router		/api/v1/orders/{orderId}/artifacts [get]
func (s *Server) GetOrderArtifacts(ctx echo.Context, orderID int64) error {
	query, err := queries.NewGetOrderArtifactsQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, newError(http.StatusBadRequest, "Invalid order id", err))
	}

	response, err := s.handlers.OrderArtifacts.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError,
			newError(http.StatusInternalServerError, "Failed to read order artifacts", err))
	}

	return ctx.JSON(http.StatusOK, response)
}

// ReleaseLock handles DELETE /api/v1/locks/{orderId} - drops the claim of an
// order so the next delivery processes it again.
//
//	@Summary	Release the claim of an order
//	@Tags		operator
//	@Param		orderId	path	int	true	"Shopify order id"
//	@Success	204
//	@Failure	404	{object}	Error
//	@Router		/api/v1/locks/{orderId} [delete]
func (s *Server) ReleaseLock(ctx echo.Context, orderID int64) error {
	cmd, err := commands.NewReleaseLockCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, newError(http.StatusBadRequest, "Invalid order id", err))
	}

	if err := s.handlers.ReleaseLock.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, newError(http.StatusNotFound, "No claim for this order", nil))
		}
		return ctx.JSON(http.StatusInternalServerError,
			newError(http.StatusInternalServerError, "Failed to release claim", err))
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GeocodeLocation handles GET /api/v1/geocode - resolves a free-text location.
//
//	@Summary	Geocode a location
//	@Tags		preview
//	@Produce	json
//	@Param		location	query		string	false	"free-text location, defaults to Amsterdam"
//	@Success	200			{object}	GeocodeResponse
//	@Failure	404			{object}	Error
//	@Router		/api/v1/geocode [get]
func (s *Server) GeocodeLocation(ctx echo.Context, params GeocodeLocationParams) error {
	location := ""
	if params.Location != nil {
		location = *params.Location
	}

	result, err := s.handlers.Geocode.Handle(ctx.Request().Context(), queries.NewGeocodeLocationQuery(location))
	if err != nil {
		if errors.Is(err, ports.ErrLocationNotFound) {
			return ctx.JSON(http.StatusNotFound, newError(http.StatusNotFound, "Location not found", nil))
		}
		return ctx.JSON(http.StatusBadGateway, newError(http.StatusBadGateway, "Geocoding failed", err))
	}

	return ctx.JSON(http.StatusOK, GeocodeResponse{
		Latitude:    result.Coordinates.Latitude(),
		Longitude:   result.Coordinates.Longitude(),
		Place:       result.PlaceName,
		City:        result.City,
		Coordinates: result.Coordinates.String(),
	})
}

// RenderStarmap handles POST /api/v1/starmap - renders a chart for explicit
// parameters and returns the SVG.
//
//	@Summary	Render a star chart
//	@Tags		preview
//	@Accept		json
//	@Produce	image/svg+xml
//	@Param		request	body	StarmapRequest	true	"chart parameters"
//	@Success	200
//	@Failure	400	{object}	Error
//	@Failure	500	{object}	Error
//	@Router		/api/v1/starmap [post]
func (s *Server) RenderStarmap(ctx echo.Context) error {
	var req StarmapRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, newError(http.StatusBadRequest, "Invalid request body", err))
	}

	constellation := commands.DefaultConstellation
	if req.Constellation != nil {
		constellation = *req.Constellation
	}

	query, err := queries.NewRenderChartQuery(req.Latitude, req.Longitude, req.Date, req.Time, req.UTCOffset, constellation)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, newError(http.StatusBadRequest, "Invalid parameters", err))
	}

	chart, err := s.handlers.RenderChart.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError,
			newError(http.StatusInternalServerError, "Failed to generate starmap", err))
	}

	return ctx.Blob(http.StatusOK, artifact.ContentTypeSVG, []byte(chart.SVG))
}

// PreviewPoster handles GET /api/v1/pdf/preview - renders a sample poster
// around a placeholder chart.
//
//	@Summary	Render a sample poster
//	@Tags		preview
//	@Produce	application/pdf
//	@Param		color	query	string	false	"Taupe, White or Black"
//	@Success	200
//	@Failure	400	{object}	Error
//	@Failure	500	{object}	Error
//	@Router		/api/v1/pdf/preview [get]
func (s *Server) PreviewPoster(ctx echo.Context, params PreviewPosterParams) error {
	color := order.DefaultColor
	if params.Color != nil && *params.Color != "" {
		parsed, err := order.ColorFromString(*params.Color)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, newError(http.StatusBadRequest, "Invalid color", err))
		}
		color = parsed
	}

	query, err := queries.NewPreviewPosterQuery(color)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, newError(http.StatusBadRequest, "Invalid color", err))
	}

	doc, err := s.handlers.PreviewPoster.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError,
			newError(http.StatusInternalServerError, "Failed to generate PDF", err))
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="`+PreviewFileName+`"`)
	return ctx.Blob(http.StatusOK, artifact.ContentTypePDF, doc.PDF)
}

// GetArtifact handles GET /artifacts/* - serves a stored document.
//
//	@Summary	Download a stored document
//	@Tags		orders
//	@Produce	application/pdf
//	@Param		key	path	string	true	"object key below orders/"
//	@Success	200
//	@Failure	400	{object}	Error
//	@Failure	404	{object}	Error
//	@Router		/artifacts/{key} [get]
func (s *Server) GetArtifact(ctx echo.Context, key string) error {
	query, err := queries.NewGetArtifactQuery(key)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, newError(http.StatusBadRequest, "Invalid artifact key", err))
	}

	obj, body, err := s.handlers.Artifact.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, newError(http.StatusNotFound, "Artifact not found", nil))
		}
		return ctx.JSON(http.StatusInternalServerError,
			newError(http.StatusInternalServerError, "Failed to read artifact", err))
	}

	return ctx.Blob(http.StatusOK, obj.ContentType, body)
}

// Health handles GET /health.
//
//	@Summary	Liveness probe
//	@Tags		operator
//	@Produce	plain
//	@Success	200
//	@Router		/health [get]
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

func newError(code int, message string, err error) Error {
	e := Error{Code: code, Message: message}
	if err != nil {
		e.Details = err.Error()
	}
	return e
}
