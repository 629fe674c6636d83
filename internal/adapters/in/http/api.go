package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface lists every route of the service.
type ServerInterface interface {
	// (POST /api/shopify/order)
	ProcessShopifyOrder(ctx echo.Context) error
	// (GET /api/v1/orders/{orderId}/artifacts)
	GetOrderArtifacts(ctx echo.Context, orderID int64) error
	// (DELETE /api/v1/locks/{orderId})
	ReleaseLock(ctx echo.Context, orderID int64) error
	// (GET /api/v1/geocode)
	GeocodeLocation(ctx echo.Context, params GeocodeLocationParams) error
	// (POST /api/v1/starmap)
	RenderStarmap(ctx echo.Context) error
	// (GET /api/v1/pdf/preview)
	PreviewPoster(ctx echo.Context, params PreviewPosterParams) error
	// (GET /artifacts/*)
	GetArtifact(ctx echo.Context, key string) error
	// (GET /health)
	Health(ctx echo.Context) error
}

// GeocodeLocationParams are the query parameters of GeocodeLocation.
type GeocodeLocationParams struct {
	Location *string `form:"location,omitempty" json:"location,omitempty"`
}

// PreviewPosterParams are the query parameters of PreviewPoster.
type PreviewPosterParams struct {
	Color *string `form:"color,omitempty" json:"color,omitempty"`
}

// ServerInterfaceWrapper binds path and query parameters before calling the
// ServerInterface.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ProcessShopifyOrder(ctx echo.Context) error {
	return w.Handler.ProcessShopifyOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrderArtifacts(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrderArtifacts(ctx, orderID)
}

func (w *ServerInterfaceWrapper) ReleaseLock(ctx echo.Context) error {
	orderID, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ReleaseLock(ctx, orderID)
}

func (w *ServerInterfaceWrapper) GeocodeLocation(ctx echo.Context) error {
	var params GeocodeLocationParams
	if err := runtime.BindQueryParameter("form", true, false, "location", ctx.QueryParams(), &params.Location); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter location: "+err.Error())
	}
	return w.Handler.GeocodeLocation(ctx, params)
}

func (w *ServerInterfaceWrapper) RenderStarmap(ctx echo.Context) error {
	return w.Handler.RenderStarmap(ctx)
}

func (w *ServerInterfaceWrapper) PreviewPoster(ctx echo.Context) error {
	var params PreviewPosterParams
	if err := runtime.BindQueryParameter("form", true, false, "color", ctx.QueryParams(), &params.Color); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter color: "+err.Error())
	}
	return w.Handler.PreviewPoster(ctx, params)
}

func (w *ServerInterfaceWrapper) GetArtifact(ctx echo.Context) error {
	return w.Handler.GetArtifact(ctx, ctx.Param("*"))
}

func (w *ServerInterfaceWrapper) Health(ctx echo.Context) error {
	return w.Handler.Health(ctx)
}

func bindOrderID(ctx echo.Context) (int64, error) {
	var orderID int64
	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter orderId: "+err.Error())
	}
	return orderID, nil
}

// RegisterHandlers adds every route of si to router.
func RegisterHandlers(router *echo.Echo, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST("/api/shopify/order", wrapper.ProcessShopifyOrder)
	router.GET("/api/v1/orders/:orderId/artifacts", wrapper.GetOrderArtifacts)
	router.DELETE("/api/v1/locks/:orderId", wrapper.ReleaseLock)
	router.GET("/api/v1/geocode", wrapper.GeocodeLocation)
	router.POST("/api/v1/starmap", wrapper.RenderStarmap)
	router.GET("/api/v1/pdf/preview", wrapper.PreviewPoster)
	router.GET("/artifacts/*", wrapper.GetArtifact)
	router.GET("/health", wrapper.Health)
}
