package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	starmaphttp "starmap/internal/adapters/in/http"
	"starmap/internal/core/application/usecases/commands"
	"starmap/internal/core/application/usecases/queries"
	"starmap/internal/core/domain/model/artifact"
	"starmap/internal/core/domain/model/kernel"
	"starmap/internal/core/domain/services"
	"starmap/internal/core/ports"
	"starmap/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderProcessor struct{ mock.Mock }

func (m *MockOrderProcessor) Handle(ctx context.Context, cmd commands.ProcessOrderCommand) (commands.ProcessOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.ProcessOrderResult), args.Error(1)
}

type MockLockReleaser struct{ mock.Mock }

func (m *MockLockReleaser) Handle(ctx context.Context, cmd commands.ReleaseLockCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockOrderArtifactsReader struct{ mock.Mock }

func (m *MockOrderArtifactsReader) Handle(
	ctx context.Context,
	query queries.GetOrderArtifactsQuery,
) (queries.GetOrderArtifactsQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderArtifactsQueryResponse), args.Error(1)
}

type MockArtifactReader struct{ mock.Mock }

func (m *MockArtifactReader) Handle(ctx context.Context, query queries.GetArtifactQuery) (artifact.Object, []byte, error) {
	args := m.Called(ctx, query)
	body, _ := args.Get(1).([]byte)
	return args.Get(0).(artifact.Object), body, args.Error(2)
}

type MockLocationGeocoder struct{ mock.Mock }

func (m *MockLocationGeocoder) Handle(ctx context.Context, query queries.GeocodeLocationQuery) (ports.GeocodeResult, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(ports.GeocodeResult), args.Error(1)
}

type MockChartPreviewer struct{ mock.Mock }

func (m *MockChartPreviewer) Handle(ctx context.Context, query queries.RenderChartQuery) (artifact.Chart, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(artifact.Chart), args.Error(1)
}

type MockPosterPreviewer struct{ mock.Mock }

func (m *MockPosterPreviewer) Handle(ctx context.Context, query queries.PreviewPosterQuery) (artifact.Document, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(artifact.Document), args.Error(1)
}

type fixture struct {
	processor *MockOrderProcessor
	releaser  *MockLockReleaser
	artifacts *MockOrderArtifactsReader
	artifact  *MockArtifactReader
	geocoder  *MockLocationGeocoder
	charts    *MockChartPreviewer
	posters   *MockPosterPreviewer
	router    *echo.Echo
}

func newFixture() *fixture {
	f := &fixture{
		processor: &MockOrderProcessor{},
		releaser:  &MockLockReleaser{},
		artifacts: &MockOrderArtifactsReader{},
		artifact:  &MockArtifactReader{},
		geocoder:  &MockLocationGeocoder{},
		charts:    &MockChartPreviewer{},
		posters:   &MockPosterPreviewer{},
	}
	server := starmaphttp.NewServer(starmaphttp.Handlers{
		ProcessOrder:   f.processor,
		ReleaseLock:    f.releaser,
		OrderArtifacts: f.artifacts,
		Artifact:       f.artifact,
		Geocode:        f.geocoder,
		RenderChart:    f.charts,
		PreviewPoster:  f.posters,
	})
	f.router = starmaphttp.NewRouter(server, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}

func (f *fixture) do(method, target string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeWebhook(t *testing.T, rec *httptest.ResponseRecorder) starmaphttp.WebhookResponse {
	t.Helper()
	var resp starmaphttp.WebhookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestProcessShopifyOrder_Success(t *testing.T) {
	f := newFixture()
	coords, err := kernel.NewCoordinates(52.37, 4.9)
	require.NoError(t, err)

	f.processor.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ProcessOrderCommand) bool {
		return string(cmd.Body()) == `{"id":1001}` && cmd.Signature() == "sig"
	})).Return(commands.ProcessOrderResult{
		Stage:       commands.StageDone,
		OrderID:     1001,
		OrderName:   "#1001",
		PlaceName:   "Amsterdam, Noord-Holland, Nederland",
		Coordinates: coords.String(),
		Artifact: artifact.Object{
			Key:  "orders/1001-1.pdf",
			URL:  "http://localhost:8080/artifacts/orders/1001-1.pdf",
			Size: 2048,
		},
	}, nil)

	rec := f.do(http.MethodPost, "/api/shopify/order", strings.NewReader(`{"id":1001}`),
		map[string]string{services.SignatureHeader: "sig", echo.HeaderContentType: echo.MIMEApplicationJSON})

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeWebhook(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "DONE", resp.Status)
	assert.Equal(t, "2.00 KB", resp.PDFSize)
	assert.Equal(t, int64(2048), resp.PDFBytes)
	assert.Equal(t, "http://localhost:8080/artifacts/orders/1001-1.pdf", resp.PDFURL)
	require.NotNil(t, resp.Order)
	assert.Equal(t, int64(1001), resp.Order.ID)
	assert.Equal(t, "52.37° N, 4.90° E", resp.Order.Coordinates)
	f.processor.AssertExpectations(t)
}

func TestProcessShopifyOrder_DuplicateDeliveries(t *testing.T) {
	tests := []struct {
		name    string
		result  commands.ProcessOrderResult
		message string
	}{
		{
			name: "already done",
			result: commands.ProcessOrderResult{
				Stage:    commands.StageAlreadyDone,
				Artifact: artifact.Object{URL: "http://localhost:8080/artifacts/orders/1-1.pdf"},
			},
			message: "Order already processed",
		},
		{
			name:    "in progress",
			result:  commands.ProcessOrderResult{Stage: commands.StageInProgress},
			message: "Order is already being processed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.processor.On("Handle", mock.Anything, mock.Anything).Return(tt.result, nil)

			rec := f.do(http.MethodPost, "/api/shopify/order", strings.NewReader(`{}`), nil)

			require.Equal(t, http.StatusOK, rec.Code)
			resp := decodeWebhook(t, rec)
			assert.True(t, resp.Success)
			assert.Equal(t, tt.message, resp.Message)
			assert.Equal(t, string(tt.result.Stage), resp.Status)
			assert.Equal(t, tt.result.Artifact.URL, resp.PDFURL)
			assert.Nil(t, resp.Order)
		})
	}
}

func TestProcessShopifyOrder_FailureStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		error  string
	}{
		{
			name:   "authentication",
			err:    &commands.PipelineError{Stage: commands.StageReceived, Category: commands.AuthenticationFailure, ClientFault: true},
			status: http.StatusUnauthorized,
			error:  "Invalid webhook signature",
		},
		{
			name:   "parse",
			err:    &commands.PipelineError{Stage: commands.StageClaimed, Category: commands.ParseFailure, ClientFault: true},
			status: http.StatusBadRequest,
			error:  "Could not parse order",
		},
		{
			name:   "unknown address",
			err:    &commands.PipelineError{Stage: commands.StageParsed, Category: commands.ResolutionFailure, ClientFault: true},
			status: http.StatusBadRequest,
			error:  "Could not geocode location",
		},
		{
			name:   "geocoder outage",
			err:    &commands.PipelineError{Stage: commands.StageParsed, Category: commands.ResolutionFailure},
			status: http.StatusInternalServerError,
			error:  "Failed to process order",
		},
		{
			name:   "render",
			err:    &commands.PipelineError{Stage: commands.StageGeocoded, Category: commands.RenderFailure, Err: errors.New("503")},
			status: http.StatusInternalServerError,
			error:  "Failed to process order",
		},
		{
			name:   "storage",
			err:    &commands.PipelineError{Stage: commands.StageDocumentRendered, Category: commands.StorageFailure},
			status: http.StatusInternalServerError,
			error:  "Failed to process order",
		},
		{
			name:   "not a pipeline error",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			error:  "Failed to process order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.processor.On("Handle", mock.Anything, mock.Anything).Return(commands.ProcessOrderResult{}, tt.err)

			rec := f.do(http.MethodPost, "/api/shopify/order", strings.NewReader(`{}`), nil)

			require.Equal(t, tt.status, rec.Code)
			resp := decodeWebhook(t, rec)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.error, resp.Error)
			assert.NotEmpty(t, resp.Details)

			var perr *commands.PipelineError
			if errors.As(tt.err, &perr) {
				assert.Equal(t, string(perr.Category), resp.Category)
				assert.Equal(t, string(perr.Stage), resp.Status)
			}
		})
	}
}

func TestProcessShopifyOrder_AuthenticationFailureDetailIsGeneric(t *testing.T) {
	f := newFixture()
	f.processor.On("Handle", mock.Anything, mock.Anything).Return(commands.ProcessOrderResult{},
		&commands.PipelineError{Stage: commands.StageReceived, Category: commands.AuthenticationFailure, Detail: "hmac mismatch", ClientFault: true})

	rec := f.do(http.MethodPost, "/api/shopify/order", strings.NewReader(`{}`), nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeWebhook(t, rec)
	assert.Equal(t, "signature missing or does not match", resp.Details)
}

func TestGetOrderArtifacts(t *testing.T) {
	f := newFixture()
	f.artifacts.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderArtifactsQuery) bool {
		return q.OrderID() == 1001
	})).Return(queries.GetOrderArtifactsQueryResponse{OrderID: 1001, Completed: true}, nil)

	rec := f.do(http.MethodGet, "/api/v1/orders/1001/artifacts", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"orderId":1001,"completed":true,"documents":null}`, rec.Body.String())
}

func TestGetOrderArtifacts_InvalidID(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/api/v1/orders/abc/artifacts", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodGet, "/api/v1/orders/0/artifacts", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.artifacts.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestReleaseLock(t *testing.T) {
	f := newFixture()
	f.releaser.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.ReleaseLockCommand) bool {
		return c.OrderID() == 1001
	})).Return(nil)
	f.releaser.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.ReleaseLockCommand) bool {
		return c.OrderID() == 1002
	})).Return(errs.NewObjectNotFoundError("key", "locks/1002.lock"))

	rec := f.do(http.MethodDelete, "/api/v1/locks/1001", nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(http.MethodDelete, "/api/v1/locks/1002", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGeocodeLocation(t *testing.T) {
	f := newFixture()
	coords, err := kernel.NewCoordinates(52.3676, 4.9041)
	require.NoError(t, err)

	f.geocoder.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GeocodeLocationQuery) bool {
		return q.Location() == queries.DefaultPreviewLocation
	})).Return(ports.GeocodeResult{Coordinates: coords, PlaceName: "Amsterdam, Noord-Holland, Nederland", City: "Amsterdam"}, nil)
	f.geocoder.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GeocodeLocationQuery) bool {
		return q.Location() == "Nergenshuizen"
	})).Return(ports.GeocodeResult{}, ports.ErrLocationNotFound)

	rec := f.do(http.MethodGet, "/api/v1/geocode", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp starmaphttp.GeocodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 52.3676, resp.Latitude, 1e-9)
	assert.Equal(t, "Amsterdam", resp.City)

	rec = f.do(http.MethodGet, "/api/v1/geocode?location=Nergenshuizen", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRenderStarmap(t *testing.T) {
	f := newFixture()
	f.charts.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.RenderChartQuery) bool {
		return q.Request().UTCOffset == 2 && q.Request().Constellation
	})).Return(artifact.Chart{SVG: []byte("<svg/>")}, nil)

	rec := f.do(http.MethodPost, "/api/v1/starmap",
		strings.NewReader(`{"latitude":52.37,"longitude":4.9,"date":"04.07.2025","time":"21.55.00","utcOffset":2}`),
		map[string]string{echo.HeaderContentType: echo.MIMEApplicationJSON})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, artifact.ContentTypeSVG, rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "<svg/>", rec.Body.String())
}

func TestRenderStarmap_InvalidParameters(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodPost, "/api/v1/starmap",
		strings.NewReader(`{"latitude":91,"longitude":4.9,"date":"2025-07-04","time":"21.55.00","utcOffset":20}`),
		map[string]string{echo.HeaderContentType: echo.MIMEApplicationJSON})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp starmaphttp.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid parameters", resp.Message)
	assert.Contains(t, resp.Details, "utcOffset")
	f.charts.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestPreviewPoster(t *testing.T) {
	f := newFixture()
	f.posters.On("Handle", mock.Anything, mock.Anything).Return(artifact.Document{PDF: []byte("%PDF-1.7")}, nil)

	rec := f.do(http.MethodGet, "/api/v1/pdf/preview?color=black", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, artifact.ContentTypePDF, rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, `inline; filename="test-poster.pdf"`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.Equal(t, "%PDF-1.7", rec.Body.String())

	rec = f.do(http.MethodGet, "/api/v1/pdf/preview?color=purple", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetArtifact(t *testing.T) {
	f := newFixture()
	f.artifact.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetArtifactQuery) bool {
		return q.Key() == "orders/1001-1.pdf"
	})).Return(artifact.Object{Key: "orders/1001-1.pdf", ContentType: artifact.ContentTypePDF}, []byte("%PDF"), nil)
	f.artifact.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetArtifactQuery) bool {
		return q.Key() == "orders/missing.pdf"
	})).Return(artifact.Object{}, nil, errs.NewObjectNotFoundError("key", "orders/missing.pdf"))

	rec := f.do(http.MethodGet, "/artifacts/orders/1001-1.pdf", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "%PDF", rec.Body.String())

	rec = f.do(http.MethodGet, "/artifacts/orders/missing.pdf", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(http.MethodGet, "/artifacts/locks/1001.lock", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "claims are not served")
}

func TestHealthAndDocs(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())

	rec = f.do(http.MethodGet, "/swagger/doc.json", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/shopify/order")
}
