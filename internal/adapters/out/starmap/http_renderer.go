package starmap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"starmap/internal/core/domain/model/artifact"
	"starmap/internal/core/ports"
)

// DefaultURL is the hosted star chart function.
const DefaultURL = "https://sterrenlucht-automation.vercel.app/api/starmap"

const maxErrorBody = 4096

var _ ports.ChartRenderer = (*HTTPRenderer)(nil)

// ErrEmptyChart is returned when the renderer answers 2xx with no body.
var ErrEmptyChart = errors.New("chart renderer returned an empty chart")

// HTTPRenderer posts chart parameters as JSON and reads SVG back.
type HTTPRenderer struct {
	client   *http.Client
	endpoint string
}

// NewHTTPRenderer creates a renderer. An empty endpoint means DefaultURL.
func NewHTTPRenderer(client *http.Client, endpoint string) *HTTPRenderer {
	if endpoint == "" {
		endpoint = DefaultURL
	}
	return &HTTPRenderer{client: client, endpoint: endpoint}
}

func (r *HTTPRenderer) Render(ctx context.Context, req ports.ChartRequest) (artifact.Chart, error) {
	params := paramsFrom(req)

	payload, err := json.Marshal(params)
	if err != nil {
		return artifact.Chart{}, fmt.Errorf("encode chart request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return artifact.Chart{}, fmt.Errorf("build chart request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return artifact.Chart{}, fmt.Errorf("chart request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return artifact.Chart{}, fmt.Errorf("chart renderer error: %d %s", resp.StatusCode, body)
	}

	svg, err := io.ReadAll(resp.Body)
	if err != nil {
		return artifact.Chart{}, fmt.Errorf("read chart: %w", err)
	}
	if len(svg) == 0 {
		return artifact.Chart{}, ErrEmptyChart
	}

	return params.chart(svg), nil
}
