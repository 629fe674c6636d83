// Package mapbox implements ports.Geocoder on the Mapbox Geocoding v5 API.
package mapbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"starmap/internal/core/domain/model/kernel"
	"starmap/internal/core/ports"
)

// DefaultBaseURL is the public Mapbox API.
const DefaultBaseURL = "https://api.mapbox.com"

const (
	resultLimit    = "1"
	resultLanguage = "nl"
	placeIDPrefix  = "place"
)

var _ ports.Geocoder = (*Geocoder)(nil)

// ErrAccessTokenIsMissing is returned by Geocode when no token is configured.
var ErrAccessTokenIsMissing = errors.New("mapbox access token is not configured")

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	PlaceName string    `json:"place_name"`
	Center    []float64 `json:"center"`
	Context   []struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"context"`
}

// Geocoder queries the forward geocoding endpoint and keeps only the best match.
type Geocoder struct {
	client  *http.Client
	baseURL string
	token   string
	logger  *slog.Logger
}

// NewGeocoder creates a geocoder. An empty baseURL means DefaultBaseURL.
func NewGeocoder(client *http.Client, baseURL, token string, logger *slog.Logger) *Geocoder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Geocoder{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		logger:  logger.With("component", "mapbox_geocoder"),
	}
}

func (g *Geocoder) Geocode(ctx context.Context, query string) (ports.GeocodeResult, error) {
	if g.token == "" {
		g.logger.ErrorContext(ctx, "mapbox access token is not configured")
		return ports.GeocodeResult{}, ErrAccessTokenIsMissing
	}

	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?%s",
		g.baseURL,
		url.PathEscape(query),
		url.Values{
			"access_token": {g.token},
			"limit":        {resultLimit},
			"language":     {resultLanguage},
		}.Encode(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("build geocoding request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return ports.GeocodeResult{}, fmt.Errorf("geocoding request: status %d: %s", resp.StatusCode, body)
	}

	var fc featureCollection
	if err = json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("decode geocoding response: %w", err)
	}

	if len(fc.Features) == 0 {
		g.logger.WarnContext(ctx, "no location found", "query", query)
		return ports.GeocodeResult{}, fmt.Errorf("%w: %q", ports.ErrLocationNotFound, query)
	}

	return toResult(fc.Features[0])
}

// toResult converts a feature. Center is [longitude, latitude]; the
// coordinate bounds are enforced here, before anything is drawn.
func toResult(f feature) (ports.GeocodeResult, error) {
	if len(f.Center) != 2 {
		return ports.GeocodeResult{}, fmt.Errorf("feature %q has malformed center %v", f.ID, f.Center)
	}

	coords, err := kernel.NewCoordinates(f.Center[1], f.Center[0])
	if err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("feature %q: %w", f.ID, err)
	}

	city := f.Text
	for _, c := range f.Context {
		if strings.HasPrefix(c.ID, placeIDPrefix) {
			city = c.Text
			break
		}
	}

	return ports.GeocodeResult{
		Coordinates: coords,
		PlaceName:   f.PlaceName,
		City:        city,
	}, nil
}
