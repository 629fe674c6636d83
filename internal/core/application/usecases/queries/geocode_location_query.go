package queries

import (
	"context"
	"errors"
	"strings"

	"starmap/internal/core/ports"
	"starmap/internal/pkg/guard"
)

// DefaultPreviewLocation is geocoded when a preview request names no location.
const DefaultPreviewLocation = "Amsterdam"

var ErrGeocodeLocationQueryIsNotConstructed = errors.New(
	"GeocodeLocationQuery must be created via NewGeocodeLocationQuery constructor",
)

// GeocodeLocationQuery resolves an address outside the pipeline, to check
// the geocoder configuration and how an address will be interpreted.
type GeocodeLocationQuery struct { //nolint:recvcheck //using for validation
	location string

	guard guard.ConstructorGuard
}

// NewGeocodeLocationQuery falls back to DefaultPreviewLocation for a blank location.
func NewGeocodeLocationQuery(location string) GeocodeLocationQuery {
	location = strings.TrimSpace(location)
	if location == "" {
		location = DefaultPreviewLocation
	}
	return GeocodeLocationQuery{location: location, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GeocodeLocationQuery) Validate() error {
	return q.guard.Validate(ErrGeocodeLocationQueryIsNotConstructed)
}

// Location returns the address to resolve.
func (q GeocodeLocationQuery) Location() string {
	return q.location
}

// GeocodeLocationQueryHandler forwards to the geocoder.
type GeocodeLocationQueryHandler struct {
	geocoder ports.Geocoder
}

func NewGeocodeLocationQueryHandler(geocoder ports.Geocoder) GeocodeLocationQueryHandler {
	return GeocodeLocationQueryHandler{geocoder: geocoder}
}

// Handle returns ports.ErrLocationNotFound when the address has no match.
func (h GeocodeLocationQueryHandler) Handle(ctx context.Context, query GeocodeLocationQuery) (ports.GeocodeResult, error) {
	if err := query.Validate(); err != nil {
		return ports.GeocodeResult{}, err
	}
	return h.geocoder.Geocode(ctx, query.Location())
}
