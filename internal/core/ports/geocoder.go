package ports

import (
	"context"
	"errors"

	"starmap/internal/core/domain/model/kernel"
)

// ErrLocationNotFound is returned by a Geocoder when the provider answered but
// had no match for the query. Transport and decoding failures are returned as
// other errors so callers can tell a bad address from a broken provider.
var ErrLocationNotFound = errors.New("location not found")

// GeocodeResult is the best match for a free-text address.
type GeocodeResult struct {
	Coordinates kernel.Coordinates
	// PlaceName is the provider's full display name,
	// e.g. "Amsterdam, Noord-Holland, Nederland".
	PlaceName string
	// City is the short locality name, e.g. "Amsterdam".
	City string
}

// Geocoder resolves free-text addresses to coordinates.
type Geocoder interface {
	// Geocode returns the single best match for query.
	// Returns ErrLocationNotFound when there is no match.
	Geocode(ctx context.Context, query string) (GeocodeResult, error)
}
