// Package kernel provides the geographic primitives shared by the pipeline.
//
// Coordinates is the only value object here: a latitude/longitude pair that
// can only be built inside the valid WGS84 ranges. Geocoding adapters build it
// at their boundary, so an out-of-range position never reaches chart rendering.
package kernel
