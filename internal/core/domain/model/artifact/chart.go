package artifact

// Chart is the rendered sky map: SVG markup and the parameters it was drawn
// for. Identical parameters yield an identical chart, so re-rendering on a
// retry is safe.
type Chart struct {
	SVG           []byte
	Latitude      float64
	Longitude     float64
	Date          string
	Time          string
	UTCOffset     int
	Constellation bool
}
