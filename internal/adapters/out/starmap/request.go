// Package starmap implements ports.ChartRenderer on the star chart script,
// either behind its HTTP function or run locally as a subprocess.
package starmap

import (
	"strconv"

	"starmap/internal/core/domain/model/artifact"
	"starmap/internal/core/ports"
)

// chartParams is the renderer's parameter set, shared by both transports.
type chartParams struct {
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	UTCOffset     int     `json:"utcOffset"`
	Constellation bool    `json:"constellation"`
}

func paramsFrom(req ports.ChartRequest) chartParams {
	return chartParams{
		Latitude:      req.Coordinates.Latitude(),
		Longitude:     req.Coordinates.Longitude(),
		Date:          req.Date.String(),
		Time:          req.Time.String(),
		UTCOffset:     req.UTCOffset,
		Constellation: req.Constellation,
	}
}

func (p chartParams) chart(svg []byte) artifact.Chart {
	return artifact.Chart{
		SVG:           svg,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		Date:          p.Date,
		Time:          p.Time,
		UTCOffset:     p.UTCOffset,
		Constellation: p.Constellation,
	}
}

// utcFlag renders the offset with an explicit sign, e.g. "+1" or "-5".
func (p chartParams) utcFlag() string {
	if p.UTCOffset >= 0 {
		return "+" + strconv.Itoa(p.UTCOffset)
	}
	return strconv.Itoa(p.UTCOffset)
}

func (p chartParams) coordFlag() string {
	return strconv.FormatFloat(p.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(p.Longitude, 'f', -1, 64)
}
