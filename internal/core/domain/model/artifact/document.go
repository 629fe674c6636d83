package artifact

// Poster dimensions in millimetres.
const (
	PosterTrimWidthMM  = 300.0
	PosterTrimHeightMM = 400.0
	PosterBleedMM      = 3.0

	mmPerInch = 25.4
)

// PageSize is a printed page: the finished trim size plus a bleed margin on
// every edge that is cut off after printing.
type PageSize struct {
	TrimWidthMM  float64
	TrimHeightMM float64
	BleedMM      float64
}

// PosterPageSize returns the 300×400 mm poster page with 3 mm bleed.
func PosterPageSize() PageSize {
	return PageSize{
		TrimWidthMM:  PosterTrimWidthMM,
		TrimHeightMM: PosterTrimHeightMM,
		BleedMM:      PosterBleedMM,
	}
}

// WidthMM returns the full page width including bleed on both sides.
func (p PageSize) WidthMM() float64 {
	return p.TrimWidthMM + 2*p.BleedMM
}

// HeightMM returns the full page height including bleed on both sides.
func (p PageSize) HeightMM() float64 {
	return p.TrimHeightMM + 2*p.BleedMM
}

// WidthInches returns WidthMM in inches, the unit print engines expect.
func (p PageSize) WidthInches() float64 {
	return p.WidthMM() / mmPerInch
}

// HeightInches returns HeightMM in inches.
func (p PageSize) HeightInches() float64 {
	return p.HeightMM() / mmPerInch
}

// Scale returns the page with every dimension multiplied by factor.
func (p PageSize) Scale(factor float64) PageSize {
	return PageSize{
		TrimWidthMM:  p.TrimWidthMM * factor,
		TrimHeightMM: p.TrimHeightMM * factor,
		BleedMM:      p.BleedMM * factor,
	}
}

// Document is the print-ready poster.
type Document struct {
	PDF  []byte
	Page PageSize
}
