package pdf

import (
	"bytes"
	_ "embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"
	"unicode"

	"starmap/internal/core/ports"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	innerBorderMM = 12.0
	cropLengthMM  = 7.0
)

//go:embed poster.html.tmpl
var posterTemplateText string

var posterTemplate = template.Must(template.New("poster").Parse(posterTemplateText))

type posterView struct {
	PageWidth    float64
	PageHeight   float64
	TrimWidth    float64
	TrimHeight   float64
	Bleed        float64
	BorderWidth  float64
	BorderHeight float64
	CropOffset   float64

	Background  template.CSS
	TextColor   template.CSS
	InnerBorder bool

	ChartURI template.URL
	Date     string
	Time     string
	Message  string
	Location string
}

// RenderPosterHTML lays out the poster page. Exported for previews and tests;
// the PDF renderer prints exactly this markup.
func RenderPosterHTML(req ports.DocumentRequest) (string, error) {
	palette := req.Color.Palette()
	page := req.Page

	view := posterView{
		PageWidth:    page.WidthMM(),
		PageHeight:   page.HeightMM(),
		TrimWidth:    page.TrimWidthMM,
		TrimHeight:   page.TrimHeightMM,
		Bleed:        page.BleedMM,
		BorderWidth:  page.TrimWidthMM - 2*innerBorderMM,
		BorderHeight: page.TrimHeightMM - 2*innerBorderMM,
		CropOffset:   page.BleedMM - cropLengthMM,

		Background:  template.CSS(palette.Background),
		TextColor:   template.CSS(palette.Text),
		InnerBorder: palette.InnerBorder,

		//nolint:gosec // chart markup comes from our own renderer
		ChartURI: template.URL("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(req.Chart.SVG)),
		Date:     req.Date.String(),
		Time:     req.Time.Display(),
		Message:  req.Message,
		Location: LocationLabel(req.Location),
	}

	var buf bytes.Buffer
	if err := posterTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render poster template: %w", err)
	}
	return buf.String(), nil
}

// LocationLabel formats an address for the poster: whitespace and commas
// removed, upper case. "Heemraadserf 2, Houten" becomes "HEEMRAADSERF2HOUTEN".
func LocationLabel(location string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == ',' {
			return -1
		}
		return r
	}, location)
	return cases.Upper(language.Dutch).String(stripped)
}
