package order

import (
	"fmt"
	"strings"

	"starmap/internal/pkg/errs"
	"starmap/internal/pkg/textfold"
)

// Color is the poster color chosen by the customer.
type Color int

const (
	// UnknownColor is the zero value and is never valid.
	UnknownColor Color = iota
	Taupe
	White
	Black
)

// DefaultColor is used when a variant title names none of the known colors.
const DefaultColor = Taupe

// colorKeywords lists the variant keywords per color in match priority order.
// Dutch shop wording comes first; the English names are accepted after it.
var colorKeywords = []struct {
	color    Color
	keywords []string
}{
	{Taupe, []string{"taupe"}},
	{White, []string{"wit"}},
	{Black, []string{"zwart"}},
	{White, []string{"white"}},
	{Black, []string{"black"}},
}

// Palette describes how a color is printed: page background, text color and
// whether a white inner border frames the chart.
type Palette struct {
	Background  string
	Text        string
	InnerBorder bool
}

func getColorStrings() map[Color]string {
	return map[Color]string{
		UnknownColor: "Unknown",
		Taupe:        "Taupe",
		White:        "White",
		Black:        "Black",
	}
}

func getPalettes() map[Color]Palette {
	//nolint:exhaustive // UnknownColor has no palette
	return map[Color]Palette{
		Taupe: {Background: "#D4C5B9", Text: "#1A1A1A", InnerBorder: true},
		White: {Background: "#FFFFFF", Text: "#1A1A1A"},
		Black: {Background: "#1A1A1A", Text: "#FFFFFF"},
	}
}

// ParseColor resolves a variant title to a Color by case-insensitive keyword
// match in priority order. The second result is false when nothing matched,
// in which case DefaultColor is returned.
func ParseColor(variantTitle string) (Color, bool) {
	for _, entry := range colorKeywords {
		if textfold.ContainsAny(variantTitle, entry.keywords...) {
			return entry.color, true
		}
	}
	return DefaultColor, false
}

// ColorFromString parses an exact color name such as "Taupe" (any case).
func ColorFromString(s string) (Color, error) {
	for c, name := range getColorStrings() {
		if c != UnknownColor && strings.EqualFold(name, strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return UnknownColor, errs.NewValueIsInvalidErrorWithCause("color", fmt.Errorf("%q is not a poster color", s))
}

// Validate rejects UnknownColor and values outside the enumeration.
func (c Color) Validate() error {
	if _, ok := getPalettes()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("color", fmt.Errorf("%d is not a valid color", c))
	}
	return nil
}

// String returns the color name, or "Unknown".
func (c Color) String() string {
	if s, ok := getColorStrings()[c]; ok {
		return s
	}
	return "Unknown"
}

// Palette returns the print palette; the zero Palette for invalid colors.
func (c Color) Palette() Palette {
	return getPalettes()[c]
}
