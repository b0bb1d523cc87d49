package utils

import (
	"fmt"
	"strings"

	"github.com/mrlokans/reader/internal/entities"
)

// HighlightPalette lists the colors offered by the highlight menu.
var HighlightPalette = []entities.Color{
	{Name: "yellow", Code: "#FFEB3B"},
	{Name: "green", Code: "#A5D6A7"},
	{Name: "blue", Code: "#90CAF9"},
	{Name: "pink", Code: "#F48FB1"},
	{Name: "purple", Code: "#CE93D8"},
}

// DefaultHighlightColor is used when a highlight arrives without a color.
var DefaultHighlightColor = HighlightPalette[0].Code

// NormalizeHexColor converts "#rgb" and "#rrggbb" colors to upper-case "#RRGGBB".
// Example: "#fe3" -> "#FFEE33"
func NormalizeHexColor(color string) (string, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(color), "#")
	if !isHex(hex) {
		return "", fmt.Errorf("invalid hex color %q", color)
	}

	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return "", fmt.Errorf("invalid hex color %q", color)
	}
	return "#" + strings.ToUpper(hex), nil
}

// ColorName maps a palette code to its name.
// Default return is "custom" for colors outside the palette.
func ColorName(code string) string {
	normalized, err := NormalizeHexColor(code)
	if err != nil {
		return "custom"
	}
	for _, c := range HighlightPalette {
		if c.Code == normalized {
			return c.Name
		}
	}
	return "custom"
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
