package viewer

import (
	"strconv"

	"github.com/mrlokans/reader/internal/entities"
)

// Theme builds the stylesheet registered with the rendering engine for style.
// Rules from style.AdditionalStyle are applied last and override the rest.
func Theme(style entities.BookStyle) Stylesheet {
	body := map[string]string{}
	if style.FontFamily != "" {
		body["font-family"] = style.FontFamily
	}
	if style.FontSize > 0 {
		body["font-size"] = formatNumber(style.FontSize) + "px"
	}
	if style.LineHeight > 0 {
		body["line-height"] = formatNumber(style.LineHeight)
	}
	if style.Background != "" {
		body["background"] = style.Background
	}
	if style.Foreground != "" {
		body["color"] = style.Foreground
	}

	theme := ViewerStyle.Merge(Stylesheet{"body": body})
	return theme.Merge(Stylesheet(style.AdditionalStyle))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
