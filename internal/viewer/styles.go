// Package viewer holds the styles the embedded EPUB viewer registers with its
// rendering engine and builds per-reader themes from a BookStyle.
package viewer

// ViewerStyle is injected into every rendered section: a light blue
// selection color and images that cannot be selected or long-pressed.
var ViewerStyle = Stylesheet{
	"::selection": {
		"background-color": "#d4e9ff",
	},
	"img": {
		"-webkit-touch-callout": "none",
		"-webkit-user-select":   "none",
		"-khtml-user-select":    "none",
		"-moz-user-select":      "none",
		"-ms-user-select":       "none",
		"user-select":           "none",
	},
}

// ContainerStyle styles the element the rendering engine mounts into.
type ContainerStyle struct {
	BoxSizing string `json:"boxSizing"`
	Margin    string `json:"margin"`
	Width     string `json:"width"`
	Height    string `json:"height"`
	OverflowY string `json:"overflowY"`
}

// EpubStyles is the container style of the viewer.
var EpubStyles = ContainerStyle{
	BoxSizing: "border-box",
	Margin:    "0px auto",
	Width:     "100%",
	Height:    "100%",
	OverflowY: "hidden",
}

// Declarations returns the container style as CSS properties.
func (s ContainerStyle) Declarations() map[string]string {
	return map[string]string{
		"box-sizing": s.BoxSizing,
		"margin":     s.Margin,
		"width":      s.Width,
		"height":     s.Height,
		"overflow-y": s.OverflowY,
	}
}
