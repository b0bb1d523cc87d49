package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/reader/internal/entities"
)

func TestViewerStyle(t *testing.T) {
	assert.Equal(t, "#d4e9ff", ViewerStyle["::selection"]["background-color"])
	assert.Len(t, ViewerStyle["img"], 6)
	for prop, value := range ViewerStyle["img"] {
		assert.Equal(t, "none", value, prop)
	}
}

func TestEpubStyles(t *testing.T) {
	decls := EpubStyles.Declarations()
	assert.Equal(t, map[string]string{
		"box-sizing": "border-box",
		"margin":     "0px auto",
		"width":      "100%",
		"height":     "100%",
		"overflow-y": "hidden",
	}, decls)
}

func TestStylesheetCSS(t *testing.T) {
	sheet := Stylesheet{
		"p":    {"margin": "0", "color": "red"},
		"body": {"font-size": "16px"},
		"div":  {},
	}

	expected := "body {\n  font-size: 16px;\n}\np {\n  color: red;\n  margin: 0;\n}\n"
	assert.Equal(t, expected, sheet.CSS())
}

func TestStylesheetMerge(t *testing.T) {
	base := Stylesheet{"body": {"color": "black", "margin": "0"}}
	merged := base.Merge(Stylesheet{"body": {"color": "white"}, "p": {"margin": "1em"}})

	assert.Equal(t, "white", merged["body"]["color"])
	assert.Equal(t, "0", merged["body"]["margin"])
	assert.Equal(t, "1em", merged["p"]["margin"])
	assert.Equal(t, "black", base["body"]["color"], "merge must not modify the receiver")
}

func TestParseStylesheet(t *testing.T) {
	t.Run("parses rules and grouped selectors", func(t *testing.T) {
		sheet, err := ParseStylesheet(`
			p, li { text-indent: 2em; margin: 0 0 1em 0 }
			a:hover { Color: #ff0000; }
			@media (max-width: 600px) { p { margin: 0 } }
		`)
		require.NoError(t, err)

		assert.Equal(t, "2em", sheet["p"]["text-indent"])
		assert.Equal(t, "0 0 1em 0", sheet["li"]["margin"])
		assert.Equal(t, "#ff0000", sheet["a:hover"]["color"])
		assert.Equal(t, "0 0 1em 0", sheet["p"]["margin"], "rules inside @media do not apply")
	})

	t.Run("at-rule blocks are skipped", func(t *testing.T) {
		sheet, err := ParseStylesheet(`
			p { margin: 0 0 1em 0 }
			@media (max-width: 600px) { p { margin: 0 } }
			@supports (display: grid) { body { color: red } }
			@font-face { font-family: Literata; src: url(literata.woff2) }
			h1 { font-weight: normal }
		`)
		require.NoError(t, err)

		assert.Equal(t, "0 0 1em 0", sheet["p"]["margin"])
		assert.Equal(t, "normal", sheet["h1"]["font-weight"])
		assert.NotContains(t, sheet, "body")
		assert.Len(t, sheet, 2)
	})

	t.Run("pseudo element selector", func(t *testing.T) {
		sheet, err := ParseStylesheet(`::selection { background-color: #d4e9ff; }`)
		require.NoError(t, err)
		assert.Equal(t, "#d4e9ff", sheet["::selection"]["background-color"])
	})

	t.Run("empty input", func(t *testing.T) {
		sheet, err := ParseStylesheet("")
		require.NoError(t, err)
		assert.Empty(t, sheet)
	})
}

func TestTheme(t *testing.T) {
	style := entities.BookStyle{
		FontFamily: "Georgia, serif",
		FontSize:   18,
		LineHeight: 1.6,
		Background: "#fdf6e3",
		Foreground: "#333333",
		AdditionalStyle: map[string]map[string]string{
			"body": {"color": "#000000"},
			"p":    {"text-align": "justify"},
		},
	}

	theme := Theme(style)

	assert.Equal(t, "Georgia, serif", theme["body"]["font-family"])
	assert.Equal(t, "18px", theme["body"]["font-size"])
	assert.Equal(t, "1.6", theme["body"]["line-height"])
	assert.Equal(t, "#fdf6e3", theme["body"]["background"])
	assert.Equal(t, "#000000", theme["body"]["color"], "additional style overrides the foreground")
	assert.Equal(t, "justify", theme["p"]["text-align"])
	assert.Equal(t, "#d4e9ff", theme["::selection"]["background-color"])
}

func TestTheme_OmitsUnsetFields(t *testing.T) {
	theme := Theme(entities.BookStyle{})

	assert.Empty(t, theme["body"])
	assert.NotContains(t, theme.CSS(), "body")
}
