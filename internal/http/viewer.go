package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/reader/internal/viewer"
)

// ViewerController serves the styles the embedded viewer registers with the
// rendering engine.
type ViewerController struct {
	preferences PreferencesStore
}

func NewViewerController(preferences PreferencesStore) *ViewerController {
	return &ViewerController{preferences: preferences}
}

// GetStyles handles GET /api/viewer/styles
func (vc *ViewerController) GetStyles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"viewerStyle": viewer.ViewerStyle,
		"epubStyles":  viewer.EpubStyles,
	})
}

// GetThemeCSS handles GET /api/viewer/theme.css
func (vc *ViewerController) GetThemeCSS(c *gin.Context) {
	style, err := vc.preferences.GetBookStyle()
	if err != nil {
		respondInternalError(c, err, "load book style")
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(viewer.Theme(style).CSS()))
}
