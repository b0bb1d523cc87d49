package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/reader/internal/entities"
	"github.com/mrlokans/reader/internal/viewer"
)

type PreferencesController struct {
	store PreferencesStore
}

func NewPreferencesController(store PreferencesStore) *PreferencesController {
	return &PreferencesController{store: store}
}

// UpdateStyleRequest is a BookStyle whose extra rules may also be sent as CSS
// text. Rules from additionalCss override additionalStyle on conflict.
type UpdateStyleRequest struct {
	entities.BookStyle
	AdditionalCSS string `json:"additionalCss,omitempty"`
}

// GetStyle handles GET /api/preferences/style
func (pc *PreferencesController) GetStyle(c *gin.Context) {
	info, err := pc.store.GetBookStyleInfo()
	if err != nil {
		respondInternalError(c, err, "load book style")
		return
	}
	c.JSON(http.StatusOK, info)
}

// UpdateStyle handles PUT /api/preferences/style
func (pc *PreferencesController) UpdateStyle(c *gin.Context) {
	var req UpdateStyleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid book style: "+err.Error())
		return
	}

	style := req.BookStyle
	if strings.TrimSpace(req.AdditionalCSS) != "" {
		parsed, err := viewer.ParseStylesheet(req.AdditionalCSS)
		if err != nil {
			respondValidationError(c, err)
			return
		}
		style.AdditionalStyle = viewer.Stylesheet(style.AdditionalStyle).Merge(parsed)
	}

	if err := style.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := pc.store.SetBookStyle(style); err != nil {
		respondInternalError(c, err, "save book style")
		return
	}
	c.JSON(http.StatusOK, style)
}

// GetOptions handles GET /api/preferences/options
func (pc *PreferencesController) GetOptions(c *gin.Context) {
	info, err := pc.store.GetBookOptionInfo()
	if err != nil {
		respondInternalError(c, err, "load book options")
		return
	}
	c.JSON(http.StatusOK, info)
}

// UpdateOptions handles PUT /api/preferences/options
func (pc *PreferencesController) UpdateOptions(c *gin.Context) {
	var option entities.BookOption
	if err := c.ShouldBindJSON(&option); err != nil {
		respondBadRequest(c, "invalid book options: "+err.Error())
		return
	}
	if err := option.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := pc.store.SetBookOption(option); err != nil {
		respondInternalError(c, err, "save book options")
		return
	}
	c.JSON(http.StatusOK, option)
}

// Reset handles DELETE /api/preferences
func (pc *PreferencesController) Reset(c *gin.Context) {
	if err := pc.store.Reset(); err != nil {
		respondInternalError(c, err, "reset preferences")
		return
	}
	respondSuccess(c, "preferences reset to defaults")
}
