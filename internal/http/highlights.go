package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/reader/internal/entities"
	"github.com/mrlokans/reader/internal/utils"
)

type HighlightsController struct {
	store HighlightStore
	now   func() time.Time
}

func NewHighlightsController(store HighlightStore) *HighlightsController {
	return &HighlightsController{store: store, now: time.Now}
}

// UpdateHighlightRequest is the body of PATCH /api/books/:id/highlights/:key.
type UpdateHighlightRequest struct {
	Color string `json:"color" binding:"required"`
}

// ListHighlights handles GET /api/books/:id/highlights
func (hc *HighlightsController) ListHighlights(c *gin.Context) {
	highlights, ok := hc.loadHighlights(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"highlights": highlights, "count": len(highlights)})
}

// ListSlimHighlights handles GET /api/books/:id/highlights/slim. It returns
// only what the annotation layer needs to paint the highlights.
func (hc *HighlightsController) ListSlimHighlights(c *gin.Context) {
	highlights, ok := hc.loadHighlights(c)
	if !ok {
		return
	}

	slim := make([]entities.HighlightSlim, 0, len(highlights))
	for _, h := range highlights {
		slim = append(slim, h.Slim())
	}
	c.JSON(http.StatusOK, slim)
}

func (hc *HighlightsController) loadHighlights(c *gin.Context) ([]entities.Highlight, bool) {
	bookID, ok := hc.bookParam(c)
	if !ok {
		return nil, false
	}

	highlights, err := hc.store.GetHighlightsForBook(bookID)
	if err != nil {
		respondInternalError(c, err, "list highlights")
		return nil, false
	}
	return highlights, true
}

// bookParam parses the book ID and checks the book exists. Highlights of a
// deleted book stay unreachable until the purge removes them.
func (hc *HighlightsController) bookParam(c *gin.Context) (uint, bool) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return 0, false
	}
	if _, err := hc.store.GetBookByID(bookID); err != nil {
		respondStoreError(c, err, "book")
		return 0, false
	}
	return bookID, true
}

// CreateHighlight handles POST /api/books/:id/highlights. Posting an existing
// key replaces that highlight.
func (hc *HighlightsController) CreateHighlight(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var highlight entities.Highlight
	if err := c.ShouldBindJSON(&highlight); err != nil {
		respondBadRequest(c, "invalid highlight: "+err.Error())
		return
	}
	if strings.TrimSpace(highlight.CFIRange) == "" {
		respondBadRequest(c, "cfiRange is required")
		return
	}
	if highlight.Color != "" {
		color, err := utils.NormalizeHexColor(highlight.Color)
		if err != nil {
			respondValidationError(c, err)
			return
		}
		highlight.Color = color
	}

	if err := hc.store.SaveHighlight(bookID, &highlight); err != nil {
		respondStoreError(c, err, "book")
		return
	}
	respondCreated(c, highlight)
}

// GetHighlight handles GET /api/books/:id/highlights/:key. Opening a highlight
// counts as accessing it.
func (hc *HighlightsController) GetHighlight(c *gin.Context) {
	bookID, ok := hc.bookParam(c)
	if !ok {
		return
	}

	highlight, err := hc.store.TouchHighlight(bookID, c.Param("key"), hc.now())
	if err != nil {
		respondStoreError(c, err, "highlight")
		return
	}
	c.JSON(http.StatusOK, highlight)
}

// UpdateHighlight handles PATCH /api/books/:id/highlights/:key
func (hc *HighlightsController) UpdateHighlight(c *gin.Context) {
	bookID, ok := hc.bookParam(c)
	if !ok {
		return
	}

	var req UpdateHighlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "color is required")
		return
	}
	color, err := utils.NormalizeHexColor(req.Color)
	if err != nil {
		respondValidationError(c, err)
		return
	}

	if err := hc.store.UpdateHighlightColor(bookID, c.Param("key"), color); err != nil {
		respondStoreError(c, err, "highlight")
		return
	}
	c.JSON(http.StatusOK, entities.Color{Name: utils.ColorName(color), Code: color})
}

// DeleteHighlight handles DELETE /api/books/:id/highlights/:key
func (hc *HighlightsController) DeleteHighlight(c *gin.Context) {
	bookID, ok := hc.bookParam(c)
	if !ok {
		return
	}

	if err := hc.store.DeleteHighlight(bookID, c.Param("key")); err != nil {
		respondStoreError(c, err, "highlight")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListColors handles GET /api/highlights/colors
func (hc *HighlightsController) ListColors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"colors":  utils.HighlightPalette,
		"default": utils.DefaultHighlightColor,
	})
}
