package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/reader/internal/entities"
)

// LocationsController stores the reader's position inside a book.
type LocationsController struct {
	books   BookStore
	tracker LocationTracker
}

func NewLocationsController(books BookStore, tracker LocationTracker) *LocationsController {
	return &LocationsController{books: books, tracker: tracker}
}

// GetLocation handles GET /api/books/:id/location
func (lc *LocationsController) GetLocation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := lc.books.GetBookByID(id); err != nil {
		respondStoreError(c, err, "book")
		return
	}

	loc, err := lc.tracker.Current(id)
	if err != nil {
		respondStoreError(c, err, "location")
		return
	}
	c.JSON(http.StatusOK, loc)
}

// UpdateLocation handles PUT /api/books/:id/location. The viewer calls it on
// every relocation; the write happens once the reader settles.
func (lc *LocationsController) UpdateLocation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var loc entities.Location
	if err := c.ShouldBindJSON(&loc); err != nil {
		respondBadRequest(c, "invalid location: "+err.Error())
		return
	}
	if loc.Percentage < 0 || loc.Percentage > 1 {
		respondBadRequest(c, "percentage must be between 0 and 1")
		return
	}

	if _, err := lc.books.GetBookByID(id); err != nil {
		respondStoreError(c, err, "book")
		return
	}

	lc.tracker.Relocated(id, loc)
	respondAccepted(c, "location recorded", loc)
}
