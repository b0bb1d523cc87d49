package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/reader/internal/entities"
)

type BooksController struct {
	store   BookStore
	tracker LocationTracker
	purger  PurgeScheduler
}

// NewBooksController creates the books API. tracker and purger may be nil.
func NewBooksController(store BookStore, tracker LocationTracker, purger PurgeScheduler) *BooksController {
	return &BooksController{
		store:   store,
		tracker: tracker,
		purger:  purger,
	}
}

// GetAllBooks handles GET /api/books
func (controller *BooksController) GetAllBooks(c *gin.Context) {
	books, err := controller.store.GetAllBooks()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// SearchBooks handles GET /api/books/search?q=
func (controller *BooksController) SearchBooks(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respondBadRequest(c, "q query parameter is required")
		return
	}

	books, err := controller.store.SearchBooks(query)
	if err != nil {
		respondInternalError(c, err, "search books")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// GetBookStats handles GET /api/books/stats
func (controller *BooksController) GetBookStats(c *gin.Context) {
	totalBooks, totalHighlights, err := controller.store.GetBookStats()
	if err != nil {
		respondInternalError(c, err, "book stats")
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"total_books":      totalBooks,
		"total_highlights": totalHighlights,
	})
}

// CreateBook handles POST /api/books. The viewer posts the metadata it read
// from the package document; an existing book with the same title and author
// is updated instead.
func (controller *BooksController) CreateBook(c *gin.Context) {
	var info entities.BookInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		respondBadRequest(c, "invalid book metadata: "+err.Error())
		return
	}
	if strings.TrimSpace(info.Title) == "" {
		respondBadRequest(c, "title is required")
		return
	}

	book := &entities.Book{BookInfo: info}
	if err := controller.store.SaveBook(book); err != nil {
		respondInternalError(c, err, "save book")
		return
	}
	respondCreated(c, book)
}

// GetBook handles GET /api/books/:id
func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.store.GetBookByID(id)
	if err != nil {
		respondStoreError(c, err, "book")
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

// DeleteBook handles DELETE /api/books/:id. The book disappears right away;
// its highlights and reading progress are removed by a background task.
func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.store.DeleteBook(id); err != nil {
		respondStoreError(c, err, "book")
		return
	}
	if controller.tracker != nil {
		controller.tracker.Forget(id)
	}

	if controller.purger == nil {
		if err := controller.store.PurgeBook(id); err != nil {
			respondInternalError(c, err, "purge book")
			return
		}
		respondSuccess(c, "book deleted")
		return
	}

	taskID, err := controller.purger.SchedulePurge(id)
	if err != nil {
		// The book is already hidden; a failed enqueue only leaves rows behind.
		requestLogger(c).Warn("Unable to schedule purge", zap.Uint("book_id", id), zap.Error(err))
		respondSuccess(c, "book deleted")
		return
	}
	respondAccepted(c, "book deleted", gin.H{"task_id": taskID})
}
