package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/reader/internal/entities"
)

func TestBooksController_GetAllBooks(t *testing.T) {
	t.Run("returns empty list when no books", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, "GET", "/api/books", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		response := decode[map[string]any](t, w)
		assert.Equal(t, float64(0), response["count"])
		assert.Empty(t, response["books"])
	})

	t.Run("returns books with count", func(t *testing.T) {
		s := newTestServer(t)
		s.createBook(t, "Book 1", "Author 1")
		s.createBook(t, "Book 2", "Author 2")

		w := s.do(t, "GET", "/api/books", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		response := decode[map[string]any](t, w)
		assert.Equal(t, float64(2), response["count"])
		assert.Len(t, response["books"], 2)
	})
}

func TestBooksController_CreateBook(t *testing.T) {
	t.Run("creates book from viewer metadata", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, "POST", "/api/books", map[string]string{
			"title":          "Walden",
			"author":         "Henry David Thoreau",
			"coverURL":       "blob:cover",
			"published_date": "1854",
			"language":       "en",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		book := decode[entities.Book](t, w)
		assert.NotZero(t, book.ID)
		assert.Equal(t, "Walden", book.Title)
		assert.Equal(t, "1854", book.PublishedDate)
		assert.Equal(t, "blob:cover", book.CoverURL)
	})

	t.Run("posting the same book twice updates it", func(t *testing.T) {
		s := newTestServer(t)
		first := decode[entities.Book](t, s.do(t, "POST", "/api/books", map[string]string{"title": "Walden", "author": "Thoreau"}))
		second := decode[entities.Book](t, s.do(t, "POST", "/api/books", map[string]string{"title": "Walden", "author": "Thoreau", "publisher": "Ticknor"}))

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "Ticknor", second.Publisher)
	})

	t.Run("requires title", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, "POST", "/api/books", map[string]string{"author": "Anonymous"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "title is required")
	})

	t.Run("rejects malformed json", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, "POST", "/api/books", "{title:")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBooksController_GetBook(t *testing.T) {
	s := newTestServer(t)
	book := s.createBook(t, "Walden", "Thoreau")

	w := s.do(t, "GET", fmt.Sprintf("/api/books/%d", book.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Walden", decode[entities.Book](t, w).Title)

	w = s.do(t, "GET", "/api/books/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "book not found")

	w = s.do(t, "GET", "/api/books/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBooksController_SearchBooks(t *testing.T) {
	s := newTestServer(t)
	s.createBook(t, "Moby Dick", "Herman Melville")
	s.createBook(t, "Walden", "Henry David Thoreau")

	w := s.do(t, "GET", "/api/books/search?q=melville", nil)
	require.Equal(t, http.StatusOK, w.Code)
	response := decode[map[string]any](t, w)
	assert.Equal(t, float64(1), response["count"])

	w = s.do(t, "GET", "/api/books/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "q query parameter is required")
}

func TestBooksController_GetBookStats(t *testing.T) {
	s := newTestServer(t)
	book := s.createBook(t, "Walden", "Thoreau")
	require.NoError(t, s.db.Books.SaveHighlight(book.ID, &entities.Highlight{CFIRange: "a"}))
	require.NoError(t, s.db.Books.SaveHighlight(book.ID, &entities.Highlight{CFIRange: "b"}))

	w := s.do(t, "GET", "/api/books/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	stats := decode[map[string]any](t, w)
	assert.Equal(t, float64(1), stats["total_books"])
	assert.Equal(t, float64(2), stats["total_highlights"])
}

func TestBooksController_DeleteBook(t *testing.T) {
	t.Run("hides book and schedules purge", func(t *testing.T) {
		s := newTestServer(t)
		book := s.createBook(t, "Walden", "Thoreau")

		w := s.do(t, "DELETE", fmt.Sprintf("/api/books/%d", book.ID), nil)
		require.Equal(t, http.StatusAccepted, w.Code)
		assert.Contains(t, w.Body.String(), "task-1")
		assert.Equal(t, []uint{book.ID}, s.purger.scheduled())

		w = s.do(t, "GET", fmt.Sprintf("/api/books/%d", book.ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("enqueue failure still deletes", func(t *testing.T) {
		s := newTestServer(t)
		s.purger.err = errEnqueue
		book := s.createBook(t, "Walden", "Thoreau")

		w := s.do(t, "DELETE", fmt.Sprintf("/api/books/%d", book.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("purges inline without a task queue", func(t *testing.T) {
		db := setupTestDB(t)
		controller := NewBooksController(db.Books, nil, nil)
		book := &entities.Book{BookInfo: entities.BookInfo{Title: "Walden"}}
		require.NoError(t, db.Books.SaveBook(book))
		require.NoError(t, db.Books.SaveHighlight(book.ID, &entities.Highlight{CFIRange: "a"}))

		router := gin.New()
		router.DELETE("/api/books/:id", controller.DeleteBook)

		w := serve(router, "DELETE", fmt.Sprintf("/api/books/%d", book.ID))
		require.Equal(t, http.StatusOK, w.Code)

		highlights, err := db.Books.GetHighlightsForBook(book.ID)
		require.NoError(t, err)
		assert.Empty(t, highlights)
	})

	t.Run("unknown book", func(t *testing.T) {
		s := newTestServer(t)

		w := s.do(t, "DELETE", "/api/books/42", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, s.purger.scheduled())
	})
}
