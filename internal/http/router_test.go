package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/reader/internal/config"
	"github.com/mrlokans/reader/internal/database"
	"github.com/mrlokans/reader/internal/entities"
	"github.com/mrlokans/reader/internal/progress"
	"github.com/mrlokans/reader/internal/settingsstore"
)

const testQuietPeriod = 30 * time.Millisecond

type fakePurger struct {
	mu     sync.Mutex
	booked []uint
	err    error
}

func (p *fakePurger) SchedulePurge(bookID uint) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	p.booked = append(p.booked, bookID)
	return "task-1", nil
}

func (p *fakePurger) scheduled() []uint {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]uint(nil), p.booked...)
}

type testServer struct {
	router  *gin.Engine
	db      *database.Database
	tracker *progress.Tracker
	purger  *fakePurger
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db := setupTestDB(t)
	tracker := progress.NewTracker(db.Locations, testQuietPeriod, nil)
	purger := &fakePurger{}

	router := NewRouter(RouterConfig{
		Database:    db,
		Books:       db.Books,
		Highlights:  db.Books,
		Tracker:     tracker,
		Preferences: settingsstore.New(db, config.Defaults{}),
		Purger:      purger,
		Version:     "test",
	})
	return &testServer{router: router, db: db, tracker: tracker, purger: purger}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		var data []byte
		switch b := body.(type) {
		case string:
			data = []byte(b)
		default:
			var err error
			data, err = json.Marshal(b)
			require.NoError(t, err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) createBook(t *testing.T, title, author string) *entities.Book {
	t.Helper()
	book := &entities.Book{BookInfo: entities.BookInfo{Title: title, Author: author}}
	require.NoError(t, s.db.Books.SaveBook(book))
	return book
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

var errEnqueue = errors.New("queue unavailable")
