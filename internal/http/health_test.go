package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/reader/internal/database"
	"github.com/mrlokans/reader/internal/entities"
)

func setupTestDB(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "reader.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func serve(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy when database is connected", func(t *testing.T) {
		controller := NewHealthController(RouterConfig{Database: setupTestDB(t), Version: "1.0.0"})

		router := gin.New()
		router.GET("/health", controller.Status)

		w := serve(router, "GET", "/health")
		assert.Equal(t, http.StatusOK, w.Code)

		var response HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Database)
		assert.Zero(t, response.PendingLocations)
		assert.False(t, response.TaskQueue)
		assert.Contains(t, response.Time, "T")
	})

	t.Run("reports missing database", func(t *testing.T) {
		controller := NewHealthController(RouterConfig{Version: "1.0.0"})

		router := gin.New()
		router.GET("/health", controller.Status)

		w := serve(router, "GET", "/health")
		assert.Equal(t, http.StatusOK, w.Code)

		var response HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "not configured", response.Database)
	})

	t.Run("returns unhealthy when database connection is closed", func(t *testing.T) {
		db, err := database.NewDatabase(filepath.Join(t.TempDir(), "closed.db"))
		require.NoError(t, err)
		db.Close()

		controller := NewHealthController(RouterConfig{Database: db, Version: "1.0.0"})

		router := gin.New()
		router.GET("/health", controller.Status)

		w := serve(router, "GET", "/health")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var response HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Database, "error")
	})

	t.Run("reports unsaved locations and task queue", func(t *testing.T) {
		s := newTestServer(t)
		book := s.createBook(t, "Walden", "Thoreau")
		s.tracker.Relocated(book.ID, entities.Location{Index: 3})

		w := s.do(t, "GET", "/health", nil)
		require.Equal(t, http.StatusOK, w.Code)

		response := decode[HealthResponse](t, w)
		assert.Equal(t, 1, response.PendingLocations)
		assert.True(t, response.TaskQueue)

		require.Eventually(t, func() bool {
			return decode[HealthResponse](t, s.do(t, "GET", "/health", nil)).PendingLocations == 0
		}, time.Second, 5*time.Millisecond)
	})
}

func TestPing(t *testing.T) {
	router := gin.New()
	router.GET("/ping", Ping)

	w := serve(router, "GET", "/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}
