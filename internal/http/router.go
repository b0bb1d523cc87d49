package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger.Named("http")))

	health := NewHealthController(cfg)
	booksController := NewBooksController(cfg.Books, cfg.Tracker, cfg.Purger)
	locationsController := NewLocationsController(cfg.Books, cfg.Tracker)
	highlightsController := NewHighlightsController(cfg.Highlights)
	preferencesController := NewPreferencesController(cfg.Preferences)
	viewerController := NewViewerController(cfg.Preferences)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", Ping)

	api := router.Group("/api")

	// Books API endpoints
	api.GET("/books", booksController.GetAllBooks)
	api.POST("/books", booksController.CreateBook)
	api.GET("/books/search", booksController.SearchBooks)
	api.GET("/books/stats", booksController.GetBookStats)
	api.GET("/books/:id", booksController.GetBook)
	api.DELETE("/books/:id", booksController.DeleteBook)

	// Reading position
	api.GET("/books/:id/location", locationsController.GetLocation)
	api.PUT("/books/:id/location", locationsController.UpdateLocation)

	// Highlights
	api.GET("/books/:id/highlights", highlightsController.ListHighlights)
	api.POST("/books/:id/highlights", highlightsController.CreateHighlight)
	api.GET("/books/:id/highlights/slim", highlightsController.ListSlimHighlights)
	api.GET("/books/:id/highlights/:key", highlightsController.GetHighlight)
	api.PATCH("/books/:id/highlights/:key", highlightsController.UpdateHighlight)
	api.DELETE("/books/:id/highlights/:key", highlightsController.DeleteHighlight)
	api.GET("/highlights/colors", highlightsController.ListColors)

	// Reader preferences
	api.GET("/preferences/style", preferencesController.GetStyle)
	api.PUT("/preferences/style", preferencesController.UpdateStyle)
	api.GET("/preferences/options", preferencesController.GetOptions)
	api.PUT("/preferences/options", preferencesController.UpdateOptions)
	api.DELETE("/preferences", preferencesController.Reset)

	// Viewer styles
	api.GET("/viewer/styles", viewerController.GetStyles)
	api.GET("/viewer/theme.css", viewerController.GetThemeCSS)

	// Task endpoints
	tasksController := NewTasksController(cfg.TaskStatus, cfg.Cleanup)
	if cfg.TaskStatus != nil {
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
	}
	if cfg.Cleanup != nil {
		api.POST("/admin/cleanup", tasksController.CleanupDeletedBooks)
	}

	return router
}
