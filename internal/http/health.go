package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/reader/internal/database"
)

// HealthResponse tells whether the reader can serve books and keep the
// reading progress it was sent.
type HealthResponse struct {
	Status   string `json:"status"`
	Time     string `json:"time"`
	Version  string `json:"version,omitempty"`
	Database string `json:"database"`
	// PendingLocations counts books whose last location is only in memory.
	PendingLocations int  `json:"pendingLocations"`
	TaskQueue        bool `json:"taskQueue"`
}

type HealthController struct {
	db      *database.Database
	tracker LocationTracker
	queued  bool
	version string
	now     func() time.Time
}

func NewHealthController(cfg RouterConfig) *HealthController {
	return &HealthController{
		db:      cfg.Database,
		tracker: cfg.Tracker,
		queued:  cfg.Purger != nil,
		version: cfg.Version,
		now:     time.Now,
	}
}

// Status handles GET /health. A failing database makes the reader unhealthy:
// pending locations cannot be saved until it recovers.
func (h *HealthController) Status(c *gin.Context) {
	health := HealthResponse{
		Status:    "healthy",
		Time:      h.now().Format(time.RFC3339),
		Version:   h.version,
		Database:  "not configured",
		TaskQueue: h.queued,
	}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			health.Database = "error: " + err.Error()
			health.Status = "unhealthy"
		} else {
			health.Database = "ok"
		}
	}
	if h.tracker != nil {
		health.PendingLocations = h.tracker.Pending()
	}

	statusCode := http.StatusOK
	if health.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}
	c.IndentedJSON(statusCode, health)
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
