package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
)

// TasksController reports on background tasks and triggers maintenance.
type TasksController struct {
	status  TaskStatusReader
	cleanup CleanupScheduler
}

func NewTasksController(status TaskStatusReader, cleanup CleanupScheduler) *TasksController {
	return &TasksController{status: status, cleanup: cleanup}
}

// CleanupDeletedBooks handles POST /api/admin/cleanup
func (tc *TasksController) CleanupDeletedBooks(c *gin.Context) {
	taskID, err := tc.cleanup.ScheduleCleanup()
	if err != nil {
		respondInternalError(c, err, "schedule cleanup")
		return
	}
	respondAccepted(c, "cleanup scheduled", gin.H{"task_id": taskID})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.status.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
