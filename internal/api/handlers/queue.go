package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"printagent/internal/core"
)

type QueueHandler struct {
	spooler *core.Spooler
}

func NewQueueHandler(spooler *core.Spooler) *QueueHandler {
	return &QueueHandler{spooler: spooler}
}

// GetQueue returns the pending and processing jobs in order.
func (h *QueueHandler) GetQueue(c *gin.Context) {
	jobs := h.spooler.ListPending()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"jobs":  jobs,
			"count": len(jobs),
		},
	})
}

// GetLogs returns the event log, newest first.
func (h *QueueHandler) GetLogs(c *gin.Context) {
	logs := h.spooler.ListLogs()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"logs":  logs,
			"count": len(logs),
		},
	})
}

// ClearQueue removes every queued job.
func (h *QueueHandler) ClearQueue(c *gin.Context) {
	count := h.spooler.ClearAll()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Queue cleared (%d jobs removed)", count),
		"data":    gin.H{"removed": count},
	})
}

// RemoveJob removes a single job by id.
func (h *QueueHandler) RemoveJob(c *gin.Context) {
	id := c.Param("id")
	if !h.spooler.Remove(id) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Job not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Job %s removed from queue", id),
	})
}
