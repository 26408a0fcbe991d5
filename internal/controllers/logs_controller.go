package controllers

import (
	"net/http"

	"snaplink/internal/logger"

	"github.com/gin-gonic/gin"
)

type LogsController struct {
	buffer *logger.RingBuffer
}

func NewLogsController(buffer *logger.RingBuffer) *LogsController {
	return &LogsController{
		buffer: buffer,
	}
}

// GetLogs handles GET /api/v1/logs - returns retained log entries, oldest
// first, optionally filtered by ?level=
func (lc *LogsController) GetLogs(c *gin.Context) {
	c.JSON(http.StatusOK, lc.buffer.Entries(c.Query("level")))
}

// ClearLogs handles DELETE /api/v1/logs
func (lc *LogsController) ClearLogs(c *gin.Context) {
	lc.buffer.Clear()
	c.JSON(http.StatusOK, gin.H{
		"message": "Logs cleared",
	})
}
