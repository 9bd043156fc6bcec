package handlers

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"printagent/internal/core"
	"printagent/internal/db"
	"printagent/internal/device"
	"printagent/internal/escpos"
)

type StatusHandler struct {
	spooler   *core.Spooler
	manager   *device.Manager
	startedAt time.Time
}

func NewStatusHandler(spooler *core.Spooler, manager *device.Manager) *StatusHandler {
	return &StatusHandler{
		spooler:   spooler,
		manager:   manager,
		startedAt: time.Now(),
	}
}

// GetStatus reports server info, the default printer's connectivity
// and current queue occupancy.
func (h *StatusHandler) GetStatus(c *gin.Context) {
	hostname, _ := os.Hostname()

	var defaultRef *core.DeviceRef
	if ref, ok := h.manager.DefaultDevice(); ok {
		defaultRef = &ref
	}

	connected, info := h.manager.Connected()

	printsTotal, err := db.Counters.GetTotalCount(c.Request.Context())
	if err != nil {
		printsTotal = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"server": gin.H{
				"status":         "online",
				"hostname":       hostname,
				"platform":       runtime.GOOS,
				"arch":           runtime.GOARCH,
				"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
			},
			"printer": gin.H{
				"connected":     connected,
				"default":       defaultRef,
				"info":          info,
				"barcode_types": escpos.Symbologies(),
			},
			"queue":        h.spooler.Stats(),
			"prints_total": printsTotal,
		},
	})
}
