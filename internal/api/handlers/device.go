package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"printagent/internal/core"
	"printagent/internal/device"
)

type DeviceHandler struct {
	manager *device.Manager
}

func NewDeviceHandler(manager *device.Manager) *DeviceHandler {
	return &DeviceHandler{manager: manager}
}

type SetDefaultRequest struct {
	VendorID  uint16 `json:"vendor_id" binding:"required"`
	ProductID uint16 `json:"product_id" binding:"required"`
}

// ListDevices returns the attached USB printers and the current
// default selection.
func (h *DeviceHandler) ListDevices(c *gin.Context) {
	devices, err := h.manager.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get devices", "error": err.Error()})
		return
	}

	var defaultRef *core.DeviceRef
	if ref, ok := h.manager.DefaultDevice(); ok {
		defaultRef = &ref
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"devices":         devices,
			"default_printer": defaultRef,
		},
	})
}

// SetDefault selects the default printer by vendor/product pair.
func (h *DeviceHandler) SetDefault(c *gin.Context) {
	var req SetDefaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Vendor ID and Product ID are required"})
		return
	}

	ref := core.DeviceRef{VendorID: req.VendorID, ProductID: req.ProductID}
	if err := h.manager.SetDefault(c.Request.Context(), ref); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to set default device", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Default printer set successfully",
		"data":    gin.H{"default_printer": ref},
	})
}
