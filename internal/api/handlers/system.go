package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/services"
)

// SystemHandler exposes process resource stats for operational checks.
type SystemHandler struct {
	monitor *services.ResourceMonitor
}

func NewSystemHandler(monitor *services.ResourceMonitor) *SystemHandler {
	return &SystemHandler{monitor: monitor}
}

// Stats returns a point-in-time resource snapshot.
func (h *SystemHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": h.monitor.Snapshot(c.Request.Context())})
}
