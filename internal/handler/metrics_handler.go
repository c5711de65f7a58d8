package handler

import (
	"net/http"

	"qa-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

type MetricsHandler struct {
	metrics *service.MetricsService
}

func NewMetricsHandler(metrics *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// GetMetrics 仪表盘主页指标
func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	payload, err := h.metrics.Dashboard()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// GetDetailedMetrics 按状态/环境/类别的细分指标
func (h *MetricsHandler) GetDetailedMetrics(c *gin.Context) {
	detailed, err := h.metrics.Detailed()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detailed)
}
