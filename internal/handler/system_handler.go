package handler

import (
	"net/http"
	"strconv"

	"qa-dashboard/internal/apperr"
	"qa-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

type SystemHandler struct {
	system *service.SystemService
}

func NewSystemHandler(system *service.SystemService) *SystemHandler {
	return &SystemHandler{system: system}
}

// GetCurrent 采样当前系统指标并持久化；采样失败降级为零值，永不报错
func (h *SystemHandler) GetCurrent(c *gin.Context) {
	c.JSON(http.StatusOK, h.system.SampleNow())
}

// GetHistory 最近 N 小时的采样历史，默认 24 小时
func (h *SystemHandler) GetHistory(c *gin.Context) {
	hours := 24
	if v := c.Query("hours"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(c, apperr.Validationf("hours 不是整数: %s", v))
			return
		}
		hours = n
	}

	samples, err := h.system.History(hours)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, samples)
}
