package handler

import (
	"net/http"

	"qa-dashboard/internal/apperr"
	"qa-dashboard/internal/store"

	"github.com/gin-gonic/gin"
)

type ConfigHandler struct {
	store *store.ConfigStore
}

func NewConfigHandler(s *store.ConfigStore) *ConfigHandler {
	return &ConfigHandler{store: s}
}

func (h *ConfigHandler) GetConfiguration(c *gin.Context) {
	conf, err := h.store.Get()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conf)
}

// UpdateConfiguration 部分更新单例配置，settings 浅合并
func (h *ConfigHandler) UpdateConfiguration(c *gin.Context) {
	var upd store.ConfigurationUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		respondError(c, apperr.Validationf("请求体解析失败: %v", err))
		return
	}

	conf, err := h.store.Update(upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conf)
}
