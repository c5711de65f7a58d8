package handler

import (
	"net/http"

	"qa-dashboard/internal/apperr"

	"github.com/gin-gonic/gin"
)

// respondError 把错误分类映射为 HTTP 状态：
// 校验错误 400、记录不存在 404、其余 500
func respondError(c *gin.Context, err error) {
	switch {
	case apperr.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperr.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
