package handler

import (
	"net/http"
	"strconv"

	"qa-dashboard/internal/apperr"
	"qa-dashboard/internal/model"
	"qa-dashboard/internal/service"
	"qa-dashboard/internal/store"

	"github.com/gin-gonic/gin"
)

type ExecutionHandler struct {
	store   *store.ExecutionStore
	runner  *service.Runner
	metrics *service.MetricsService
}

func NewExecutionHandler(s *store.ExecutionStore, runner *service.Runner, metrics *service.MetricsService) *ExecutionHandler {
	return &ExecutionHandler{store: s, runner: runner, metrics: metrics}
}

// ListExecutions 最近执行列表，支持 category/status 过滤
func (h *ExecutionHandler) ListExecutions(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(c, apperr.Validationf("limit 不是整数: %s", v))
			return
		}
		limit = n
	}

	filter := store.ExecutionFilter{
		Category: c.Query("category"),
		Status:   c.Query("status"),
	}
	execs, err := h.store.List(filter, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	summaries := make([]model.ExecutionSummary, 0, len(execs))
	for i := range execs {
		summaries = append(summaries, execs[i].Summarize())
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *ExecutionHandler) GetExecution(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	exec, err := h.store.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exec.Summarize())
}

// GetExecutionResults 执行及其全部结果，无结果时返回空列表
func (h *ExecutionHandler) GetExecutionResults(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	exec, err := h.store.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	results, err := h.store.ResultsFor(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"execution": exec.Summarize(),
		"results":   results,
	})
}

type runTestsRequest struct {
	Category    string `json:"category"`
	Environment string `json:"environment"`
}

// RunTests 触发新执行，立即返回 202 与执行 id，不等待后台成熟
func (h *ExecutionHandler) RunTests(c *gin.Context) {
	var req runTestsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperr.Validationf("请求体解析失败: %v", err))
			return
		}
	}

	exec, err := h.runner.Run(req.Category, req.Environment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message":      "test execution started",
		"execution_id": exec.ID,
		"status":       exec.Status,
	})
}

// GetReport 单次执行的统计报告
func (h *ExecutionHandler) GetReport(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := h.metrics.Report(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperr.Validationf("id 不是有效整数: %s", c.Param("id"))
	}
	return uint(id), nil
}
