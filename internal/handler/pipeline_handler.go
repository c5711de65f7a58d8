package handler

import (
	"net/http"

	"qa-dashboard/internal/apperr"
	"qa-dashboard/internal/model"
	"qa-dashboard/internal/store"

	"github.com/gin-gonic/gin"
)

type PipelineHandler struct {
	store *store.PipelineStore
}

func NewPipelineHandler(s *store.PipelineStore) *PipelineHandler {
	return &PipelineHandler{store: s}
}

// ListPipelines 最近 10 条流水线；表为空时返回内置演示数据
func (h *PipelineHandler) ListPipelines(c *gin.Context) {
	pipelines, err := h.store.List(10)
	if err != nil {
		respondError(c, err)
		return
	}

	if len(pipelines) == 0 {
		c.JSON(http.StatusOK, demoPipelines())
		return
	}
	c.JSON(http.StatusOK, pipelines)
}

func (h *PipelineHandler) GetPipeline(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	pipeline, err := h.store.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pipeline)
}

type createPipelineRequest struct {
	Name        string `json:"name" binding:"required"`
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Branch      string `json:"branch"`
	CommitHash  string `json:"commit_hash"`
	BuildURL    string `json:"build_url"`
	Notes       string `json:"notes"`
}

func (h *PipelineHandler) CreatePipeline(c *gin.Context) {
	var req createPipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validationf("请求体解析失败: %v", err))
		return
	}

	pipeline := &model.Pipeline{
		Name:        req.Name,
		Status:      req.Status,
		Environment: req.Environment,
		Branch:      req.Branch,
		CommitHash:  req.CommitHash,
		BuildURL:    req.BuildURL,
		Notes:       req.Notes,
	}
	if err := h.store.Create(pipeline); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pipeline)
}

func demoPipelines() []gin.H {
	return []gin.H{
		{
			"name":        "Main Build",
			"status":      model.StatusSuccess,
			"environment": "development",
			"branch":      "main",
		},
		{
			"name":        "Integration Tests",
			"status":      model.StatusRunning,
			"environment": "staging",
			"branch":      "feature/new-functionality",
		},
		{
			"name":        "Production Deploy",
			"status":      model.StatusPending,
			"environment": "production",
			"branch":      "release/v1.2.0",
		},
		{
			"name":        "Performance Tests",
			"status":      model.StatusFailure,
			"environment": "staging",
			"branch":      "main",
		},
	}
}
