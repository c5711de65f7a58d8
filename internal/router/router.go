package router

import (
	"net/http"
	"time"

	"qa-dashboard/internal/handler"
	"qa-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRouter(svcCtx *service.ServiceContext) *gin.Engine {
	r := gin.Default()

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// 初始化handlers
	metricsHandler := handler.NewMetricsHandler(svcCtx.Metrics)
	executionHandler := handler.NewExecutionHandler(svcCtx.Executions, svcCtx.Runner, svcCtx.Metrics)
	systemHandler := handler.NewSystemHandler(svcCtx.System)
	configHandler := handler.NewConfigHandler(svcCtx.Configs)
	pipelineHandler := handler.NewPipelineHandler(svcCtx.Pipelines)

	// 服务信息
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "QA Test Automation Dashboard API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"metrics":    "/api/metrics",
				"executions": "/api/executions",
				"system":     "/api/system",
				"pipelines":  "/api/pipelines",
				"run_tests":  "/api/run-tests",
			},
		})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// API路由
	api := r.Group("/api")
	{
		// 指标相关
		metrics := api.Group("/metrics")
		{
			metrics.GET("", metricsHandler.GetMetrics)
			metrics.GET("/detailed", metricsHandler.GetDetailedMetrics)
		}

		// 执行相关
		executions := api.Group("/executions")
		{
			executions.GET("", executionHandler.ListExecutions)
			executions.GET("/:id", executionHandler.GetExecution)
			executions.GET("/:id/results", executionHandler.GetExecutionResults)
		}
		api.POST("/run-tests", executionHandler.RunTests)
		api.GET("/reports/:id", executionHandler.GetReport)

		// 系统相关
		system := api.Group("/system")
		{
			system.GET("", systemHandler.GetCurrent)
			system.GET("/history", systemHandler.GetHistory)
		}
		api.GET("/configurations", configHandler.GetConfiguration)
		api.PUT("/configurations", configHandler.UpdateConfiguration)

		// 流水线相关
		pipelines := api.Group("/pipelines")
		{
			pipelines.GET("", pipelineHandler.ListPipelines)
			pipelines.GET("/:id", pipelineHandler.GetPipeline)
			pipelines.POST("", pipelineHandler.CreatePipeline)
		}
	}

	return r
}
