package main

import (
	"fmt"
	"os"

	"qa-dashboard/internal/config"
	"qa-dashboard/internal/db"
	"qa-dashboard/internal/router"
	"qa-dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// 加载配置
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		logger.Fatal().Err(err).Msg("加载配置失败")
	}

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	// 初始化数据库
	gdb, err := db.Open(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化数据库失败")
	}
	if err := db.Seed(gdb, logger); err != nil {
		logger.Fatal().Err(err).Msg("写入演示数据失败")
	}

	// 初始化服务
	svcCtx := service.NewServiceContext(gdb, cfg, logger)

	// 初始化路由
	r := router.SetupRouter(svcCtx)

	// 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("服务启动")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("启动服务失败")
	}
}
