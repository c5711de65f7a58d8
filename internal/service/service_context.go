package service

import (
	"time"

	"qa-dashboard/internal/config"
	"qa-dashboard/internal/store"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ServiceContext struct {
	Executions *store.ExecutionStore
	Samples    *store.SampleStore
	Configs    *store.ConfigStore
	Pipelines  *store.PipelineStore

	Runner  *Runner
	Metrics *MetricsService
	System  *SystemService

	Logger zerolog.Logger
}

func NewServiceContext(db *gorm.DB, cfg *config.Config, logger zerolog.Logger) *ServiceContext {
	execStore := store.NewExecutionStore(db)
	sampleStore := store.NewSampleStore(db)

	return &ServiceContext{
		Executions: execStore,
		Samples:    sampleStore,
		Configs:    store.NewConfigStore(db),
		Pipelines:  store.NewPipelineStore(db),
		Runner:     NewRunner(execStore, cfg.Runner, logger),
		Metrics:    NewMetricsService(db, execStore, cfg.Runner.Seed),
		System: NewSystemService(
			sampleStore,
			NewHostSampler(),
			time.Duration(cfg.Sampler.TimeoutSeconds)*time.Second,
			logger,
		),
		Logger: logger,
	}
}
