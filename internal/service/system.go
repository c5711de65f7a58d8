package service

import (
	"context"
	"time"

	"qa-dashboard/internal/model"
	"qa-dashboard/internal/store"

	"github.com/rs/zerolog"
)

// CurrentMetrics 仪表盘当前资源视图，网络流量折算为 MB
type CurrentMetrics struct {
	CPU       float64 `json:"cpu"`
	Memory    float64 `json:"memory"`
	Disk      float64 `json:"disk"`
	NetworkMB float64 `json:"network_mb"`
}

// SystemService 系统指标记录器：采样即持久化，并提供时间窗历史查询
type SystemService struct {
	samples *store.SampleStore
	sampler Sampler
	timeout time.Duration
	log     zerolog.Logger
}

func NewSystemService(samples *store.SampleStore, sampler Sampler, timeout time.Duration, logger zerolog.Logger) *SystemService {
	return &SystemService{
		samples: samples,
		sampler: sampler,
		timeout: timeout,
		log:     logger,
	}
}

// SampleNow 采样并持久化一条记录。采样或写入失败时降级为全零返回，
// 资源监控绝不能拖垮仪表盘。
func (s *SystemService) SampleNow() CurrentMetrics {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	raw, err := s.sampler.Sample(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("资源采样失败，返回零值")
		return CurrentMetrics{}
	}

	sample := &model.SystemSample{
		CPUPercent:    raw.CPUPercent,
		MemoryPercent: raw.MemoryPercent,
		DiskPercent:   raw.DiskPercent,
		NetBytesSent:  raw.NetBytesSent,
		NetBytesRecv:  raw.NetBytesRecv,
	}
	if err := s.samples.Create(sample); err != nil {
		s.log.Warn().Err(err).Msg("采样持久化失败，返回零值")
		return CurrentMetrics{}
	}

	return CurrentMetrics{
		CPU:       round2(raw.CPUPercent),
		Memory:    round2(raw.MemoryPercent),
		Disk:      round2(raw.DiskPercent),
		NetworkMB: round2(float64(raw.NetBytesSent+raw.NetBytesRecv) / 1024 / 1024),
	}
}

// History 最近 hours 小时的采样，倒序
func (s *SystemService) History(hours int) ([]model.SystemSample, error) {
	return s.samples.History(hours)
}
