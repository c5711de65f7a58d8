package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
)

// ResourceSample 一次主机资源读数，百分比已夹到 [0,100]
type ResourceSample struct {
	CPUPercent    float64
	MemoryPercent float64
	DiskPercent   float64
	NetBytesSent  uint64
	NetBytesRecv  uint64
}

// Sampler 资源采样协作方，失败时由调用方降级为零值
type Sampler interface {
	Sample(ctx context.Context) (ResourceSample, error)
}

// HostSampler 基于 gopsutil 的真实主机采样
type HostSampler struct {
	// 磁盘用量统计的挂载点
	DiskPath string
}

func NewHostSampler() *HostSampler {
	return &HostSampler{DiskPath: "/"}
}

func (s *HostSampler) Sample(ctx context.Context) (ResourceSample, error) {
	var sample ResourceSample

	cpuPercents, err := cpu.PercentWithContext(ctx, time.Second, false)
	if err != nil {
		return sample, fmt.Errorf("CPU 采样失败: %w", err)
	}
	if len(cpuPercents) > 0 {
		sample.CPUPercent = clampPercent(cpuPercents[0])
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return sample, fmt.Errorf("内存采样失败: %w", err)
	}
	sample.MemoryPercent = clampPercent(vm.UsedPercent)

	usage, err := disk.UsageWithContext(ctx, s.DiskPath)
	if err != nil {
		return sample, fmt.Errorf("磁盘采样失败: %w", err)
	}
	sample.DiskPercent = clampPercent(usage.UsedPercent)

	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return sample, fmt.Errorf("网络采样失败: %w", err)
	}
	if len(counters) > 0 {
		sample.NetBytesSent = counters[0].BytesSent
		sample.NetBytesRecv = counters[0].BytesRecv
	}

	return sample, nil
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
