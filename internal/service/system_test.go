package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"qa-dashboard/internal/model"
	"qa-dashboard/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSampler struct {
	sample ResourceSample
	err    error
}

func (f *fakeSampler) Sample(ctx context.Context) (ResourceSample, error) {
	return f.sample, f.err
}

func newTestSystem(t *testing.T, sampler Sampler) (*SystemService, *gorm.DB) {
	t.Helper()
	gdb := newTestDB(t)
	return NewSystemService(store.NewSampleStore(gdb), sampler, 3*time.Second, testLogger()), gdb
}

func TestSampleNowPersistsAndRounds(t *testing.T) {
	sampler := &fakeSampler{sample: ResourceSample{
		CPUPercent:    12.345,
		MemoryPercent: 67.891,
		DiskPercent:   45.0,
		NetBytesSent:  1024 * 1024,
		NetBytesRecv:  3 * 1024 * 1024,
	}}
	sys, gdb := newTestSystem(t, sampler)

	current := sys.SampleNow()

	assert.InDelta(t, 12.35, current.CPU, 0.001)
	assert.InDelta(t, 67.89, current.Memory, 0.001)
	assert.InDelta(t, 45.0, current.Disk, 0.001)
	assert.InDelta(t, 4.0, current.NetworkMB, 0.001)

	var samples []model.SystemSample
	require.NoError(t, gdb.Find(&samples).Error)
	require.Len(t, samples, 1)
	assert.InDelta(t, 12.345, samples[0].CPUPercent, 0.001)
	assert.EqualValues(t, 1024*1024, samples[0].NetBytesSent)
}

func TestSampleNowDegradesToZero(t *testing.T) {
	sys, gdb := newTestSystem(t, &fakeSampler{err: errors.New("probe timeout")})

	// 采样失败绝不上抛：返回零值，也不落库
	current := sys.SampleNow()
	assert.Zero(t, current.CPU)
	assert.Zero(t, current.Memory)
	assert.Zero(t, current.Disk)
	assert.Zero(t, current.NetworkMB)

	var count int64
	require.NoError(t, gdb.Model(&model.SystemSample{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSystemHistoryDelegates(t *testing.T) {
	sampler := &fakeSampler{sample: ResourceSample{CPUPercent: 50}}
	sys, _ := newTestSystem(t, sampler)

	sys.SampleNow()
	sys.SampleNow()

	samples, err := sys.History(24)
	require.NoError(t, err)
	assert.Len(t, samples, 2)
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0.0, clampPercent(-5))
	assert.Equal(t, 100.0, clampPercent(120))
	assert.Equal(t, 42.5, clampPercent(42.5))
}
