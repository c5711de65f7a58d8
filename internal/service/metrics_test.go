package service

import (
	"testing"
	"time"

	"qa-dashboard/internal/apperr"
	"qa-dashboard/internal/model"
	"qa-dashboard/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestMetrics(t *testing.T) (*MetricsService, *gorm.DB, *store.ExecutionStore) {
	t.Helper()
	gdb := newTestDB(t)
	execs := store.NewExecutionStore(gdb)
	return NewMetricsService(gdb, execs, 42), gdb, execs
}

func seedExecution(t *testing.T, gdb *gorm.DB, category, status string, duration int, createdAt time.Time) *model.Execution {
	t.Helper()
	exec := &model.Execution{
		Category:    category,
		Status:      status,
		Duration:    duration,
		Environment: "development",
		CreatedAt:   createdAt,
	}
	require.NoError(t, gdb.Create(exec).Error)
	return exec
}

func TestOverallEmptyStore(t *testing.T) {
	m, _, _ := newTestMetrics(t)

	overall, err := m.Overall()
	require.NoError(t, err)

	// 空集合不除零，各项为 0
	assert.Zero(t, overall.Total)
	assert.Zero(t, overall.SuccessRate)
	assert.Zero(t, overall.AvgDuration)
}

func TestOverallSuccessRate(t *testing.T) {
	m, gdb, _ := newTestMetrics(t)

	now := time.Now().UTC()
	seedExecution(t, gdb, model.CategoryWeb, model.StatusSuccess, 60, now)
	seedExecution(t, gdb, model.CategoryWeb, model.StatusSuccess, 120, now)
	seedExecution(t, gdb, model.CategoryAPI, model.StatusFailure, 30, now)

	overall, err := m.Overall()
	require.NoError(t, err)

	assert.EqualValues(t, 3, overall.Total)
	assert.EqualValues(t, 2, overall.Successes)
	assert.EqualValues(t, 1, overall.Failures)
	assert.InDelta(t, 66.67, overall.SuccessRate, 0.001)
	assert.InDelta(t, 70.0, overall.AvgDuration, 0.001)
}

func TestTrendsSparseAscending(t *testing.T) {
	m, gdb, _ := newTestMetrics(t)

	now := time.Now().UTC()
	// 三天前两条（1 成功 1 失败），昨天一条成功，前天为空（稀疏）
	seedExecution(t, gdb, model.CategoryWeb, model.StatusSuccess, 100, now.AddDate(0, 0, -3))
	seedExecution(t, gdb, model.CategoryWeb, model.StatusFailure, 50, now.AddDate(0, 0, -3))
	seedExecution(t, gdb, model.CategoryAPI, model.StatusSuccess, 80, now.AddDate(0, 0, -1))
	// 窗口之外的不计入
	seedExecution(t, gdb, model.CategoryAPI, model.StatusSuccess, 10, now.AddDate(0, 0, -40))

	series, err := m.Trends(30)
	require.NoError(t, err)

	require.Len(t, series.Dates, 2)
	require.Len(t, series.SuccessRates, 2)
	require.Len(t, series.AvgDurations, 2)

	// 日期升序且无重复
	assert.Less(t, series.Dates[0], series.Dates[1])
	assert.Equal(t, now.AddDate(0, 0, -3).Format("2006-01-02"), series.Dates[0])
	assert.Equal(t, now.AddDate(0, 0, -1).Format("2006-01-02"), series.Dates[1])

	assert.InDelta(t, 50.0, series.SuccessRates[0], 0.001)
	assert.InDelta(t, 75.0, series.AvgDurations[0], 0.001)
	assert.InDelta(t, 100.0, series.SuccessRates[1], 0.001)
	assert.InDelta(t, 80.0, series.AvgDurations[1], 0.001)
}

func TestTrendsEmptyWindow(t *testing.T) {
	m, _, _ := newTestMetrics(t)

	series, err := m.Trends(30)
	require.NoError(t, err)
	assert.Empty(t, series.Dates)
	assert.Empty(t, series.SuccessRates)
	assert.Empty(t, series.AvgDurations)
}

func TestDistributionByCategory(t *testing.T) {
	m, gdb, _ := newTestMetrics(t)

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		seedExecution(t, gdb, model.CategoryWeb, model.StatusSuccess, 10, now)
	}
	for i := 0; i < 2; i++ {
		seedExecution(t, gdb, model.CategoryAPI, model.StatusSuccess, 10, now)
	}

	dist, err := m.DistributionByCategory()
	require.NoError(t, err)

	require.Len(t, dist.Categories, 2)
	require.Len(t, dist.Counts, 2)

	// 计数与类别按位置对齐
	counts := map[string]int{}
	for i, cat := range dist.Categories {
		counts[cat] = dist.Counts[i]
	}
	assert.Equal(t, 3, counts[model.CategoryWeb])
	assert.Equal(t, 2, counts[model.CategoryAPI])
}

func TestDetailedBreakdown(t *testing.T) {
	m, gdb, _ := newTestMetrics(t)

	now := time.Now().UTC()
	seedExecution(t, gdb, model.CategoryWeb, model.StatusSuccess, 100, now)
	seedExecution(t, gdb, model.CategoryWeb, model.StatusFailure, 50, now)
	seedExecution(t, gdb, model.CategoryAPI, model.StatusRunning, 0, now)

	detailed, err := m.Detailed()
	require.NoError(t, err)

	assert.Equal(t, 1, detailed.ByStatus[model.StatusSuccess])
	assert.Equal(t, 1, detailed.ByStatus[model.StatusFailure])
	assert.Equal(t, 1, detailed.ByStatus[model.StatusRunning])
	assert.Equal(t, 3, detailed.ByEnvironment["development"])
	assert.InDelta(t, 75.0, detailed.AvgDurationByCategory[model.CategoryWeb], 0.001)
	assert.InDelta(t, 0.0, detailed.AvgDurationByCategory[model.CategoryAPI], 0.001)
}

func TestReportNotFound(t *testing.T) {
	m, _, _ := newTestMetrics(t)

	_, err := m.Report(9999)
	assert.True(t, apperr.IsNotFound(err))
}

func TestReportRunningExecutionZeroStats(t *testing.T) {
	m, _, execs := newTestMetrics(t)

	exec, err := execs.Create(model.CategoryAPI, "dev", "")
	require.NoError(t, err)

	report, err := m.Report(exec.ID)
	require.NoError(t, err)

	// 无结果不报错，统计全零
	assert.Zero(t, report.Stats.Total)
	assert.Zero(t, report.Stats.SuccessRate)
	assert.Zero(t, report.Stats.TotalTime)
	assert.Empty(t, report.Results)
	assert.Equal(t, exec.ID, report.Execution.ID)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestReportStats(t *testing.T) {
	m, _, execs := newTestMetrics(t)

	exec, err := execs.Create(model.CategoryAPI, "dev", "")
	require.NoError(t, err)

	batch := []model.Result{
		{TestName: "Test Login - 1", Status: model.ResultPassed, ExecutionTime: 2},
		{TestName: "Test Forms - 2", Status: model.ResultPassed, ExecutionTime: 3},
		{TestName: "Test API - 3", Status: model.ResultFailed, ExecutionTime: 4, ErrorMessage: "Validation error"},
		{TestName: "Test Performance - 4", Status: model.ResultSkipped, ExecutionTime: 1},
	}
	require.NoError(t, execs.Finalize(exec.ID, batch, model.StatusFailure, 10))

	report, err := m.Report(exec.ID)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Stats.Total)
	assert.Equal(t, 2, report.Stats.Passed)
	assert.Equal(t, 1, report.Stats.Failed)
	assert.Equal(t, 1, report.Stats.Skipped)
	assert.InDelta(t, 50.0, report.Stats.SuccessRate, 0.001)
	assert.InDelta(t, 10.0, report.Stats.TotalTime, 0.001)
	assert.Len(t, report.Results, 4)
}

func TestDashboardPayloadShape(t *testing.T) {
	m, gdb, _ := newTestMetrics(t)

	seedExecution(t, gdb, model.CategoryWeb, model.StatusSuccess, 60, time.Now().UTC())

	payload, err := m.Dashboard()
	require.NoError(t, err)

	// 负载结构完整：宁可为零值也不缺字段
	for _, key := range []string{"success_rate", "avg_duration", "coverage", "bugs_found", "trends", "distribution", "performance", "timestamp"} {
		assert.Contains(t, payload, key)
	}
	bugs, ok := payload["bugs_found"].(int)
	require.True(t, ok)
	assert.GreaterOrEqual(t, bugs, 5)
	assert.LessOrEqual(t, bugs, 25)
}
