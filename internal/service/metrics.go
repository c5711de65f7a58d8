package service

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"qa-dashboard/internal/model"
	"qa-dashboard/internal/store"

	"gorm.io/gorm"
)

// MetricsService 从执行历史按需计算派生指标
type MetricsService struct {
	db    *gorm.DB
	execs *store.ExecutionStore

	// 仪表盘的模拟数字（bug 数等）用独立随机源，测试可播种
	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewMetricsService(db *gorm.DB, execs *store.ExecutionStore, seed int64) *MetricsService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MetricsService{
		db:    db,
		execs: execs,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

type OverallMetrics struct {
	Total       int64   `json:"total_executions"`
	Successes   int64   `json:"successes"`
	Failures    int64   `json:"failures"`
	SuccessRate float64 `json:"success_rate"`
	AvgDuration float64 `json:"avg_duration"`
}

// Overall 全量成功率与平均耗时，空集合时各项为 0
func (s *MetricsService) Overall() (OverallMetrics, error) {
	var m OverallMetrics

	if err := s.db.Model(&model.Execution{}).Count(&m.Total).Error; err != nil {
		return m, fmt.Errorf("统计执行总数失败: %w", err)
	}
	if err := s.db.Model(&model.Execution{}).
		Where("status = ?", model.StatusSuccess).Count(&m.Successes).Error; err != nil {
		return m, fmt.Errorf("统计成功执行失败: %w", err)
	}
	if err := s.db.Model(&model.Execution{}).
		Where("status = ?", model.StatusFailure).Count(&m.Failures).Error; err != nil {
		return m, fmt.Errorf("统计失败执行失败: %w", err)
	}

	if m.Total > 0 {
		m.SuccessRate = round2(float64(m.Successes) / float64(m.Total) * 100)
	}

	var avg float64
	if err := s.db.Model(&model.Execution{}).
		Select("COALESCE(AVG(duration), 0)").Scan(&avg).Error; err != nil {
		return m, fmt.Errorf("统计平均耗时失败: %w", err)
	}
	m.AvgDuration = round2(avg)
	return m, nil
}

type TrendSeries struct {
	Dates        []string  `json:"dates"`
	SuccessRates []float64 `json:"success_rate"`
	AvgDurations []float64 `json:"avg_duration"`
}

// Trends 按 UTC 日历日聚合窗口内的执行；没有执行的日期不补零（稀疏序列）
func (s *MetricsService) Trends(windowDays int) (TrendSeries, error) {
	series := TrendSeries{
		Dates:        []string{},
		SuccessRates: []float64{},
		AvgDurations: []float64{},
	}

	since := time.Now().UTC().AddDate(0, 0, -windowDays)
	var execs []model.Execution
	if err := s.db.Where("created_at >= ?", since).Find(&execs).Error; err != nil {
		return series, fmt.Errorf("查询趋势窗口失败: %w", err)
	}

	type bucket struct {
		total         int
		successes     int
		totalDuration int
	}
	buckets := map[string]*bucket{}
	for _, e := range execs {
		date := e.CreatedAt.UTC().Format("2006-01-02")
		b := buckets[date]
		if b == nil {
			b = &bucket{}
			buckets[date] = b
		}
		b.total++
		if e.Status == model.StatusSuccess {
			b.successes++
		}
		b.totalDuration += e.Duration
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		b := buckets[date]
		series.Dates = append(series.Dates, date)
		series.SuccessRates = append(series.SuccessRates,
			round2(float64(b.successes)/float64(b.total)*100))
		series.AvgDurations = append(series.AvgDurations,
			round2(float64(b.totalDuration)/float64(b.total)))
	}
	return series, nil
}

type Distribution struct {
	Categories []string `json:"categories"`
	Counts     []int    `json:"counts"`
}

// DistributionByCategory 各类别执行数量，类别与数量按位置对齐
func (s *MetricsService) DistributionByCategory() (Distribution, error) {
	dist := Distribution{Categories: []string{}, Counts: []int{}}

	var rows []struct {
		Category string
		Count    int
	}
	err := s.db.Model(&model.Execution{}).
		Select("category, COUNT(id) AS count").
		Group("category").
		Order("category").
		Scan(&rows).Error
	if err != nil {
		return dist, fmt.Errorf("统计类别分布失败: %w", err)
	}

	for _, row := range rows {
		dist.Categories = append(dist.Categories, row.Category)
		dist.Counts = append(dist.Counts, row.Count)
	}
	return dist, nil
}

type DetailedMetrics struct {
	ByStatus              map[string]int     `json:"executions_by_status"`
	ByEnvironment         map[string]int     `json:"executions_by_environment"`
	AvgDurationByCategory map[string]float64 `json:"avg_duration_by_category"`
}

func (s *MetricsService) Detailed() (DetailedMetrics, error) {
	detailed := DetailedMetrics{
		ByStatus:              map[string]int{},
		ByEnvironment:         map[string]int{},
		AvgDurationByCategory: map[string]float64{},
	}

	var statusRows []struct {
		Status string
		Count  int
	}
	err := s.db.Model(&model.Execution{}).
		Select("status, COUNT(id) AS count").Group("status").Scan(&statusRows).Error
	if err != nil {
		return detailed, fmt.Errorf("统计状态分布失败: %w", err)
	}
	for _, row := range statusRows {
		detailed.ByStatus[row.Status] = row.Count
	}

	var envRows []struct {
		Environment string
		Count       int
	}
	err = s.db.Model(&model.Execution{}).
		Select("environment, COUNT(id) AS count").Group("environment").Scan(&envRows).Error
	if err != nil {
		return detailed, fmt.Errorf("统计环境分布失败: %w", err)
	}
	for _, row := range envRows {
		detailed.ByEnvironment[row.Environment] = row.Count
	}

	var durRows []struct {
		Category string
		Avg      float64
	}
	err = s.db.Model(&model.Execution{}).
		Select("category, AVG(duration) AS avg").Group("category").Scan(&durRows).Error
	if err != nil {
		return detailed, fmt.Errorf("统计类别平均耗时失败: %w", err)
	}
	for _, row := range durRows {
		detailed.AvgDurationByCategory[row.Category] = round2(row.Avg)
	}

	return detailed, nil
}

type ReportStats struct {
	Total       int     `json:"total_tests"`
	Passed      int     `json:"tests_passed"`
	Failed      int     `json:"tests_failed"`
	Skipped     int     `json:"tests_skipped"`
	SuccessRate float64 `json:"success_rate"`
	TotalTime   float64 `json:"total_time"`
}

type ExecutionReport struct {
	Execution   model.ExecutionSummary `json:"execution"`
	Stats       ReportStats            `json:"stats"`
	Results     []model.Result         `json:"results"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// Report 生成单次执行的报告；执行仍在 running 时返回全零统计而非错误
func (s *MetricsService) Report(id uint) (*ExecutionReport, error) {
	exec, err := s.execs.Get(id)
	if err != nil {
		return nil, err
	}
	results, err := s.execs.ResultsFor(id)
	if err != nil {
		return nil, err
	}

	var stats ReportStats
	stats.Total = len(results)
	for _, r := range results {
		switch r.Status {
		case model.ResultPassed:
			stats.Passed++
		case model.ResultFailed:
			stats.Failed++
		case model.ResultSkipped:
			stats.Skipped++
		}
		stats.TotalTime += r.ExecutionTime
	}
	stats.TotalTime = round2(stats.TotalTime)
	if stats.Total > 0 {
		stats.SuccessRate = round2(float64(stats.Passed) / float64(stats.Total) * 100)
	}

	return &ExecutionReport{
		Execution:   exec.Summarize(),
		Stats:       stats,
		Results:     results,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// Dashboard 组装仪表盘主页负载：总体指标 + 30 天趋势 + 分布 + 模拟的性能/覆盖率区块
func (s *MetricsService) Dashboard() (map[string]interface{}, error) {
	overall, err := s.Overall()
	if err != nil {
		return nil, err
	}
	trends, err := s.Trends(30)
	if err != nil {
		return nil, err
	}
	dist, err := s.DistributionByCategory()
	if err != nil {
		return nil, err
	}

	total := 0
	for _, c := range dist.Counts {
		total += c
	}
	coverage := math.Min(95, 70+float64(total)*0.5)

	s.rngMu.Lock()
	bugs := 5 + s.rng.Intn(21)
	s.rngMu.Unlock()

	return map[string]interface{}{
		"success_rate": overall.SuccessRate,
		"avg_duration": fmt.Sprintf("%.1fs", overall.AvgDuration),
		"coverage":     math.Round(coverage*10) / 10,
		"bugs_found":   bugs,
		"trends":       trends,
		"distribution": dist,
		"performance": map[string]interface{}{
			"tests": []string{"Login", "Navigation", "Forms", "API", "Performance"},
			"times": []int{1200, 800, 1500, 600, 3000},
		},
		"timestamp": time.Now().UTC(),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
