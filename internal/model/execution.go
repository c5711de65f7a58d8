package model

import (
	"time"

	"gorm.io/gorm"
)

// 执行状态
const (
	StatusPending = "pending"
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// 测试类别（可扩展，complete 表示全量套件）
const (
	CategoryWeb         = "web"
	CategoryAPI         = "api"
	CategoryPerformance = "performance"
	CategoryIntegration = "integration"
	CategoryComplete    = "complete"
)

// Execution 一次测试套件执行记录
// 注意：running/pending 状态下 duration 恒为 0，终态后由后台任务写入
type Execution struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Category    string `gorm:"type:varchar(50);not null;index" json:"category"`
	Status      string `gorm:"type:varchar(20);not null;index" json:"status"`
	Duration    int    `gorm:"not null;default:0" json:"duration"`
	Environment string `gorm:"type:varchar(50);not null" json:"environment"`
	Notes       string `gorm:"type:text" json:"notes"`

	// 级联删除：删除执行时一并删除其结果
	Results []Result `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Terminal 是否已到达终态
func (e *Execution) Terminal() bool {
	return e.Status == StatusSuccess || e.Status == StatusFailure
}

// ExecutionSummary 带结果计数的序列化视图（需预加载 Results）
type ExecutionSummary struct {
	Execution
	TotalTests  int `json:"total_tests"`
	TestsPassed int `json:"tests_passed"`
	TestsFailed int `json:"tests_failed"`
}

func (e *Execution) Summarize() ExecutionSummary {
	s := ExecutionSummary{Execution: *e, TotalTests: len(e.Results)}
	for _, r := range e.Results {
		switch r.Status {
		case ResultPassed:
			s.TestsPassed++
		case ResultFailed:
			s.TestsFailed++
		}
	}
	return s
}
