package model

import "time"

// 单条结果状态
const (
	ResultPassed  = "passed"
	ResultFailed  = "failed"
	ResultSkipped = "skipped"
)

// Result 执行中单个检查项的结果，写入后不可变
type Result struct {
	ID          uint `gorm:"primarykey" json:"id"`
	ExecutionID uint `gorm:"not null;index" json:"execution_id"`

	TestName      string  `gorm:"type:varchar(200);not null" json:"test_name"`
	Status        string  `gorm:"type:varchar(20);not null" json:"status"`
	ExecutionTime float64 `gorm:"not null" json:"execution_time"`

	// 仅非 passed 结果填充
	ErrorMessage   string `gorm:"type:text" json:"error_message"`
	StackTrace     string `gorm:"type:text" json:"stack_trace"`
	ScreenshotPath string `gorm:"type:varchar(500)" json:"screenshot_path"`

	ExecutedAt time.Time `gorm:"autoCreateTime" json:"executed_at"`
}
