package model

import (
	"time"

	"gorm.io/gorm"
)

// Pipeline CI/CD 流水线记录（演示用静态数据，无编排逻辑）
type Pipeline struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Status      string `gorm:"type:varchar(20);not null" json:"status"`
	Environment string `gorm:"type:varchar(50);not null" json:"environment"`
	Branch      string `gorm:"type:varchar(100)" json:"branch"`
	CommitHash  string `gorm:"type:varchar(40)" json:"commit_hash"`
	Duration    int    `json:"duration"`
	BuildURL    string `gorm:"type:varchar(500)" json:"build_url"`
	Notes       string `gorm:"type:text" json:"notes"`

	StartedAt  time.Time  `gorm:"autoCreateTime;index" json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
}
