package model

import "time"

// SystemSample 一次系统资源采样，追加写入，从不更新
type SystemSample struct {
	ID uint `gorm:"primarykey" json:"id"`

	// 百分比字段在采样边界已被夹到 [0,100]
	CPUPercent    float64 `gorm:"not null" json:"cpu_percent"`
	MemoryPercent float64 `gorm:"not null" json:"memory_percent"`
	DiskPercent   float64 `gorm:"not null" json:"disk_percent"`

	NetBytesSent uint64 `gorm:"default:0" json:"net_bytes_sent"`
	NetBytesRecv uint64 `gorm:"default:0" json:"net_bytes_recv"`

	CollectedAt time.Time `gorm:"autoCreateTime;index" json:"collected_at"`
}
