package store

import (
	"fmt"
	"time"

	"qa-dashboard/internal/apperr"
	"qa-dashboard/internal/model"

	"gorm.io/gorm"
)

// SampleStore 系统资源采样的追加与时间窗查询
type SampleStore struct {
	db *gorm.DB
}

func NewSampleStore(db *gorm.DB) *SampleStore {
	return &SampleStore{db: db}
}

func (s *SampleStore) Create(sample *model.SystemSample) error {
	if err := s.db.Create(sample).Error; err != nil {
		return fmt.Errorf("写入采样失败: %w", err)
	}
	return nil
}

// History 返回最近 hours 小时内的采样，按采集时间倒序
func (s *SampleStore) History(hours int) ([]model.SystemSample, error) {
	if hours <= 0 {
		return nil, apperr.Validationf("hours 必须为正数: %d", hours)
	}

	since := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	var samples []model.SystemSample
	err := s.db.Where("collected_at >= ?", since).
		Order("collected_at DESC").
		Find(&samples).Error
	if err != nil {
		return nil, fmt.Errorf("查询采样历史失败: %w", err)
	}
	return samples, nil
}
