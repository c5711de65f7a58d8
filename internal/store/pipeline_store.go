package store

import (
	"errors"
	"fmt"

	"qa-dashboard/internal/apperr"
	"qa-dashboard/internal/model"

	"gorm.io/gorm"
)

// PipelineStore CI/CD 流水线演示记录
type PipelineStore struct {
	db *gorm.DB
}

func NewPipelineStore(db *gorm.DB) *PipelineStore {
	return &PipelineStore{db: db}
}

// List 返回最近启动的流水线，最多 limit 条
func (s *PipelineStore) List(limit int) ([]model.Pipeline, error) {
	if limit <= 0 {
		return nil, apperr.Validationf("limit 必须为正数: %d", limit)
	}

	var pipelines []model.Pipeline
	err := s.db.Order("started_at DESC").Limit(limit).Find(&pipelines).Error
	if err != nil {
		return nil, fmt.Errorf("查询流水线失败: %w", err)
	}
	return pipelines, nil
}

func (s *PipelineStore) Get(id uint) (*model.Pipeline, error) {
	var pipeline model.Pipeline
	err := s.db.First(&pipeline, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("流水线 %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("查询流水线失败: %w", err)
	}
	return &pipeline, nil
}

func (s *PipelineStore) Create(pipeline *model.Pipeline) error {
	if pipeline.Status == "" {
		pipeline.Status = model.StatusPending
	}
	if pipeline.Environment == "" {
		pipeline.Environment = "development"
	}
	if err := s.db.Create(pipeline).Error; err != nil {
		return fmt.Errorf("创建流水线失败: %w", err)
	}
	return nil
}
